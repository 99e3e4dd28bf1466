// Package catalog holds the static fixture content the dashboard pages render
// and the client-side style filter/sort pipeline over projects.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vanshika/aquafund/internal/domain"
)

//go:embed data/fixtures.yaml
var embeddedFixtures []byte

// ErrInvalidFixture wraps any fixture record that fails to convert.
var ErrInvalidFixture = errors.New("invalid fixture")

// Catalog is the complete, read-only fixture set loaded at startup.
type Catalog struct {
	User           domain.User
	Projects       []domain.Project
	InsurancePlans []domain.InsurancePlan
	LoanTypes      []domain.LoanType
	Transactions   []domain.Transaction
	Notifications  []domain.Notification
	Allocations    []domain.Allocation

	// Chart series for the dashboard page.
	InvestmentGrowth []domain.SeriesPoint
	WalletHistory    []domain.SeriesPoint
	RiskDistribution []domain.Allocation
	EmergencyPool    domain.EmergencyPool
}

// Default parses the fixtures compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedFixtures)
}

// MustDefault is Default for callers that cannot recover, such as tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a fixture file. Sections absent from the file keep the
// embedded defaults, so a file may carry only transactions and notifications.
func LoadFile(path string) (*Catalog, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	overlay, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	base.merge(overlay)
	return base, nil
}

// Parse decodes a YAML fixture document.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return f.toCatalog()
}

// Project returns the project with the given id.
func (c *Catalog) Project(id string) (domain.Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

// InsurancePlan returns the plan with the given id.
func (c *Catalog) InsurancePlan(id string) (domain.InsurancePlan, bool) {
	for _, p := range c.InsurancePlans {
		if p.ID == id {
			return p, true
		}
	}
	return domain.InsurancePlan{}, false
}

// LoanType returns the loan type with the given id.
func (c *Catalog) LoanType(id string) (domain.LoanType, bool) {
	for _, l := range c.LoanTypes {
		if l.ID == id {
			return l, true
		}
	}
	return domain.LoanType{}, false
}

func (c *Catalog) merge(o *Catalog) {
	if o.User.ID != "" {
		c.User = o.User
	}
	if len(o.Projects) > 0 {
		c.Projects = o.Projects
	}
	if len(o.InsurancePlans) > 0 {
		c.InsurancePlans = o.InsurancePlans
	}
	if len(o.LoanTypes) > 0 {
		c.LoanTypes = o.LoanTypes
	}
	if len(o.Transactions) > 0 {
		c.Transactions = o.Transactions
	}
	if len(o.Notifications) > 0 {
		c.Notifications = o.Notifications
	}
	if len(o.Allocations) > 0 {
		c.Allocations = o.Allocations
	}
	if len(o.InvestmentGrowth) > 0 {
		c.InvestmentGrowth = o.InvestmentGrowth
	}
	if len(o.WalletHistory) > 0 {
		c.WalletHistory = o.WalletHistory
	}
	if len(o.RiskDistribution) > 0 {
		c.RiskDistribution = o.RiskDistribution
	}
	if !o.EmergencyPool.TotalPool.IsZero() {
		c.EmergencyPool = o.EmergencyPool
	}
}

// --- YAML schema ---

// File is the on-disk fixture layout. The generator writes the same shape.
type File struct {
	User           *UserRecord          `yaml:"user,omitempty"`
	Projects       []ProjectRecord      `yaml:"projects,omitempty"`
	InsurancePlans []InsuranceRecord    `yaml:"insurance_plans,omitempty"`
	LoanTypes      []LoanRecord         `yaml:"loan_types,omitempty"`
	Transactions   []TransactionRecord  `yaml:"transactions,omitempty"`
	Notifications  []NotificationRecord `yaml:"notifications,omitempty"`
	Allocations    []AllocationRecord   `yaml:"allocations,omitempty"`

	InvestmentGrowth []SeriesRecord     `yaml:"investment_growth,omitempty"`
	WalletHistory    []SeriesRecord     `yaml:"wallet_history,omitempty"`
	RiskDistribution []AllocationRecord `yaml:"risk_distribution,omitempty"`
	EmergencyPool    *EmergencyRecord   `yaml:"emergency_pool,omitempty"`
}

type UserRecord struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Email         string  `yaml:"email"`
	AvatarURL     string  `yaml:"avatar_url,omitempty"`
	KYCStatus     string  `yaml:"kyc_status"`
	WalletBalance float64 `yaml:"wallet_balance"`
}

type ProjectRecord struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	RiskLevel     string  `yaml:"risk_level"`
	ExpectedROI   float64 `yaml:"expected_roi"`
	FundingGoal   float64 `yaml:"funding_goal"`
	FundingRaised float64 `yaml:"funding_raised"`
	Duration      string  `yaml:"duration"`
	Category      string  `yaml:"category"`
	Impact        string  `yaml:"impact"`
	Location      string  `yaml:"location,omitempty"`
	ImageURL      string  `yaml:"image_url,omitempty"`
}

type InsuranceRecord struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description,omitempty"`
	MonthlyPremium float64  `yaml:"monthly_premium"`
	Coverage       float64  `yaml:"coverage"`
	Duration       string   `yaml:"duration,omitempty"`
	RiskLevel      string   `yaml:"risk_level"`
	Benefits       []string `yaml:"benefits"`
}

type LoanRecord struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description,omitempty"`
	InterestRate  float64  `yaml:"interest_rate"`
	MinAmount     float64  `yaml:"min_amount"`
	MaxAmount     float64  `yaml:"max_amount"`
	MinTermMonths int      `yaml:"min_term_months"`
	MaxTermMonths int      `yaml:"max_term_months"`
	ApprovalRate  float64  `yaml:"approval_rate"`
	Requirements  []string `yaml:"requirements"`
}

type TransactionRecord struct {
	ID          string    `yaml:"id"`
	Type        string    `yaml:"type"`
	Amount      float64   `yaml:"amount"`
	Date        time.Time `yaml:"date"`
	Description string    `yaml:"description"`
	Status      string    `yaml:"status"`
}

type NotificationRecord struct {
	ID      string    `yaml:"id"`
	Type    string    `yaml:"type"`
	Message string    `yaml:"message"`
	Date    time.Time `yaml:"date"`
	Read    bool      `yaml:"read"`
}

type AllocationRecord struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Color string  `yaml:"color,omitempty"`
}

type SeriesRecord struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

type EmergencyRecord struct {
	TotalPool        float64        `yaml:"total_pool"`
	AvailableFunds   float64        `yaml:"available_funds"`
	AllocatedFunds   float64        `yaml:"allocated_funds"`
	RequestsPending  int            `yaml:"requests_pending"`
	RequestsApproved int            `yaml:"requests_approved"`
	RequestsDeclined int            `yaml:"requests_declined"`
	Regions          []RegionRecord `yaml:"region_allocation"`
	Usage            []UsageRecord  `yaml:"usage_breakdown"`
}

type RegionRecord struct {
	Region     string  `yaml:"region"`
	Allocation float64 `yaml:"allocation"`
}

type UsageRecord struct {
	Category   string  `yaml:"category"`
	Percentage float64 `yaml:"percentage"`
}

func amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func (f File) toCatalog() (*Catalog, error) {
	c := &Catalog{}

	if f.User != nil {
		kyc, err := domain.ParseKYCStatus(f.User.KYCStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: user %s: %v", ErrInvalidFixture, f.User.ID, err)
		}
		c.User = domain.User{
			ID:            f.User.ID,
			Name:          f.User.Name,
			Email:         f.User.Email,
			AvatarURL:     f.User.AvatarURL,
			KYCStatus:     kyc,
			WalletBalance: amount(f.User.WalletBalance),
		}
	}

	for _, p := range f.Projects {
		risk, err := domain.ParseRiskLevel(p.RiskLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: project %s: %v", ErrInvalidFixture, p.ID, err)
		}
		c.Projects = append(c.Projects, domain.Project{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			RiskLevel:     risk,
			ExpectedROI:   amount(p.ExpectedROI),
			FundingGoal:   amount(p.FundingGoal),
			FundingRaised: amount(p.FundingRaised),
			Duration:      p.Duration,
			Category:      p.Category,
			Impact:        p.Impact,
			Location:      p.Location,
			ImageURL:      p.ImageURL,
		})
	}

	for _, p := range f.InsurancePlans {
		risk, err := domain.ParseRiskLevel(p.RiskLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: insurance plan %s: %v", ErrInvalidFixture, p.ID, err)
		}
		c.InsurancePlans = append(c.InsurancePlans, domain.InsurancePlan{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			MonthlyPremium: amount(p.MonthlyPremium),
			Coverage:       amount(p.Coverage),
			Benefits:       p.Benefits,
			Duration:       p.Duration,
			RiskLevel:      risk,
		})
	}

	for _, l := range f.LoanTypes {
		if l.MinTermMonths <= 0 || l.MaxTermMonths < l.MinTermMonths {
			return nil, fmt.Errorf("%w: loan type %s: term range %d-%d", ErrInvalidFixture, l.ID, l.MinTermMonths, l.MaxTermMonths)
		}
		c.LoanTypes = append(c.LoanTypes, domain.LoanType{
			ID:            l.ID,
			Name:          l.Name,
			Description:   l.Description,
			InterestRate:  amount(l.InterestRate),
			MinAmount:     amount(l.MinAmount),
			MaxAmount:     amount(l.MaxAmount),
			MinTermMonths: l.MinTermMonths,
			MaxTermMonths: l.MaxTermMonths,
			Requirements:  l.Requirements,
			ApprovalRate:  amount(l.ApprovalRate),
		})
	}

	for _, t := range f.Transactions {
		txType, err := domain.ParseTransactionType(t.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s: %v", ErrInvalidFixture, t.ID, err)
		}
		status, err := domain.ParseTransactionStatus(t.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s: %v", ErrInvalidFixture, t.ID, err)
		}
		c.Transactions = append(c.Transactions, domain.Transaction{
			ID:          t.ID,
			Type:        txType,
			Amount:      amount(t.Amount),
			Date:        t.Date.UTC(),
			Description: t.Description,
			Status:      status,
		})
	}

	for _, n := range f.Notifications {
		nType, err := domain.ParseNotificationType(n.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: notification %s: %v", ErrInvalidFixture, n.ID, err)
		}
		c.Notifications = append(c.Notifications, domain.Notification{
			ID:      n.ID,
			Type:    nType,
			Message: strings.TrimSpace(n.Message),
			Date:    n.Date.UTC(),
			Read:    n.Read,
		})
	}

	c.Allocations = allocations(f.Allocations)
	c.RiskDistribution = allocations(f.RiskDistribution)
	c.InvestmentGrowth = series(f.InvestmentGrowth)
	c.WalletHistory = series(f.WalletHistory)

	if e := f.EmergencyPool; e != nil {
		if e.AvailableFunds+e.AllocatedFunds > e.TotalPool {
			return nil, fmt.Errorf("%w: emergency pool: %v available and %v allocated exceed %v", ErrInvalidFixture, e.AvailableFunds, e.AllocatedFunds, e.TotalPool)
		}
		pool := domain.EmergencyPool{
			TotalPool:        amount(e.TotalPool),
			AvailableFunds:   amount(e.AvailableFunds),
			AllocatedFunds:   amount(e.AllocatedFunds),
			RequestsPending:  e.RequestsPending,
			RequestsApproved: e.RequestsApproved,
			RequestsDeclined: e.RequestsDeclined,
		}
		for _, r := range e.Regions {
			pool.RegionAllocation = append(pool.RegionAllocation, domain.RegionShare{Region: r.Region, Allocation: amount(r.Allocation)})
		}
		for _, u := range e.Usage {
			pool.UsageBreakdown = append(pool.UsageBreakdown, domain.UsageShare{Category: u.Category, Percentage: amount(u.Percentage)})
		}
		c.EmergencyPool = pool
	}

	return c, nil
}

func allocations(records []AllocationRecord) []domain.Allocation {
	var out []domain.Allocation
	for _, a := range records {
		out = append(out, domain.Allocation{Name: a.Name, Value: amount(a.Value), Color: a.Color})
	}
	return out
}

func series(records []SeriesRecord) []domain.SeriesPoint {
	var out []domain.SeriesPoint
	for _, p := range records {
		out = append(out, domain.SeriesPoint{Label: p.Label, Value: amount(p.Value)})
	}
	return out
}

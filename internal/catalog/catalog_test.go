package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
)

func TestDefaultFixtures(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("expected embedded fixtures to parse, got %v", err)
	}
	if c.User.ID == "" || c.User.KYCStatus != domain.KYCVerified {
		t.Fatalf("unexpected demo user %+v", c.User)
	}
	if len(c.Projects) == 0 || len(c.InsurancePlans) == 0 || len(c.LoanTypes) == 0 {
		t.Fatalf("expected fixtures in every product section")
	}
	if c.User.ID != "user-1" || c.User.Name != "Alex Johnson" || !c.User.WalletBalance.Equal(decimal.RequireFromString("12450.75")) {
		t.Fatalf("unexpected demo user %+v", c.User)
	}
	if len(c.Projects) != 4 || len(c.Transactions) != 5 || len(c.Notifications) != 5 {
		t.Fatalf("unexpected section sizes: %d projects, %d transactions, %d notifications", len(c.Projects), len(c.Transactions), len(c.Notifications))
	}
	plan, ok := c.InsurancePlan("ins-1")
	if !ok {
		t.Fatal("expected ins-1 plan")
	}
	if plan.Name != "Basic Water Risk Coverage" || !plan.MonthlyPremium.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("unexpected basic plan %+v", plan)
	}
	loan, ok := c.LoanType("loan-3")
	if !ok || loan.MinTermMonths != 36 || loan.MaxTermMonths != 120 {
		t.Fatalf("unexpected loan-3 %+v", loan)
	}
	if p, ok := c.Project("inv-2"); !ok || p.RiskLevel != domain.RiskLow {
		t.Fatalf("unexpected inv-2 %+v", p)
	}
	if len(c.InvestmentGrowth) != 12 || len(c.WalletHistory) != 6 || len(c.RiskDistribution) != 3 {
		t.Fatalf("expected dashboard chart series, got %d/%d/%d", len(c.InvestmentGrowth), len(c.WalletHistory), len(c.RiskDistribution))
	}
	if c.InvestmentGrowth[11].Label != "Dec" || !c.InvestmentGrowth[11].Value.Equal(decimal.NewFromInt(26000)) {
		t.Fatalf("unexpected last growth point %+v", c.InvestmentGrowth[11])
	}
	pool := c.EmergencyPool
	if !pool.TotalPool.Equal(decimal.NewFromInt(2500000)) || pool.RequestsPending != 15 || len(pool.RegionAllocation) != 4 || len(pool.UsageBreakdown) != 4 {
		t.Fatalf("unexpected emergency pool %+v", pool)
	}
	if _, ok := c.Project("missing"); ok {
		t.Fatal("expected missing project lookup to fail")
	}
}

func TestParseRejectsOverdrawnPool(t *testing.T) {
	doc := []byte("emergency_pool:\n  total_pool: 100\n  available_funds: 80\n  allocated_funds: 30\n")
	if _, err := Parse(doc); !errors.Is(err, ErrInvalidFixture) {
		t.Fatalf("expected ErrInvalidFixture, got %v", err)
	}
}

func TestParseRejectsUnknownRisk(t *testing.T) {
	doc := []byte("projects:\n  - id: p1\n    name: x\n    risk_level: extreme\n")
	if _, err := Parse(doc); !errors.Is(err, ErrInvalidFixture) {
		t.Fatalf("expected ErrInvalidFixture, got %v", err)
	}
}

func TestLoadFileOverlaysSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	doc := "transactions:\n  - id: t1\n    type: deposit\n    amount: 10.5\n    date: 2024-01-02T00:00:00Z\n    description: test\n    status: completed\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(c.Transactions) != 1 || c.Transactions[0].Type != domain.TxDeposit {
		t.Fatalf("expected overlay transactions, got %+v", c.Transactions)
	}
	if len(c.Projects) == 0 {
		t.Fatal("expected embedded projects to survive the overlay")
	}
}

func project(id, name, desc string, risk domain.RiskLevel, category, roi, raised, goal string) domain.Project {
	return domain.Project{
		ID:            id,
		Name:          name,
		Description:   desc,
		RiskLevel:     risk,
		Category:      category,
		ExpectedROI:   decimal.RequireFromString(roi),
		FundingRaised: decimal.RequireFromString(raised),
		FundingGoal:   decimal.RequireFromString(goal),
	}
}

func sampleProjects() []domain.Project {
	return []domain.Project{
		project("a", "Solar Desalination", "Clean WATER for villages", domain.RiskMedium, "Desalination", "8.5", "75", "100"),
		project("b", "Rain Harvest", "Rooftop collection", domain.RiskLow, "Harvesting", "5.2", "95", "100"),
		project("c", "Smart Sensors", "Less water waste", domain.RiskHigh, "Agriculture", "14", "35", "100"),
		project("d", "Filtration", "Gravity filters", domain.RiskLow, "Filtration", "4.8", "100", "100"),
	}
}

func TestFilterProjectsSearch(t *testing.T) {
	got := FilterProjects(sampleProjects(), ProjectQuery{Search: "water"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, p := range got {
		name, desc := strings.ToLower(p.Name), strings.ToLower(p.Description)
		if !strings.Contains(name, "water") && !strings.Contains(desc, "water") {
			t.Errorf("project %s does not contain the query", p.ID)
		}
	}
}

func TestFilterProjectsRiskAndCategory(t *testing.T) {
	got := FilterProjects(sampleProjects(), ProjectQuery{Risk: "low", Category: "all"})
	if len(got) != 2 {
		t.Fatalf("expected 2 low risk projects, got %d", len(got))
	}
	for _, p := range got {
		if p.RiskLevel != domain.RiskLow {
			t.Errorf("project %s has risk %s", p.ID, p.RiskLevel)
		}
	}

	got = FilterProjects(sampleProjects(), ProjectQuery{Risk: "all", Category: "Harvesting"})
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only b, got %+v", got)
	}
}

func TestFilterProjectsCategoryIsExact(t *testing.T) {
	if got := FilterProjects(sampleProjects(), ProjectQuery{Category: "harvesting"}); len(got) != 0 {
		t.Fatalf("expected no match for a differently cased category, got %v", ids(got))
	}
	if got := FilterProjects(sampleProjects(), ProjectQuery{Category: "Harvest"}); len(got) != 0 {
		t.Fatalf("expected no match for a partial category, got %v", ids(got))
	}
}

func TestFilterProjectsSortROIDesc(t *testing.T) {
	got := FilterProjects(sampleProjects(), ProjectQuery{Sort: SortROIDesc})
	for i := 0; i+1 < len(got); i++ {
		if got[i].ExpectedROI.LessThan(got[i+1].ExpectedROI) {
			t.Fatalf("roi not descending at %d: %s < %s", i, got[i].ExpectedROI, got[i+1].ExpectedROI)
		}
	}
	if got[0].ID != "c" {
		t.Fatalf("expected highest roi first, got %s", got[0].ID)
	}
}

func TestFilterProjectsSortFunding(t *testing.T) {
	asc := FilterProjects(sampleProjects(), ProjectQuery{Sort: SortFundingAsc})
	if asc[0].ID != "c" || asc[len(asc)-1].ID != "d" {
		t.Fatalf("unexpected funding ascending order %v", ids(asc))
	}
	desc := FilterProjects(sampleProjects(), ProjectQuery{Sort: SortFundingDesc})
	if desc[0].ID != "d" || desc[len(desc)-1].ID != "c" {
		t.Fatalf("unexpected funding descending order %v", ids(desc))
	}
}

func TestFilterProjectsDoesNotMutateInput(t *testing.T) {
	in := sampleProjects()
	before := ids(in)
	FilterProjects(in, ProjectQuery{Sort: SortROIAsc})
	if strings.Join(ids(in), ",") != strings.Join(before, ",") {
		t.Fatalf("input reordered: %v", ids(in))
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := ParseSortKey("ROI-DESC"); err != nil || k != SortROIDesc {
		t.Fatalf("expected roi-desc, got %q (%v)", k, err)
	}
	if k, err := ParseSortKey("none"); err != nil || k != SortNone {
		t.Fatalf("expected none, got %q (%v)", k, err)
	}
	if _, err := ParseSortKey("name"); !errors.Is(err, ErrUnknownSort) {
		t.Fatalf("expected ErrUnknownSort, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	got := Categories(sampleProjects())
	want := []string{"Agriculture", "Desalination", "Filtration", "Harvesting"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func ids(ps []domain.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

// Package generator synthesises wallet history for the fixture catalog.
package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/finance"
)

// Generator produces a deterministic transaction and notification history
// whose descriptions reference the products of a catalog.
type Generator struct {
	cfg  Config
	cat  *catalog.Catalog
	rand *rand.Rand
}

// New returns a configured Generator. Zero config fields take the defaults.
func New(cfg Config, cat *catalog.Catalog) *Generator {
	def := DefaultConfig()
	if cfg.NumTransactions <= 0 {
		cfg.NumTransactions = def.NumTransactions
	}
	if cfg.NumNotifications < 0 {
		cfg.NumNotifications = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Start.IsZero() {
		cfg.Start = def.Start
	}
	if cfg.Span < time.Minute {
		cfg.Span = def.Span
	}

	return &Generator{
		cfg:  cfg,
		cat:  cat,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate builds the history as a fixture overlay. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (catalog.File, error) {
	txs := make([]catalog.TransactionRecord, 0, g.cfg.NumTransactions)
	for i := 0; i < g.cfg.NumTransactions; i++ {
		if err := ctx.Err(); err != nil {
			return catalog.File{}, err
		}
		txs = append(txs, g.transaction())
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
	for i := range txs {
		txs[i].ID = fmt.Sprintf("txn-g%06d", i+1)
	}

	notifications := make([]catalog.NotificationRecord, 0, g.cfg.NumNotifications)
	for i := 0; i < g.cfg.NumNotifications && len(txs) > 0; i++ {
		if err := ctx.Err(); err != nil {
			return catalog.File{}, err
		}
		tx := txs[g.rand.Intn(len(txs))]
		n := g.notificationFor(tx)
		n.ID = fmt.Sprintf("ntf-g%06d", i+1)
		notifications = append(notifications, n)
	}
	sort.SliceStable(notifications, func(i, j int) bool { return notifications[i].Date.Before(notifications[j].Date) })

	return catalog.File{Transactions: txs, Notifications: notifications}, nil
}

func (g *Generator) transaction() catalog.TransactionRecord {
	offset := time.Duration(g.rand.Int63n(int64(g.cfg.Span/time.Minute))) * time.Minute
	rec := catalog.TransactionRecord{
		Date:   g.cfg.Start.Add(offset).UTC(),
		Status: string(g.status()),
	}

	switch roll := g.rand.Float64(); {
	case roll < 0.40 && len(g.cat.Projects) > 0:
		p := g.cat.Projects[g.rand.Intn(len(g.cat.Projects))]
		rec.Type = string(domain.TxInvestment)
		rec.Amount = float64(100 * (1 + g.rand.Intn(50)))
		rec.Description = p.Name
	case roll < 0.55 && len(g.cat.InsurancePlans) > 0:
		plan := g.cat.InsurancePlans[g.rand.Intn(len(g.cat.InsurancePlans))]
		rec.Type = string(domain.TxInsurance)
		rec.Amount = plan.MonthlyPremium.InexactFloat64()
		rec.Description = plan.Name + " premium"
	case roll < 0.70 && len(g.cat.LoanTypes) > 0:
		rec.Type = string(domain.TxLoanRepayment)
		rec.Amount, rec.Description = g.loanInstalment()
	default:
		rec.Type = string(domain.TxDeposit)
		rec.Amount = cents(50 + g.rand.Float64()*2950)
		rec.Description = "Bank transfer"
	}
	return rec
}

// loanInstalment prices a random loan within the product ranges.
func (g *Generator) loanInstalment() (float64, string) {
	lt := g.cat.LoanTypes[g.rand.Intn(len(g.cat.LoanTypes))]
	minA, maxA := lt.MinAmount.InexactFloat64(), lt.MaxAmount.InexactFloat64()
	principal := decimal.NewFromFloat(cents(minA + g.rand.Float64()*(maxA-minA)))
	months := lt.MinTermMonths + g.rand.Intn(lt.MaxTermMonths-lt.MinTermMonths+1)

	quote, err := finance.LoanPayment(principal, lt.InterestRate, months)
	if err != nil {
		return 0, lt.Name + " instalment"
	}
	return quote.MonthlyPayment.InexactFloat64(), lt.Name + " instalment"
}

func (g *Generator) status() domain.TransactionStatus {
	switch roll := g.rand.Float64(); {
	case roll < 0.80:
		return domain.TxCompleted
	case roll < 0.95:
		return domain.TxPending
	default:
		return domain.TxFailed
	}
}

func (g *Generator) notificationFor(tx catalog.TransactionRecord) catalog.NotificationRecord {
	amount := finance.Format(decimal.NewFromFloat(tx.Amount), finance.DefaultCurrency)
	n := catalog.NotificationRecord{
		Date: tx.Date.Add(time.Minute),
		Read: g.rand.Intn(2) == 0,
	}
	switch domain.TransactionStatus(tx.Status) {
	case domain.TxFailed:
		n.Type = string(domain.NotifyError)
		n.Message = fmt.Sprintf("%s of %s failed. Please retry.", tx.Type, amount)
	case domain.TxPending:
		n.Type = string(domain.NotifyInfo)
		n.Message = fmt.Sprintf("%s of %s is being processed.", tx.Type, amount)
	default:
		n.Type = string(domain.NotifySuccess)
		n.Message = fmt.Sprintf("%s of %s for %s completed.", tx.Type, amount, tx.Description)
	}
	return n
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

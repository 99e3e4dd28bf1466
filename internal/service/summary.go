package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/finance"
)

const (
	recentTransactionLimit = 5
	featuredProjectLimit   = 3
)

// Summary is the dashboard page data.
type Summary struct {
	User                domain.User
	TotalInvested       decimal.Decimal
	PeopleHelped        int64
	ActiveProjects      int
	Allocations         []domain.Allocation
	RiskDistribution    []domain.Allocation
	InvestmentGrowth    []domain.SeriesPoint
	WalletHistory       []domain.SeriesPoint
	RecentTransactions  []domain.Transaction
	UnreadNotifications int
	EmergencyPool       finance.PoolStatus
}

// HomeStats is the public landing page data.
type HomeStats struct {
	FeaturedProjects []domain.Project
	ProjectCount     int
	TotalRaised      decimal.Decimal
	PeopleHelped     int64
}

// Summary aggregates the dashboard cards for user.
func (d *Dashboard) Summary(ctx context.Context, user domain.User) (Summary, error) {
	projects, err := d.projects.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list projects: %w", err)
	}
	txs, err := d.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		return Summary{}, err
	}

	invested := decimal.Zero
	for _, tx := range txs {
		if tx.Type == domain.TxInvestment && tx.Status == domain.TxCompleted {
			invested = invested.Add(tx.Amount)
		}
	}

	active := 0
	for _, p := range projects {
		if finance.FundingProgress(p.FundingRaised, p.FundingGoal).LessThan(decimal.NewFromInt(100)) {
			active++
		}
	}

	recent := txs
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	return Summary{
		User:                user,
		TotalInvested:       invested,
		PeopleHelped:        finance.PeopleHelped(invested),
		ActiveProjects:      active,
		Allocations:         append([]domain.Allocation(nil), d.catalog.Allocations...),
		RiskDistribution:    append([]domain.Allocation(nil), d.catalog.RiskDistribution...),
		InvestmentGrowth:    append([]domain.SeriesPoint(nil), d.catalog.InvestmentGrowth...),
		WalletHistory:       append([]domain.SeriesPoint(nil), d.catalog.WalletHistory...),
		RecentTransactions:  recent,
		UnreadNotifications: d.unreadCount(),
		EmergencyPool:       d.EmergencyFund(ctx).Status,
	}, nil
}

// Home returns the highest-yield projects and catalog-wide totals.
func (d *Dashboard) Home(ctx context.Context) (HomeStats, error) {
	projects, err := d.projects.List(ctx)
	if err != nil {
		return HomeStats{}, fmt.Errorf("list projects: %w", err)
	}

	raised := decimal.Zero
	for _, p := range projects {
		raised = raised.Add(p.FundingRaised)
	}

	featured := catalog.FilterProjects(projects, catalog.ProjectQuery{Sort: catalog.SortROIDesc})
	if len(featured) > featuredProjectLimit {
		featured = featured[:featuredProjectLimit]
	}

	return HomeStats{
		FeaturedProjects: featured,
		ProjectCount:     len(projects),
		TotalRaised:      raised,
		PeopleHelped:     finance.PeopleHelped(raised),
	}, nil
}

// Profile returns the account holder record.
func (d *Dashboard) Profile(_ context.Context, user domain.User) domain.User {
	if user.ID == "" {
		return d.catalog.User
	}
	return user
}

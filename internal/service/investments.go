package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/finance"
	"github.com/vanshika/aquafund/internal/recorder"
)

// ListInvestmentsParams mirrors the investments page controls.
type ListInvestmentsParams struct {
	Search   string
	Risk     string
	Category string
	Sort     string
	Page     int
	PageSize int
}

// InvestmentsPage is one page of the filtered project list.
type InvestmentsPage struct {
	Items      []domain.Project
	Pagination PaginationMeta
}

// ProjectDetails is a project with its derived funding progress.
type ProjectDetails struct {
	Project         domain.Project
	FundingProgress decimal.Decimal
}

// InvestmentReceipt confirms an accepted investment.
type InvestmentReceipt struct {
	SubmissionID string
	Project      domain.Project
	Estimate     finance.InvestmentEstimate
	Notification domain.Notification
	SubmittedAt  time.Time
}

// ListInvestments filters, sorts and paginates the projects.
func (d *Dashboard) ListInvestments(ctx context.Context, params ListInvestmentsParams) (InvestmentsPage, error) {
	sortKey, err := catalog.ParseSortKey(params.Sort)
	if err != nil {
		return InvestmentsPage{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if risk := strings.TrimSpace(params.Risk); risk != "" && !strings.EqualFold(risk, catalog.FilterAll) {
		if _, err := domain.ParseRiskLevel(risk); err != nil {
			return InvestmentsPage{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	projects, err := d.projects.List(ctx)
	if err != nil {
		return InvestmentsPage{}, fmt.Errorf("list projects: %w", err)
	}

	filtered := catalog.FilterProjects(projects, catalog.ProjectQuery{
		Search:   params.Search,
		Risk:     params.Risk,
		Category: params.Category,
		Sort:     sortKey,
	})

	page, pageSize := normalizePagination(params.Page, params.PageSize)
	total := len(filtered)
	start, end := pageBounds(page, pageSize, total)

	return InvestmentsPage{
		Items:      filtered[start:end],
		Pagination: buildPaginationMeta(page, pageSize, int64(total)),
	}, nil
}

// InvestmentCategories lists the categories offered by the category filter.
func (d *Dashboard) InvestmentCategories(ctx context.Context) ([]string, error) {
	projects, err := d.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return catalog.Categories(projects), nil
}

// GetInvestment returns the project details page data.
func (d *Dashboard) GetInvestment(ctx context.Context, id string) (ProjectDetails, error) {
	p, err := d.projects.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return ProjectDetails{}, err
	}
	return ProjectDetails{
		Project:         p,
		FundingProgress: finance.FundingProgress(p.FundingRaised, p.FundingGoal),
	}, nil
}

// EstimateInvestment previews the return and impact of investing amount.
func (d *Dashboard) EstimateInvestment(ctx context.Context, projectID string, amount decimal.Decimal) (finance.InvestmentEstimate, error) {
	if err := requirePositive("amount", amount); err != nil {
		return finance.InvestmentEstimate{}, err
	}
	p, err := d.projects.Get(ctx, projectID)
	if err != nil {
		return finance.InvestmentEstimate{}, err
	}
	return finance.InvestmentReturn(amount, p.ExpectedROI), nil
}

// Invest accepts an investment in a project after the artificial delay.
func (d *Dashboard) Invest(ctx context.Context, user domain.User, projectID string, amount decimal.Decimal) (InvestmentReceipt, error) {
	if err := requirePositive("amount", amount); err != nil {
		return InvestmentReceipt{}, err
	}
	p, err := d.projects.Get(ctx, projectID)
	if err != nil {
		return InvestmentReceipt{}, err
	}
	est := finance.InvestmentReturn(amount, p.ExpectedROI)

	detail := map[string]any{
		"expectedRoi":    p.ExpectedROI.String(),
		"expectedReturn": est.Return.String(),
		"peopleHelped":   est.PeopleHelped,
	}
	sub := recorder.Submission{
		Kind:        recorder.KindInvestment,
		UserID:      user.ID,
		ReferenceID: p.ID,
		Amount:      amount,
	}
	msg := fmt.Sprintf("Investment of %s in %s confirmed", finance.Format(amount, finance.DefaultCurrency), p.Name)
	tx := &domain.Transaction{
		Type:        domain.TxInvestment,
		Amount:      amount,
		Description: p.Name,
		Status:      domain.TxCompleted,
	}
	sub, n, err := d.submit(ctx, sub, detail, msg, tx)
	if err != nil {
		return InvestmentReceipt{}, err
	}

	return InvestmentReceipt{
		SubmissionID: sub.ID,
		Project:      p,
		Estimate:     est,
		Notification: n,
		SubmittedAt:  sub.CreatedAt,
	}, nil
}

package finance

import (
	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
)

// PoolStatus is the headline view of the emergency pool.
type PoolStatus struct {
	TotalPool        decimal.Decimal
	AvailableFunds   decimal.Decimal
	AllocatedFunds   decimal.Decimal
	AvailablePercent decimal.Decimal // available / total, two places
	AllocatedPercent decimal.Decimal
	RequestsPending  int
	RequestsApproved int
	RequestsDeclined int
	TotalRequests    int
	ApprovalRate     decimal.Decimal // approved share of decided requests
}

// EmergencyPoolStatus derives the pool percentages and request tallies.
// An empty pool reports zero percentages.
func EmergencyPoolStatus(pool domain.EmergencyPool) PoolStatus {
	st := PoolStatus{
		TotalPool:        pool.TotalPool,
		AvailableFunds:   pool.AvailableFunds,
		AllocatedFunds:   pool.AllocatedFunds,
		AvailablePercent: FundingProgress(pool.AvailableFunds, pool.TotalPool),
		AllocatedPercent: FundingProgress(pool.AllocatedFunds, pool.TotalPool),
		RequestsPending:  pool.RequestsPending,
		RequestsApproved: pool.RequestsApproved,
		RequestsDeclined: pool.RequestsDeclined,
		TotalRequests:    pool.RequestsPending + pool.RequestsApproved + pool.RequestsDeclined,
	}
	decided := pool.RequestsApproved + pool.RequestsDeclined
	if decided > 0 {
		st.ApprovalRate = FundingProgress(decimal.NewFromInt(int64(pool.RequestsApproved)), decimal.NewFromInt(int64(decided)))
	}
	return st
}

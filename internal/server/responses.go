package server

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/finance"
	"github.com/vanshika/aquafund/internal/recorder"
	"github.com/vanshika/aquafund/internal/service"
	"github.com/vanshika/aquafund/internal/session"
)

// Amounts are serialized by decimal.Decimal as quoted strings; the *Display
// fields carry the formatted currency text the pages show.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type insuranceRequest struct {
	Months    int    `json:"months"`
	Frequency string `json:"frequency"`
}

type loanRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Months int             `json:"months"`
}

type assistanceRequest struct {
	Region  string          `json:"region"`
	Amount  decimal.Decimal `json:"amount"`
	Urgency string          `json:"urgency"`
	Reason  string          `json:"reason"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type userResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	AvatarURL            string          `json:"avatarUrl,omitempty"`
	KYCStatus            string          `json:"kycStatus"`
	WalletBalance        decimal.Decimal `json:"walletBalance"`
	WalletBalanceDisplay string          `json:"walletBalanceDisplay"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type projectResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	RiskLevel       string          `json:"riskLevel"`
	ExpectedROI     decimal.Decimal `json:"expectedRoi"`
	FundingGoal     decimal.Decimal `json:"fundingGoal"`
	FundingRaised   decimal.Decimal `json:"fundingRaised"`
	FundingProgress decimal.Decimal `json:"fundingProgress"`
	Duration        string          `json:"duration"`
	Category        string          `json:"category"`
	Impact          string          `json:"impact"`
	Location        string          `json:"location,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
}

type paginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

type investmentsResponse struct {
	Items      []projectResponse  `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type estimateResponse struct {
	Amount         decimal.Decimal `json:"amount"`
	ExpectedROI    decimal.Decimal `json:"expectedRoi"`
	ExpectedReturn decimal.Decimal `json:"expectedReturn"`
	ReturnDisplay  string          `json:"expectedReturnDisplay"`
	PeopleHelped   int64           `json:"peopleHelped"`
}

type investmentReceiptResponse struct {
	SubmissionID string               `json:"submissionId"`
	Project      projectResponse      `json:"project"`
	Estimate     estimateResponse     `json:"estimate"`
	Notification notificationResponse `json:"notification"`
	SubmittedAt  string               `json:"submittedAt"`
}

type insurancePlanResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	MonthlyPremium decimal.Decimal `json:"monthlyPremium"`
	Coverage       decimal.Decimal `json:"coverage"`
	Duration       string          `json:"duration"`
	Benefits       []string        `json:"benefits"`
	RiskLevel      string          `json:"riskLevel"`
}

type insuranceQuoteResponse struct {
	MonthlyPremium decimal.Decimal `json:"monthlyPremium"`
	Months         int             `json:"months"`
	Frequency      string          `json:"frequency"`
	Base           decimal.Decimal `json:"base"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	TotalDisplay   string          `json:"totalDisplay"`
}

type subscriptionResponse struct {
	SubmissionID string                 `json:"submissionId"`
	Plan         insurancePlanResponse  `json:"plan"`
	Quote        insuranceQuoteResponse `json:"quote"`
	Notification notificationResponse   `json:"notification"`
	SubmittedAt  string                 `json:"submittedAt"`
}

type loanTypeResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	MinAmount     decimal.Decimal `json:"minAmount"`
	MaxAmount     decimal.Decimal `json:"maxAmount"`
	MinTermMonths int             `json:"minTermMonths"`
	MaxTermMonths int             `json:"maxTermMonths"`
	Requirements  []string        `json:"requirements"`
	ApprovalRate  decimal.Decimal `json:"approvalRate"`
}

type loanQuoteResponse struct {
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	TermMonths     int             `json:"termMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	MonthlyDisplay string          `json:"monthlyPaymentDisplay"`
}

type loanApplicationResponse struct {
	SubmissionID string               `json:"submissionId"`
	LoanType     loanTypeResponse     `json:"loanType"`
	Quote        loanQuoteResponse    `json:"quote"`
	ApprovalRate decimal.Decimal      `json:"approvalRate"`
	Notification notificationResponse `json:"notification"`
	SubmittedAt  string               `json:"submittedAt"`
}

type transactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}

type notificationResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Date    string `json:"date"`
	Read    bool   `json:"read"`
}

type notificationsResponse struct {
	Items  []notificationResponse `json:"items"`
	Unread int                    `json:"unread"`
}

type allocationResponse struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color,omitempty"`
}

type seriesPointResponse struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

type regionShareResponse struct {
	Region     string          `json:"region"`
	Allocation decimal.Decimal `json:"allocation"`
}

type usageShareResponse struct {
	Category   string          `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
}

type poolStatusResponse struct {
	TotalPool        decimal.Decimal `json:"totalPool"`
	AvailableFunds   decimal.Decimal `json:"availableFunds"`
	AllocatedFunds   decimal.Decimal `json:"allocatedFunds"`
	AvailablePercent decimal.Decimal `json:"availablePercent"`
	AllocatedPercent decimal.Decimal `json:"allocatedPercent"`
	TotalPoolDisplay string          `json:"totalPoolDisplay"`
	RequestsPending  int             `json:"requestsPending"`
	RequestsApproved int             `json:"requestsApproved"`
	RequestsDeclined int             `json:"requestsDeclined"`
	TotalRequests    int             `json:"totalRequests"`
	ApprovalRate     decimal.Decimal `json:"approvalRate"`
}

type emergencyFundResponse struct {
	poolStatusResponse
	RegionAllocation []regionShareResponse `json:"regionAllocation"`
	UsageBreakdown   []usageShareResponse  `json:"usageBreakdown"`
}

type assistanceReceiptResponse struct {
	SubmissionID string               `json:"submissionId"`
	Region       string               `json:"region"`
	Amount       decimal.Decimal      `json:"amount"`
	Urgency      string               `json:"urgency"`
	Reason       string               `json:"reason"`
	Pool         poolStatusResponse   `json:"pool"`
	Notification notificationResponse `json:"notification"`
	SubmittedAt  string               `json:"submittedAt"`
}

type submissionResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	ReferenceID string          `json:"referenceId"`
	Amount      decimal.Decimal `json:"amount"`
	Detail      json.RawMessage `json:"detail,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

type dashboardResponse struct {
	User                 userResponse          `json:"user"`
	TotalInvested        decimal.Decimal       `json:"totalInvested"`
	TotalInvestedDisplay string                `json:"totalInvestedDisplay"`
	PeopleHelped         int64                 `json:"peopleHelped"`
	ActiveProjects       int                   `json:"activeProjects"`
	Allocations          []allocationResponse  `json:"allocations"`
	RiskDistribution     []allocationResponse  `json:"riskDistribution"`
	InvestmentGrowth     []seriesPointResponse `json:"investmentGrowth"`
	WalletHistory        []seriesPointResponse `json:"walletHistory"`
	RecentTransactions   []transactionResponse `json:"recentTransactions"`
	UnreadNotifications  int                   `json:"unreadNotifications"`
	EmergencyPool        poolStatusResponse    `json:"emergencyPool"`
}

type homeResponse struct {
	FeaturedProjects []projectResponse `json:"featuredProjects"`
	ProjectCount     int               `json:"projectCount"`
	TotalRaised      decimal.Decimal   `json:"totalRaised"`
	PeopleHelped     int64             `json:"peopleHelped"`
}

type settingsResponse struct {
	Theme string       `json:"theme"`
	User  userResponse `json:"user"`
}

type statusResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		AvatarURL:            u.AvatarURL,
		KYCStatus:            string(u.KYCStatus),
		WalletBalance:        u.WalletBalance,
		WalletBalanceDisplay: formatUSD(u.WalletBalance),
	}
}

func toSessionResponse(s session.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		ExpiresAt: formatTime(s.ExpiresAt),
		User:      toUserResponse(s.User),
	}
}

func toProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		RiskLevel:       string(p.RiskLevel),
		ExpectedROI:     p.ExpectedROI,
		FundingGoal:     p.FundingGoal,
		FundingRaised:   p.FundingRaised,
		FundingProgress: finance.FundingProgress(p.FundingRaised, p.FundingGoal),
		Duration:        p.Duration,
		Category:        p.Category,
		Impact:          p.Impact,
		Location:        p.Location,
		ImageURL:        p.ImageURL,
	}
}

func toProjectResponses(projects []domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func toPaginationResponse(p service.PaginationMeta) paginationResponse {
	return paginationResponse{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

func toEstimateResponse(e finance.InvestmentEstimate) estimateResponse {
	return estimateResponse{
		Amount:         e.Amount,
		ExpectedROI:    e.ExpectedROI,
		ExpectedReturn: e.Return,
		ReturnDisplay:  formatUSD(e.Return),
		PeopleHelped:   e.PeopleHelped,
	}
}

func toInsurancePlanResponse(p domain.InsurancePlan) insurancePlanResponse {
	benefits := p.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	return insurancePlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		MonthlyPremium: p.MonthlyPremium,
		Coverage:       p.Coverage,
		Duration:       p.Duration,
		Benefits:       benefits,
		RiskLevel:      string(p.RiskLevel),
	}
}

func toInsuranceQuoteResponse(q finance.InsuranceQuote) insuranceQuoteResponse {
	return insuranceQuoteResponse{
		MonthlyPremium: q.MonthlyPremium,
		Months:         q.Months,
		Frequency:      string(q.Frequency),
		Base:           q.Base,
		Discount:       q.Discount,
		Total:          q.Total,
		TotalDisplay:   formatUSD(q.Total),
	}
}

func toLoanTypeResponse(l domain.LoanType) loanTypeResponse {
	reqs := l.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return loanTypeResponse{
		ID:            l.ID,
		Name:          l.Name,
		Description:   l.Description,
		InterestRate:  l.InterestRate,
		MinAmount:     l.MinAmount,
		MaxAmount:     l.MaxAmount,
		MinTermMonths: l.MinTermMonths,
		MaxTermMonths: l.MaxTermMonths,
		Requirements:  reqs,
		ApprovalRate:  l.ApprovalRate,
	}
}

func toLoanQuoteResponse(q finance.LoanQuote) loanQuoteResponse {
	return loanQuoteResponse{
		Principal:      q.Principal,
		InterestRate:   q.AnnualRate,
		TermMonths:     q.TermMonths,
		MonthlyPayment: q.MonthlyPayment,
		TotalPayment:   q.TotalPayment,
		TotalInterest:  q.TotalInterest,
		MonthlyDisplay: formatUSD(q.MonthlyPayment),
	}
}

func toTransactionResponses(txs []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionResponse{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Amount:      tx.Amount,
			Date:        formatTime(tx.Date),
			Description: tx.Description,
			Status:      string(tx.Status),
		})
	}
	return out
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:      n.ID,
		Type:    string(n.Type),
		Message: n.Message,
		Date:    formatTime(n.Date),
		Read:    n.Read,
	}
}

func toAllocationResponses(in []domain.Allocation) []allocationResponse {
	out := make([]allocationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, allocationResponse{Name: a.Name, Value: a.Value, Color: a.Color})
	}
	return out
}

func toSeriesResponses(in []domain.SeriesPoint) []seriesPointResponse {
	out := make([]seriesPointResponse, 0, len(in))
	for _, p := range in {
		out = append(out, seriesPointResponse{Label: p.Label, Value: p.Value})
	}
	return out
}

func toPoolStatusResponse(st finance.PoolStatus) poolStatusResponse {
	return poolStatusResponse{
		TotalPool:        st.TotalPool,
		AvailableFunds:   st.AvailableFunds,
		AllocatedFunds:   st.AllocatedFunds,
		AvailablePercent: st.AvailablePercent,
		AllocatedPercent: st.AllocatedPercent,
		TotalPoolDisplay: formatUSD(st.TotalPool),
		RequestsPending:  st.RequestsPending,
		RequestsApproved: st.RequestsApproved,
		RequestsDeclined: st.RequestsDeclined,
		TotalRequests:    st.TotalRequests,
		ApprovalRate:     st.ApprovalRate,
	}
}

func toEmergencyFundResponse(v service.EmergencyFundView) emergencyFundResponse {
	out := emergencyFundResponse{
		poolStatusResponse: toPoolStatusResponse(v.Status),
		RegionAllocation:   make([]regionShareResponse, 0, len(v.RegionAllocation)),
		UsageBreakdown:     make([]usageShareResponse, 0, len(v.UsageBreakdown)),
	}
	for _, r := range v.RegionAllocation {
		out.RegionAllocation = append(out.RegionAllocation, regionShareResponse{Region: r.Region, Allocation: r.Allocation})
	}
	for _, u := range v.UsageBreakdown {
		out.UsageBreakdown = append(out.UsageBreakdown, usageShareResponse{Category: u.Category, Percentage: u.Percentage})
	}
	return out
}

func toSubmissionResponses(subs []recorder.Submission) []submissionResponse {
	out := make([]submissionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, submissionResponse{
			ID:          s.ID,
			Kind:        string(s.Kind),
			ReferenceID: s.ReferenceID,
			Amount:      s.Amount,
			Detail:      s.Detail,
			CreatedAt:   formatTime(s.CreatedAt),
		})
	}
	return out
}

func formatUSD(v decimal.Decimal) string {
	return finance.Format(v, finance.DefaultCurrency)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

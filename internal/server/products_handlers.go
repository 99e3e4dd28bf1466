package server

import (
	"net/http"

	"github.com/vanshika/aquafund/internal/service"
	"github.com/vanshika/aquafund/internal/session"
)

func (h *APIHandlers) handleListInvestments(w http.ResponseWriter, r *http.Request, _ session.Session) {
	query := r.URL.Query()
	page, err := h.dashboard.ListInvestments(r.Context(), service.ListInvestmentsParams{
		Search:   query.Get("search"),
		Risk:     query.Get("risk"),
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
		Page:     parseInt(query.Get("page"), 1),
		PageSize: parseInt(query.Get("pageSize"), 0),
	})
	if err != nil {
		h.fail(w, r, "list investments", err)
		return
	}
	respondJSON(w, http.StatusOK, investmentsResponse{
		Items:      toProjectResponses(page.Items),
		Pagination: toPaginationResponse(page.Pagination),
	})
}

func (h *APIHandlers) handleInvestmentCategories(w http.ResponseWriter, r *http.Request, _ session.Session) {
	categories, err := h.dashboard.InvestmentCategories(r.Context())
	if err != nil {
		h.fail(w, r, "list categories", err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": categories})
}

func (h *APIHandlers) handleGetInvestment(w http.ResponseWriter, r *http.Request, _ session.Session) {
	details, err := h.dashboard.GetInvestment(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, "get investment", err)
		return
	}
	respondJSON(w, http.StatusOK, toProjectResponse(details.Project))
}

func (h *APIHandlers) handleEstimateInvestment(w http.ResponseWriter, r *http.Request, _ session.Session) {
	var payload amountRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	est, err := h.dashboard.EstimateInvestment(r.Context(), r.PathValue("id"), payload.Amount)
	if err != nil {
		h.fail(w, r, "estimate investment", err)
		return
	}
	respondJSON(w, http.StatusOK, toEstimateResponse(est))
}

func (h *APIHandlers) handleInvest(w http.ResponseWriter, r *http.Request, sess session.Session) {
	var payload amountRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	receipt, err := h.dashboard.Invest(r.Context(), sess.User, r.PathValue("id"), payload.Amount)
	if err != nil {
		h.fail(w, r, "invest", err)
		return
	}
	respondJSON(w, http.StatusCreated, investmentReceiptResponse{
		SubmissionID: receipt.SubmissionID,
		Project:      toProjectResponse(receipt.Project),
		Estimate:     toEstimateResponse(receipt.Estimate),
		Notification: toNotificationResponse(receipt.Notification),
		SubmittedAt:  formatTime(receipt.SubmittedAt),
	})
}

func (h *APIHandlers) handleListInsurance(w http.ResponseWriter, r *http.Request, _ session.Session) {
	plans := h.dashboard.ListInsurancePlans(r.Context())
	out := make([]insurancePlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toInsurancePlanResponse(p))
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *APIHandlers) handleQuoteInsurance(w http.ResponseWriter, r *http.Request, _ session.Session) {
	var payload insuranceRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := h.dashboard.QuoteInsurance(r.Context(), r.PathValue("id"), payload.Months, payload.Frequency)
	if err != nil {
		h.fail(w, r, "quote insurance", err)
		return
	}
	respondJSON(w, http.StatusOK, toInsuranceQuoteResponse(quote))
}

func (h *APIHandlers) handleSubscribe(w http.ResponseWriter, r *http.Request, sess session.Session) {
	var payload insuranceRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	receipt, err := h.dashboard.Subscribe(r.Context(), sess.User, r.PathValue("id"), payload.Months, payload.Frequency)
	if err != nil {
		h.fail(w, r, "subscribe", err)
		return
	}
	respondJSON(w, http.StatusCreated, subscriptionResponse{
		SubmissionID: receipt.SubmissionID,
		Plan:         toInsurancePlanResponse(receipt.Plan),
		Quote:        toInsuranceQuoteResponse(receipt.Quote),
		Notification: toNotificationResponse(receipt.Notification),
		SubmittedAt:  formatTime(receipt.SubmittedAt),
	})
}

func (h *APIHandlers) handleListLoans(w http.ResponseWriter, r *http.Request, _ session.Session) {
	loans := h.dashboard.ListLoanTypes(r.Context())
	out := make([]loanTypeResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanTypeResponse(l))
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *APIHandlers) handleQuoteLoan(w http.ResponseWriter, r *http.Request, _ session.Session) {
	var payload loanRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := h.dashboard.QuoteLoan(r.Context(), r.PathValue("id"), payload.Amount, payload.Months)
	if err != nil {
		h.fail(w, r, "quote loan", err)
		return
	}
	respondJSON(w, http.StatusOK, toLoanQuoteResponse(quote))
}

func (h *APIHandlers) handleApplyLoan(w http.ResponseWriter, r *http.Request, sess session.Session) {
	var payload loanRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.dashboard.ApplyLoan(r.Context(), sess.User, r.PathValue("id"), payload.Amount, payload.Months)
	if err != nil {
		h.fail(w, r, "apply for loan", err)
		return
	}
	respondJSON(w, http.StatusCreated, loanApplicationResponse{
		SubmissionID: app.SubmissionID,
		LoanType:     toLoanTypeResponse(app.LoanType),
		Quote:        toLoanQuoteResponse(app.Quote),
		ApprovalRate: app.ApprovalRate,
		Notification: toNotificationResponse(app.Notification),
		SubmittedAt:  formatTime(app.SubmittedAt),
	})
}

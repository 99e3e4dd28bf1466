package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/service"
	"github.com/vanshika/aquafund/internal/session"
)

// APIHandlers exposes HTTP handlers for the dashboard API.
type APIHandlers struct {
	logger    *slog.Logger
	dashboard *service.Dashboard
	sessions  *session.Manager
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, dashboard *service.Dashboard, sessions *session.Manager) *APIHandlers {
	return &APIHandlers{
		logger:    logger.With("component", "api"),
		dashboard: dashboard,
		sessions:  sessions,
	}
}

func (h *APIHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := h.sessions.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (h *APIHandlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := h.sessions.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(sess))
}

func (h *APIHandlers) handleLogout(w http.ResponseWriter, r *http.Request, sess session.Session) {
	if err := h.sessions.Logout(r.Context(), sess.ID); err != nil {
		h.fail(w, r, "logout", err)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *APIHandlers) handleSession(w http.ResponseWriter, _ *http.Request, sess session.Session) {
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (h *APIHandlers) handleHome(w http.ResponseWriter, r *http.Request) {
	home, err := h.dashboard.Home(r.Context())
	if err != nil {
		h.fail(w, r, "home", err)
		return
	}
	respondJSON(w, http.StatusOK, homeResponse{
		FeaturedProjects: toProjectResponses(home.FeaturedProjects),
		ProjectCount:     home.ProjectCount,
		TotalRaised:      home.TotalRaised,
		PeopleHelped:     home.PeopleHelped,
	})
}

func (h *APIHandlers) handleDashboard(w http.ResponseWriter, r *http.Request, sess session.Session) {
	sum, err := h.dashboard.Summary(r.Context(), sess.User)
	if err != nil {
		h.fail(w, r, "dashboard summary", err)
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		User:                 toUserResponse(sum.User),
		TotalInvested:        sum.TotalInvested,
		TotalInvestedDisplay: formatUSD(sum.TotalInvested),
		PeopleHelped:         sum.PeopleHelped,
		ActiveProjects:       sum.ActiveProjects,
		Allocations:          toAllocationResponses(sum.Allocations),
		RiskDistribution:     toAllocationResponses(sum.RiskDistribution),
		InvestmentGrowth:     toSeriesResponses(sum.InvestmentGrowth),
		WalletHistory:        toSeriesResponses(sum.WalletHistory),
		RecentTransactions:   toTransactionResponses(sum.RecentTransactions),
		UnreadNotifications:  sum.UnreadNotifications,
		EmergencyPool:        toPoolStatusResponse(sum.EmergencyPool),
	})
}

func (h *APIHandlers) handleProfile(w http.ResponseWriter, r *http.Request, sess session.Session) {
	respondJSON(w, http.StatusOK, toUserResponse(h.dashboard.Profile(r.Context(), sess.User)))
}

func (h *APIHandlers) handleSettings(w http.ResponseWriter, r *http.Request, sess session.Session) {
	theme, err := h.sessions.Theme(r.Context(), sess.ID)
	if err != nil {
		h.fail(w, r, "load theme", err)
		return
	}
	respondJSON(w, http.StatusOK, settingsResponse{Theme: string(theme), User: toUserResponse(sess.User)})
}

func (h *APIHandlers) handleSetTheme(w http.ResponseWriter, r *http.Request, sess session.Session) {
	var payload themeRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	theme, err := domain.ParseTheme(payload.Theme)
	if err != nil {
		writeError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}
	if err := h.sessions.SetTheme(r.Context(), sess.ID, theme); err != nil {
		h.fail(w, r, "store theme", err)
		return
	}
	respondJSON(w, http.StatusOK, settingsResponse{Theme: string(theme), User: toUserResponse(sess.User)})
}

func (h *APIHandlers) handleNotifications(w http.ResponseWriter, r *http.Request, _ session.Session) {
	items, unread := h.dashboard.Notifications(r.Context())
	out := notificationsResponse{Items: make([]notificationResponse, 0, len(items)), Unread: unread}
	for _, n := range items {
		out.Items = append(out.Items, toNotificationResponse(n))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *APIHandlers) handleReadNotification(w http.ResponseWriter, r *http.Request, _ session.Session) {
	n, err := h.dashboard.MarkNotificationRead(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, "mark notification read", err)
		return
	}
	respondJSON(w, http.StatusOK, toNotificationResponse(n))
}

func (h *APIHandlers) handleReadAllNotifications(w http.ResponseWriter, r *http.Request, _ session.Session) {
	changed := h.dashboard.MarkAllNotificationsRead(r.Context())
	respondJSON(w, http.StatusOK, statusResponse{Status: "ok", Count: changed})
}

func (h *APIHandlers) handleTransactions(w http.ResponseWriter, r *http.Request, _ session.Session) {
	query := r.URL.Query()
	txs, err := h.dashboard.ListTransactions(r.Context(), service.TransactionFilter{
		Type:   query.Get("type"),
		Status: query.Get("status"),
	})
	if err != nil {
		h.fail(w, r, "list transactions", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": toTransactionResponses(txs)})
}

func (h *APIHandlers) handleSubmissions(w http.ResponseWriter, r *http.Request, sess session.Session) {
	limit := parseInt(r.URL.Query().Get("limit"), 0)
	subs, err := h.dashboard.Submissions(r.Context(), sess.User, limit)
	if err != nil {
		h.fail(w, r, "list submissions", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": toSubmissionResponses(subs)})
}

func (h *APIHandlers) handleEmergencyFund(w http.ResponseWriter, r *http.Request, _ session.Session) {
	respondJSON(w, http.StatusOK, toEmergencyFundResponse(h.dashboard.EmergencyFund(r.Context())))
}

func (h *APIHandlers) handleRequestAssistance(w http.ResponseWriter, r *http.Request, sess session.Session) {
	var payload assistanceRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	receipt, err := h.dashboard.RequestAssistance(r.Context(), sess.User, service.AssistanceInput{
		Region:  payload.Region,
		Amount:  payload.Amount,
		Urgency: payload.Urgency,
		Reason:  payload.Reason,
	})
	if err != nil {
		h.fail(w, r, "emergency assistance request", err)
		return
	}
	req := receipt.Request
	respondJSON(w, http.StatusCreated, assistanceReceiptResponse{
		SubmissionID: req.ID,
		Region:       string(req.Region),
		Amount:       req.Amount,
		Urgency:      string(req.Urgency),
		Reason:       req.Reason,
		Pool:         toPoolStatusResponse(receipt.Status),
		Notification: toNotificationResponse(receipt.Notification),
		SubmittedAt:  formatTime(req.SubmittedAt),
	})
}

// fail maps service and session errors onto HTTP statuses. Unexpected errors
// are logged and reported generically.
func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, session.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("request abandoned", "op", op, "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.logger.Error("request failed", "op", op, "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	return nil
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

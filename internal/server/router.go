package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/aquafund/internal/metrics"
	"github.com/vanshika/aquafund/internal/session"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *APIHandlers
	Sessions         *session.Manager
	Metrics          *metrics.Metrics
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter wires the HTTP routes exposed by the dashboard API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}

		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error("health probe failed", "error", err)
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}

		respondJSON(w, status, payload)
	})

	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
	}

	if deps.API != nil {
		api := deps.API
		authed := func(method string, fn sessionHandler) http.HandlerFunc {
			return only(method, requireSession(deps.Sessions, fn))
		}

		mux.HandleFunc("/api/home", only(http.MethodGet, api.handleHome))
		mux.HandleFunc("/api/auth/login", only(http.MethodPost, api.handleLogin))
		mux.HandleFunc("/api/auth/register", only(http.MethodPost, api.handleRegister))
		mux.HandleFunc("/api/auth/logout", authed(http.MethodPost, api.handleLogout))
		mux.HandleFunc("/api/auth/session", authed(http.MethodGet, api.handleSession))

		mux.HandleFunc("/api/dashboard", authed(http.MethodGet, api.handleDashboard))
		mux.HandleFunc("/api/profile", authed(http.MethodGet, api.handleProfile))

		mux.HandleFunc("/api/investments", authed(http.MethodGet, api.handleListInvestments))
		mux.HandleFunc("/api/investments/categories", authed(http.MethodGet, api.handleInvestmentCategories))
		mux.HandleFunc("/api/investments/{id}", authed(http.MethodGet, api.handleGetInvestment))
		mux.HandleFunc("/api/investments/{id}/estimate", authed(http.MethodPost, api.handleEstimateInvestment))
		mux.HandleFunc("/api/investments/{id}/invest", authed(http.MethodPost, api.handleInvest))

		mux.HandleFunc("/api/insurance", authed(http.MethodGet, api.handleListInsurance))
		mux.HandleFunc("/api/insurance/{id}/quote", authed(http.MethodPost, api.handleQuoteInsurance))
		mux.HandleFunc("/api/insurance/{id}/subscribe", authed(http.MethodPost, api.handleSubscribe))

		mux.HandleFunc("/api/loans", authed(http.MethodGet, api.handleListLoans))
		mux.HandleFunc("/api/loans/{id}/quote", authed(http.MethodPost, api.handleQuoteLoan))
		mux.HandleFunc("/api/loans/{id}/apply", authed(http.MethodPost, api.handleApplyLoan))

		mux.HandleFunc("/api/emergency-fund", authed(http.MethodGet, api.handleEmergencyFund))
		mux.HandleFunc("/api/emergency-fund/requests", authed(http.MethodPost, api.handleRequestAssistance))

		mux.HandleFunc("/api/settings", authed(http.MethodGet, api.handleSettings))
		mux.HandleFunc("/api/settings/theme", authed(http.MethodPut, api.handleSetTheme))

		mux.HandleFunc("/api/notifications", authed(http.MethodGet, api.handleNotifications))
		mux.HandleFunc("/api/notifications/read-all", authed(http.MethodPost, api.handleReadAllNotifications))
		mux.HandleFunc("/api/notifications/{id}/read", authed(http.MethodPost, api.handleReadNotification))
		mux.HandleFunc("/api/transactions", authed(http.MethodGet, api.handleTransactions))
		mux.HandleFunc("/api/submissions", authed(http.MethodGet, api.handleSubmissions))
	}

	handler := http.Handler(loggingMiddleware(logger, deps.Metrics, mux))
	handler = requestIDMiddleware(handler)
	if len(deps.AllowedOrigins) > 0 {
		handler = corsMiddleware(deps.AllowedOrigins, deps.AllowCredentials)(handler)
	}
	return handler
}

// only rejects requests whose method differs from method.
func only(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w, method)
			return
		}
		next(w, r)
	}
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess session.Session)

// requireSession resolves the bearer token before calling next.
func requireSession(sessions *session.Manager, next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := session.ExtractBearer(r.Header.Get("Authorization"))
		if token == "" || sessions == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		sess, err := sessions.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "session expired or invalid")
			return
		}
		next(w, r, sess)
	}
}

type ctxKey int

const requestIDKey ctxKey = iota

const requestIDHeader = "X-Request-ID"

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestID returns the request id stored by the router, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func loggingMiddleware(logger *slog.Logger, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(r.Method, route, rec.status, elapsed)
		logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", RequestID(r.Context()),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func corsMiddleware(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	normalized := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		normalized[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || (!containsOrigin(normalized, origin) && !containsOrigin(normalized, "*")) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Expose-Headers", requestIDHeader)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func containsOrigin(set map[string]struct{}, origin string) bool {
	_, ok := set[origin]
	return ok
}

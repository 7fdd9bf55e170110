// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/swiri/internal/domain/model"
	"github.com/okian/swiri/internal/domain/session"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider
	ModelStatusProvider

	NewSession(ctx context.Context) (*session.State, error)
	Session(ctx context.Context, id string) (*session.State, error)
	SelectScenario(ctx context.Context, id string, sc model.Scenario) (*session.State, error)
	Classify(ctx context.Context, id string) (*session.State, error)
	Capture(ctx context.Context, id string) (*session.State, error)
	Confirm(ctx context.Context, id string, c session.Confirmation) (*session.State, error)
	ClearLogs(ctx context.Context, id string) (*session.State, error)
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithChartTail sets how many of the latest samples are returned for charts.
func WithChartTail(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.sessionsHandler.chartTail = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	sessionsHandler *SessionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps, deps),
		sessionsHandler: NewSessionsHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/model", MetricsMiddleware(s.statsHandler.HandleModel, "model"))

	h := s.sessionsHandler
	mux.HandleFunc("POST /api/sessions", MetricsMiddleware(h.HandleCreate, "session_create"))
	mux.HandleFunc("GET /api/sessions/{id}", MetricsMiddleware(h.HandleGet, "session_get"))
	mux.HandleFunc("POST /api/sessions/{id}/scenario", MetricsMiddleware(h.HandleScenario, "scenario"))
	mux.HandleFunc("POST /api/sessions/{id}/classify", MetricsMiddleware(h.HandleClassify, "classify"))
	mux.HandleFunc("POST /api/sessions/{id}/capture", MetricsMiddleware(h.HandleCapture, "capture"))
	mux.HandleFunc("POST /api/sessions/{id}/confirmation", MetricsMiddleware(h.HandleConfirmation, "confirmation"))
	mux.HandleFunc("GET /api/sessions/{id}/logs", MetricsMiddleware(h.HandleLogs, "logs"))
	mux.HandleFunc("DELETE /api/sessions/{id}/logs", MetricsMiddleware(h.HandleClearLogs, "logs_clear"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps err to its status and code before writing it.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

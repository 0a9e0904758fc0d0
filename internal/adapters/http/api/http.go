// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/internal/domain/validation"
	"github.com/okian/roster/pkg/logger"
	"golang.org/x/time/rate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlayerDependencies
	LeagueDependencies
}

// PlayerView mirrors the read shape of a single player.
type PlayerView = types.PlayerView

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	leaguesHandler *LeaguesHandler

	limiter *rate.Limiter
	logger  logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRateLimit puts a token bucket of rps and burst in front of mutating
// routes. A non-positive rps leaves them unlimited.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithLogger sets the logger handlers report through.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.playersHandler = NewPlayersHandler(deps, s.logger)
	s.leaguesHandler = NewLeaguesHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	read := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
	}
	write := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return RequestIDMiddleware(MetricsMiddleware(RateLimitMiddleware(h, endpoint, s.limiter), endpoint))
	}

	mux.HandleFunc("GET /healthz", read(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", read(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /leagues", read(s.leaguesHandler.HandleListLeagues, "leagues"))

	mux.HandleFunc("GET /players", read(s.playersHandler.HandleList, "players"))
	mux.HandleFunc("POST /players", write(s.playersHandler.HandleCreate, "players"))
	mux.HandleFunc("GET /players/{id}", read(s.playersHandler.HandleGet, "player"))
	mux.HandleFunc("PUT /players/{id}", write(s.playersHandler.HandleReplace, "player"))
	mux.HandleFunc("PATCH /players/{id}", write(s.playersHandler.HandlePatch, "player"))
	mux.HandleFunc("DELETE /players/{id}", write(s.playersHandler.HandleDelete, "player"))
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
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

// writeServiceError maps errors returned by the service to a status code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    "validation_failed",
			Message: validation.ErrInvalid.Error(),
			Fields:  fields,
		})
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", wrapKind(op, ErrNotFound, err))
	case errors.Is(err, model.ErrUnknownValue):
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
	}
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

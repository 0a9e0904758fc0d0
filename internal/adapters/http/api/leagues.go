package api

import "net/http"

// LeagueDependencies exposes the league options of the edit form.
type LeagueDependencies interface {
	Leagues() []string
}

// LeaguesHandler handles league catalog requests.
type LeaguesHandler struct {
	deps LeagueDependencies
}

// NewLeaguesHandler creates a new leagues handler.
func NewLeaguesHandler(deps LeagueDependencies) *LeaguesHandler {
	return &LeaguesHandler{deps: deps}
}

// HandleListLeagues handles GET /leagues requests.
func (h *LeaguesHandler) HandleListLeagues(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Leagues())
}

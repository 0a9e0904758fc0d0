// Package types contains the read shapes the API and CLI share
package types

import (
	"time"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/query"
)

// ListRequest describes one list-view query.
type ListRequest struct {
	Search   string
	Criteria query.Criteria
	Page     int
	PageSize int
}

// PlayerView is a player as the list and edit views show it, with the
// derived age.
type PlayerView struct {
	model.Player
	Age int `json:"age"`
}

// NewPlayerView derives the age of p as of now.
func NewPlayerView(p model.Player, now time.Time) PlayerView {
	return PlayerView{Player: p, Age: model.Age(p.DateOfBirth, now)}
}

// Page is one page of a filtered player listing.
type Page struct {
	Items     []PlayerView `json:"items"`
	Page      int          `json:"page"`
	PageSize  int          `json:"page_size"`
	PageCount int          `json:"page_count"`
	Total     int          `json:"total"`
	HasPrev   bool         `json:"has_prev"`
	HasNext   bool         `json:"has_next"`
}

// Stats summarizes the service state.
type Stats struct {
	Players       int       `json:"players"`
	MaxID         int       `json:"max_id"`
	PageSize      int       `json:"page_size"`
	MaxPageSize   int       `json:"max_page_size"`
	Running       bool      `json:"running"`
	StartedAt     time.Time `json:"started_at,omitzero"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

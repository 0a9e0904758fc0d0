// Package model contains the player record and the shapes used to create
// and modify it.
package model

import (
	"strings"
	"time"
)

// Player is a stored roster record. ID is assigned by the store.
type Player struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	DateOfBirth Date     `json:"dateOfBirth"`
	Leagues     []string `json:"leagues"`
	Status      Status   `json:"status"`
	Height      float64  `json:"height"`
	Position    Position `json:"position"`
}

// Clone returns a deep copy so callers never share the leagues slice with the store.
func (p Player) Clone() Player {
	if p.Leagues != nil {
		p.Leagues = append([]string(nil), p.Leagues...)
	}
	return p
}

// Patch holds optional field overwrites for an update. Nil fields are kept.
type Patch struct {
	Name        *string   `json:"name,omitempty"`
	DateOfBirth *Date     `json:"dateOfBirth,omitempty"`
	Leagues     *[]string `json:"leagues,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Height      *float64  `json:"height,omitempty"`
	Position    *Position `json:"position,omitempty"`
}

// Apply merges the patch over p and returns the result. p.ID is never touched.
func (pt Patch) Apply(p Player) Player {
	out := p.Clone()
	if pt.Name != nil {
		out.Name = *pt.Name
	}
	if pt.DateOfBirth != nil {
		out.DateOfBirth = *pt.DateOfBirth
	}
	if pt.Leagues != nil {
		out.Leagues = NormalizeLeagues(*pt.Leagues)
	}
	if pt.Status != nil {
		out.Status = *pt.Status
	}
	if pt.Height != nil {
		out.Height = *pt.Height
	}
	if pt.Position != nil {
		out.Position = *pt.Position
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (pt Patch) IsEmpty() bool {
	return pt.Name == nil && pt.DateOfBirth == nil && pt.Leagues == nil &&
		pt.Status == nil && pt.Height == nil && pt.Position == nil
}

// FullPatch builds a patch that overwrites every field of the target with p.
func FullPatch(p Player) Patch {
	leagues := NormalizeLeagues(p.Leagues)
	return Patch{
		Name:        &p.Name,
		DateOfBirth: &p.DateOfBirth,
		Leagues:     &leagues,
		Status:      &p.Status,
		Height:      &p.Height,
		Position:    &p.Position,
	}
}

// KnownLeagues lists the leagues offered by the edit form.
var KnownLeagues = []string{"La Liga", "League 1", "League 2", "League 3"}

// NormalizeLeagues trims labels, drops blanks and collapses duplicates
// while keeping first-selection order.
func NormalizeLeagues(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// ToggleLeague adds league when absent and removes it when present,
// the way a multi-select checkbox behaves.
func ToggleLeague(leagues []string, league string) []string {
	out := make([]string, 0, len(leagues)+1)
	removed := false
	for _, l := range leagues {
		if l == league {
			removed = true
			continue
		}
		out = append(out, l)
	}
	if !removed {
		out = append(out, league)
	}
	return out
}

// Age returns the whole years elapsed between dob and now.
func Age(dob Date, now time.Time) int {
	if dob.IsZero() {
		return 0
	}
	b := dob.Time()
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}

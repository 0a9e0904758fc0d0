package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the player's availability.
type Status string

// Status values.
const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusInjured  Status = "Injured"
	StatusRetired  Status = "Retired"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusInjured, StatusRetired}

// ParseStatus resolves s case-insensitively.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if strings.ToLower(string(st)) == key {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: status %q", ErrUnknownValue, s)
}

// UnmarshalJSON accepts any casing of a known status.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Position is the player's field position.
type Position string

// Position values.
const (
	PositionForward    Position = "Forward"
	PositionMidfielder Position = "Midfielder"
	PositionDefender   Position = "Defender"
	PositionGoalkeeper Position = "Goalkeeper"
)

// Positions lists every valid position in display order.
var Positions = []Position{PositionForward, PositionMidfielder, PositionDefender, PositionGoalkeeper}

// ParsePosition resolves s case-insensitively, ignoring hyphens and spaces
// so "Mid-fielder" and "mid fielder" both resolve to Midfielder.
func ParsePosition(s string) (Position, error) {
	key := positionKey(s)
	for _, p := range Positions {
		if positionKey(string(p)) == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: position %q", ErrUnknownValue, s)
}

func positionKey(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// UnmarshalJSON accepts any spelling ParsePosition accepts.
func (p *Position) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	pos, err := ParsePosition(raw)
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

func joinValues[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// StatusList renders the valid statuses for messages.
func StatusList() string { return joinValues(Statuses) }

// PositionList renders the valid positions for messages.
func PositionList() string { return joinValues(Positions) }

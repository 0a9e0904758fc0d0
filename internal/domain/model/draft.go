package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Draft is the create/edit form payload: raw user input that has not been
// validated yet.
type Draft struct {
	Name        string     `json:"name"`
	DateOfBirth string     `json:"dateOfBirth"`
	Leagues     []string   `json:"leagues"`
	Status      string     `json:"status"`
	Height      NumberText `json:"height"`
	Position    string     `json:"position"`
}

// NumberText keeps numeric form input as typed. It decodes from either a
// JSON string or a JSON number so malformed values reach validation intact.
type NumberText string

// UnmarshalJSON accepts "1.80" and 1.80 alike.
func (n *NumberText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumberText(num.String())
	return nil
}

// DraftFrom renders a stored player back into form input, as the edit view
// prefills it.
func DraftFrom(p Player) Draft {
	return Draft{
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth.String(),
		Leagues:     append([]string(nil), p.Leagues...),
		Status:      string(p.Status),
		Height:      NumberText(strconv.FormatFloat(p.Height, 'f', -1, 64)),
		Position:    string(p.Position),
	}
}

// Player converts a draft into a record without an id. Callers validate first;
// the first conversion failure is returned otherwise.
func (d Draft) Player() (Player, error) {
	dob, err := ParseDate(d.DateOfBirth)
	if err != nil {
		return Player{}, err
	}
	status, err := ParseStatus(d.Status)
	if err != nil {
		return Player{}, err
	}
	pos, err := ParsePosition(d.Position)
	if err != nil {
		return Player{}, err
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(string(d.Height)), 64)
	if err != nil || height < 0 {
		return Player{}, fmt.Errorf("%w: height %q", ErrUnknownValue, d.Height)
	}
	return Player{
		Name:        strings.TrimSpace(d.Name),
		DateOfBirth: dob,
		Leagues:     NormalizeLeagues(d.Leagues),
		Status:      status,
		Height:      height,
		Position:    pos,
	}, nil
}

// DraftPatch is a partial form submission. Nil fields keep the current value.
type DraftPatch struct {
	Name        *string     `json:"name,omitempty"`
	DateOfBirth *string     `json:"dateOfBirth,omitempty"`
	Leagues     *[]string   `json:"leagues,omitempty"`
	Status      *string     `json:"status,omitempty"`
	Height      *NumberText `json:"height,omitempty"`
	Position    *string     `json:"position,omitempty"`
}

// Apply overlays the present fields of dp onto d.
func (dp DraftPatch) Apply(d Draft) Draft {
	if dp.Name != nil {
		d.Name = *dp.Name
	}
	if dp.DateOfBirth != nil {
		d.DateOfBirth = *dp.DateOfBirth
	}
	if dp.Leagues != nil {
		d.Leagues = append([]string(nil), (*dp.Leagues)...)
	}
	if dp.Status != nil {
		d.Status = *dp.Status
	}
	if dp.Height != nil {
		d.Height = *dp.Height
	}
	if dp.Position != nil {
		d.Position = *dp.Position
	}
	return d
}

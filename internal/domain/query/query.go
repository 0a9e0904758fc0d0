// Package query implements the roster list search and column filter.
//
// Both gates work on text: every field has one defined text rendering, and
// matching is case-insensitive on the lowercased forms.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/roster/internal/domain/model"
)

// Column names a filterable player field.
type Column string

// Filterable columns.
const (
	ColumnID          Column = "id"
	ColumnName        Column = "name"
	ColumnDateOfBirth Column = "dateOfBirth"
	ColumnLeagues     Column = "leagues"
	ColumnStatus      Column = "status"
	ColumnHeight      Column = "height"
	ColumnPosition    Column = "position"
)

// Operator selects how the column gate compares text.
type Operator string

// Column gate operators.
const (
	OpContains   Operator = "contains"
	OpEquals     Operator = "equals"
	OpStartsWith Operator = "startsWith"
)

// Criteria is the column filter of a list query.
type Criteria struct {
	Column   Column   `json:"column"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// DefaultCriteria is the filter the list view starts with; it matches everything.
func DefaultCriteria() Criteria {
	return Criteria{Column: ColumnID, Operator: OpContains, Value: ""}
}

type field struct {
	column Column
	text   func(model.Player) string
}

// fields is both the column accessor table and the ordered list of
// searchable fields.
var fields = []field{
	{ColumnID, func(p model.Player) string { return strconv.Itoa(p.ID) }},
	{ColumnName, func(p model.Player) string { return p.Name }},
	{ColumnDateOfBirth, func(p model.Player) string { return p.DateOfBirth.String() }},
	{ColumnLeagues, func(p model.Player) string { return strings.Join(p.Leagues, ",") }},
	{ColumnStatus, func(p model.Player) string { return string(p.Status) }},
	{ColumnHeight, FormatHeight},
	{ColumnPosition, func(p model.Player) string { return string(p.Position) }},
}

var accessors = func() map[Column]func(model.Player) string {
	m := make(map[Column]func(model.Player) string, len(fields))
	for _, f := range fields {
		m[f.column] = f.text
	}
	return m
}()

// FormatHeight renders a height the way the table shows it, e.g. "1.87 m".
func FormatHeight(p model.Player) string {
	return strconv.FormatFloat(p.Height, 'f', 2, 64) + " m"
}

// Columns returns the filterable columns in display order.
func Columns() []Column {
	out := make([]Column, len(fields))
	for i, f := range fields {
		out[i] = f.column
	}
	return out
}

// ParseColumn resolves a column name case-insensitively.
func ParseColumn(s string) (Column, error) {
	for _, f := range fields {
		if strings.EqualFold(string(f.column), strings.TrimSpace(s)) {
			return f.column, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
}

// ParseOperator resolves an operator name case-insensitively.
func ParseOperator(s string) (Operator, error) {
	for _, op := range []Operator{OpContains, OpEquals, OpStartsWith} {
		if strings.EqualFold(string(op), strings.TrimSpace(s)) {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Text returns the rendering of column c for p, and false for unknown columns.
func Text(p model.Player, c Column) (string, bool) {
	get, ok := accessors[c]
	if !ok {
		return "", false
	}
	return get(p), true
}

// Filter returns the players passing both the search and the column gate,
// in input order. The input slice is not modified.
func Filter(players []model.Player, search string, c Criteria) []model.Player {
	term := strings.ToLower(search)
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if !matchesCriteria(p, c) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p model.Player, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.text(p)), term) {
			return true
		}
	}
	return false
}

func matchesCriteria(p model.Player, c Criteria) bool {
	text, ok := Text(p, c.Column)
	if !ok {
		return false
	}
	if c.Value == "" {
		return true
	}
	text = strings.ToLower(text)
	value := strings.ToLower(c.Value)
	switch c.Operator {
	case OpContains:
		return strings.Contains(text, value)
	case OpEquals:
		return text == value
	case OpStartsWith:
		return strings.HasPrefix(text, value)
	default:
		return true
	}
}

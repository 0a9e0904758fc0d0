// Package validation checks create/edit form input before it reaches the store.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/pkg/metrics"
)

// Form field keys, matching the JSON names of model.Draft.
const (
	FieldName        = "name"
	FieldDateOfBirth = "dateOfBirth"
	FieldLeagues     = "leagues"
	FieldStatus      = "status"
	FieldHeight      = "height"
	FieldPosition    = "position"
)

// Messages shown next to the offending form field.
const (
	MsgNameRequired     = "Name is required"
	MsgDOBRequired      = "Date of birth is required"
	MsgDOBInvalid       = "Date of birth must be a valid date (YYYY-MM-DD)"
	MsgLeaguesRequired  = "Leagues played is required"
	MsgStatusRequired   = "Status is required"
	MsgHeightRequired   = "Height is required"
	MsgHeightInvalid    = "Please enter a valid number"
	MsgPositionRequired = "Position is required"
)

// MsgStatusInvalid is reported for a status outside model.Statuses.
var MsgStatusInvalid = "Status must be one of " + model.StatusList()

// MsgPositionInvalid is reported for a position outside model.Positions.
var MsgPositionInvalid = "Position must be one of " + model.PositionList()

var numberPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// Errors maps a form field to its message. A nil or empty map means the
// draft may be submitted.
type Errors map[string]string

// Empty reports whether no field failed.
func (e Errors) Empty() bool { return len(e) == 0 }

// Fields returns the failing field keys in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Error implements error so a failed validation can travel as one.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvalid.
func (e Errors) Unwrap() error { return ErrInvalid }

// Validate evaluates every rule against d and returns all failures at once.
func Validate(d model.Draft) Errors {
	errs := Errors{}

	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	switch dob := strings.TrimSpace(d.DateOfBirth); {
	case dob == "":
		errs[FieldDateOfBirth] = MsgDOBRequired
	default:
		if _, err := model.ParseDate(dob); err != nil {
			errs[FieldDateOfBirth] = MsgDOBInvalid
		}
	}

	if len(model.NormalizeLeagues(d.Leagues)) == 0 {
		errs[FieldLeagues] = MsgLeaguesRequired
	}

	switch status := strings.TrimSpace(d.Status); {
	case status == "":
		errs[FieldStatus] = MsgStatusRequired
	default:
		if _, err := model.ParseStatus(status); err != nil {
			errs[FieldStatus] = MsgStatusInvalid
		}
	}

	switch height := strings.TrimSpace(string(d.Height)); {
	case height == "":
		errs[FieldHeight] = MsgHeightRequired
	case !validNumber(height):
		errs[FieldHeight] = MsgHeightInvalid
	}

	switch pos := strings.TrimSpace(d.Position); {
	case pos == "":
		errs[FieldPosition] = MsgPositionRequired
	default:
		if _, err := model.ParsePosition(pos); err != nil {
			errs[FieldPosition] = MsgPositionInvalid
		}
	}

	for _, f := range errs.Fields() {
		metrics.RecordValidationFailure(f)
	}
	return errs
}

// validNumber accepts digits with at most one decimal point, e.g. "1.8",
// "2", ".5" or "1.". A lone "." has no digit and is rejected.
func validNumber(s string) bool {
	return numberPattern.MatchString(s) && strings.ContainsFunc(s, isDigit)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Check validates d and converts it into a record without an id. A failed
// validation is returned as Errors.
func Check(d model.Draft) (model.Player, error) {
	if errs := Validate(d); !errs.Empty() {
		return model.Player{}, errs
	}
	return d.Player()
}

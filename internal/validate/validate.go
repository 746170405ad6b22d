// Package validate provides pure domain validators for student data.
//
// Validators return a pass/fail result plus a human-readable reason so
// callers can surface the reason directly (per-row import errors, entry
// forms). They perform no I/O and hold no state beyond the injected rules.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Rules carries the domain constants validators check against.
// Values come from configuration; the zero value is not usable.
type Rules struct {
	MatriculeLength int
	MinScore        float64
	MaxScore        float64
}

// Matricule checks a student identifier: non-empty after trimming,
// exactly MatriculeLength characters, decimal digits only.
func (r Rules) Matricule(value string) (bool, string) {
	value = strings.TrimSpace(value)

	if value == "" {
		return false, "matricule cannot be empty"
	}
	if len(value) != r.MatriculeLength {
		return false, fmt.Sprintf("matricule must be %d characters", r.MatriculeLength)
	}
	for _, c := range value {
		if !unicode.IsDigit(c) {
			return false, "matricule must contain only numbers"
		}
	}
	return true, ""
}

// Score checks a mark value. An empty value is valid (no mark recorded).
// Otherwise the value must parse as a real number within [MinScore, MaxScore].
func (r Rules) Score(value string) (bool, string) {
	value = strings.TrimSpace(value)

	if value == "" {
		return true, ""
	}

	score, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false, "score must be a number"
	}
	if score < r.MinScore || score > r.MaxScore {
		return false, fmt.Sprintf("score must be between %g and %g", r.MinScore, r.MaxScore)
	}
	return true, ""
}

// Package validation provides structural validation and best-effort repair
// for flow nodes, plus document-level validation at the persistence boundary.
//
// Node validation never returns Go errors for malformed data: findings are
// collected into a Result and the caller decides whether to block a save.
package validation

import "fmt"

// Result aggregates validation findings. Errors make the subject invalid;
// warnings are advisory (safe fallbacks exist).
type Result struct {
	Valid    bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewResult returns a valid, empty result.
func NewResult() *Result {
	return &Result{Valid: true, Errors: []string{}, Warnings: []string{}}
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds another result into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Valid = r.Valid && other.Valid
}

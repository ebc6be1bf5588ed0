package core

import (
	"errors"
	"fmt"
)

// ErrCollaboratorUnavailable marks failures of the persistence collaborator
// (reference snapshot fetch, upsert, delete). These abort the pipeline run
// immediately and are never mixed into an ErrorReport.
var ErrCollaboratorUnavailable = errors.New("persistence collaborator unavailable")

// NoRow marks a ValidationError that is not addressed to a single row,
// e.g. a required column missing from the batch entirely.
const NoRow = -1

// ValidationError represents a single rule violation for one row and field.
type ValidationError struct {
	Row     int    // 0-based row index within the batch, or NoRow
	Field   string // Column name
	Value   any    // The offending value, if any
	Message string // Human-readable description
}

func (e ValidationError) Error() string {
	if e.Row == NoRow {
		return e.Message
	}
	return fmt.Sprintf("row %d: %s", e.Row+1, e.Message)
}

// ErrorReport accumulates every violation found during one pipeline run.
// It is append-only while the pipeline executes and read-only afterwards.
type ErrorReport struct {
	errs []ValidationError
}

// Add appends a violation to the report.
func (r *ErrorReport) Add(err ValidationError) {
	r.errs = append(r.errs, err)
}

// Addf appends a row-addressed violation with a formatted message.
func (r *ErrorReport) Addf(row int, field string, value any, format string, args ...any) {
	r.Add(ValidationError{
		Row:     row,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Empty reports whether no violations were recorded.
func (r *ErrorReport) Empty() bool {
	return len(r.errs) == 0
}

// Len returns the number of recorded violations.
func (r *ErrorReport) Len() int {
	return len(r.errs)
}

// Errors returns the recorded violations in insertion order.
func (r *ErrorReport) Errors() []ValidationError {
	return r.errs
}

// Messages returns the formatted message of every violation, in order.
func (r *ErrorReport) Messages() []string {
	msgs := make([]string, len(r.errs))
	for i, e := range r.errs {
		msgs[i] = e.Error()
	}
	return msgs
}

package core

// validation.go applies the declarative field rules of a table definition to
// a whole batch.
//
// Validation never stops at the first problem: every rule violation across
// every row lands in the ErrorReport so the user can fix the batch in a
// single edit cycle. The only short-circuit is the required-field gate: a
// missing value is reported once and skips the remaining checks for that
// field on that row, so a blank cell never also produces a type error.

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validate checks every record of the batch against the field specs, in
// schema declaration order, and appends all violations to the report.
// It returns true only when the report is empty afterwards.
//
// A required column that is absent from the batch entirely is reported once,
// without a row index, before any per-row processing.
func Validate(specs []FieldSpec, batch *Batch, report *ErrorReport) bool {
	missing := make(map[string]bool)
	for _, spec := range specs {
		if batch.HasColumn(spec.Name) {
			continue
		}
		missing[spec.Name] = true
		if spec.Required {
			report.Add(ValidationError{
				Row:     NoRow,
				Field:   spec.Name,
				Message: fmt.Sprintf("missing required column %q", spec.Name),
			})
		}
	}

	for i, rec := range batch.Records {
		for _, spec := range specs {
			if missing[spec.Name] {
				continue
			}
			validateField(i, rec, spec, report)
		}
	}

	return report.Empty()
}

// validateField runs the per-row checks for one field. The required gate
// stops further checks; after it, checks are additive.
func validateField(row int, rec Record, spec FieldSpec, report *ErrorReport) {
	value, ok := rec[spec.Name]
	if !ok || isBlank(value) {
		if spec.Required {
			report.Addf(row, spec.Name, nil, "%s is required", spec.Name)
		}
		return
	}

	checkType(row, spec, value, report)

	if spec.MaxLength > 0 {
		if s, isText := value.(string); isText && utf8.RuneCountInString(s) > spec.MaxLength {
			report.Addf(row, spec.Name, value,
				"%s must be at most %d characters: %s", spec.Name, spec.MaxLength, s)
		}
	}

	if len(spec.Allowed) > 0 && !isAllowed(value, spec.Allowed) {
		report.Addf(row, spec.Name, value,
			"%s must be one of: %s: %s", spec.Name, strings.Join(spec.Allowed, ", "), valueString(value))
	}
}

// checkType dispatches on the declared field type.
func checkType(row int, spec FieldSpec, value any, report *ErrorReport) {
	switch spec.Type {
	case FieldInteger:
		if !isIntegral(value) {
			report.Addf(row, spec.Name, value,
				"%s must be an integer: %s", spec.Name, valueString(value))
		}
	case FieldDecimal:
		if !isNumeric(value) {
			report.Addf(row, spec.Name, value,
				"%s must be a number: %s", spec.Name, valueString(value))
		}
	case FieldText:
		if _, isText := value.(string); !isText {
			report.Addf(row, spec.Name, value,
				"%s must be text: %s", spec.Name, valueString(value))
		}
	case FieldDate:
		if !isDate(value) {
			report.Addf(row, spec.Name, value,
				"%s must be a date (YYYY-MM-DD): %s", spec.Name, valueString(value))
		}
	}
}

// isIntegral accepts values that are already integers or decimals with a
// zero fractional part.
func isIntegral(v any) bool {
	switch val := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		return val == float64(int64(val))
	case float32:
		return isIntegral(float64(val))
	default:
		return false
	}
}

// isNumeric accepts any numeric value.
func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

// isDate accepts values that parse as a calendar date.
func isDate(v any) bool {
	switch val := v.(type) {
	case string:
		_, ok := parseDate(val)
		return ok
	case time.Time:
		return true
	default:
		return false
	}
}

// isAllowed reports membership of the value in the permitted set.
func isAllowed(v any, allowed []string) bool {
	s := valueString(v)
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

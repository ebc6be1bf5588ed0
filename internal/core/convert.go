package core

// convert.go provides scalar helpers shared by the pipeline steps.
//
// Batch values arrive from two surfaces: the JSON editing grid, where every
// number is a float64, and CSV files, where every cell is a string until
// inferValue promotes numeric-looking cells. The helpers here normalize that
// messy reality without losing the distinction the validator cares about
// (integral float vs. fractional float vs. text).

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numericRegex validates that a string is a valid numeric format.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateLayouts are the accepted calendar date shapes, ISO first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
}

// CleanCell removes common CSV artifacts from a cell value:
// trims whitespace, removes the Excel formula prefix (="..."),
// and strips surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// isBlank reports whether a value counts as missing: nil, NaN, or a string
// that is empty after trimming.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case float64:
		return math.IsNaN(val)
	case float32:
		return math.IsNaN(float64(val))
	default:
		return false
	}
}

// valueString renders a scalar for messages and key comparison.
// Integral floats print without a fractional part so that 1920.0 and
// int64(1920) compare equal as duplicate keys.
func valueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return ""
	}
}

// asInt64 converts a numeric scalar to int64.
func asInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int64(val), true
	case float32:
		return asInt64(float64(val))
	default:
		return 0, false
	}
}

// parseDate attempts to parse a string as a calendar date.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferValue promotes a CSV cell to the scalar shape the pipeline expects:
// empty cells become nil and numeric-looking cells become float64, matching
// what the JSON editing surface delivers. Everything else stays text.
func inferValue(cell string) any {
	cell = CleanCell(cell)
	if cell == "" {
		return nil
	}
	if numericRegex.MatchString(cell) {
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return f
		}
	}
	return cell
}

package core

// resolution.go encodes and decodes the composite resolution column.
//
// The user edits a single "1920x1080" cell; storage keeps two integer
// columns. Decode runs before validation so the two parts are checked as
// ordinary integer fields; encode runs only when shaping persisted rows for
// display and is assumed to succeed because the inputs are trusted integers.

import (
	"regexp"
	"strconv"
)

// resolutionPattern matches "<integer>x<integer>" with a case-insensitive
// separator and no surrounding whitespace.
var resolutionPattern = regexp.MustCompile(`^(\d+)[xX](\d+)$`)

// DecodeResolution splits the composite column of every record into the two
// part columns. A value that does not match the pattern is reported as a
// format error and leaves both parts unset. The composite column is removed
// from the batch in either case.
func DecodeResolution(batch *Batch, displayField, widthField, heightField string, report *ErrorReport) {
	for i, rec := range batch.Records {
		value := rec[displayField]
		delete(rec, displayField)

		s := valueString(value)
		m := resolutionPattern.FindStringSubmatch(s)
		if m == nil {
			report.Addf(i, displayField, value,
				`%s must be in "<width>x<height>" form: %s`, displayField, s)
			continue
		}

		w, _ := strconv.ParseInt(m[1], 10, 64)
		h, _ := strconv.ParseInt(m[2], 10, 64)
		rec[widthField] = w
		rec[heightField] = h
	}

	batch.ReplaceColumn(displayField, widthField, heightField)
}

// EncodeResolution joins the two part columns of every record back into the
// composite display column and drops the parts.
func EncodeResolution(batch *Batch, widthField, heightField, displayField string) {
	for _, rec := range batch.Records {
		w := rec[widthField]
		h := rec[heightField]
		delete(rec, widthField)
		delete(rec, heightField)

		rec[displayField] = valueString(w) + "x" + valueString(h)
	}

	batch.ReplaceColumn(widthField, displayField)
	batch.RemoveColumn(heightField)
}

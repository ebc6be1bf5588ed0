package core

import "math"

// CoerceToInt converts the named fields of every record to exact int64
// values for persistence: nil and NaN become 0, floats are truncated.
// Fields absent from a record are left absent.
//
// The input records are not modified; the returned slice holds copies.
// This runs only on batches that already passed validation, so fractional
// values have been accepted deliberately (decimal fields) or cannot occur
// (integer fields).
func CoerceToInt(records []Record, fields []string) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		copied := make(Record, len(rec))
		for k, v := range rec {
			copied[k] = v
		}
		for _, field := range fields {
			v, ok := copied[field]
			if !ok {
				continue
			}
			switch val := v.(type) {
			case nil:
				copied[field] = int64(0)
			case float64:
				if math.IsNaN(val) {
					copied[field] = int64(0)
				} else {
					copied[field] = int64(val)
				}
			case float32:
				if math.IsNaN(float64(val)) {
					copied[field] = int64(0)
				} else {
					copied[field] = int64(val)
				}
			case int:
				copied[field] = int64(val)
			case int32:
				copied[field] = int64(val)
			}
		}
		out[i] = copied
	}
	return out
}

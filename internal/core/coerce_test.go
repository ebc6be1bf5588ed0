package core

import (
	"math"
	"testing"
)

func TestCoerceToInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{name: "nil becomes zero", value: nil, want: int64(0)},
		{name: "NaN becomes zero", value: math.NaN(), want: int64(0)},
		{name: "integral float", value: 3.0, want: int64(3)},
		{name: "fraction truncated", value: 3.7, want: int64(3)},
		{name: "negative fraction truncated toward zero", value: -3.7, want: int64(-3)},
		{name: "int64 kept", value: int64(5), want: int64(5)},
		{name: "int widened", value: 5, want: int64(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []Record{{"brand_id": tt.value}}
			out := CoerceToInt(records, []string{"brand_id"})

			if got := out[0]["brand_id"]; got != tt.want {
				t.Errorf("coerced = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCoerceToIntLeavesInputUntouched(t *testing.T) {
	records := []Record{{"brand_id": 3.7, "status": "active"}}
	out := CoerceToInt(records, []string{"brand_id"})

	if got := records[0]["brand_id"]; got != 3.7 {
		t.Errorf("input record modified: brand_id = %v", got)
	}
	if got := out[0]["status"]; got != "active" {
		t.Errorf("unrelated field changed: status = %v", got)
	}
}

func TestCoerceToIntSkipsAbsentFields(t *testing.T) {
	records := []Record{{"status": "active"}}
	out := CoerceToInt(records, []string{"brand_id"})

	if _, set := out[0]["brand_id"]; set {
		t.Error("absent field materialized during coercion")
	}
}

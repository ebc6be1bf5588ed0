package core

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecodeResolution(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantW   any
		wantH   any
		wantErr bool
	}{
		{name: "lowercase separator", value: "1920x1080", wantW: int64(1920), wantH: int64(1080)},
		{name: "uppercase separator", value: "3840X2160", wantW: int64(3840), wantH: int64(2160)},
		{name: "dash separator rejected", value: "1920-1080", wantErr: true},
		{name: "missing height rejected", value: "1920x", wantErr: true},
		{name: "embedded spaces rejected", value: "1920 x 1080", wantErr: true},
		{name: "blank rejected", value: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := &Batch{
				Columns: []string{"resolution"},
				Records: []Record{{"resolution": tt.value}},
			}
			report := &ErrorReport{}
			DecodeResolution(batch, "resolution", "resolution_w", "resolution_h", report)

			rec := batch.Records[0]
			if _, still := rec["resolution"]; still {
				t.Error("composite value not removed from record")
			}

			if tt.wantErr {
				if report.Len() != 1 {
					t.Fatalf("got %d errors, want 1: %v", report.Len(), report.Messages())
				}
				if _, set := rec["resolution_w"]; set {
					t.Error("resolution_w set despite format error")
				}
				if _, set := rec["resolution_h"]; set {
					t.Error("resolution_h set despite format error")
				}
				if !strings.Contains(report.Errors()[0].Message, `"<width>x<height>"`) {
					t.Errorf("message %q does not describe the expected form", report.Errors()[0].Message)
				}
				return
			}

			if !report.Empty() {
				t.Fatalf("unexpected errors: %v", report.Messages())
			}
			if rec["resolution_w"] != tt.wantW || rec["resolution_h"] != tt.wantH {
				t.Errorf("got (%v, %v), want (%v, %v)", rec["resolution_w"], rec["resolution_h"], tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDecodeResolutionColumnOrder(t *testing.T) {
	batch := &Batch{
		Columns: []string{"product_id", "resolution", "status"},
		Records: []Record{{"product_id": "P1", "resolution": "1920x1080", "status": "active"}},
	}
	report := &ErrorReport{}
	DecodeResolution(batch, "resolution", "resolution_w", "resolution_h", report)

	want := []string{"product_id", "resolution_w", "resolution_h", "status"}
	if !reflect.DeepEqual(batch.Columns, want) {
		t.Errorf("columns = %v, want %v", batch.Columns, want)
	}
}

func TestEncodeResolution(t *testing.T) {
	batch := &Batch{
		Columns: []string{"product_id", "resolution_w", "resolution_h"},
		Records: []Record{
			{"product_id": "P1", "resolution_w": int64(1920), "resolution_h": int64(1080)},
			{"product_id": "P2", "resolution_w": 2560.0, "resolution_h": 1440.0},
		},
	}
	EncodeResolution(batch, "resolution_w", "resolution_h", "resolution")

	want := []string{"product_id", "resolution"}
	if !reflect.DeepEqual(batch.Columns, want) {
		t.Errorf("columns = %v, want %v", batch.Columns, want)
	}
	if got := batch.Records[0]["resolution"]; got != "1920x1080" {
		t.Errorf("record 0 resolution = %v, want 1920x1080", got)
	}
	if got := batch.Records[1]["resolution"]; got != "2560x1440" {
		t.Errorf("record 1 resolution = %v, want 2560x1440", got)
	}
}

func TestResolutionRoundTrip(t *testing.T) {
	batch := &Batch{
		Columns: []string{"resolution_w", "resolution_h"},
		Records: []Record{{"resolution_w": int64(1920), "resolution_h": int64(1080)}},
	}
	EncodeResolution(batch, "resolution_w", "resolution_h", "resolution")

	report := &ErrorReport{}
	DecodeResolution(batch, "resolution", "resolution_w", "resolution_h", report)

	if !report.Empty() {
		t.Fatalf("round trip produced errors: %v", report.Messages())
	}
	rec := batch.Records[0]
	if rec["resolution_w"] != int64(1920) || rec["resolution_h"] != int64(1080) {
		t.Errorf("round trip got (%v, %v), want (1920, 1080)", rec["resolution_w"], rec["resolution_h"])
	}
}

package export

import (
	"bytes"
	"testing"

	"github.com/pcmon/catalog/internal/core"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	return rows
}

func TestBatchBytes(t *testing.T) {
	batch := &core.Batch{
		Columns: []string{"product_id", "model_name", "price_jpy"},
		Records: []core.Record{
			{"product_id": "P1", "model_name": "UltraView 27", "price_jpy": "39800"},
			{"product_id": "P2", "model_name": "ProDisplay", "price_jpy": "54800"},
		},
	}

	data, err := BatchBytes(batch)
	if err != nil {
		t.Fatalf("BatchBytes: %v", err)
	}

	rows := readRows(t, data)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2 records)", len(rows))
	}
	if rows[0][0] != "product_id" || rows[0][2] != "price_jpy" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "UltraView 27" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "P2" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestBatchBytesEmptyBatch(t *testing.T) {
	batch := &core.Batch{Columns: []string{"name"}}

	data, err := BatchBytes(batch)
	if err != nil {
		t.Fatalf("BatchBytes: %v", err)
	}

	rows := readRows(t, data)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
	if rows[0][0] != "name" {
		t.Errorf("header = %v", rows[0])
	}
}

func TestBatchBytesNilValues(t *testing.T) {
	batch := &core.Batch{
		Columns: []string{"product_id", "brand"},
		Records: []core.Record{{"product_id": "P1", "brand": nil}},
	}

	data, err := BatchBytes(batch)
	if err != nil {
		t.Fatalf("BatchBytes: %v", err)
	}

	rows := readRows(t, data)
	if rows[1][0] != "P1" {
		t.Errorf("row = %v", rows[1])
	}
}

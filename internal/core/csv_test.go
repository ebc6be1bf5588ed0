package core

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadBatch(t *testing.T) {
	input := "product_id,model_name,size_inch\nP1,UltraView 27,27\nP2,ProDisplay,31.5\n"

	batch, err := ReadBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBatch: %v", err)
	}

	wantCols := []string{"product_id", "model_name", "size_inch"}
	if !reflect.DeepEqual(batch.Columns, wantCols) {
		t.Errorf("columns = %v, want %v", batch.Columns, wantCols)
	}
	if batch.Len() != 2 {
		t.Fatalf("Len = %d, want 2", batch.Len())
	}
	// Numeric-looking cells are promoted to float64 like JSON numbers.
	if got := batch.Records[0]["size_inch"]; got != 27.0 {
		t.Errorf("size_inch = %#v, want float64 27", got)
	}
	if got := batch.Records[1]["size_inch"]; got != 31.5 {
		t.Errorf("size_inch = %#v, want float64 31.5", got)
	}
	if got := batch.Records[0]["model_name"]; got != "UltraView 27" {
		t.Errorf("model_name = %#v", got)
	}
}

func TestReadBatchSkipsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFname\nDell\n"

	batch, err := ReadBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBatch: %v", err)
	}
	if got := batch.Columns[0]; got != "name" {
		t.Errorf("first column = %q, want %q (BOM not stripped)", got, "name")
	}
}

func TestReadBatchDropsEmptyRows(t *testing.T) {
	input := "name\n\nDell\n , \nLG\n"

	batch, err := ReadBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBatch: %v", err)
	}
	if batch.Len() != 2 {
		t.Fatalf("Len = %d, want 2: %v", batch.Len(), batch.Records)
	}
}

func TestReadBatchPadsShortRows(t *testing.T) {
	input := "product_id,status\nP1\n"

	batch, err := ReadBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBatch: %v", err)
	}
	rec := batch.Records[0]
	if v, ok := rec["status"]; !ok || v != nil {
		t.Errorf("short row status = (%v, %v), want present nil", v, ok)
	}
}

func TestReadBatchEmptyCellsBecomeNil(t *testing.T) {
	input := "product_id,brand\nP1,\n"

	batch, err := ReadBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBatch: %v", err)
	}
	if v := batch.Records[0]["brand"]; v != nil {
		t.Errorf("empty cell = %#v, want nil", v)
	}
}

func TestReadBatchNoHeader(t *testing.T) {
	_, err := ReadBatch(strings.NewReader("\n\n"))
	if err == nil {
		t.Fatal("expected an error for a file with no header row")
	}
	if !strings.Contains(err.Error(), "empty file") {
		t.Errorf("error = %v, want it to mention empty file", err)
	}
}

func TestReadBatchMalformed(t *testing.T) {
	// An unterminated quote is a stream-level parse failure.
	_, err := ReadBatch(strings.NewReader("name\n\"unterminated\n"))
	if err == nil {
		t.Fatal("expected an error for malformed csv")
	}
	if !strings.Contains(err.Error(), "invalid csv") {
		t.Errorf("error = %v, want it to mention invalid csv", err)
	}
}

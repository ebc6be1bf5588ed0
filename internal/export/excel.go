// Package export renders batches as spreadsheet byte streams for download.
package export

import (
	"fmt"

	"github.com/pcmon/catalog/internal/core"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet every export writes to.
const SheetName = "Sheet1"

// BatchBytes converts a batch to an XLSX workbook, preserving column order.
// An empty batch still produces a valid workbook holding only the header row.
func BatchBytes(batch *core.Batch) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]any, len(batch.Columns))
	for i, col := range batch.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range batch.Records {
		row := make([]any, len(batch.Columns))
		for j, col := range batch.Columns {
			row[j] = rec[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

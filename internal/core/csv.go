package core

// csv.go turns an uploaded CSV stream into a Batch.
//
// The first non-empty row is the header; short rows are padded so that every
// record addresses every column. Cells are promoted by inferValue so a CSV
// batch carries the same scalar shapes as an edited one. Parse failures of
// the stream itself are the caller's problem to report; this reader only
// shapes well-formed CSV into a batch.

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// byteOrderMark is the UTF-8 BOM some spreadsheet tools prepend.
var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ReadBatch parses CSV data into a Batch, skipping a leading BOM and
// dropping rows whose cells are all blank.
func ReadBatch(r io.Reader) (*Batch, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = br.Discard(len(byteOrderMark))
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	var header []string
	var batch Batch
	for _, row := range rows {
		if emptyRow(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, cell := range row {
				header[i] = CleanCell(cell)
			}
			batch.Columns = header
			continue
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = inferValue(row[i])
			} else {
				rec[name] = nil
			}
		}
		batch.Records = append(batch.Records, rec)
	}

	if header == nil {
		return nil, fmt.Errorf("empty file: no header row found")
	}

	return &batch, nil
}

// emptyRow reports whether every cell of the row is blank after cleanup.
func emptyRow(row []string) bool {
	for _, cell := range row {
		if CleanCell(cell) != "" {
			return false
		}
	}
	return true
}

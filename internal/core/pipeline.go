package core

// pipeline.go sequences the pipeline steps for each use case.
//
// Save and import run the same fixed order: reference resolution, composite
// decode, duplicate detection, schema validation, and integer coercion on a
// clean batch. Display runs the inverse: composite encode, id-to-name
// resolution, and timestamp formatting. The orchestrators own no rules of
// their own; they only sequence the steps and carry the collaborator calls.

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Service runs the validation pipelines against a reference store.
// Each invocation builds its own reference maps and error report, so
// concurrent batches never share in-process state.
type Service struct {
	store      ReferenceStore
	displayLoc *time.Location
}

// NewService creates a pipeline service. The location controls how
// timestamps are rendered for display; nil means UTC.
func NewService(store ReferenceStore, displayLoc *time.Location) *Service {
	if displayLoc == nil {
		displayLoc = time.UTC
	}
	return &Service{store: store, displayLoc: displayLoc}
}

// PrepareForSave runs the full save pipeline on an edited or imported batch.
// The returned report holds every data violation found; a non-nil error
// means a collaborator failure and an aborted run. When the report is empty,
// the batch records have been replaced by their coerced storage shape and
// may be handed to the persistence layer.
func (s *Service) PrepareForSave(ctx context.Context, def TableDefinition, batch *Batch) (*ErrorReport, error) {
	report := &ErrorReport{}

	for _, ref := range def.References {
		if !batch.HasColumn(ref.NameField) {
			report.Add(ValidationError{
				Row:     NoRow,
				Field:   ref.NameField,
				Message: fmt.Sprintf("missing required column %q", ref.NameField),
			})
			continue
		}
		rm, err := BuildReferenceMap(ctx, s.store, ref.Entity)
		if err != nil {
			return nil, err
		}
		ResolveNamesToIDs(batch, ref.NameField, ref.IDField, rm, report)
	}

	if c := def.Composite; c != nil {
		if !batch.HasColumn(c.DisplayField) {
			report.Add(ValidationError{
				Row:     NoRow,
				Field:   c.DisplayField,
				Message: fmt.Sprintf("missing required column %q", c.DisplayField),
			})
		} else {
			DecodeResolution(batch, c.DisplayField, c.WidthField, c.HeightField, report)
		}
	}

	for _, row := range FindDuplicateKeys(batch, def.PrimaryKey) {
		report.Addf(row, def.PrimaryKey, batch.Records[row][def.PrimaryKey],
			"duplicate %s: %s", def.PrimaryKey, valueString(batch.Records[row][def.PrimaryKey]))
	}

	Validate(def.FieldSpecs, batch, report)

	if report.Empty() {
		batch.Records = CoerceToInt(batch.Records, def.IntColumns)
	}

	return report, nil
}

// ImportCSV parses a CSV stream into a batch and runs the save pipeline
// on it. The parsed batch is returned alongside the report so the caller
// can persist it or render it back with the errors.
func (s *Service) ImportCSV(ctx context.Context, def TableDefinition, r io.Reader) (*Batch, *ErrorReport, error) {
	batch, err := ReadBatch(r)
	if err != nil {
		return nil, nil, err
	}
	report, err := s.PrepareForSave(ctx, def, batch)
	if err != nil {
		return nil, nil, err
	}
	return batch, report, nil
}

// PrepareForDisplay shapes a persisted batch for the editing surface:
// composite columns are re-joined, ids are resolved back to names
// (best effort), dates and timestamps are formatted as text.
func (s *Service) PrepareForDisplay(ctx context.Context, def TableDefinition, batch *Batch) error {
	if c := def.Composite; c != nil && batch.HasColumn(c.WidthField) {
		EncodeResolution(batch, c.WidthField, c.HeightField, c.DisplayField)
	}

	for _, ref := range def.References {
		if !batch.HasColumn(ref.IDField) {
			continue
		}
		rm, err := BuildReferenceMap(ctx, s.store, ref.Entity)
		if err != nil {
			return err
		}
		ResolveIDsToNames(batch, ref.IDField, ref.NameField, rm)
	}

	s.formatDates(def, batch)
	s.formatTimestamps(def, batch)
	return nil
}

// formatDates renders date-typed values as YYYY-MM-DD text so a displayed
// batch validates unchanged on the way back in.
func (s *Service) formatDates(def TableDefinition, batch *Batch) {
	for _, spec := range def.FieldSpecs {
		if spec.Type != FieldDate {
			continue
		}
		for _, rec := range batch.Records {
			if t, ok := rec[spec.Name].(time.Time); ok {
				rec[spec.Name] = t.Format("2006-01-02")
			}
		}
	}
}

// formatTimestamps renders the definition's timestamp columns in the
// display time zone.
func (s *Service) formatTimestamps(def TableDefinition, batch *Batch) {
	for _, col := range def.DisplayTimestamps {
		if !batch.HasColumn(col) {
			continue
		}
		for _, rec := range batch.Records {
			if t, ok := rec[col].(time.Time); ok {
				rec[col] = t.In(s.displayLoc).Format("2006-01-02 15:04")
			}
		}
	}
}

// DeleteCandidates returns the persisted primary-key values that are absent
// from the batch, in the order the persisted keys were given. The caller
// decides whether the deletions actually happen; the pipeline only surfaces
// them.
func DeleteCandidates(persistedKeys []string, batch *Batch, keyField string) []string {
	inBatch := make(map[string]bool, batch.Len())
	for _, rec := range batch.Records {
		if v := rec[keyField]; !isBlank(v) {
			inBatch[valueString(v)] = true
		}
	}

	var candidates []string
	for _, key := range persistedKeys {
		if !inBatch[key] {
			candidates = append(candidates, key)
		}
	}
	return candidates
}

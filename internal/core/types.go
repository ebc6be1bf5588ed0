package core

import "context"

// FieldType represents the expected data type for a table column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldDecimal
	FieldDate
)

// FieldSpec defines the validation rules for a single column.
type FieldSpec struct {
	Name      string    // Column name (matches CSV header and DB column)
	Type      FieldType // Expected data type
	Required  bool      // Value must be present and non-blank
	MaxLength int       // Maximum character length for text values (0 = unlimited)
	Allowed   []string  // Permitted values (empty = any)
}

// Record is one editable row: a mapping from column name to a scalar value.
// Values are nil, string, float64, or int64. Column order lives on the Batch.
type Record map[string]any

// Batch is an ordered collection of records sharing one table definition.
// A batch lives for exactly one pipeline invocation.
type Batch struct {
	Columns []string
	Records []Record
}

// HasColumn reports whether the batch carries the named column.
func (b *Batch) HasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ReplaceColumn swaps one column name for one or more replacements,
// preserving the original position. Missing columns are ignored.
func (b *Batch) ReplaceColumn(old string, replacements ...string) {
	for i, c := range b.Columns {
		if c == old {
			cols := make([]string, 0, len(b.Columns)+len(replacements)-1)
			cols = append(cols, b.Columns[:i]...)
			cols = append(cols, replacements...)
			cols = append(cols, b.Columns[i+1:]...)
			b.Columns = cols
			return
		}
	}
}

// RemoveColumn drops a column name from the batch ordering.
// Record values for the column are untouched.
func (b *Batch) RemoveColumn(name string) {
	for i, c := range b.Columns {
		if c == name {
			b.Columns = append(b.Columns[:i:i], b.Columns[i+1:]...)
			return
		}
	}
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.Records)
}

// ReferenceBinding maps a display name column to its stored id column,
// backed by a reference entity (brands, panel_types).
type ReferenceBinding struct {
	NameField string // Display column holding the human-readable name
	IDField   string // Storage column holding the numeric id
	Entity    string // Reference entity fetched from the persistence layer
}

// CompositeBinding describes a display column that encodes two storage
// columns, e.g. resolution "1920x1080" split into resolution_w/resolution_h.
type CompositeBinding struct {
	DisplayField string
	WidthField   string
	HeightField  string
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key   string // Unique identifier and DB table name: "products"
	Label string // Display name: "Products"
}

// TableDefinition contains everything needed to run the pipeline for one table.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec // Storage schema, in declaration order
	PrimaryKey string      // Column checked for intra-batch duplicates ("" = none)

	References []ReferenceBinding // Name columns resolved to id columns on save
	Composite  *CompositeBinding  // Composite column decoded on save (nil = none)

	IntColumns []string // Columns coerced to exact integers before persistence

	DisplayTimestamps []string // Timestamp columns formatted for display
}

// StorageColumns returns the column names of the storage schema in order.
func (t TableDefinition) StorageColumns() []string {
	cols := make([]string, len(t.FieldSpecs))
	for i, spec := range t.FieldSpecs {
		cols[i] = spec.Name
	}
	return cols
}

// DisplayColumns returns the column names as shown to the user: id columns
// replaced by their name columns, the two composite parts joined into the
// display column.
func (t TableDefinition) DisplayColumns() []string {
	nameByID := make(map[string]string, len(t.References))
	for _, ref := range t.References {
		nameByID[ref.IDField] = ref.NameField
	}

	var cols []string
	for _, spec := range t.FieldSpecs {
		name := spec.Name
		if display, ok := nameByID[name]; ok {
			name = display
		}
		if t.Composite != nil {
			switch name {
			case t.Composite.WidthField:
				name = t.Composite.DisplayField
			case t.Composite.HeightField:
				continue
			}
		}
		cols = append(cols, name)
	}
	return cols
}

// Spec returns the field spec for the named column.
func (t TableDefinition) Spec(name string) (FieldSpec, bool) {
	for _, spec := range t.FieldSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// ReferencePair is one (id, name) row of a reference entity snapshot.
type ReferencePair struct {
	ID   int64
	Name string
}

// ReferenceStore fetches full reference entity snapshots from the
// persistence collaborator. Implementations must be safe for synchronous,
// idempotent calls; a failed fetch aborts the pipeline run.
type ReferenceStore interface {
	FetchAll(ctx context.Context, entity string) ([]ReferencePair, error)
}

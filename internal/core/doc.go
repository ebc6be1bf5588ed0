// Package core implements the batch validation and normalization pipeline
// for the monitor catalog.
//
// This package is the heart of the application, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Table Registry
//
// Tables are registered at init time using [Register]. Each [TableDefinition]
// declares the field rules for one entity along with its primary key, its
// reference bindings (display name column resolved to a stored id column),
// and its composite resolution column:
//
//	core.Register(TableDefinition{
//	    Info: TableInfo{Key: "products", Label: "Products"},
//	    FieldSpecs: []FieldSpec{
//	        {Name: "product_id", Type: FieldText, Required: true, MaxLength: 100},
//	        {Name: "refresh_rate", Type: FieldInteger, Required: true},
//	    },
//	    PrimaryKey: "product_id",
//	})
//
// # Pipeline
//
// A [Batch] flows through a fixed sequence on save or import: reference
// resolution, composite decode, duplicate detection, schema validation, and
// finally integer coercion. Every rule violation is appended to a single
// [ErrorReport] so the user can fix the whole batch in one pass; the batch is
// handed to the persistence layer only when the report is empty.
//
// The display direction is the inverse: stored rows get their resolution
// columns re-joined, ids resolved back to names, and timestamps formatted.
//
// # Error Handling
//
// Data problems never abort the pipeline; they accumulate in the ErrorReport.
// Go errors are reserved for collaborator failures (the reference snapshot
// fetch or the persistence write), which wrap [ErrCollaboratorUnavailable]
// and abort the run immediately.
package core

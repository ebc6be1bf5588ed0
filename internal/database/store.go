// Package database implements the persistence collaborator over PostgreSQL.
//
// The pipeline core never builds SQL; everything it needs from storage goes
// through the Store: reference snapshots, table listing, the all-or-nothing
// batch upsert, explicit deletions, and dashboard aggregates. Table and
// column names come from registered table definitions, never from request
// input.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pcmon/catalog/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

// Store executes catalog queries against a pgx connection or pool.
type Store struct {
	db DBTX
}

// New creates a Store over the given connection.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// referenceTables whitelists the entities FetchAll may read.
var referenceTables = map[string]string{
	"brands":      "brands",
	"panel_types": "panel_types",
}

// FetchAll returns the full (id, name) snapshot of a reference entity.
// Failures wrap core.ErrCollaboratorUnavailable so the pipeline can abort
// distinctly from data errors.
func (s *Store) FetchAll(ctx context.Context, entity string) ([]core.ReferencePair, error) {
	table, ok := referenceTables[entity]
	if !ok {
		return nil, fmt.Errorf("unknown reference entity %q", entity)
	}

	rows, err := s.db.Query(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", core.ErrCollaboratorUnavailable, entity, err)
	}
	defer rows.Close()

	var pairs []core.ReferencePair
	for rows.Next() {
		var p core.ReferencePair
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", core.ErrCollaboratorUnavailable, entity, err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrCollaboratorUnavailable, entity, err)
	}
	return pairs, nil
}

// ListBatch loads the persisted rows of a table as a batch in storage shape,
// including the display timestamp columns, ordered by primary key.
func (s *Store) ListBatch(ctx context.Context, def core.TableDefinition) (*core.Batch, error) {
	cols := append(def.StorageColumns(), def.DisplayTimestamps...)

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		joinIdents(cols), quoteIdent(def.Info.Key), quoteIdent(def.PrimaryKey))

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", def.Info.Key, err)
	}
	defer rows.Close()

	batch := &core.Batch{Columns: cols}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s row: %w", def.Info.Key, err)
		}
		rec := make(core.Record, len(cols))
		for i, col := range cols {
			rec[col] = toScalar(values[i])
		}
		batch.Records = append(batch.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", def.Info.Key, err)
	}
	return batch, nil
}

// ListKeys returns every persisted primary-key value of a table, ordered.
// The save flow diffs these against the batch to surface delete candidates.
func (s *Store) ListKeys(ctx context.Context, def core.TableDefinition) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s::text FROM %s ORDER BY %s`,
		quoteIdent(def.PrimaryKey), quoteIdent(def.Info.Key), quoteIdent(def.PrimaryKey))

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s keys: %w", def.Info.Key, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan %s key: %w", def.Info.Key, err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// UpsertBatch writes every record of a validated, coerced batch in one
// database batch, keyed by the table's primary key. Returns the number of
// rows written. The batch is all-or-nothing: run it inside a transaction
// when partial writes must not survive.
func (s *Store) UpsertBatch(ctx context.Context, def core.TableDefinition, batch *core.Batch) (int, error) {
	cols := make([]string, 0, len(def.FieldSpecs))
	for _, col := range def.StorageColumns() {
		if batch.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("upsert %s: batch has no storage columns", def.Info.Key)
	}

	query := upsertQuery(def, cols)

	pgxBatch := &pgx.Batch{}
	for _, rec := range batch.Records {
		args := make([]any, len(cols))
		for i, col := range cols {
			args[i] = rec[col]
		}
		pgxBatch.Queue(query, args...)
	}

	results := s.db.SendBatch(ctx, pgxBatch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return i, fmt.Errorf("upsert %s row %d: %w", def.Info.Key, i+1, err)
		}
	}
	return batch.Len(), nil
}

// upsertQuery builds the INSERT ... ON CONFLICT statement for one row.
func upsertQuery(def core.TableDefinition, cols []string) string {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var updates []string
	for _, col := range cols {
		if col == def.PrimaryKey {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", quoteIdent(col), quoteIdent(col)))
	}
	updates = append(updates, "updated_at = now()")

	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s`,
		quoteIdent(def.Info.Key),
		joinIdents(cols),
		strings.Join(placeholders, ", "),
		quoteIdent(def.PrimaryKey),
		strings.Join(updates, ", "),
	)
}

// DeleteByKeys removes the rows whose primary key is in keys and returns the
// number of rows deleted. Callers pass only keys the user confirmed.
func (s *Store) DeleteByKeys(ctx context.Context, def core.TableDefinition, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s::text = ANY($1)`,
		quoteIdent(def.Info.Key), quoteIdent(def.PrimaryKey))

	tag, err := s.db.Exec(ctx, query, keys)
	if err != nil {
		return 0, fmt.Errorf("delete %s rows: %w", def.Info.Key, err)
	}
	return tag.RowsAffected(), nil
}

// Reset truncates a table. This is a destructive operation.
func (s *Store) Reset(ctx context.Context, def core.TableDefinition) error {
	query := fmt.Sprintf(`TRUNCATE TABLE %s RESTART IDENTITY CASCADE`, quoteIdent(def.Info.Key))
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("reset %s: %w", def.Info.Key, err)
	}
	return nil
}

// toScalar converts a pgx row value into the scalar shapes the pipeline
// works with: nil, string, int64, float64, or time.Time for timestamps.
func toScalar(v any) any {
	switch val := v.(type) {
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int:
		return int64(val)
	case float32:
		return float64(val)
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	default:
		return v
	}
}

// quoteIdent quotes a SQL identifier from a registered table definition.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

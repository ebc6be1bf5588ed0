package core

// reference.go resolves human-readable reference names (brand, panel type)
// to their stored numeric ids and back.
//
// Resolution is kept apart from generic validation because it needs an
// external lookup snapshot and a different failure vocabulary: a name can be
// missing ("required") or unknown ("not registered"), neither of which is a
// type problem. The snapshot is fetched fresh for every pipeline run; there
// is no cross-run cache to go stale.

import (
	"context"
	"fmt"
)

// ReferenceMap is a bidirectional name <-> id lookup for one reference
// entity, built from a full snapshot. Read-only for the duration of a run.
type ReferenceMap struct {
	entity   string
	idByName map[string]int64
	nameByID map[int64]string
}

// BuildReferenceMap fetches all (id, name) pairs for the entity from the
// store. Fetch failures wrap ErrCollaboratorUnavailable and are returned to
// the caller unmodified, never retried here.
func BuildReferenceMap(ctx context.Context, store ReferenceStore, entity string) (*ReferenceMap, error) {
	pairs, err := store.FetchAll(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrCollaboratorUnavailable, entity, err)
	}

	m := &ReferenceMap{
		entity:   entity,
		idByName: make(map[string]int64, len(pairs)),
		nameByID: make(map[int64]string, len(pairs)),
	}
	for _, p := range pairs {
		m.idByName[p.Name] = p.ID
		m.nameByID[p.ID] = p.Name
	}
	return m, nil
}

// Entity returns the reference entity this map was built from.
func (m *ReferenceMap) Entity() string { return m.entity }

// IDFor returns the id registered for a name.
func (m *ReferenceMap) IDFor(name string) (int64, bool) {
	id, ok := m.idByName[name]
	return id, ok
}

// NameFor returns the name registered for an id.
func (m *ReferenceMap) NameFor(id int64) (string, bool) {
	name, ok := m.nameByID[id]
	return name, ok
}

// Len returns the number of registered pairs.
func (m *ReferenceMap) Len() int { return len(m.idByName) }

// ResolveNamesToIDs rewrites the name column of every record into the id
// column using the reference map. A blank name is reported as required; a
// non-blank unknown name is reported as unregistered. The name column is
// dropped from the batch either way, so rows that failed simply leave the id
// column unset. Error order follows row order.
func ResolveNamesToIDs(batch *Batch, nameField, idField string, rm *ReferenceMap, report *ErrorReport) {
	for i, rec := range batch.Records {
		value := rec[nameField]
		delete(rec, nameField)

		if isBlank(value) {
			report.Addf(i, nameField, nil, "%s is required", nameField)
			continue
		}

		name := valueString(value)
		id, ok := rm.IDFor(name)
		if !ok {
			report.Addf(i, nameField, value,
				"%s %q is not registered: add it to the master first", nameField, name)
			continue
		}
		rec[idField] = id
	}

	batch.ReplaceColumn(nameField, idField)
}

// ResolveIDsToNames rewrites the id column of every record into the name
// column. Display is best-effort: an unknown id resolves to an absent name
// rather than an error.
func ResolveIDsToNames(batch *Batch, idField, nameField string, rm *ReferenceMap) {
	for _, rec := range batch.Records {
		value := rec[idField]
		delete(rec, idField)

		id, ok := asInt64(value)
		if !ok {
			continue
		}
		if name, found := rm.NameFor(id); found {
			rec[nameField] = name
		}
	}

	batch.ReplaceColumn(idField, nameField)
}

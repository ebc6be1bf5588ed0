package core

import "sort"

// FindDuplicateKeys returns the row indices, in ascending order, of every
// record whose key value occurs more than once within the batch. Every
// occurrence of a repeated value is included, not just the later ones.
//
// Blank keys are never treated as duplicates of each other; a blank primary
// key is already flagged by the required-field check. A key column absent
// from the batch yields no duplicates.
func FindDuplicateKeys(batch *Batch, keyField string) []int {
	if keyField == "" || !batch.HasColumn(keyField) {
		return nil
	}

	rowsByKey := make(map[string][]int)
	for i, rec := range batch.Records {
		value := rec[keyField]
		if isBlank(value) {
			continue
		}
		key := valueString(value)
		rowsByKey[key] = append(rowsByKey[key], i)
	}

	var dups []int
	for _, rows := range rowsByKey {
		if len(rows) > 1 {
			dups = append(dups, rows...)
		}
	}
	sort.Ints(dups)
	return dups
}

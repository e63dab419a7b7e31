// Package editor provides the pure add/update/remove operations used to edit
// resume document collections and the skill set.
//
// Every function returns a new slice and leaves its input untouched. Edits that
// cannot apply (stale IDs, unknown fields, removing the last entry) return an
// unchanged copy instead of an error.
package editor

// Entry is implemented by collection entry types. WithField returns a copy with
// the named field replaced and false when the field name is unknown.
type Entry[T any] interface {
	EntryID() string
	WithField(field, value string) (T, bool)
}

// MinEntries is the number of entries a collection never drops below.
const MinEntries = 1

// Add appends a new entry produced by factory.
func Add[T Entry[T]](entries []T, factory func() T) []T {
	out := make([]T, 0, len(entries)+1)
	out = append(out, entries...)
	return append(out, factory())
}

// Remove drops the entry with the given ID unless only MinEntries remain.
func Remove[T Entry[T]](entries []T, id string) []T {
	if len(entries) <= MinEntries {
		return clone(entries)
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.EntryID() == id {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Update replaces one field of the entry with the given ID.
func Update[T Entry[T]](entries []T, id, field, value string) []T {
	out := clone(entries)
	for i, e := range out {
		if e.EntryID() != id {
			continue
		}
		if updated, ok := e.WithField(field, value); ok {
			out[i] = updated
		}
		break
	}
	return out
}

// Find returns the entry with the given ID.
func Find[T Entry[T]](entries []T, id string) (T, bool) {
	for _, e := range entries {
		if e.EntryID() == id {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// EnsureMinimum appends entries from factory until the collection holds MinEntries.
func EnsureMinimum[T Entry[T]](entries []T, factory func() T) []T {
	out := clone(entries)
	for len(out) < MinEntries {
		out = append(out, factory())
	}
	return out
}

func clone[T any](entries []T) []T {
	out := make([]T, len(entries))
	copy(out, entries)
	return out
}

package compgraph

// Record is an unordered mapping from field name to a dynamically typed
// Value. A Record is cheap to copy by reference (a map header), but
// mappers and reducers must treat an incoming Record as if it were
// immutable unless they constructed it themselves in the current call —
// see Mapper's contract in mapper.go.
type Record map[string]Value

// Clone returns a shallow copy of r: a new map with the same field/Value
// pairs. Value itself has no shared mutable interior state, so a shallow
// copy is a full copy for every purpose the engine cares about.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Project returns a new Record containing only the named fields. Missing
// fields are silently omitted; ops.Project (the mapper built on top of
// this) is the one that enforces presence.
func (r Record) Project(names ...string) Record {
	out := make(Record, len(names))
	for _, n := range names {
		if v, ok := r[n]; ok {
			out[n] = v
		}
	}
	return out
}

// KeyTuple is an ordered sequence of field names used by Sort, Reduce and
// Join to compare and group records.
type KeyTuple []string

// Extract returns the values r carries at each name in k, in order. It
// returns a MissingFieldError wrapping the offending field name and record
// if any name in k is absent from r: a missing key field is a programming
// error that must fail loudly rather than being silently coerced into some
// sentinel value.
func (k KeyTuple) Extract(r Record) ([]Value, error) {
	values := make([]Value, len(k))
	for i, name := range k {
		v, ok := r[name]
		if !ok {
			return nil, &MissingFieldError{Field: name, Record: r}
		}
		values[i] = v
	}
	return values, nil
}

// Compare compares the key-tuple projections of a and b lexicographically,
// field by field, using each field's natural order (Value.Compare). It
// panics via Value.Compare if a and b disagree on a field's kind, and
// returns a MissingFieldError if either record lacks a key field.
func (k KeyTuple) Compare(a, b Record) (int, error) {
	av, err := k.Extract(a)
	if err != nil {
		return 0, err
	}
	bv, err := k.Extract(b)
	if err != nil {
		return 0, err
	}
	for i := range av {
		if c := av[i].Compare(bv[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// Equal reports whether a and b are key-equal under k: every named field
// carries an equal value in both records. An empty key tuple key-equals
// any two records, so reducing with an empty key tuple treats the entire
// input as a single group.
func (k KeyTuple) Equal(a, b Record) (bool, error) {
	c, err := k.Compare(a, b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

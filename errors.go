package compgraph

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is wrapped (via fmt.Errorf's %w) with the source name
// and returned when a graph bound with FromIter(name) is run and the
// NamedInputs passed to Run lacks that name. It fails at run start, before
// any record is touched.
var ErrSourceNotFound = errors.New("compgraph: source not found")

// MissingFieldError reports that a stage referenced a field absent from a
// record — a key-tuple projection, a mapper/reducer field access, or a
// join key. This is treated as a programming error, not a recoverable
// condition: the pipeline tears down and the error propagates.
type MissingFieldError struct {
	Field  string
	Record Record
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("compgraph: missing field %q in record %v", e.Field, e.Record)
}

// UnsortedInputError is raised only when ExecOptions.AssertSorted is set.
// The engine does not validate sortedness by default; this is an optional
// debug assertion. It reports two adjacent records, in the order Reduce or
// Join observed them, whose key-tuple projections are out of order.
type UnsortedInputError struct {
	Keys      KeyTuple
	Prev, Cur Record
}

func (e *UnsortedInputError) Error() string {
	return fmt.Sprintf("compgraph: input not sorted by %v: %v then %v", e.Keys, e.Prev, e.Cur)
}

// fileSourceError wraps an I/O failure from a file source with the path
// and the operation that failed, so the error carries enough context to
// diagnose without re-running the pipeline.
type fileSourceError struct {
	Path string
	Op   string
	Err  error
}

func (e *fileSourceError) Error() string {
	return fmt.Sprintf("compgraph: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *fileSourceError) Unwrap() error { return e.Err }

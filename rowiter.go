// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

// RowIter is a forward-only, single-pass, pull-based iterator over Record
// values — the in-memory shape of a streamed table. Its three-value Next
// (value, ok, error) collapses the separate Next/Record/Err triad used by
// RecordIterator-style designs into one call, which is all a cooperative-
// pull engine with no concurrent readers needs.
//
// Advancing the final consumer of a Graph pulls one record at a time back
// through the whole operator chain: no stage buffers its entire input
// unless its algorithm specifically requires it (Sort's runs, Join's
// right-hand group).
type RowIter interface {
	// Next returns the next row. ok is false when the iterator is
	// exhausted; err is non-nil when an underlying operation failed, in
	// which case ok is always false and no further calls to Next should
	// be made.
	Next() (row Record, ok bool, err error)
}

// Closer is implemented by RowIters that own a resource needing explicit
// release — a file handle, a set of spill files. The executor calls
// Close on every source and Sort stage it creates once the pipeline is
// fully drained or torn down early, whichever comes first (spec.md §5).
type Closer interface {
	Close() error
}

// closeIfCloser releases it's resources if it implements Closer.
func closeIfCloser(it RowIter) error {
	if c, ok := it.(Closer); ok {
		return c.Close()
	}
	return nil
}

// sliceIter is a RowIter over an in-memory slice of rows.
type sliceIter struct {
	rows []Record
	pos  int
}

// fromSlice returns a RowIter that yields rows in order and then stops.
func fromSlice(rows []Record) RowIter {
	return &sliceIter{rows: rows}
}

func (it *sliceIter) Next() (Record, bool, error) {
	if it.pos >= len(it.rows) {
		return nil, false, nil
	}
	row := it.rows[it.pos]
	it.pos++
	return row, true, nil
}

// drain pulls every remaining row out of it into a slice. It is the
// in-memory materialization Run performs at the end of execution. Sort and
// Join do their own buffering and do not call it.
func drain(it RowIter) ([]Record, error) {
	var rows []Record
	for {
		row, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}
}

// funcIter adapts a plain pull function into a RowIter, with an optional
// close callback.
type funcIter struct {
	next    func() (Record, bool, error)
	closeFn func() error
}

func (it *funcIter) Next() (Record, bool, error) { return it.next() }

func (it *funcIter) Close() error {
	if it.closeFn == nil {
		return nil
	}
	return it.closeFn()
}

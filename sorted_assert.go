package compgraph

// assertSortedIter wraps in and checks, as rows are pulled, that the key
// tuple never decreases between consecutive rows. It is inserted ahead of
// Reduce and Join only when ExecOptions.AssertSorted is set: the engine
// itself never validates sortedness on a normal run. The check keeps only
// the previous row and costs one key comparison per row.
type assertSortedIter struct {
	in   RowIter
	key  KeyTuple
	prev Record
	have bool
}

func newAssertSortedIter(in RowIter, key KeyTuple) RowIter {
	return &assertSortedIter{in: in, key: key}
}

func (it *assertSortedIter) Next() (Record, bool, error) {
	row, ok, err := it.in.Next()
	if err != nil || !ok {
		return nil, ok, err
	}
	if it.have {
		c, err := it.key.Compare(it.prev, row)
		if err != nil {
			return nil, false, err
		}
		if c > 0 {
			return nil, false, &UnsortedInputError{Keys: it.key, Prev: it.prev, Cur: row}
		}
	}
	it.prev = row
	it.have = true
	return row, true, nil
}

func (it *assertSortedIter) Close() error {
	return closeIfCloser(it.in)
}

package compgraph

// mapIter applies a Mapper to each row pulled from in, expanding one input
// row into the (possibly zero, possibly many) rows the Mapper emits before
// advancing to the next input row.
type mapIter struct {
	in     RowIter
	mapper Mapper

	pending []Record // rows emitted by the current Map call, not yet returned
	done    bool
}

func newMapIter(in RowIter, mapper Mapper) RowIter {
	return &mapIter{in: in, mapper: mapper}
}

func (it *mapIter) Next() (Record, bool, error) {
	for {
		if len(it.pending) > 0 {
			row := it.pending[0]
			it.pending = it.pending[1:]
			return row, true, nil
		}
		if it.done {
			return nil, false, nil
		}
		row, ok, err := it.in.Next()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			return nil, false, nil
		}
		if err := it.mapper.Map(row, func(out Record) error {
			it.pending = append(it.pending, out)
			return nil
		}); err != nil {
			return nil, false, err
		}
	}
}

func (it *mapIter) Close() error {
	return closeIfCloser(it.in)
}

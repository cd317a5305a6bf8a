package compgraph

// reduceIter groups consecutive rows of in that share the same key-tuple
// projection — a run-length grouping, which is why Reduce requires its
// input already sorted by key — and hands each group to a Reducer in
// turn.
type reduceIter struct {
	in      RowIter
	key     KeyTuple
	reducer Reducer

	started bool
	next    Record // first row of the next group, peeked by the previous groupIter
	nextOK  bool
	pending []Record
	done    bool
}

func newReduceIter(in RowIter, key KeyTuple, reducer Reducer) RowIter {
	return &reduceIter{in: in, key: key, reducer: reducer}
}

func (it *reduceIter) Next() (Record, bool, error) {
	for {
		if len(it.pending) > 0 {
			row := it.pending[0]
			it.pending = it.pending[1:]
			return row, true, nil
		}
		if it.done {
			return nil, false, nil
		}

		var first Record
		if !it.started {
			row, ok, err := it.in.Next()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				it.done = true
				return nil, false, nil
			}
			first = row
			it.started = true
		} else {
			if !it.nextOK {
				it.done = true
				return nil, false, nil
			}
			first = it.next
			it.nextOK = false
		}

		grp := &groupIter{parent: it, first: first}
		emitErr := it.reducer.Reduce(grp, func(r Record) error {
			it.pending = append(it.pending, r)
			return nil
		})
		if emitErr != nil {
			return nil, false, emitErr
		}
		if drainErr := grp.drainRest(); drainErr != nil {
			return nil, false, drainErr
		}
	}
}

func (it *reduceIter) Close() error {
	return closeIfCloser(it.in)
}

// groupIter is the RowIter a Reducer sees: it yields exactly one group's
// rows, starting from the already-pulled first row, and stops as soon as
// the key changes, stashing the first row of the next group back onto the
// parent reduceIter.
type groupIter struct {
	parent    *reduceIter
	first     Record
	firstUsed bool
	ended     bool
}

func (g *groupIter) Next() (Record, bool, error) {
	if g.ended {
		return nil, false, nil
	}
	if !g.firstUsed {
		g.firstUsed = true
		return g.first, true, nil
	}
	row, ok, err := g.parent.in.Next()
	if err != nil {
		g.ended = true
		return nil, false, err
	}
	if !ok {
		g.ended = true
		g.parent.nextOK = false
		return nil, false, nil
	}
	c, err := g.parent.key.Compare(g.first, row)
	if err != nil {
		g.ended = true
		return nil, false, err
	}
	if c != 0 {
		g.ended = true
		g.parent.next = row
		g.parent.nextOK = true
		return nil, false, nil
	}
	return row, true, nil
}

// drainRest consumes whatever rows of the group a Reducer left unread, so
// the parent reduceIter always knows where the next group starts
// regardless of whether the Reducer read every row itself.
func (g *groupIter) drainRest() error {
	for !g.ended {
		_, ok, err := g.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

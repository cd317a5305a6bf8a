package compgraph

// joinIter walks two sorted inputs in lockstep, grouping each side's
// consecutive same-key rows exactly as Reduce does, and hands every
// matched or unmatched group pair to a Joiner. The engine itself has no
// inner/outer/left/right policy: whenever at least one side has a group
// at the current key, it is delivered, and the Joiner decides whether an
// unmatched side produces output. The two sides may use different field
// names for their join keys (e.g. joining "user_id" against "id"), as
// long as corresponding positions hold comparable Value kinds.
//
// Only the right-hand group is materialized into a slice; the left-hand
// group is streamed to the Joiner one row at a time and drained of
// whatever the Joiner left unread once it returns. See Joiner's doc
// comment for why the two sides are treated asymmetrically.
type joinIter struct {
	left, right joinSide
	joiner      Joiner

	pending []Record
	done    bool
}

// joinSide is one input to a Join: its rows, the key tuple used to group
// them, and the one-row lookahead needed to detect a group boundary.
type joinSide struct {
	in   RowIter
	key  KeyTuple
	peek Record
	have bool
	eof  bool
}

func newJoinIter(left RowIter, leftKey KeyTuple, right RowIter, rightKey KeyTuple, joiner Joiner) RowIter {
	return &joinIter{
		left:   joinSide{in: left, key: leftKey},
		right:  joinSide{in: right, key: rightKey},
		joiner: joiner,
	}
}

func (s *joinSide) ensurePeek() error {
	if s.have || s.eof {
		return nil
	}
	row, ok, err := s.in.Next()
	if err != nil {
		return err
	}
	if !ok {
		s.eof = true
		return nil
	}
	s.peek = row
	s.have = true
	return nil
}

// pullGroup materializes every row sharing the already-peeked row's key,
// leaving the next group's first row peeked (or s.eof set). It is used
// for the right-hand side only, which a Joiner needs repeated access to.
func (s *joinSide) pullGroup() ([]Record, error) {
	if err := s.ensurePeek(); err != nil {
		return nil, err
	}
	if !s.have {
		return nil, nil
	}
	first := s.peek
	group := []Record{first}
	s.have = false
	for {
		row, ok, err := s.in.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			s.eof = true
			return group, nil
		}
		c, err := s.key.Compare(first, row)
		if err != nil {
			return nil, err
		}
		if c != 0 {
			s.peek = row
			s.have = true
			return group, nil
		}
		group = append(group, row)
	}
}

// streamGroup returns a joinGroupIter yielding this side's current group
// one row at a time, or nil if the side has no group at the current key.
// Unlike pullGroup, it never reads ahead past the rows the caller
// actually pulls: the left-hand side uses this so a large left-hand
// group is never buffered.
func (s *joinSide) streamGroup() (*joinGroupIter, error) {
	if err := s.ensurePeek(); err != nil {
		return nil, err
	}
	if !s.have {
		return nil, nil
	}
	first := s.peek
	s.have = false
	return &joinGroupIter{side: s, first: first}, nil
}

// joinGroupIter streams one joinSide group's rows lazily, starting from
// the already-peeked first row, and stops as soon as the key changes,
// stashing the next group's first row back onto the parent joinSide.
type joinGroupIter struct {
	side  *joinSide
	first Record
	used  bool
	ended bool
}

func (g *joinGroupIter) Next() (Record, bool, error) {
	if g.ended {
		return nil, false, nil
	}
	if !g.used {
		g.used = true
		return g.first, true, nil
	}
	row, ok, err := g.side.in.Next()
	if err != nil {
		g.ended = true
		return nil, false, err
	}
	if !ok {
		g.ended = true
		g.side.eof = true
		return nil, false, nil
	}
	c, err := g.side.key.Compare(g.first, row)
	if err != nil {
		g.ended = true
		return nil, false, err
	}
	if c != 0 {
		g.ended = true
		g.side.peek = row
		g.side.have = true
		return nil, false, nil
	}
	return row, true, nil
}

// drainRest consumes whatever rows of the group the Joiner left unread,
// so the parent joinIter always knows where the next group starts
// regardless of how much of the stream the Joiner actually pulled.
func (g *joinGroupIter) drainRest() error {
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

func (it *joinIter) Next() (Record, bool, error) {
	for {
		if len(it.pending) > 0 {
			row := it.pending[0]
			it.pending = it.pending[1:]
			return row, true, nil
		}
		if it.done {
			return nil, false, nil
		}
		if err := it.fill(); err != nil {
			return nil, false, err
		}
	}
}

// fill advances the walker by exactly one group-comparison step, per the
// sort-merge grouped-advance algorithm: deliver the matching pair on an
// equal key, or the present side paired with an empty group on the side
// that is behind, advancing only the side(s) just delivered.
func (it *joinIter) fill() error {
	if err := it.left.ensurePeek(); err != nil {
		return err
	}
	if err := it.right.ensurePeek(); err != nil {
		return err
	}

	switch {
	case !it.left.have && !it.right.have:
		it.done = true
		return nil

	case it.left.have && it.right.have:
		lv, err := it.left.key.Extract(it.left.peek)
		if err != nil {
			return err
		}
		rv, err := it.right.key.Extract(it.right.peek)
		if err != nil {
			return err
		}
		switch compareValueSlices(lv, rv) {
		case 0:
			lg, err := it.left.streamGroup()
			if err != nil {
				return err
			}
			rg, err := it.right.pullGroup()
			if err != nil {
				return err
			}
			return it.emit(lg, rg)
		case -1:
			lg, err := it.left.streamGroup()
			if err != nil {
				return err
			}
			return it.emit(lg, nil)
		default:
			rg, err := it.right.pullGroup()
			if err != nil {
				return err
			}
			return it.emit(nil, rg)
		}

	case it.left.have:
		lg, err := it.left.streamGroup()
		if err != nil {
			return err
		}
		return it.emit(lg, nil)

	default: // it.right.have
		rg, err := it.right.pullGroup()
		if err != nil {
			return err
		}
		return it.emit(nil, rg)
	}
}

// emit hands lg (the streamed left-hand group, or nil if the left side
// has none at this key) and rightRows (the materialized right-hand
// group) to the Joiner, then drains any rows of lg the Joiner left
// unread so the walker's position stays correct for the next group.
func (it *joinIter) emit(lg *joinGroupIter, rightRows []Record) error {
	var leftRows RowIter = emptyRowIter{}
	if lg != nil {
		leftRows = lg
	}
	err := it.joiner.Join(leftRows, rightRows, func(r Record) error {
		it.pending = append(it.pending, r)
		return nil
	})
	if err != nil {
		return err
	}
	if lg != nil {
		return lg.drainRest()
	}
	return nil
}

func (it *joinIter) Close() error {
	errL := closeIfCloser(it.left.in)
	errR := closeIfCloser(it.right.in)
	if errL != nil {
		return errL
	}
	return errR
}

// emptyRowIter is an already-exhausted RowIter, handed to Joiner as
// leftRows when the left side has no group at the current key.
type emptyRowIter struct{}

func (emptyRowIter) Next() (Record, bool, error) { return nil, false, nil }

// compareValueSlices compares two equal-length key projections
// lexicographically, field by field.
func compareValueSlices(a, b []Value) int {
	for i := range a {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return 0
}

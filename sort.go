package compgraph

import (
	"container/heap"
	"sort"

	"go.uber.org/zap"
)

// runRow pairs a row with the position it held in Sort's input. The
// sequence number is never part of the output; it exists only so the
// final k-way merge can break ties between equal keys in original input
// order, which is what makes Sort a stable sort across an arbitrary
// number of spilled runs rather than only within a single run.
type runRow struct {
	Seq int64
	Row Record
}

// runIter is the internal, sequence-number-carrying iterator Sort's runs
// (in-memory or spilled) present to the k-way merge. It is distinct from
// the public RowIter because the sequence number must survive a spill
// round-trip but must never reach a Mapper, Reducer or Joiner.
type runIter interface {
	next() (runRow, bool, error)
	close() error
}

// sliceRunIter is an in-memory run: the final batch, of at most
// MaxRowsPerRun rows, that never needed to spill.
type sliceRunIter struct {
	rows []runRow
	pos  int
}

func (r *sliceRunIter) next() (runRow, bool, error) {
	if r.pos >= len(r.rows) {
		return runRow{}, false, nil
	}
	row := r.rows[r.pos]
	r.pos++
	return row, true, nil
}

func (r *sliceRunIter) close() error { return nil }

// sortRunRows stable-sorts buf by key in place, so rows with equal keys
// keep their relative input order — required both for Sort's own
// stability guarantee and so a later Reduce sees a deterministic,
// reproducible row order within each group.
func sortRunRows(buf []runRow, key KeyTuple) error {
	s := &sortableRunRows{rows: buf, key: key}
	sort.Stable(s)
	return s.err
}

type sortableRunRows struct {
	rows []runRow
	key  KeyTuple
	err  error
}

func (s *sortableRunRows) Len() int      { return len(s.rows) }
func (s *sortableRunRows) Swap(i, j int) { s.rows[i], s.rows[j] = s.rows[j], s.rows[i] }
func (s *sortableRunRows) Less(i, j int) bool {
	if s.err != nil {
		return false
	}
	c, err := s.key.Compare(s.rows[i].Row, s.rows[j].Row)
	if err != nil {
		s.err = err
		return false
	}
	return c < 0
}

// sortIter is the external-sort operator: it accumulates rows from in up
// to SortOptions.MaxRowsPerRun, sorting and spilling each full batch to a
// temporary file as a run, then k-way merges every run (including the
// final in-memory one) in sorted order. An input of at most MaxRowsPerRun
// rows never spills at all.
type sortIter struct {
	in     RowIter
	key    KeyTuple
	opts   SortOptions
	logger *zap.Logger

	ready RowIter
	seq   int64
}

func newSortIter(in RowIter, key KeyTuple, opts SortOptions, log *zap.Logger) RowIter {
	return &sortIter{in: in, key: key, opts: opts.withDefaults(), logger: logger(log)}
}

func (it *sortIter) Next() (Record, bool, error) {
	if it.ready == nil {
		if err := it.produce(); err != nil {
			return nil, false, err
		}
	}
	return it.ready.Next()
}

func (it *sortIter) Close() error {
	errIn := closeIfCloser(it.in)
	var errReady error
	if it.ready != nil {
		errReady = closeIfCloser(it.ready)
	}
	if errIn != nil {
		return errIn
	}
	return errReady
}

func (it *sortIter) produce() error {
	var buf []runRow
	var runs []runIter
	for {
		row, ok, err := it.in.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if len(buf) >= it.opts.MaxRowsPerRun {
			if err := sortRunRows(buf, it.key); err != nil {
				return err
			}
			run, err := it.spillRun(buf)
			if err != nil {
				return err
			}
			runs = append(runs, run)
			buf = nil
		}
		buf = append(buf, runRow{Seq: it.seq, Row: row})
		it.seq++
	}
	if len(buf) > 0 || len(runs) == 0 {
		if err := sortRunRows(buf, it.key); err != nil {
			return err
		}
		runs = append(runs, &sliceRunIter{rows: buf})
	}
	it.logger.Debug("sort: produced runs", zap.Int("runCount", len(runs)))

	if len(runs) == 1 {
		it.ready = &runRowAdapter{inner: runs[0]}
	} else {
		it.ready = newMergeIter(runs, it.key)
	}
	return nil
}

func (it *sortIter) spillRun(buf []runRow) (runIter, error) {
	sf, err := createSpillFile(it.opts.SpillDir)
	if err != nil {
		return nil, err
	}
	for _, rr := range buf {
		if err := sf.write(rr); err != nil {
			return nil, err
		}
	}
	return sf.seal()
}

// runRowAdapter strips the sequence number from a single run, for the
// common case where Sort never spilled and no merge is needed.
type runRowAdapter struct {
	inner runIter
}

func (a *runRowAdapter) Next() (Record, bool, error) {
	rr, ok, err := a.inner.next()
	if err != nil || !ok {
		return nil, false, err
	}
	return rr.Row, true, nil
}

func (a *runRowAdapter) Close() error { return a.inner.close() }

// mergeIter performs a k-way merge of sorted runs using a min-heap keyed
// by (key tuple, sequence number), so equal keys resolve in original
// input order across run boundaries.
type mergeIter struct {
	runs []runIter
	h    *mergeHeap
	init bool
}

func newMergeIter(runs []runIter, key KeyTuple) *mergeIter {
	return &mergeIter{runs: runs, h: &mergeHeap{key: key}}
}

func (m *mergeIter) Next() (Record, bool, error) {
	if !m.init {
		for i, r := range m.runs {
			rr, ok, err := r.next()
			if err != nil {
				return nil, false, err
			}
			if ok {
				heap.Push(m.h, heapEntry{row: rr, run: i})
			}
		}
		m.init = true
	}
	if m.h.Len() == 0 {
		return nil, false, nil
	}
	top := heap.Pop(m.h).(heapEntry)
	if m.h.err != nil {
		return nil, false, m.h.err
	}
	next, ok, err := m.runs[top.run].next()
	if err != nil {
		return nil, false, err
	}
	if ok {
		heap.Push(m.h, heapEntry{row: next, run: top.run})
	}
	return top.row.Row, true, nil
}

func (m *mergeIter) Close() error {
	var first error
	for _, r := range m.runs {
		if err := r.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type heapEntry struct {
	row runRow
	run int
}

type mergeHeap struct {
	entries []heapEntry
	key     KeyTuple
	err     error
}

func (h *mergeHeap) Len() int      { return len(h.entries) }
func (h *mergeHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *mergeHeap) Less(i, j int) bool {
	if h.err != nil {
		return false
	}
	c, err := h.key.Compare(h.entries[i].row.Row, h.entries[j].row.Row)
	if err != nil {
		h.err = err
		return false
	}
	if c != 0 {
		return c < 0
	}
	return h.entries[i].row.Seq < h.entries[j].row.Seq
}
func (h *mergeHeap) Push(x any) { h.entries = append(h.entries, x.(heapEntry)) }
func (h *mergeHeap) Pop() any {
	n := len(h.entries)
	e := h.entries[n-1]
	h.entries = h.entries[:n-1]
	return e
}

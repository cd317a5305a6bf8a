package compgraph

import (
	"fmt"

	"go.uber.org/zap"
)

// NamedInputs binds the named sources a Graph was built with (via
// FromIter) to concrete data at run time. Each entry is a thunk rather
// than a ready iterator so the same Graph can be run repeatedly, or
// concurrently, against fresh streams each time — a Graph and its
// NamedInputs carry no shared mutable state between runs.
type NamedInputs map[string]func() RowIter

// Run resolves every named and file-backed source in g (and, recursively,
// in the right-hand side of every Join), threads the resulting stream
// through g's stages in the order they were built, and eagerly drains the
// final stage into an ordered slice. Two calls to Run against the same
// Graph with different NamedInputs are independent: nothing about the
// first run is visible to the second.
func (g *Graph) Run(inputs NamedInputs, opts ...ExecOptions) ([]Record, error) {
	var o ExecOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	log := logger(o.Logger)

	it, err := g.build(inputs, o, log)
	if err != nil {
		return nil, err
	}
	rows, drainErr := drain(it)
	closeErr := closeIfCloser(it)
	if drainErr != nil {
		return nil, drainErr
	}
	if closeErr != nil {
		return nil, closeErr
	}
	log.Debug("run: complete", zap.Int("rows", len(rows)), zap.Int("stages", len(g.stages)))
	return rows, nil
}

// build assembles g's pull-based iterator chain without running it: no
// row moves until the caller starts calling Next on the result.
func (g *Graph) build(inputs NamedInputs, o ExecOptions, log *zap.Logger) (RowIter, error) {
	var it RowIter
	for _, s := range g.stages {
		switch s.kind {
		case stageSource:
			src, err := buildSource(s, inputs)
			if err != nil {
				return nil, err
			}
			it = src

		case stageMap:
			it = newMapIter(it, s.mapper)

		case stageReduce:
			in := it
			if o.AssertSorted {
				in = newAssertSortedIter(in, s.reduceKey)
			}
			it = newReduceIter(in, s.reduceKey, s.reducer)

		case stageSort:
			sortOpts := o.Sort
			if s.sortOpts != nil {
				sortOpts = *s.sortOpts
			}
			it = newSortIter(it, s.sortKey, sortOpts, log)

		case stageJoin:
			rightIt, err := s.right.build(inputs, o, log)
			if err != nil {
				return nil, err
			}
			leftIn, rightIn := it, rightIt
			if o.AssertSorted {
				leftIn = newAssertSortedIter(leftIn, s.joinLeftKey)
				rightIn = newAssertSortedIter(rightIn, s.joinRightKey)
			}
			it = newJoinIter(leftIn, s.joinLeftKey, rightIn, s.joinRightKey, s.joiner)

		default:
			return nil, fmt.Errorf("compgraph: unknown stage %v", s.describe())
		}
	}
	return it, nil
}

func buildSource(s stage, inputs NamedInputs) (RowIter, error) {
	if s.sourceFile != "" {
		return newFileIter(s.sourceFile, s.sourceParser), nil
	}
	thunk, ok := inputs[s.sourceName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, s.sourceName)
	}
	return thunk(), nil
}

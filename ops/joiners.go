package ops

import (
	"golang.org/x/exp/maps"

	"github.com/kazuhito-oss/compgraph"
)

// JoinSuffixes names the suffixes appended to a non-key field present on
// both sides of a matched join pair. The zero value selects "_1"/"_2",
// the defaults used throughout this package's constructors.
type JoinSuffixes struct {
	Left, Right string
}

func (s JoinSuffixes) withDefaults() JoinSuffixes {
	if s.Left == "" {
		s.Left = "_1"
	}
	if s.Right == "" {
		s.Right = "_2"
	}
	return s
}

// collidingFields returns the non-key field names that left and right both
// carry: the fields mergeRow must suffix rather than merge. The original
// this package is modeled on computes this set once per matched group, from
// its first row pair, and reuses it for every pair in the group's cross
// product rather than recomputing it row by row; we do the same, via
// crossProduct, so a field that happens to be absent from a later row in
// the group does not change that row's suffixing relative to its peers.
func collidingFields(key compgraph.KeyTuple, left, right compgraph.Record) map[string]bool {
	keyNames := make(map[string]bool, len(key))
	for _, k := range key {
		keyNames[k] = true
	}
	collide := make(map[string]bool)
	for name := range left {
		if keyNames[name] {
			continue
		}
		if _, ok := right[name]; ok {
			collide[name] = true
		}
	}
	return collide
}

// mergeRow combines one left row with one right row under a shared key
// tuple: key fields are taken once (never suffixed), and every field in
// collide is emitted twice, under suff's suffixes.
func mergeRow(key compgraph.KeyTuple, left, right compgraph.Record, collide map[string]bool, suff JoinSuffixes) compgraph.Record {
	keyNames := make(map[string]bool, len(key))
	for _, k := range key {
		keyNames[k] = true
	}

	out := maps.Clone(left)
	if out == nil {
		out = make(compgraph.Record, len(right))
	}
	for name := range collide {
		if lv, ok := left[name]; ok {
			delete(out, name)
			out[name+suff.Left] = lv
		}
	}
	for name, rv := range right {
		if keyNames[name] {
			if _, ok := out[name]; !ok {
				out[name] = rv
			}
			continue
		}
		if collide[name] {
			out[name+suff.Right] = rv
		} else {
			out[name] = rv
		}
	}
	return out
}

// crossProduct merges every row pulled from left with every row of right
// under suff and emits the result. left is read exactly once, start to
// finish, so the caller's leftRows is never buffered beyond the one row
// crossProduct is currently merging; right, already materialized by the
// engine, is read once per left row. It is the shared core of every
// standard joiner's matched-group behavior.
func crossProduct(key compgraph.KeyTuple, left compgraph.RowIter, right []compgraph.Record, suff JoinSuffixes, emit func(compgraph.Record) error) error {
	var collide map[string]bool
	for {
		l, ok, err := left.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		for _, r := range right {
			if collide == nil {
				collide = collidingFields(key, l, r)
			}
			if err := emit(mergeRow(key, l, r, collide, suff)); err != nil {
				return err
			}
		}
	}
}

// emitAll emits every row of rows verbatim.
func emitAll(rows []compgraph.Record, emit func(compgraph.Record) error) error {
	for _, r := range rows {
		if err := emit(r); err != nil {
			return err
		}
	}
	return nil
}

// emitAllIter streams rows through to emit verbatim, one row at a time,
// without ever buffering more than the row currently in hand.
func emitAllIter(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
	for {
		row, ok, err := rows.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := emit(row); err != nil {
			return err
		}
	}
}

// prependIter yields first, then every row of rest — used to put a row
// pulled off a RowIter back in front of it after peeking.
type prependIter struct {
	first     compgraph.Record
	firstUsed bool
	rest      compgraph.RowIter
}

func (p *prependIter) Next() (compgraph.Record, bool, error) {
	if !p.firstUsed {
		p.firstUsed = true
		return p.first, true, nil
	}
	return p.rest.Next()
}

// peekLeft reports whether leftRows has at least one row, returning a
// RowIter that still yields every row of leftRows exactly once (including
// the one pulled to answer the question).
func peekLeft(leftRows compgraph.RowIter) (empty bool, rows compgraph.RowIter, err error) {
	row, ok, err := leftRows.Next()
	if err != nil {
		return false, leftRows, err
	}
	if !ok {
		return true, leftRows, nil
	}
	return false, &prependIter{first: row, rest: leftRows}, nil
}

// InnerJoiner emits the cross product of left and right only when both
// groups are non-empty; an unmatched group on either side produces
// nothing.
func InnerJoiner(key compgraph.KeyTuple, suffixes ...JoinSuffixes) compgraph.Joiner {
	suff := suffixesOrDefault(suffixes).withDefaults()
	return compgraph.JoinerFunc(func(leftRows compgraph.RowIter, right []compgraph.Record, emit func(compgraph.Record) error) error {
		if len(right) == 0 {
			return nil
		}
		return crossProduct(key, leftRows, right, suff, emit)
	})
}

// OuterJoiner emits the cross product when both groups are present, and
// the present side's rows verbatim when the other side is empty.
func OuterJoiner(key compgraph.KeyTuple, suffixes ...JoinSuffixes) compgraph.Joiner {
	suff := suffixesOrDefault(suffixes).withDefaults()
	return compgraph.JoinerFunc(func(leftRows compgraph.RowIter, right []compgraph.Record, emit func(compgraph.Record) error) error {
		empty, leftRows, err := peekLeft(leftRows)
		if err != nil {
			return err
		}
		switch {
		case empty:
			return emitAll(right, emit)
		case len(right) == 0:
			return emitAllIter(leftRows, emit)
		default:
			return crossProduct(key, leftRows, right, suff, emit)
		}
	})
}

// LeftJoiner emits the cross product when the right group is present,
// the left group verbatim when the right group is empty, and nothing
// when the left group itself is empty.
func LeftJoiner(key compgraph.KeyTuple, suffixes ...JoinSuffixes) compgraph.Joiner {
	suff := suffixesOrDefault(suffixes).withDefaults()
	return compgraph.JoinerFunc(func(leftRows compgraph.RowIter, right []compgraph.Record, emit func(compgraph.Record) error) error {
		if len(right) == 0 {
			return emitAllIter(leftRows, emit)
		}
		return crossProduct(key, leftRows, right, suff, emit)
	})
}

// RightJoiner is the mirror of LeftJoiner.
func RightJoiner(key compgraph.KeyTuple, suffixes ...JoinSuffixes) compgraph.Joiner {
	suff := suffixesOrDefault(suffixes).withDefaults()
	return compgraph.JoinerFunc(func(leftRows compgraph.RowIter, right []compgraph.Record, emit func(compgraph.Record) error) error {
		if len(right) == 0 {
			return nil
		}
		empty, leftRows, err := peekLeft(leftRows)
		if err != nil {
			return err
		}
		if empty {
			return emitAll(right, emit)
		}
		return crossProduct(key, leftRows, right, suff, emit)
	})
}

func suffixesOrDefault(suffixes []JoinSuffixes) JoinSuffixes {
	if len(suffixes) > 0 {
		return suffixes[0]
	}
	return JoinSuffixes{}
}

// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "github.com/kazuhito-oss/compgraph/function"

// Collector is a mutable reduction operation that accumulates a group of
// rows into a mutable result container and then finishes it into a result
// value. The standard reducers in package ops build on Collector instead of
// each hand-rolling their own accumulation loop.
//
// Unlike a parallel-stream collector, Collector has no Combiner: compgraph
// groups are always consumed by a single goroutine in a single pass (see
// the concurrency notes in doc.go), so there is never a partial result to
// merge.
type Collector[T, A, R any] struct {
	supplier    function.Supplier[A]
	accumulator function.BiConsumer[A, T]
	finisher    function.Function[A, R]
}

// NewCollector builds a Collector from its three constituent functions.
func NewCollector[T, A, R any](
	supplier function.Supplier[A],
	accumulator function.BiConsumer[A, T],
	finisher function.Function[A, R],
) *Collector[T, A, R] {
	return &Collector[T, A, R]{supplier, accumulator, finisher}
}

// Supplier creates and returns a new mutable result container.
func (c *Collector[T, A, R]) Supplier() function.Supplier[A] {
	return c.supplier
}

// Accumulator folds a value into the mutable result container.
func (c *Collector[T, A, R]) Accumulator() function.BiConsumer[A, T] {
	return c.accumulator
}

// Finisher performs the final transformation from the intermediate
// accumulation type A to the result type R.
func (c *Collector[T, A, R]) Finisher() function.Function[A, R] {
	return c.finisher
}

// Collect drains every row from rows, accumulating each into a container
// produced by c's supplier, and returns the finished result.
func Collect[A, R any](rows RowIter, c *Collector[Record, A, R]) (R, error) {
	acc := c.supplier()
	for {
		row, ok, err := rows.Next()
		if err != nil {
			var zero R
			return zero, err
		}
		if !ok {
			break
		}
		c.accumulator(acc, row)
	}
	return c.finisher(acc), nil
}

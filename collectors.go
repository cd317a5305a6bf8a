// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "github.com/kazuhito-oss/compgraph/function"

// numeric is satisfied by the two numeric Go types the standard reducers
// in package ops accumulate into (columns hold either int64 or float64
// Values — see value.go).
type numeric interface {
	~int64 | ~float64
}

// ToSliceCollector returns a Collector that accumulates a group's rows
// into a slice, in the order they were delivered.
func ToSliceCollector[T any]() *Collector[T, *[]T, []T] {
	return NewCollector[T, *[]T, []T](
		func() *[]T {
			var t []T
			return &t
		},
		func(acc *[]T, t T) {
			*acc = append(*acc, t)
		},
		func(acc *[]T) []T {
			return *acc
		},
	)
}

// SummingCollector returns a Collector that sums a numeric projection of
// each row. If no rows are present, the result is the zero value.
func SummingCollector[T any, R numeric](mapper function.Function[T, R]) *Collector[T, *R, R] {
	return NewCollector[T, *R, R](
		func() *R { return new(R) },
		func(acc *R, t T) { *acc += mapper(t) },
		func(acc *R) R { return *acc },
	)
}

// CountingCollector returns a Collector that counts the rows in a group.
func CountingCollector[T any]() *Collector[T, *int64, int64] {
	return SummingCollector[T, int64](func(T) int64 { return 1 })
}

// AveragingFloat64Collector returns a Collector computing the arithmetic
// mean of a float64 projection of each row, using Kahan compensated
// summation so long groups don't accumulate rounding error. If no rows are
// present, the result is 0.
func AveragingFloat64Collector[T any](mapper function.Function[T, float64]) *Collector[T, *[3]float64, float64] {
	return NewCollector[T, *[3]float64, float64](
		func() *[3]float64 { return new([3]float64) },
		func(acc *[3]float64, t T) {
			val := mapper(t)
			// acc[0] holds the running sum, acc[1] the compensation term,
			// acc[2] the row count.
			y := val - acc[1]
			sum := acc[0] + y
			acc[1] = (sum - acc[0]) - y
			acc[0] = sum
			acc[2]++
		},
		func(acc *[3]float64) float64 {
			if acc[2] == 0 {
				return 0
			}
			return acc[0] / acc[2]
		},
	)
}

// ReducingCollector returns a Collector performing a left fold over a
// group's rows under op, starting from identity.
func ReducingCollector[T any](identity T, op function.BinaryOperator[T]) *Collector[T, *T, T] {
	return NewCollector[T, *T, T](
		func() *T {
			v := identity
			return &v
		},
		func(acc *T, t T) { *acc = op(*acc, t) },
		func(acc *T) T { return *acc },
	)
}

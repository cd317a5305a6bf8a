// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"fmt"

	"github.com/kazuhito-oss/compgraph/function"
)

// Optional is a container object which may or may not contain a value. If
// a value is present, IsPresent reports true; otherwise the object is
// considered empty. The zero Optional is an empty object ready to use.
// TermFrequency, Count and SafeCount in package ops use Optional to track
// "have we seen the group's first row yet" instead of a separate bool.
type Optional[T any] struct {
	value   T
	present bool
}

// OptionalOf returns an Optional describing the given value.
func OptionalOf[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// OptionalEmpty returns an empty Optional.
func OptionalEmpty[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value if it is present. Otherwise, Get panics.
func (o Optional[T]) Get() T {
	if o.present {
		return o.value
	}
	panic("compgraph: Optional value is not present")
}

// IsPresent reports whether a value is present.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsEmpty reports whether no value is present.
func (o Optional[T]) IsEmpty() bool {
	return !o.present
}

// IfPresent performs action with the value if present, otherwise does
// nothing.
func (o Optional[T]) IfPresent(action function.Consumer[T]) {
	if o.present {
		action(o.value)
	}
}

// OrElse returns the value if present, otherwise other.
func (o Optional[T]) OrElse(other T) T {
	if o.present {
		return o.value
	}
	return other
}

// OrElseGet returns the value if present, otherwise the result of supplier.
func (o Optional[T]) OrElseGet(supplier function.Supplier[T]) T {
	if o.present {
		return o.value
	}
	return supplier()
}

// String returns a debugging representation of o.
func (o Optional[T]) String() string {
	if o.present {
		return fmt.Sprintf("Optional[%v]", o.value)
	}
	return "Optional.empty"
}

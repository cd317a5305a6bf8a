package compgraph

// Reducer consumes one run-length group of rows — every row sharing the
// same key-tuple projection, delivered contiguously by the Reduce operator
// — and emits zero or more output rows for that group. Reduce itself never
// interprets the rows; it only slices the input into groups and hands each
// group's rows to Reduce, one group at a time, in a fresh call.
//
// rows yields exactly the group's rows, in input order, and is exhausted
// (Next returns ok == false) once the group ends: a Reducer must not call
// Next again after that and must not retain rows past the call. Reduce may
// be called many times over the life of a pipeline, once per distinct key.
type Reducer interface {
	Reduce(rows RowIter, emit func(Record) error) error
}

// ReducerFunc adapts a plain function to the Reducer interface.
type ReducerFunc func(rows RowIter, emit func(Record) error) error

func (f ReducerFunc) Reduce(rows RowIter, emit func(Record) error) error {
	return f(rows, emit)
}

package compgraph

// Mapper transforms a single input row into zero, one, or several output
// rows. A Mapper must not retain or mutate the Record it is given: if it
// wants to derive a new record from the input, it should build a fresh one
// (or call Record.Clone) rather than writing into row in place, since the
// same underlying map may still be referenced by an upstream stage.
//
// Emit may be called any number of times during a single Map call,
// including zero times (to drop a row) or more than once (to expand one
// row into several, e.g. tokenizing a line of text into words). Emit
// returns an error if a downstream stage failed; a Mapper should stop and
// propagate that error rather than continuing to call Emit.
type Mapper interface {
	Map(row Record, emit func(Record) error) error
}

// MapperFunc adapts a plain function to the Mapper interface.
type MapperFunc func(row Record, emit func(Record) error) error

func (f MapperFunc) Map(row Record, emit func(Record) error) error {
	return f(row, emit)
}

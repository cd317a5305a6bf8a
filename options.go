package compgraph

import "go.uber.org/zap"

// SortOptions configures the external-sort operator.
type SortOptions struct {
	// MaxRowsPerRun caps how many rows Sort accumulates in memory. When
	// the batch is full and more input remains, Sort sorts the batch and
	// spills it to a temporary file as a run to be merged later. Zero
	// selects DefaultMaxRowsPerRun.
	MaxRowsPerRun int

	// SpillDir is the directory spill files are created in. Empty
	// selects the OS temporary directory (os.TempDir).
	SpillDir string
}

// DefaultMaxRowsPerRun is used when SortOptions.MaxRowsPerRun is zero.
const DefaultMaxRowsPerRun = 1 << 20

func (o SortOptions) withDefaults() SortOptions {
	if o.MaxRowsPerRun <= 0 {
		o.MaxRowsPerRun = DefaultMaxRowsPerRun
	}
	return o
}

// ExecOptions configures a single Graph.Run.
type ExecOptions struct {
	// AssertSorted inserts a debug check ahead of every Reduce and Join
	// stage verifying its input arrives in non-decreasing key order,
	// returning an UnsortedInputError instead of producing silently
	// wrong groupings. It costs an extra comparison per row and is
	// intended for development and tests, not production runs.
	AssertSorted bool

	// Sort carries the defaults applied to every Sort stage in the
	// graph that did not specify its own SortOptions.
	Sort SortOptions

	// Logger receives structured diagnostics for the run, at Debug level:
	// how many runs each Sort produced, and the row and stage counts of a
	// completed run. A nil Logger is treated as zap.NewNop().
	Logger *zap.Logger
}

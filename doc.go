/*
Package compgraph is a declarative computational-graph library for batch
table transformations.

A Graph describes a pipeline over streams of schema-less records — each
record a map[string]Value — using a small algebra of operators: Map,
Reduce, Sort and Join. Building a Graph performs no I/O; it only records
the stage chain. Run binds the graph's named sources to concrete data and
drives the pipeline to completion:

	wordCounts := compgraph.FromIter("lines").
		Map(splitWords).
		Sort(compgraph.KeyTuple{"word"}).
		Reduce(compgraph.KeyTuple{"word"}, countReducer)

	rows, err := wordCounts.Run(compgraph.NamedInputs{
		"lines": func() compgraph.RowIter { return linesFromSlice(input) },
	})

Concurrency. Every stage is a single-threaded, pull-based RowIter: calling
Next on the final stage pulls exactly one record at a time back through
the whole chain, and no stage buffers more of its input than its own
algorithm requires (Sort's runs, Join's right-hand group). Nothing in this
package starts a goroutine or reads from a channel; the RowIters a Run
builds are not safe for concurrent use by more than one goroutine at a
time, the same way a bufio.Scanner is not. A Graph itself is never
mutated, and each Run builds its own RowIters.

Reduce and Join require their inputs already grouped by key — typically by
a preceding Sort — since both rely on a run-length grouping of
consecutive, equal-key rows rather than building a hash table. Graph.Run
accepts an ExecOptions.AssertSorted debug flag that inserts a check ahead
of every Reduce and Join verifying that invariant at the cost of an extra
comparison per row.

Subpackage function holds the generic function types that Collector and
Optional are built from; Mapper, Reducer and Joiner do not use them and
adapt plain functions via MapperFunc/ReducerFunc/JoinerFunc instead.
Subpackages ops and algorithms build on this package: ops is a library of
ready-made mappers, reducers and joiners, and algorithms assembles them
into complete worked graphs (word count, an inverted index with TF-IDF
scoring, pointwise mutual information, and average speed by weekday and
hour).
*/
package compgraph

package compgraph

import "fmt"

// stageKind identifies which operation a stage node performs.
type stageKind int

const (
	stageSource stageKind = iota
	stageMap
	stageReduce
	stageSort
	stageJoin
)

// stage is one node in a Graph's linear pipeline description. A Graph is
// a chain of stages ending in the stage that produced it; Join is the one
// stage that also references a second, independent Graph (its right-hand
// side) rather than only its upstream stage.
type stage struct {
	kind stageKind

	// stageSource
	sourceName   string // set when the source is a named input bound at Run time
	sourceFile   string // set when the source reads from a file
	sourceParser FileParser

	// stageMap
	mapper Mapper

	// stageReduce
	reduceKey KeyTuple
	reducer   Reducer

	// stageSort
	sortKey  KeyTuple
	sortOpts *SortOptions // nil selects ExecOptions.Sort

	// stageJoin
	joinLeftKey  KeyTuple
	joinRightKey KeyTuple
	joiner       Joiner
	right        *Graph
}

// Graph is an immutable, chainable description of a batch pipeline: a
// sequence of Map, Reduce, Sort and Join operations rooted at a named or
// file-backed source. Building a Graph performs no I/O and touches no
// rows; every method returns a new Graph value, leaving the receiver
// untouched, so a partially built Graph can be reused as the common
// prefix of several different pipelines. Run is what actually executes
// it.
type Graph struct {
	stages []stage
}

// FromIter roots a new Graph at a named input resolved at Run time from
// the NamedInputs map passed to Run. The same Graph can be run against
// different concrete inputs simply by passing different NamedInputs.
func FromIter(name string) *Graph {
	return &Graph{stages: []stage{{kind: stageSource, sourceName: name}}}
}

// FromFile roots a new Graph at a file, parsed by parser into Records as
// it is read.
func FromFile(path string, parser FileParser) *Graph {
	return &Graph{stages: []stage{{kind: stageSource, sourceFile: path, sourceParser: parser}}}
}

// clone returns a Graph holding a fresh copy of g's stage slice, with room
// for one more stage, so appending one further stage never mutates g or
// any other Graph derived from it.
func (g *Graph) clone() *Graph {
	stages := make([]stage, len(g.stages), len(g.stages)+1)
	copy(stages, g.stages)
	return &Graph{stages: stages}
}

// Map appends a Map stage applying m to every row.
func (g *Graph) Map(m Mapper) *Graph {
	out := g.clone()
	out.stages = append(out.stages, stage{kind: stageMap, mapper: m})
	return out
}

// Reduce appends a Reduce stage. The Graph's output up to this point must
// already be sorted by key (typically via a preceding Sort(key)); Reduce
// groups consecutive rows sharing key's projection and hands each group to
// r.
func (g *Graph) Reduce(key KeyTuple, r Reducer) *Graph {
	out := g.clone()
	out.stages = append(out.stages, stage{kind: stageReduce, reduceKey: key, reducer: r})
	return out
}

// Sort appends a Sort stage ordering rows by key, using opts if given or
// the Run's ExecOptions.Sort otherwise.
func (g *Graph) Sort(key KeyTuple, opts ...SortOptions) *Graph {
	out := g.clone()
	s := stage{kind: stageSort, sortKey: key}
	if len(opts) > 0 {
		o := opts[0]
		s.sortOpts = &o
	}
	out.stages = append(out.stages, s)
	return out
}

// Join appends a Join stage pairing g's rows (the left side, already
// sorted by leftKey) with right's rows (sorted by rightKey), using j to
// combine matched groups and to decide, per j's own policy, what an
// unmatched group on either side produces. right is captured by value: it
// is re-executed from its own sources every time the resulting Graph is
// run, independently of the left side.
func (g *Graph) Join(leftKey KeyTuple, right *Graph, rightKey KeyTuple, j Joiner) *Graph {
	out := g.clone()
	out.stages = append(out.stages, stage{
		kind:         stageJoin,
		joinLeftKey:  leftKey,
		joinRightKey: rightKey,
		joiner:       j,
		right:        right,
	})
	return out
}

func (s stage) describe() string {
	switch s.kind {
	case stageSource:
		if s.sourceFile != "" {
			return fmt.Sprintf("source(file=%s)", s.sourceFile)
		}
		return fmt.Sprintf("source(name=%s)", s.sourceName)
	case stageMap:
		return "map"
	case stageReduce:
		return fmt.Sprintf("reduce(%v)", s.reduceKey)
	case stageSort:
		return fmt.Sprintf("sort(%v)", s.sortKey)
	case stageJoin:
		return fmt.Sprintf("join(%v=%v)", s.joinLeftKey, s.joinRightKey)
	default:
		return "?"
	}
}

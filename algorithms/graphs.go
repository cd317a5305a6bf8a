// Package algorithms assembles the standard mappers and reducers of
// package ops into complete, reusable Graphs: word counting, TF-IDF,
// pointwise mutual information, and average speed by weekday and hour.
// Each constructor only builds the Graph; nothing runs until the caller
// passes it to Run.
package algorithms

import (
	"github.com/kazuhito-oss/compgraph"
	"github.com/kazuhito-oss/compgraph/ops"
)

// WordCount builds a Graph counting occurrences of each word in
// textColumn across every row of the named input, sorted by ascending
// count and then word.
func WordCount(inputName, textColumn, countColumn string) *compgraph.Graph {
	return compgraph.FromIter(inputName).
		Map(ops.FilterPunctuation(textColumn)).
		Map(ops.LowerCase(textColumn)).
		Map(ops.Split(textColumn, "")).
		Sort(compgraph.KeyTuple{textColumn}).
		Reduce(compgraph.KeyTuple{textColumn}, ops.Count(compgraph.KeyTuple{textColumn}, countColumn)).
		Sort(compgraph.KeyTuple{countColumn, textColumn})
}

// InvertedIndex builds a Graph computing, for every (document, word)
// pair in the named input, the word's TF-IDF score, keeping for each word
// only the 3 documents with the highest score.
func InvertedIndex(inputName, docColumn, textColumn, resultColumn string) *compgraph.Graph {
	wordGraph := compgraph.FromIter(inputName).
		Map(ops.FilterPunctuation(textColumn)).
		Map(ops.LowerCase(textColumn)).
		Map(ops.Split(textColumn, ""))

	countGraph := compgraph.FromIter(inputName).
		Reduce(compgraph.KeyTuple{}, ops.Count(compgraph.KeyTuple{}, "doc_count"))

	idfGraph := wordGraph.
		Sort(compgraph.KeyTuple{docColumn, textColumn}).
		Reduce(compgraph.KeyTuple{docColumn, textColumn}, ops.FirstReducer()).
		Sort(compgraph.KeyTuple{textColumn}).
		Reduce(compgraph.KeyTuple{textColumn}, ops.Count(compgraph.KeyTuple{textColumn}, "num_word_entries")).
		Join(compgraph.KeyTuple{}, countGraph, compgraph.KeyTuple{}, ops.InnerJoiner(compgraph.KeyTuple{})).
		Map(ops.Idf("doc_count", "num_word_entries", textColumn, "idf")).
		Sort(compgraph.KeyTuple{textColumn})

	tfGraph := wordGraph.
		Sort(compgraph.KeyTuple{docColumn}).
		Reduce(compgraph.KeyTuple{docColumn}, ops.TermFrequency(compgraph.KeyTuple{docColumn}, textColumn, "tf")).
		Sort(compgraph.KeyTuple{textColumn})

	return tfGraph.
		Join(compgraph.KeyTuple{textColumn}, idfGraph, compgraph.KeyTuple{textColumn}, ops.InnerJoiner(compgraph.KeyTuple{textColumn})).
		Map(ops.Product([]string{"tf", "idf"}, resultColumn)).
		Map(ops.Project(resultColumn, docColumn, textColumn)).
		Sort(compgraph.KeyTuple{textColumn}).
		Reduce(compgraph.KeyTuple{textColumn}, ops.TopN(resultColumn, 3))
}

// PMI builds a Graph giving, for each document in the named input, the
// top 10 words (longer than 4 characters, appearing at least twice in
// that document) ranked by pointwise mutual information against the
// whole corpus.
func PMI(inputName, docColumn, textColumn, resultColumn string) *compgraph.Graph {
	wordGraph := compgraph.FromIter(inputName).
		Map(ops.FilterPunctuation(textColumn)).
		Map(ops.LowerCase(textColumn)).
		Map(ops.Split(textColumn, "")).
		Map(ops.Filter(func(row compgraph.Record) bool {
			return len(row[textColumn].AsString()) > 4
		})).
		Sort(compgraph.KeyTuple{docColumn, textColumn}).
		Reduce(compgraph.KeyTuple{docColumn, textColumn}, ops.SafeCount(compgraph.KeyTuple{docColumn, textColumn}, "num_entries")).
		Map(ops.Filter(func(row compgraph.Record) bool {
			return row["num_entries"].AsInt() >= 2
		}))

	tfGraph := wordGraph.
		Sort(compgraph.KeyTuple{docColumn}).
		Reduce(compgraph.KeyTuple{docColumn}, ops.TermFrequency(compgraph.KeyTuple{docColumn}, textColumn, "tf")).
		Sort(compgraph.KeyTuple{textColumn})

	tfGraphTotal := wordGraph.
		Reduce(compgraph.KeyTuple{}, ops.TermFrequency(compgraph.KeyTuple{}, textColumn, "tf_total")).
		Sort(compgraph.KeyTuple{textColumn})

	return tfGraph.
		Join(compgraph.KeyTuple{textColumn}, tfGraphTotal, compgraph.KeyTuple{textColumn}, ops.InnerJoiner(compgraph.KeyTuple{textColumn})).
		Map(ops.Pmi("tf", "tf_total", resultColumn)).
		Map(ops.Project(docColumn, textColumn, resultColumn)).
		Sort(compgraph.KeyTuple{docColumn}).
		Reduce(compgraph.KeyTuple{docColumn}, ops.TopN(resultColumn, 10))
}

// MapSpeedConfig names the columns MapSpeed reads and writes. The zero
// value selects the same defaults as the graph this package is modeled
// on.
type MapSpeedConfig struct {
	EnterTimeColumn, LeaveTimeColumn string
	EdgeIDColumn                     string
	StartCoordColumn, EndCoordColumn string
	WeekdayColumn, HourColumn        string
	SpeedColumn                      string
}

func (c MapSpeedConfig) withDefaults() MapSpeedConfig {
	if c.EnterTimeColumn == "" {
		c.EnterTimeColumn = "enter_time"
	}
	if c.LeaveTimeColumn == "" {
		c.LeaveTimeColumn = "leave_time"
	}
	if c.EdgeIDColumn == "" {
		c.EdgeIDColumn = "edge_id"
	}
	if c.StartCoordColumn == "" {
		c.StartCoordColumn = "start"
	}
	if c.EndCoordColumn == "" {
		c.EndCoordColumn = "end"
	}
	if c.WeekdayColumn == "" {
		c.WeekdayColumn = "weekday"
	}
	if c.HourColumn == "" {
		c.HourColumn = "hour"
	}
	if c.SpeedColumn == "" {
		c.SpeedColumn = "speed"
	}
	return c
}

// MapSpeed builds a Graph measuring average speed in kilometres per hour,
// bucketed by weekday and hour of day, from two named inputs: one
// carrying trip enter/leave timestamps per edge, the other carrying each
// edge's start/end coordinates.
func MapSpeed(timeInputName, lengthInputName string, cfg MapSpeedConfig) *compgraph.Graph {
	cfg = cfg.withDefaults()

	length := compgraph.FromIter(lengthInputName).
		Map(ops.Length(cfg.StartCoordColumn, cfg.EndCoordColumn, "length")).
		Sort(compgraph.KeyTuple{cfg.EdgeIDColumn})

	time := compgraph.FromIter(timeInputName).
		Map(ops.ProcessTime(cfg.EnterTimeColumn, cfg.LeaveTimeColumn, "time", cfg.WeekdayColumn, cfg.HourColumn)).
		Sort(compgraph.KeyTuple{cfg.EdgeIDColumn}).
		Join(compgraph.KeyTuple{cfg.EdgeIDColumn}, length, compgraph.KeyTuple{cfg.EdgeIDColumn}, ops.InnerJoiner(compgraph.KeyTuple{cfg.EdgeIDColumn})).
		Sort(compgraph.KeyTuple{cfg.WeekdayColumn, cfg.HourColumn}).
		Reduce(compgraph.KeyTuple{cfg.WeekdayColumn, cfg.HourColumn}, ops.MultipleSum(compgraph.KeyTuple{cfg.WeekdayColumn, cfg.HourColumn}, "time", "length"))

	return time.
		Map(ops.Speed("length", "time", cfg.SpeedColumn)).
		Map(ops.Project(cfg.WeekdayColumn, cfg.HourColumn, cfg.SpeedColumn)).
		Sort(compgraph.KeyTuple{cfg.WeekdayColumn, cfg.HourColumn})
}

package ops

import (
	"sort"

	"github.com/kazuhito-oss/compgraph"
)

// FirstReducer yields only the first row of each group.
func FirstReducer() compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		row, ok, err := rows.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return emit(row)
	})
}

// fieldCheckIter wraps a RowIter, failing with a MissingFieldError the
// moment a row lacking column is pulled, so a Collector built on top never
// has to account for that failure itself.
type fieldCheckIter struct {
	in     compgraph.RowIter
	column string
}

func (it *fieldCheckIter) Next() (compgraph.Record, bool, error) {
	row, ok, err := it.in.Next()
	if err != nil || !ok {
		return row, ok, err
	}
	if _, has := row[it.column]; !has {
		return nil, false, &compgraph.MissingFieldError{Field: it.column, Record: row}
	}
	return row, true, nil
}

// numericCheckIter wraps a RowIter, failing the moment a row's value in
// any of columns is missing or non-numeric, so a numeric Collector built
// on top can read those columns with numberField and trust the result.
type numericCheckIter struct {
	in      compgraph.RowIter
	columns []string
}

func (it *numericCheckIter) Next() (compgraph.Record, bool, error) {
	row, ok, err := it.in.Next()
	if err != nil || !ok {
		return row, ok, err
	}
	for _, c := range it.columns {
		if _, _, ferr := numberField(row, c); ferr != nil {
			return nil, false, ferr
		}
	}
	return row, true, nil
}

// TopN yields the n rows of each group with the largest value in column,
// in descending order.
func TopN(column string, n int) compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		collected, err := compgraph.Collect(&fieldCheckIter{in: rows, column: column}, compgraph.ToSliceCollector[compgraph.Record]())
		if err != nil {
			return err
		}
		sort.SliceStable(collected, func(i, j int) bool {
			return collected[i][column].Compare(collected[j][column]) > 0
		})
		if n < len(collected) {
			collected = collected[:n]
		}
		for _, row := range collected {
			if err := emit(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// TermFrequency yields one row per distinct word seen in wordsColumn across
// the group, carrying key's fields (taken from the group's first row) plus
// resultColumn, that word's share of the group's total row count. Words
// are emitted in first-seen order.
func TermFrequency(key compgraph.KeyTuple, wordsColumn, resultColumn string) compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		counts := map[string]int{}
		var order []string
		length := 0
		sample := compgraph.OptionalEmpty[compgraph.Record]()

		for {
			row, ok, err := rows.Next()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if sample.IsEmpty() {
				sample = compgraph.OptionalOf(row)
			}
			word, err := stringField(row, wordsColumn)
			if err != nil {
				return err
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
			length++
		}
		if sample.IsEmpty() {
			return nil
		}
		keyFields := sample.Get().Project(key...)
		for _, word := range order {
			out := keyFields.Clone()
			out[wordsColumn] = compgraph.Str(word)
			out[resultColumn] = compgraph.Float(float64(counts[word]) / float64(length))
			if err := emit(out); err != nil {
				return err
			}
		}
		return nil
	})
}

// firstRowCaptureIter wraps a RowIter, remembering the first row it ever
// delivers, as an Optional so "no rows seen yet" and "first row happened
// to be falsy" are never conflated. Count and SafeCount need one
// representative row from the group (to carry the key fields) alongside a
// count produced by compgraph.CountingCollector, which on its own only
// ever sees the count.
type firstRowCaptureIter struct {
	in     compgraph.RowIter
	sample compgraph.Optional[compgraph.Record]
}

func (it *firstRowCaptureIter) Next() (compgraph.Record, bool, error) {
	row, ok, err := it.in.Next()
	if err != nil || !ok {
		return row, ok, err
	}
	if it.sample.IsEmpty() {
		it.sample = compgraph.OptionalOf(row)
	}
	return row, true, nil
}

// Count yields a single row per group: key's fields (from the group's
// first row) plus column, the number of rows in the group.
func Count(key compgraph.KeyTuple, column string) compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		capture := &firstRowCaptureIter{in: rows}
		n, err := compgraph.Collect(capture, compgraph.CountingCollector[compgraph.Record]())
		if err != nil {
			return err
		}
		if capture.sample.IsEmpty() {
			return nil
		}
		out := capture.sample.Get().Project(key...)
		out[column] = compgraph.Int(n)
		return emit(out)
	})
}

// SafeCount computes the same result row as Count, but yields it once per
// input row rather than once per group — useful when a downstream stage
// expects the row count repeated alongside every original row.
func SafeCount(key compgraph.KeyTuple, column string) compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		capture := &firstRowCaptureIter{in: rows}
		n, err := compgraph.Collect(capture, compgraph.CountingCollector[compgraph.Record]())
		if err != nil {
			return err
		}
		if capture.sample.IsEmpty() {
			return nil
		}
		out := capture.sample.Get().Project(key...)
		out[column] = compgraph.Int(n)
		for i := int64(0); i < n; i++ {
			if err := emit(out); err != nil {
				return err
			}
		}
		return nil
	})
}

// Concat yields a single row per group: key's fields plus resultColumn,
// every value of column across the group joined with sep in input order.
// It is built on compgraph.ReducingCollector rather than a hand-rolled
// loop, folding one row at a time into a running result row.
func Concat(key compgraph.KeyTuple, column, resultColumn, sep string) compgraph.Reducer {
	identity := compgraph.Record{}
	op := func(acc, row compgraph.Record) compgraph.Record {
		word, _ := stringField(row, column)
		if len(acc) == 0 {
			out := row.Project(key...)
			out[resultColumn] = compgraph.Str(word)
			return out
		}
		out := acc.Clone()
		out[resultColumn] = compgraph.Str(acc[resultColumn].AsString() + sep + word)
		return out
	}
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		checked := &fieldCheckIter{in: rows, column: column}
		result, err := compgraph.Collect(checked, compgraph.ReducingCollector[compgraph.Record](identity, op))
		if err != nil {
			return err
		}
		if len(result) == 0 {
			return nil
		}
		return emit(result)
	})
}

// Sum yields a single row per group: key's fields (from the group's first
// row) plus column, the sum of column across the group.
func Sum(key compgraph.KeyTuple, column string) compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		checked := &numericCheckIter{in: rows, columns: []string{column}}
		var keyFields compgraph.Record
		isFloat := false
		sum, err := compgraph.Collect(checked, compgraph.SummingCollector[compgraph.Record, float64](
			func(row compgraph.Record) float64 {
				if keyFields == nil {
					keyFields = row.Project(key...)
				}
				n, wasInt, _ := numberField(row, column)
				if !wasInt {
					isFloat = true
				}
				return n
			},
		))
		if err != nil {
			return err
		}
		if keyFields == nil {
			return nil
		}
		out := keyFields.Clone()
		if isFloat {
			out[column] = compgraph.Float(sum)
		} else {
			out[column] = compgraph.Int(int64(sum))
		}
		return emit(out)
	})
}

// groupSums is the intermediate accumulation behind MultipleSum: a running
// sum per column, alongside the group's first row, via the
// compgraph.Collector machinery.
type groupSums struct {
	keyFields compgraph.Record
	sums      map[string]float64
	isFloat   map[string]bool
}

// MultipleSum is Sum generalized to several columns at once.
func MultipleSum(key compgraph.KeyTuple, columns ...string) compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		checked := &numericCheckIter{in: rows, columns: columns}
		collector := compgraph.NewCollector[compgraph.Record, *groupSums, groupSums](
			func() *groupSums {
				return &groupSums{sums: make(map[string]float64, len(columns)), isFloat: make(map[string]bool, len(columns))}
			},
			func(acc *groupSums, row compgraph.Record) {
				if acc.keyFields == nil {
					acc.keyFields = row.Project(key...)
				}
				for _, col := range columns {
					n, wasInt, _ := numberField(row, col)
					if !wasInt {
						acc.isFloat[col] = true
					}
					acc.sums[col] += n
				}
			},
			func(acc *groupSums) groupSums { return *acc },
		)
		g, err := compgraph.Collect(checked, collector)
		if err != nil {
			return err
		}
		if g.keyFields == nil {
			return nil
		}
		out := g.keyFields.Clone()
		for _, col := range columns {
			if g.isFloat[col] {
				out[col] = compgraph.Float(g.sums[col])
			} else {
				out[col] = compgraph.Int(int64(g.sums[col]))
			}
		}
		return emit(out)
	})
}

// CalcMean yields a single row per group: key's fields, taken from the
// last row of the group, plus meanColumn, the mean of column across the
// group.
func CalcMean(key compgraph.KeyTuple, column, meanColumn string) compgraph.Reducer {
	return compgraph.ReducerFunc(func(rows compgraph.RowIter, emit func(compgraph.Record) error) error {
		checked := &numericCheckIter{in: rows, columns: []string{column}}
		var last compgraph.Record
		mean, err := compgraph.Collect(checked, compgraph.AveragingFloat64Collector[compgraph.Record](
			func(row compgraph.Record) float64 {
				last = row
				n, _, _ := numberField(row, column)
				return n
			},
		))
		if err != nil {
			return err
		}
		if last == nil {
			return nil
		}
		out := last.Project(key...)
		out[meanColumn] = compgraph.Float(mean)
		return emit(out)
	})
}

package ops

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/kazuhito-oss/compgraph"
)

// Identity yields the row it is given, unchanged. It is mostly useful as a
// no-op placeholder and in tests that check a Map stage preserves rows.
func Identity() compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		return emit(row)
	})
}

// FilterPunctuation strips every Unicode punctuation rune from column.
func FilterPunctuation(column string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		s, err := stringField(row, column)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[column] = compgraph.Str(strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) {
				return -1
			}
			return r
		}, s))
		return emit(out)
	})
}

// LowerCase lowercases the string carried in column.
func LowerCase(column string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		s, err := stringField(row, column)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[column] = compgraph.Str(strings.ToLower(s))
		return emit(out)
	})
}

// Split turns one row into one row per token of column, splitting on sep.
// An empty sep splits on runs of whitespace, the way strings.Fields does.
func Split(column, sep string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		s, err := stringField(row, column)
		if err != nil {
			return err
		}
		var parts []string
		if sep == "" {
			parts = strings.Fields(s)
		} else {
			parts = strings.Split(s, sep)
		}
		for _, part := range parts {
			out := row.Clone()
			out[column] = compgraph.Str(part)
			if err := emit(out); err != nil {
				return err
			}
		}
		return nil
	})
}

// Product multiplies the named numeric columns together into resultColumn,
// keeping every other field untouched.
func Product(columns []string, resultColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		res := 1.0
		isFloat := false
		for _, c := range columns {
			n, ok, err := numberField(row, c)
			if err != nil {
				return err
			}
			if !ok {
				isFloat = true
			}
			res *= n
		}
		out := row.Clone()
		if isFloat {
			out[resultColumn] = compgraph.Float(res)
		} else {
			out[resultColumn] = compgraph.Int(int64(res))
		}
		return emit(out)
	})
}

// Filter drops any row for which condition returns false.
func Filter(condition func(compgraph.Record) bool) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		if condition(row) {
			return emit(row)
		}
		return nil
	})
}

// Project keeps only the named columns, dropping every other field.
func Project(columns ...string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		out := make(compgraph.Record, len(columns))
		for _, c := range columns {
			v, ok := row[c]
			if !ok {
				return &compgraph.MissingFieldError{Field: c, Record: row}
			}
			out[c] = v
		}
		return emit(out)
	})
}

// Divide keeps every field of the input row and adds resultColumn, the
// quotient of numerator over denominator.
func Divide(numerator, denominator, resultColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		n, _, err := numberField(row, numerator)
		if err != nil {
			return err
		}
		d, _, err := numberField(row, denominator)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[resultColumn] = compgraph.Float(n / d)
		return emit(out)
	})
}

// Idf computes the inverse document frequency of a word, yielding a fresh
// row holding only textColumn and resultColumn: log(total docs / docs the
// word appears in). Unlike most mappers here it discards every other field
// of the input row, since its input is already a narrow per-word summary.
func Idf(docCount, numWordEntries, textColumn, resultColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		total, _, err := numberField(row, docCount)
		if err != nil {
			return err
		}
		entries, _, err := numberField(row, numWordEntries)
		if err != nil {
			return err
		}
		word, err := stringField(row, textColumn)
		if err != nil {
			return err
		}
		return emit(compgraph.Record{
			textColumn:   compgraph.Str(word),
			resultColumn: compgraph.Float(math.Log(total / entries)),
		})
	})
}

// Pmi computes pointwise mutual information, log(docFreq / totalFreq),
// adding resultColumn to the input row.
func Pmi(docFreq, totalFreq, resultColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		df, _, err := numberField(row, docFreq)
		if err != nil {
			return err
		}
		tf, _, err := numberField(row, totalFreq)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[resultColumn] = compgraph.Float(math.Log(df / tf))
		return emit(out)
	})
}

const earthRadiusKM = 6371.0

// Length adds lengthColumn, the great-circle distance in kilometres
// between the two points carried in startColumn and endColumn. Each point
// is a two-element list, [longitude, latitude] in degrees.
func Length(startColumn, endColumn, lengthColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		l1, f1, err := lonLat(row, startColumn)
		if err != nil {
			return err
		}
		l2, f2, err := lonLat(row, endColumn)
		if err != nil {
			return err
		}
		l1, l2, f1, f2 = radians(l1), radians(l2), radians(f1), radians(f2)
		dLat := math.Sin((f2 - f1) / 2)
		dLon := math.Sin((l2 - l1) / 2)
		a := dLat*dLat + math.Cos(f1)*math.Cos(f2)*dLon*dLon
		out := row.Clone()
		out[lengthColumn] = compgraph.Float(earthRadiusKM * 2 * math.Asin(math.Sqrt(a)))
		return emit(out)
	})
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func lonLat(row compgraph.Record, column string) (lon, lat float64, err error) {
	v, ok := row[column]
	if !ok {
		return 0, 0, &compgraph.MissingFieldError{Field: column, Record: row}
	}
	pair := v.AsList()
	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("ops: column %q is not a 2-element coordinate pair", column)
	}
	lonV, ok := pair[0].Number()
	if !ok {
		return 0, 0, fmt.Errorf("ops: column %q longitude is not numeric", column)
	}
	latV, ok := pair[1].Number()
	if !ok {
		return 0, 0, fmt.Errorf("ops: column %q latitude is not numeric", column)
	}
	return lonV, latV, nil
}

const (
	dateLayout     = "20060102T150405"
	dateLayoutFrac = "20060102T150405.000000"
)

func parseEventTime(s string) (time.Time, error) {
	layout := dateLayout
	if strings.Contains(s, ".") {
		layout = dateLayoutFrac
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ops: parse time %q: %w", s, err)
	}
	return t, nil
}

// WeekdayHour adds the abbreviated weekday name and the hour of day (in the
// timestamp's own, timezone-naive clock) that dateColumn falls on.
func WeekdayHour(dateColumn, weekdayColumn, hourColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		s, err := stringField(row, dateColumn)
		if err != nil {
			return err
		}
		t, err := parseEventTime(s)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[weekdayColumn] = compgraph.Str(t.Format("Mon"))
		out[hourColumn] = compgraph.Int(int64(t.Hour()))
		return emit(out)
	})
}

// TimeDelta adds timeDeltaColumn, the number of hours (fractional) between
// startColumn and endColumn.
func TimeDelta(startColumn, endColumn, timeDeltaColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		startS, err := stringField(row, startColumn)
		if err != nil {
			return err
		}
		endS, err := stringField(row, endColumn)
		if err != nil {
			return err
		}
		start, err := parseEventTime(startS)
		if err != nil {
			return err
		}
		end, err := parseEventTime(endS)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[timeDeltaColumn] = compgraph.Float(end.Sub(start).Hours())
		return emit(out)
	})
}

// ProcessTime is WeekdayHour and an elapsed-seconds duration combined into
// a single mapper, matching the shape of the trip records the rest of this
// package's ops work over: it adds weekdayColumn and hourColumn derived
// from enterColumn, and timeColumn, the number of seconds between
// enterColumn and leaveColumn.
func ProcessTime(enterColumn, leaveColumn, timeColumn, weekdayColumn, hourColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		enterS, err := stringField(row, enterColumn)
		if err != nil {
			return err
		}
		leaveS, err := stringField(row, leaveColumn)
		if err != nil {
			return err
		}
		enter, err := parseEventTime(enterS)
		if err != nil {
			return err
		}
		leave, err := parseEventTime(leaveS)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[weekdayColumn] = compgraph.Str(enter.Format("Mon"))
		out[hourColumn] = compgraph.Int(int64(enter.Hour()))
		out[timeColumn] = compgraph.Float(leave.Sub(enter).Seconds())
		return emit(out)
	})
}

// Speed adds speedColumn, the quotient of lengthColumn (kilometres) over
// timeColumn (seconds), scaled to kilometres per hour.
func Speed(lengthColumn, timeColumn, speedColumn string) compgraph.Mapper {
	return compgraph.MapperFunc(func(row compgraph.Record, emit func(compgraph.Record) error) error {
		length, _, err := numberField(row, lengthColumn)
		if err != nil {
			return err
		}
		seconds, _, err := numberField(row, timeColumn)
		if err != nil {
			return err
		}
		out := row.Clone()
		out[speedColumn] = compgraph.Float(length / seconds * 3600)
		return emit(out)
	})
}

func stringField(row compgraph.Record, column string) (string, error) {
	v, ok := row[column]
	if !ok {
		return "", &compgraph.MissingFieldError{Field: column, Record: row}
	}
	return v.AsString(), nil
}

// numberField returns the field's value as a float64, and whether it was
// already an integer (so callers that need to preserve integer-ness, like
// Product, can round-trip it).
func numberField(row compgraph.Record, column string) (value float64, wasInt bool, err error) {
	v, ok := row[column]
	if !ok {
		return 0, false, &compgraph.MissingFieldError{Field: column, Record: row}
	}
	n, ok := v.Number()
	if !ok {
		return 0, false, fmt.Errorf("ops: column %q is not numeric", column)
	}
	return n, v.Kind() == compgraph.KindInt, nil
}

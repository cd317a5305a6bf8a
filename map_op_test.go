package compgraph

import (
	"errors"
	"testing"
)

func TestMapIter_ExpandsOneRowIntoMany(t *testing.T) {
	rows := []Record{{"n": Int(3)}}
	m := MapperFunc(func(row Record, emit func(Record) error) error {
		n := row["n"].AsInt()
		for i := int64(0); i < n; i++ {
			if err := emit(Record{"i": Int(i)}); err != nil {
				return err
			}
		}
		return nil
	})
	it := newMapIter(fromSlice(rows), m)
	out, err := drain(it)
	if err != nil {
		t.Fatalf("drain() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
}

func TestMapIter_DropsRows(t *testing.T) {
	rows := []Record{{"keep": Bool(true)}, {"keep": Bool(false)}, {"keep": Bool(true)}}
	m := MapperFunc(func(row Record, emit func(Record) error) error {
		if row["keep"].AsBool() {
			return emit(row)
		}
		return nil
	})
	it := newMapIter(fromSlice(rows), m)
	out, err := drain(it)
	if err != nil {
		t.Fatalf("drain() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}
}

func TestMapIter_PropagatesMapperError(t *testing.T) {
	boom := errors.New("boom")
	rows := []Record{{"x": Int(1)}}
	m := MapperFunc(func(row Record, emit func(Record) error) error {
		return boom
	})
	it := newMapIter(fromSlice(rows), m)
	_, err := drain(it)
	if !errors.Is(err, boom) {
		t.Errorf("drain() error = %v, want boom", err)
	}
}

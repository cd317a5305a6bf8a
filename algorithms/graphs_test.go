package algorithms

import (
	"testing"

	"github.com/kazuhito-oss/compgraph"
)

func rowsInput(name string, rows ...compgraph.Record) compgraph.NamedInputs {
	return compgraph.NamedInputs{name: func() compgraph.RowIter {
		return &testRowIter{rows: rows}
	}}
}

type testRowIter struct {
	rows []compgraph.Record
	pos  int
}

func (it *testRowIter) Next() (compgraph.Record, bool, error) {
	if it.pos >= len(it.rows) {
		return nil, false, nil
	}
	row := it.rows[it.pos]
	it.pos++
	return row, true, nil
}

func TestWordCount(t *testing.T) {
	docs := []compgraph.Record{
		{"text": compgraph.Str("the cat sat on the mat")},
		{"text": compgraph.Str("the dog sat")},
	}
	g := WordCount("docs", "text", "count")
	out, err := g.Run(rowsInput("docs", docs...))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	counts := map[string]int64{}
	for _, r := range out {
		counts[r["text"].AsString()] = r["count"].AsInt()
	}
	if counts["the"] != 3 {
		t.Errorf("count[the] = %d, want 3", counts["the"])
	}
	if counts["sat"] != 2 {
		t.Errorf("count[sat] = %d, want 2", counts["sat"])
	}
	if counts["cat"] != 1 {
		t.Errorf("count[cat] = %d, want 1", counts["cat"])
	}
	// output must be sorted ascending by (count, text): "cat" and "mat"
	// and "dog" and "on" each occur once, "the" occurs most, so "the"
	// must be the very last row.
	if out[len(out)-1]["text"].AsString() != "the" {
		t.Errorf("last row = %v, want text=the (highest count sorts last)", out[len(out)-1])
	}
}

func TestInvertedIndex_TopThreePerWord(t *testing.T) {
	docs := []compgraph.Record{
		{"doc_id": compgraph.Str("d1"), "text": compgraph.Str("cat cat dog bird fish")},
		{"doc_id": compgraph.Str("d2"), "text": compgraph.Str("dog dog dog cat")},
		{"doc_id": compgraph.Str("d3"), "text": compgraph.Str("cat mouse")},
		{"doc_id": compgraph.Str("d4"), "text": compgraph.Str("cat owl")},
	}
	g := InvertedIndex("docs", "doc_id", "text", "tf_idf")
	out, err := g.Run(rowsInput("docs", docs...))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	perWord := map[string]int{}
	for _, r := range out {
		perWord[r["text"].AsString()]++
	}
	for word, n := range perWord {
		if n > 3 {
			t.Errorf("word %s has %d scored documents, want at most 3", word, n)
		}
	}
	if len(perWord) == 0 {
		t.Fatalf("no rows produced")
	}
	// "cat" occurs in all four documents, so the limit of 3 applies to it.
	if perWord["cat"] != 3 {
		t.Errorf("word cat has %d scored documents, want 3", perWord["cat"])
	}
}

func TestPMI_TopWordsPerDocument(t *testing.T) {
	docs := []compgraph.Record{
		{"doc_id": compgraph.Str("d1"), "text": compgraph.Str("hello world hello world hello telescope")},
		{"doc_id": compgraph.Str("d2"), "text": compgraph.Str("hello there hello world goodbye goodbye")},
	}
	g := PMI("docs", "doc_id", "text", "pmi")
	out, err := g.Run(rowsInput("docs", docs...))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, r := range out {
		if len(r["text"].AsString()) <= 4 {
			t.Errorf("row %v has a word of length <= 4, want filtered out", r)
		}
	}
	perDoc := map[string]int{}
	for _, r := range out {
		perDoc[r["doc_id"].AsString()]++
	}
	for doc, n := range perDoc {
		if n > 10 {
			t.Errorf("doc %s has %d scored words, want at most 10", doc, n)
		}
	}
}

func TestMapSpeed(t *testing.T) {
	lengths := []compgraph.Record{
		{
			"edge_id": compgraph.Int(1),
			"start":   compgraph.List(compgraph.Float(37.84870228730142), compgraph.Float(55.73853974696249)),
			"end":     compgraph.List(compgraph.Float(37.8490418381989), compgraph.Float(55.73832445777953)),
		},
	}
	times := []compgraph.Record{
		{
			"edge_id":    compgraph.Int(1),
			"enter_time": compgraph.Str("20171011T145336"),
			"leave_time": compgraph.Str("20171011T145401"),
		},
	}
	g := MapSpeed("times", "lengths", MapSpeedConfig{})
	inputs := compgraph.NamedInputs{
		"times":   func() compgraph.RowIter { return &testRowIter{rows: times} },
		"lengths": func() compgraph.RowIter { return &testRowIter{rows: lengths} },
	}
	out, err := g.Run(inputs)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0]["weekday"].AsString() != "Wed" {
		t.Errorf("weekday = %v, want Wed", out[0]["weekday"])
	}
	if out[0]["speed"].AsFloat() <= 0 {
		t.Errorf("speed = %v, want positive", out[0]["speed"])
	}
}

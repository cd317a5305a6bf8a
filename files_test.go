package compgraph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONLineParser(t *testing.T) {
	row, err := JSONLineParser(`{"name": "alice", "age": 30, "score": 1.5, "tags": ["a", "b"]}`)
	if err != nil {
		t.Fatalf("JSONLineParser() error = %v", err)
	}
	if row["name"].AsString() != "alice" {
		t.Errorf("name = %v, want alice", row["name"])
	}
	if row["age"].Kind() != KindInt || row["age"].AsInt() != 30 {
		t.Errorf("age = %v, want Int(30)", row["age"])
	}
	if row["score"].Kind() != KindFloat || row["score"].AsFloat() != 1.5 {
		t.Errorf("score = %v, want Float(1.5)", row["score"])
	}
	if len(row["tags"].AsList()) != 2 {
		t.Errorf("tags = %v, want 2 elements", row["tags"])
	}
}

func TestJSONLineParser_InvalidJSON(t *testing.T) {
	_, err := JSONLineParser(`not json`)
	if err == nil {
		t.Errorf("expected error for invalid JSON line, got nil")
	}
}

func TestFileIter_ReadsLinesAndCloses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	content := "{\"x\": 1}\n{\"x\": 2}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	it := newFileIter(path, JSONLineParser)
	out, err := drain(it)
	if err != nil {
		t.Fatalf("drain() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if err := closeIfCloser(it); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFileIter_MissingFileErrors(t *testing.T) {
	it := newFileIter("/no/such/path.jsonl", JSONLineParser)
	_, _, err := it.Next()
	var fse *fileSourceError
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if fe, ok := err.(*fileSourceError); !ok {
		t.Errorf("error = %v, want *fileSourceError", err)
	} else {
		fse = fe
		if fse.Op != "open" {
			t.Errorf("Op = %q, want open", fse.Op)
		}
	}
	if !errors.As(err, &fse) {
		t.Errorf("errors.As failed for fileSourceError")
	}
}

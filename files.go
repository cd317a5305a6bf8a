package compgraph

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// FileParser turns one line of text from a file source into a Record. A
// parser failure surfaces as whatever error it returns; the file source
// wraps it with the path and line number and tears the pipeline down.
type FileParser func(line string) (Record, error)

// JSONLineParser is a FileParser reading one JSON object per line, the
// conventional on-disk encoding for file-backed Graph sources: it decodes
// each line into a map[string]any and converts it field by field into a
// Record via jsonToValue.
func JSONLineParser(line string) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, fmt.Errorf("compgraph: decode json line: %w", err)
	}
	row := make(Record, len(raw))
	for k, v := range raw {
		row[k] = jsonToValue(v)
	}
	return row, nil
}

// jsonToValue converts a value produced by encoding/json's default
// decoding (float64, string, bool, nil, []any, map[string]any) into a
// Value. JSON has no integer type of its own, so a whole-numbered float is
// narrowed to KindInt; this mirrors how the line format is used in
// practice (record fields that are logically integer counts or ids).
func jsonToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Str("")
	case bool:
		return Bool(t)
	case string:
		return Str(t)
	case float64:
		if i := int64(t); float64(i) == t {
			return Int(i)
		}
		return Float(t)
	case []any:
		vs := make([]Value, len(t))
		for i, e := range t {
			vs[i] = jsonToValue(e)
		}
		return List(vs...)
	case map[string]any:
		rec := make(Record, len(t))
		for k, e := range t {
			rec[k] = jsonToValue(e)
		}
		return Rec(rec)
	default:
		return Str(fmt.Sprint(t))
	}
}

// fileIter is the RowIter a file-bound source stage produces: it opens
// path once, lazily, on the first Next call, and reads it line by line,
// parsing each line with parser. The underlying file is closed on every
// exit path — clean exhaustion, a parser error, a scanner error, or an
// explicit Close — so a file source never leaks a handle regardless of
// how the pipeline ends.
type fileIter struct {
	path   string
	parser FileParser

	f       *os.File
	scanner *bufio.Scanner
	line    int
	closed  bool
}

func newFileIter(path string, parser FileParser) RowIter {
	return &fileIter{path: path, parser: parser}
}

func (it *fileIter) Next() (Record, bool, error) {
	if it.closed {
		return nil, false, nil
	}
	if it.f == nil {
		f, err := os.Open(it.path)
		if err != nil {
			_ = it.Close()
			return nil, false, &fileSourceError{Path: it.path, Op: "open", Err: err}
		}
		it.f = f
		it.scanner = bufio.NewScanner(f)
	}
	if !it.scanner.Scan() {
		err := it.scanner.Err()
		if closeErr := it.Close(); closeErr != nil {
			return nil, false, closeErr
		}
		if err != nil {
			return nil, false, &fileSourceError{Path: it.path, Op: "read", Err: err}
		}
		return nil, false, nil
	}
	it.line++
	row, err := it.parser(it.scanner.Text())
	if err != nil {
		_ = it.Close()
		return nil, false, fmt.Errorf("compgraph: parse %q line %d: %w", it.path, it.line, err)
	}
	return row, true, nil
}

func (it *fileIter) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	if it.f == nil {
		return nil
	}
	return it.f.Close()
}

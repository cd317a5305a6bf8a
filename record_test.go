package compgraph

import "testing"

func TestRecord_Clone(t *testing.T) {
	r := Record{"x": Int(1)}
	c := r.Clone()
	c["x"] = Int(2)
	if r["x"].AsInt() != 1 {
		t.Errorf("Clone() shares state with original: r[x] = %v", r["x"])
	}
}

func TestRecord_Project(t *testing.T) {
	r := Record{"a": Int(1), "b": Int(2), "c": Int(3)}
	p := r.Project("a", "c", "missing")
	if len(p) != 2 {
		t.Errorf("Project() = %v, want 2 fields (missing silently omitted)", p)
	}
	if p["a"].AsInt() != 1 || p["c"].AsInt() != 3 {
		t.Errorf("Project() = %v, want a=1 c=3", p)
	}
}

func TestKeyTuple_Extract(t *testing.T) {
	k := KeyTuple{"a", "b"}
	vals, err := k.Extract(Record{"a": Int(1), "b": Str("x")})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(vals) != 2 || vals[0].AsInt() != 1 || vals[1].AsString() != "x" {
		t.Errorf("Extract() = %v", vals)
	}
}

func TestKeyTuple_ExtractMissingField(t *testing.T) {
	k := KeyTuple{"a"}
	_, err := k.Extract(Record{})
	var mfe *MissingFieldError
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if mfe2, ok := err.(*MissingFieldError); !ok {
		t.Errorf("error = %v, want *MissingFieldError", err)
	} else {
		mfe = mfe2
		if mfe.Field != "a" {
			t.Errorf("Field = %q, want a", mfe.Field)
		}
	}
}

func TestKeyTuple_Compare(t *testing.T) {
	k := KeyTuple{"a", "b"}
	a := Record{"a": Int(1), "b": Int(2)}
	b := Record{"a": Int(1), "b": Int(3)}
	c, err := k.Compare(a, b)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if c >= 0 {
		t.Errorf("Compare() = %d, want negative", c)
	}
}

func TestKeyTuple_Equal(t *testing.T) {
	k := KeyTuple{"a"}
	a := Record{"a": Int(1)}
	b := Record{"a": Int(1)}
	eq, err := k.Equal(a, b)
	if err != nil {
		t.Fatalf("Equal() error = %v", err)
	}
	if !eq {
		t.Errorf("Equal() = false, want true")
	}
}

func TestKeyTuple_EmptyKeyEqualsEverything(t *testing.T) {
	k := KeyTuple{}
	eq, err := k.Equal(Record{"a": Int(1)}, Record{"a": Int(2)})
	if err != nil {
		t.Fatalf("Equal() error = %v", err)
	}
	if !eq {
		t.Errorf("Equal() with empty key = false, want true")
	}
}

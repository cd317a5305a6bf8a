package compgraph

import "testing"

func TestValue_CompareSameKind(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		a, b Value
		want int
	}{
		{"int less", Int(1), Int(2), -1},
		{"int equal", Int(5), Int(5), 0},
		{"int greater", Int(9), Int(2), 1},
		{"float less", Float(1.5), Float(2.5), -1},
		{"string less", Str("a"), Str("b"), -1},
		{"bool less", Bool(false), Bool(true), -1},
		{"bool equal", Bool(true), Bool(true), 0},
		{"list shorter first", List(Int(1)), List(Int(1), Int(2)), -1},
		{"list elementwise", List(Int(1), Int(5)), List(Int(1), Int(2)), 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Compare(tc.b); got != tc.want {
				t.Errorf("Compare() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestValue_CompareMismatchedKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Compare() across kinds did not panic")
		}
	}()
	Int(1).Compare(Str("1"))
}

func TestValue_Equal(t *testing.T) {
	if !Int(3).Equal(Int(3)) {
		t.Errorf("Int(3).Equal(Int(3)) = false, want true")
	}
	if Int(3).Equal(Float(3)) {
		t.Errorf("Int(3).Equal(Float(3)) = true, want false")
	}
}

func TestValue_Number(t *testing.T) {
	if n, ok := Int(7).Number(); !ok || n != 7 {
		t.Errorf("Int(7).Number() = %v, %v, want 7, true", n, ok)
	}
	if n, ok := Float(2.5).Number(); !ok || n != 2.5 {
		t.Errorf("Float(2.5).Number() = %v, %v, want 2.5, true", n, ok)
	}
	if _, ok := Str("x").Number(); ok {
		t.Errorf("Str(\"x\").Number() ok = true, want false")
	}
}

func TestValue_AsWrongKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AsInt() on a string Value did not panic")
		}
	}()
	Str("x").AsInt()
}

func TestValue_CompareRecord(t *testing.T) {
	a := Rec(Record{"x": Int(1), "y": Int(2)})
	b := Rec(Record{"x": Int(1), "y": Int(2)})
	if a.Compare(b) != 0 {
		t.Errorf("identical nested records compared unequal")
	}
	c := Rec(Record{"x": Int(1), "y": Int(3)})
	if a.Compare(c) >= 0 {
		t.Errorf("Compare() = %d, want negative", a.Compare(c))
	}
}

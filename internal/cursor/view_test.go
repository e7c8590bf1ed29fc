package cursor

import "testing"

func TestViewAddAndDispose(t *testing.T) {
	v := NewView(5)
	if v.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", v.Count())
	}

	c2 := v.AddCursor(10)
	if !v.IsMulti() {
		t.Fatal("IsMulti() = false, want true after adding a second cursor")
	}

	v.Dispose(c2.ID())
	if v.Count() != 1 {
		t.Fatalf("Count() after Dispose = %d, want 1", v.Count())
	}
}

func TestViewDisposeLastLeavesOneCursor(t *testing.T) {
	v := NewView(3)
	p := v.Primary()
	v.Dispose(p.ID())
	if v.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 (a replacement cursor)", v.Count())
	}
}

func TestViewShiftFrom(t *testing.T) {
	v := NewView(10)
	other := v.AddCursor(20)
	before := v.AddCursor(2)

	v.ShiftFrom(5, 3, 0)

	if before.Pos != 2 {
		t.Errorf("cursor before edit point shifted: Pos = %d, want 2", before.Pos)
	}
	p := v.Primary()
	if p.Pos != 13 {
		t.Errorf("primary cursor at/after edit point: Pos = %d, want 13", p.Pos)
	}
	if other.Pos != 23 {
		t.Errorf("other cursor at/after edit point: Pos = %d, want 23", other.Pos)
	}
}

func TestViewShiftFromSkipsExcluded(t *testing.T) {
	v := NewView(10)
	v.ShiftFrom(0, 5, v.Primary().ID())
	if v.Primary().Pos != 10 {
		t.Errorf("excluded cursor should not shift: Pos = %d, want 10", v.Primary().Pos)
	}
}

func TestSelectionUnionAndClamp(t *testing.T) {
	a := Selection{Start: 2, End: 5}
	b := Selection{Start: 4, End: 9}
	u := a.Union(b)
	if u.Start != 2 || u.End != 9 {
		t.Errorf("Union = %v, want [2,9)", u)
	}

	c := Selection{Start: -3, End: 100}.Clamp(10)
	if c.Start != 0 || c.End != 10 {
		t.Errorf("Clamp = %v, want [0,10)", c)
	}
}

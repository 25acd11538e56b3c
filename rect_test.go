package pixeloid

import "testing"

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	b := NewRect(1, 1, 3, 3)
	got := a.Union(b)
	want := Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestRectEmptyUnion(t *testing.T) {
	r := EmptyRect()
	if !r.IsEmpty() {
		t.Error("EmptyRect should be empty")
	}
	got := r.Union(NewRect(1, 2, 3, 4))
	want := Rect{MinX: 1, MinY: 2, MaxX: 4, MaxY: 6}
	if got != want {
		t.Errorf("Union with empty = %+v, want %+v", got, want)
	}
}

func TestRectGridAligned(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"fractional", Rect{MinX: 1.2, MinY: 2.7, MaxX: 3.1, MaxY: 4.9}, Rect{MinX: 1, MinY: 2, MaxX: 4, MaxY: 5}},
		{"already aligned", Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}, Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}},
		{"negative coords", Rect{MinX: -1.5, MinY: -0.1, MaxX: 0.5, MaxY: 0.1}, Rect{MinX: -2, MinY: -1, MaxX: 1, MaxY: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.GridAligned(); got != tt.want {
				t.Errorf("GridAligned = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	if !a.Intersects(NewRect(1, 1, 2, 2)) {
		t.Error("overlapping rects should intersect")
	}
	// Touching edges share no interior pixels.
	if a.Intersects(NewRect(2, 0, 2, 2)) {
		t.Error("touching rects should not intersect")
	}
}

func TestRectScaleTranslate(t *testing.T) {
	r := NewRect(1, 2, 3, 4).Scale(2).Translate(1, -1)
	want := Rect{MinX: 3, MinY: 3, MaxX: 9, MaxY: 11}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestPointFloorFrac(t *testing.T) {
	p := Pt(2.7, -1.25)
	if got := p.Floor(); got != Pt(2, -2) {
		t.Errorf("Floor = %+v", got)
	}
	frac := p.Frac()
	if frac.X < 0 || frac.X >= 1 || frac.Y < 0 || frac.Y >= 1 {
		t.Errorf("Frac = %+v outside [0,1)", frac)
	}
}

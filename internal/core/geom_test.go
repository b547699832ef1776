package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", NewBox(0, 0, 10, 10), NewBox(5, 5, 10, 10), true},
		{"edge touching horizontal", NewBox(0, 0, 10, 10), NewBox(10, 0, 10, 10), false},
		{"edge touching vertical", NewBox(0, 0, 10, 10), NewBox(0, 10, 10, 10), false},
		{"sub-pixel overlap", NewBox(0, 0, 10, 10), NewBox(9.5, 9.5, 10, 10), true},
		{"separated", NewBox(0, 0, 10, 10), NewBox(30, 30, 5, 5), false},
		{"contained", NewBox(0, 0, 40, 40), NewBox(10, 5, 20, 35), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxInset(t *testing.T) {
	b := NewBox(100, 200, 36, 36).Inset(5, 3, 5, 3)
	want := NewBox(105, 203, 26, 30)
	if b != want {
		t.Errorf("Inset() = %+v, expected %+v", b, want)
	}
	if b.Right() != 131 || b.Bottom() != 233 {
		t.Errorf("edges = (%v, %v), expected (131, 233)", b.Right(), b.Bottom())
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 || r.Bottom() != 7 {
		t.Errorf("edges = (%d, %d), expected (12, 7)", r.Right(), r.Bottom())
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		v, unit  float64
		expected int
	}{
		{120, 40, 3},
		{370, 40, 9},
		{39.9, 40, 0},
		{-1, 40, -1},
	}

	for _, tc := range tests {
		if got := FloorDiv(tc.v, tc.unit); got != tc.expected {
			t.Errorf("FloorDiv(%v, %v) = %d, expected %d", tc.v, tc.unit, got, tc.expected)
		}
	}
}

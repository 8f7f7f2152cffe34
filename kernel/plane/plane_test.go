package plane

import "testing"

func TestFromRowsAndAt(t *testing.T) {
	p := FromRows([][]uint8{
		{1, 2, 3},
		{4, 5, 6},
	})
	if p.Width() != 3 || p.Height() != 2 {
		t.Fatalf("dims: got %dx%d, want 3x2", p.Width(), p.Height())
	}
	if p.At(2, 1) != 6 {
		t.Errorf("At(2,1): got %d, want 6", p.At(2, 1))
	}
}

func TestAtClamped(t *testing.T) {
	p := FromRows([][]uint8{
		{1, 2},
		{3, 4},
	})
	if got := p.AtClamped(-1, -1); got != 1 {
		t.Errorf("AtClamped(-1,-1): got %d, want 1", got)
	}
	if got := p.AtClamped(5, 5); got != 4 {
		t.Errorf("AtClamped(5,5): got %d, want 4", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ idx, size, want int }{
		{-3, 10, 0},
		{5, 10, 5},
		{15, 10, 9},
	}
	for _, c := range cases {
		if got := Clamp(c.idx, c.size); got != c.want {
			t.Errorf("Clamp(%d,%d): got %d, want %d", c.idx, c.size, got, c.want)
		}
	}
}

package fc

import "testing"

func TestApplyMatchesDotProduct(t *testing.T) {
	l := New[int32](Params{FP: 16, RoundNearest: true})
	x := []int32{1 << 16, 0}
	weight := [][]int32{
		{1 << 16, 0},
		{0, 1 << 16},
	}
	out := l.Apply(x, weight, nil)
	if out[0] != 1<<16 || out[1] != 0 {
		t.Errorf("got %v, want [%d, 0]", out, 1<<16)
	}
}

func TestApplyAddsBias(t *testing.T) {
	l := New[int32](Params{FP: 16, RoundNearest: true})
	x := []int32{1 << 16}
	weight := [][]int32{{1 << 16}}
	bias := []int32{5}
	out := l.Apply(x, weight, bias)
	if out[0] != (1<<16)+5 {
		t.Errorf("got %d, want %d", out[0], (1<<16)+5)
	}
}

func TestBufferWeightLatchesFirstBatch(t *testing.T) {
	l := New[int32](Params{FP: 16, RoundNearest: true, BufferWeight: true})
	first := [][]int32{{1 << 16}}
	second := [][]int32{{2 << 16}}

	out1 := l.Apply([]int32{1 << 16}, first, nil)
	out2 := l.Apply([]int32{1 << 16}, second, nil)

	if out1[0] != out2[0] {
		t.Errorf("buffered layer should ignore the second call's weight: got %d and %d", out1[0], out2[0])
	}
}

func TestApplySaturates(t *testing.T) {
	l := New[int8](Params{FP: 0, RoundNearest: true, Saturate: true})
	out := l.Apply([]int8{100}, [][]int8{{2}}, nil)
	if out[0] != 127 {
		t.Errorf("got %d, want 127 (saturated)", out[0])
	}
}

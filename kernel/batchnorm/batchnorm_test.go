package batchnorm

import (
	"testing"

	"github.com/vxstream/vxstream/stream"
)

func TestFlavourAIdentityWhenUnscaled(t *testing.T) {
	x := []int32{10, 20, 30}
	fill := []int32{1 << 16, 1 << 16, 1 << 16}
	mean := []int32{0, 0, 0}
	invSqrtVar := []int32{1 << 16, 1 << 16, 1 << 16}
	bias := []int32{0, 0, 0}
	out := FlavourA(x, fill, mean, invSqrtVar, bias, 16, true, false)
	for i := range x {
		if out[i] != x[i] {
			t.Errorf("index %d: got %d, want %d (unit scale, zero mean, zero bias is identity)", i, out[i], x[i])
		}
	}
}

func TestFlavourASubtractsMeanAndAddsBias(t *testing.T) {
	x := []int32{100}
	fill := []int32{1 << 16}
	mean := []int32{40}
	invSqrtVar := []int32{1 << 16}
	bias := []int32{5}
	out := FlavourA(x, fill, mean, invSqrtVar, bias, 16, true, false)
	if out[0] != 65 {
		t.Errorf("got %d, want 65 ((100-40)*1+5)", out[0])
	}
}

func TestFlavourARoundsNegativeDiffByPlainShift(t *testing.T) {
	x := []int32{0}
	fill := []int32{1 << 16}
	mean := []int32{100}
	invSqrtVar := []int32{1 << 16}
	bias := []int32{0}
	out := FlavourA(x, fill, mean, invSqrtVar, bias, 16, true, false)
	// diff = 0-100 = -100; each rounding step is a plain shift with no
	// sign correction after the nearest bias, so the result is exactly
	// -100, not the off-by-one -99 a sign-corrected shift would give.
	if out[0] != -100 {
		t.Errorf("got %d, want -100", out[0])
	}
}

func TestFlavourBConstantInputProducesZero(t *testing.T) {
	sink, src := stream.NewChannel[int32](1)
	sink <- stream.NewElem([]int32{7, 7, 7, 7}, true, true)
	close(sink)

	gamma := []int32{1 << 16, 1 << 16, 1 << 16, 1 << 16}
	beta := []int32{0, 0, 0, 0}
	out := FlavourB[int32](src, gamma, beta, 16, true)

	e, ok := <-out
	if !ok {
		t.Fatal("expected one output batch")
	}
	for _, v := range e.Data() {
		if v < -1 || v > 1 {
			t.Errorf("constant input should normalize near zero, got %d", v)
		}
	}
	if !e.SOF || !e.EOF {
		t.Errorf("frame flags should pass through: sof=%v eof=%v", e.SOF, e.EOF)
	}
}

func TestFlavourBPreservesBatchOrder(t *testing.T) {
	sink, src := stream.NewChannel[int32](2)
	sink <- stream.NewElem([]int32{1, 2, 3}, true, false)
	sink <- stream.NewElem([]int32{4, 5, 6}, false, true)
	close(sink)

	out := FlavourB[int32](src, nil, nil, 16, true)

	first := <-out
	second := <-out
	if !first.SOF || first.EOF {
		t.Errorf("first batch flags wrong: sof=%v eof=%v", first.SOF, first.EOF)
	}
	if second.SOF || !second.EOF {
		t.Errorf("second batch flags wrong: sof=%v eof=%v", second.SOF, second.EOF)
	}
}

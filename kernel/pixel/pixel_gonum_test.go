package pixel

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// TestMagnitudeMatchesFloatNorm checks Magnitude's fixed-point CORDIC
// square root against gonum's float64 Euclidean norm as the ground truth,
// across a spread of lane values likely to expose rounding drift.
func TestMagnitudeMatchesFloatNorm(t *testing.T) {
	a := []uint16{0, 1, 3, 30000, 7, 100, 255, 9999}
	b := []uint16{0, 0, 4, 40000, 24, 100, 0, 1}

	got := Magnitude(a, b, true)
	for i := range a {
		ref := floats.Norm([]float64{float64(a[i]), float64(b[i])}, 2)
		want := math.Round(ref)
		if diff := math.Abs(float64(got[i]) - want); diff > 1 {
			t.Errorf("lane %d: Magnitude(%d,%d)=%d, float64 norm round=%v (diff %v)",
				i, a[i], b[i], got[i], want, diff)
		}
	}
}

// TestPhaseMatchesAtan2Quadrant checks that Phase's CORDIC angle falls in
// the same quadrant (within one quantisation step) as math.Atan2, across
// all four quadrant-representative lane pairs.
func TestPhaseMatchesAtan2Quadrant(t *testing.T) {
	type pair struct{ a, b int16 }
	cases := []pair{
		{100, 0},   // east
		{0, 100},   // north
		{-100, 0},  // west
		{0, -100},  // south
		{100, 100}, // north-east
	}

	const qBits = 16
	for _, c := range cases {
		got := Phase([]int16{c.a}, []int16{c.b}, qBits, true)[0]
		refRad := math.Atan2(float64(c.b), float64(c.a))
		refTurns := refRad / (2 * math.Pi)
		if refTurns < 0 {
			refTurns++
		}
		wantQ := int64(math.Round(refTurns * float64(int64(1)<<qBits)))
		wantQ &= (int64(1) << qBits) - 1

		diff := int64(got) - wantQ
		full := int64(1) << qBits
		diff = ((diff % full) + full) % full
		if diff > 1 && diff < full-1 {
			t.Errorf("a=%d b=%d: Phase=%d, atan2-derived=%d", c.a, c.b, got, wantQ)
		}
	}
}

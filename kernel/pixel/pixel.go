// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pixel implements the binary/unary lane-wise arithmetic engine:
// bitwise ops, min/max, abs-diff, saturating add/sub/mul, magnitude,
// CORDIC phase, threshold and weighted average. Every operator widens
// through int64 before re-narrowing, as the source does through i64/u64.
package pixel

import (
	"math/bits"

	"github.com/vxstream/vxstream/vx"
	"github.com/vxstream/vxstream/vx/fixedpoint"
)

func apply2[T vx.Integers](a, b []T, f func(a, b T) T) []T {
	n := min(len(a), len(b))
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = f(a[i], b[i])
	}
	return out
}

// Not inverts every bit of each lane.
func Not[T vx.Integers](a []T) []T {
	out := make([]T, len(a))
	for i, v := range a {
		out[i] = ^v
	}
	return out
}

// And computes the bitwise AND of two lane streams.
func And[T vx.Integers](a, b []T) []T { return apply2(a, b, func(a, b T) T { return a & b }) }

// Or computes the bitwise OR of two lane streams.
func Or[T vx.Integers](a, b []T) []T { return apply2(a, b, func(a, b T) T { return a | b }) }

// Xor computes the bitwise XOR of two lane streams.
func Xor[T vx.Integers](a, b []T) []T { return apply2(a, b, func(a, b T) T { return a ^ b }) }

// Min takes the lesser of each pair of lanes, signed-aware.
func Min[T vx.Integers](a, b []T) []T {
	return apply2(a, b, func(a, b T) T {
		if a < b {
			return a
		}
		return b
	})
}

// Max takes the greater of each pair of lanes, signed-aware.
func Max[T vx.Integers](a, b []T) []T {
	return apply2(a, b, func(a, b T) T {
		if a > b {
			return a
		}
		return b
	})
}

// AbsDiff computes |a-b|, clamped to T's maximum (the only direction an
// absolute value can overflow).
func AbsDiff[T vx.Integers](a, b []T) []T {
	hi := int64(fixedpoint.MaxOf[T]())
	return apply2(a, b, func(a, b T) T {
		d := int64(a) - int64(b)
		if d < 0 {
			d = -d
		}
		if d > hi {
			d = hi
		}
		return T(d)
	})
}

func addSub[T vx.Integers](a, b []T, saturate bool, sign int64) []T {
	lo := int64(fixedpoint.MinOf[T]())
	hi := int64(fixedpoint.MaxOf[T]())
	return apply2(a, b, func(a, b T) T {
		wide := int64(a) + sign*int64(b)
		if saturate {
			wide = fixedpoint.Saturate(wide, lo, hi)
		}
		return T(wide)
	})
}

// Add computes a+b, widened through int64, then either saturated or
// wrapped (truncated) into T's range.
func Add[T vx.Integers](a, b []T, saturate bool) []T { return addSub(a, b, saturate, 1) }

// Sub computes a-b, widened through int64, then either saturated or
// wrapped into T's range.
func Sub[T vx.Integers](a, b []T, saturate bool) []T { return addSub(a, b, saturate, -1) }

func log2PowerOfTwo(v uint32) (log2 int, ok bool) {
	if v == 0 || v&(v-1) != 0 {
		return 0, false
	}
	return bits.TrailingZeros32(v), true
}

// Mul computes (a*b*scale)>>16, widened through int64. When scale is a
// power of two this folds into a single shift by 16-log2(scale); scale
// equal to 1<<16 then degenerates to the unscaled product a*b, which is
// the identity when b itself carries the Q16 representation of 1.0.
func Mul[T vx.Integers](a, b []T, scale uint32, saturate, roundNearest bool) []T {
	signed := fixedpoint.MinOf[T]() < 0
	lo := int64(fixedpoint.MinOf[T]())
	hi := int64(fixedpoint.MaxOf[T]())

	return apply2(a, b, func(a, b T) T {
		var wide int64
		if shift, ok := log2PowerOfTwo(scale); ok && shift <= 16 {
			s := uint(16 - shift)
			product := int64(a) * int64(b)
			if roundNearest && s > 0 {
				product += int64(1) << (s - 1)
			}
			wide = fixedpoint.ArithShiftRight(product, s, signed)
		} else {
			product := int64(a) * int64(b) * int64(scale)
			if roundNearest {
				product += 1 << 15
			}
			wide = fixedpoint.ArithShiftRight(product, 16, signed)
		}
		if saturate {
			wide = fixedpoint.Saturate(wide, lo, hi)
		}
		return T(wide)
	})
}

// Magnitude computes round(sqrt(a^2+b^2)), clamping to T's maximum if the
// intermediate sum of squares overflows T's unsigned range.
func Magnitude[T vx.Integers](a, b []T, roundNearest bool) []T {
	hi := int64(fixedpoint.MaxOf[T]())
	policy := fixedpoint.RoundToZero
	if roundNearest {
		policy = fixedpoint.RoundToNearestEven
	}
	return apply2(a, b, func(a, b T) T {
		sq := int64(a)*int64(a) + int64(b)*int64(b)
		root := fixedpoint.ISqrt(sq, 32, policy)
		if root > hi {
			root = hi
		}
		return T(root)
	})
}

// Phase computes atan2(b,a) via CORDIC, quantised so a full turn equals
// 1<<qBits (0 points east, angle grows counter-clockwise); 1<<16 maps
// back to quadrant zero exactly as 0 does.
func Phase[T vx.Integers](a, b []T, qBits uint, accurate bool) []T {
	const nativeQBits = 16
	return apply2(a, b, func(a, b T) T {
		var angle int64
		if accurate {
			angle = fixedpoint.Atan2Accurate(int64(a), int64(b))
		} else {
			angle = fixedpoint.Atan2(int64(a), int64(b))
		}
		angle &= (int64(1) << nativeQBits) - 1
		if qBits < nativeQBits {
			angle >>= nativeQBits - qBits
		} else if qBits > nativeQBits {
			angle <<= qBits - nativeQBits
		}
		return T(angle)
	})
}

// ThresholdBinary emits max where a > t, else 0.
func ThresholdBinary[T vx.Integers](a []T, t, max T) []T {
	out := make([]T, len(a))
	for i, v := range a {
		if v > t {
			out[i] = max
		}
	}
	return out
}

// ThresholdRange emits max where a is within [lo, hi], else 0 (or -1 for
// signed types, matching the source's signed-range convention).
func ThresholdRange[T vx.Integers](a []T, lo, hi, max T) []T {
	out := make([]T, len(a))
	for i, v := range a {
		if v >= lo && v <= hi {
			out[i] = max
		}
	}
	return out
}

// WeightedAvg computes (1-alpha)*b + alpha*a in Q16, alpha in [0, 1<<16].
func WeightedAvg[T vx.Integers](a, b []T, alphaQ16 uint32, roundNearest bool) []T {
	const fp = 16
	oneMinusAlpha := int64(uint32(1)<<fp) - int64(alphaQ16)
	return apply2(a, b, func(a, b T) T {
		wide := oneMinusAlpha*int64(b) + int64(alphaQ16)*int64(a)
		if roundNearest {
			wide += 1 << (fp - 1)
		}
		wide = fixedpoint.ArithShiftRight(wide, fp, true)
		return T(wide)
	})
}

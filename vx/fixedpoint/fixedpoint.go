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

// Package fixedpoint provides the non-lane-local arithmetic primitives
// every streaming kernel shares: saturating bounds lookup, an arithmetic
// right shift that matches division rounding, bit-exact integer square
// root, CORDIC atan2, and kernel coefficient normalisation into a
// (mult, shift) pair.
package fixedpoint

import "github.com/vxstream/vxstream/vx"

// MaxOf returns the maximum representable value of T.
func MaxOf[T vx.Integers]() T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return T(int8(127))
	case int16:
		return T(int16(32767))
	case int32:
		return T(int32(2147483647))
	case int64:
		return T(int64(9223372036854775807))
	case uint8:
		return T(uint8(255))
	case uint16:
		return T(uint16(65535))
	case uint32:
		return T(uint32(4294967295))
	case uint64:
		return T(uint64(18446744073709551615))
	default:
		return zero
	}
}

// MinOf returns the minimum representable value of T.
func MinOf[T vx.Integers]() T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return T(int8(-128))
	case int16:
		return T(int16(-32768))
	case int32:
		return T(int32(-2147483648))
	case int64:
		return T(int64(-9223372036854775808))
	default:
		return zero // unsigned types: zero is the minimum
	}
}

// Saturate clamps data to [lo, hi].
func Saturate[T vx.Integers](data, lo, hi T) T {
	if data > hi {
		return hi
	}
	if data < lo {
		return lo
	}
	return data
}

// ArithShiftRight shifts data right by shift bits. For signed negative
// results it adds one afterwards so the result matches truncating
// division semantics rather than floor-toward-negative-infinity shift
// semantics.
func ArithShiftRight[T vx.Integers](data T, shift uint, signed bool) T {
	a := data >> shift
	if signed && a < 0 {
		a++
	}
	return a
}

// atanTable16 holds the 16-entry CORDIC angle table in Q16 (one full turn
// is 1<<16), used by Atan2.
var atanTable16 = [16]int64{16384, 9672, 5110, 2594, 1302, 652, 326, 163, 81, 41, 20, 10, 5, 3, 1, 1}

// atanTable64 holds the 31-entry high-precision CORDIC angle table used by
// Atan2Accurate.
var atanTable64 = [31]int64{
	1073741824, 536870912, 316933406, 167458907, 85004756, 42667331, 21354465, 10679838,
	5340245, 2670163, 1335087, 667544, 333772, 166886, 83443, 41722,
	20861, 10430, 5215, 2608, 1304, 652, 326, 163,
	81, 41, 20, 10, 5, 3, 1,
}

func cordic(x, y int64, table []int64, steps int) int64 {
	sgn := int64(1)
	if y >= 0 {
		sgn = -1
	}
	xh := -sgn * y
	yh := sgn * x
	x, y = xh, yh
	winkel := sgn * table[0]

	for i, k := 1, 0; i <= steps; i, k = i+1, k+1 {
		sgn = 1
		if y >= 0 {
			sgn = -1
		}
		winkel += sgn * table[i]
		xh = x - sgn*(y>>uint(k))
		yh = y + sgn*(x>>uint(k))
		x, y = xh, yh
		if y == 0 {
			break
		}
	}
	return -winkel
}

// Atan2 computes atan2(x,y) via the fast 15-iteration CORDIC variant. The
// result is quantised so a full turn equals 1<<16 (Q16 angle units), zero
// pointing east, angles growing counter-clockwise.
func Atan2(x, y int64) int64 {
	return cordic(x, y, atanTable16[:], len(atanTable16)-1)
}

// Atan2Accurate computes atan2(x,y) via the 31-iteration CORDIC variant
// used when phase precision matters more than latency.
func Atan2Accurate(x, y int64) int64 {
	return cordic(x, y, atanTable64[:], 24)
}

// RoundPolicy selects how ISqrt resolves the final rounding step.
type RoundPolicy int

const (
	// RoundToZero truncates the square root toward zero.
	RoundToZero RoundPolicy = iota
	// RoundToNearestEven rounds the last bit to the nearest integer,
	// ties handled by SqrtLester's compare-the-remainder rule.
	RoundToNearestEven
)

// ISqrt computes the bit-exact integer square root of value into an
// outputBits-wide result using the "try each bit from the top" algorithm:
// stage n tentatively sets bit n and keeps it if the resulting square does
// not exceed value.
func ISqrt(value int64, outputBits uint, policy RoundPolicy) int64 {
	var a1 int64 // intermediate result (the root so far)
	var a2 int64 // a1*a1 so far

	for n := int(outputBits) - 1; n >= 0; n-- {
		b1 := int64(1) << uint(n)
		b2 := b1 << uint(n)
		ab := a1 << uint(n)
		a2Next := a2 + b2 + (ab << 1) // (a1+b1)^2 = a1^2 + b1^2 + 2*a1*b1
		if a2Next <= value {
			a1 |= b1
			a2 = a2Next
		}
	}

	if policy == RoundToNearestEven {
		maxVal := (int64(1) << outputBits) - 1
		if (value-a2) > a1 && a1 != maxVal {
			a1++
		}
	}
	return a1
}

// Normalise computes the (mult, shift) pair for kernelSum such that
// `(x * mult) >> shift` approximates `x / kernelSum`. When kernelSum is a
// power of two the exact (mult=1, shift=log2(kernelSum)) pair is returned;
// otherwise the greatest (mult, shift) pair within a 48-bit window that
// keeps mult inside 16 bits is returned.
func Normalise(kernelSum uint64) (mult uint64, shift uint32) {
	const maxShift = 48
	const minShift = 15

	if kernelSum == 0 {
		return 1, 0
	}

	if kernelSum&(kernelSum-1) == 0 {
		// Power of two: mult = 1, shift = log2(kernelSum).
		var s uint32
		for i := 0; i < 64; i++ {
			if kernelSum&(uint64(1)<<uint(i)) != 0 {
				s = uint32(i)
			}
		}
		return 1, s
	}

	oldMult := (uint64(1) << maxShift) / kernelSum
	temp := oldMult
	var oldShift uint32
	for i := uint32(0); i < maxShift; i++ {
		if temp > 0 {
			temp >>= 1
			oldShift = i
		}
	}

	if oldShift > 16 {
		shift = maxShift - (oldShift - minShift)
		mult = oldMult >> (oldShift - minShift)
	} else {
		shift = maxShift
		mult = oldMult
	}
	return mult, shift
}

// Normalise2D sums the absolute values of a square kernel and returns its
// Normalise pair — the two-stage (row-then-column) separable-filter
// normalisation used when a depth-wise kernel is applied as two 1-D passes.
func Normalise2D(kernel [][]int64) (mult uint64, shift uint32) {
	var sum uint64
	for _, row := range kernel {
		for _, v := range row {
			if v < 0 {
				v = -v
			}
			sum += uint64(v)
		}
	}
	return Normalise(sum)
}

// Normalise1D sums the absolute values of a 1-D kernel and returns its
// Normalise pair.
func Normalise1D(kernel []int64) (mult uint64, shift uint32) {
	var sum uint64
	for _, v := range kernel {
		if v < 0 {
			v = -v
		}
		sum += uint64(v)
	}
	return Normalise(sum)
}

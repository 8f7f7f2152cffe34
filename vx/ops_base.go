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

package vx

import "math"

// This file provides the scalar (non-arch-dispatched) lane operations shared
// by every kernel: Load/Store/Set, arithmetic, comparisons, bit ops and
// shifts. Every stage works through these instead of raw slice indexing so
// width changes (vectorisation in C4) never touch kernel logic.

// Load creates a vector by loading data from a slice.
func Load[T Lanes](src []T) Vec[T] {
	data := make([]T, len(src))
	copy(data, src)
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Set creates an n-lane vector with all lanes set to the same value.
func Set[T Lanes](value T, n int) Vec[T] {
	data := make([]T, n)
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Const creates an n-lane vector with all lanes set to the given float32
// constant, converted into T. Usage: vx.Const[T](1.0, n).
func Const[T Lanes](val float32, n int) Vec[T] {
	return Set(ConstValue[T](val), n)
}

// ConstValue converts a float32 constant to type T.
func ConstValue[T Lanes](val float32) T {
	return T(val)
}

// Zero creates an n-lane vector with all lanes set to zero.
func Zero[T Lanes](n int) Vec[T] {
	return Vec[T]{data: make([]T, n)}
}

// Add performs element-wise addition.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] + b.data[i]
	}
	return Vec[T]{data: result}
}

// Sub performs element-wise subtraction.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] - b.data[i]
	}
	return Vec[T]{data: result}
}

// Mul performs element-wise multiplication.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] * b.data[i]
	}
	return Vec[T]{data: result}
}

// Div performs element-wise division. Floats only; integer pipelines use
// the fixed-point normalise/shift primitives instead of runtime division.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] / b.data[i]
	}
	return Vec[T]{data: result}
}

// Neg negates all lanes.
func Neg[T Lanes](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = -x
	}
	return Vec[T]{data: result}
}

// Abs computes absolute value per lane.
func Abs[T Lanes](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		if x < 0 {
			result[i] = -x
		} else {
			result[i] = x
		}
	}
	return Vec[T]{data: result}
}

// Min returns element-wise minimum.
func Min[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		if a.data[i] < b.data[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Max returns element-wise maximum.
func Max[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		if a.data[i] > b.data[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Sqrt computes square root (floats only; integer square root lives in
// IntSqrt for the fixed-point magnitude path).
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = T(math.Sqrt(float64(x)))
	}
	return Vec[T]{data: result}
}

// FMA performs fused multiply-add: a*b + c.
func FMA[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(len(c.data), min(len(b.data), len(a.data)))
	result := make([]T, n)
	for i := range n {
		result[i] = T(math.FMA(float64(a.data[i]), float64(b.data[i]), float64(c.data[i])))
	}
	return Vec[T]{data: result}
}

// ReduceSum sums all lanes.
func ReduceSum[T Lanes](v Vec[T]) T {
	var sum T
	for _, x := range v.data {
		sum += x
	}
	return sum
}

// ReduceMin returns the minimum value across all lanes.
func ReduceMin[T Lanes](v Vec[T]) T {
	if len(v.data) == 0 {
		var zero T
		return zero
	}
	m := v.data[0]
	for _, x := range v.data[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// ReduceMax returns the maximum value across all lanes.
func ReduceMax[T Lanes](v Vec[T]) T {
	if len(v.data) == 0 {
		var zero T
		return zero
	}
	m := v.data[0]
	for _, x := range v.data[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Equal performs element-wise equality comparison.
func Equal[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] == b.data[i]
	}
	return Mask[T]{bits: bits}
}

// NotEqual performs element-wise inequality comparison.
func NotEqual[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] != b.data[i]
	}
	return Mask[T]{bits: bits}
}

// LessThan performs element-wise less-than comparison.
func LessThan[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] < b.data[i]
	}
	return Mask[T]{bits: bits}
}

// GreaterThan performs element-wise greater-than comparison.
func GreaterThan[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] > b.data[i]
	}
	return Mask[T]{bits: bits}
}

// LessEqual performs element-wise less-than-or-equal comparison.
func LessEqual[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] <= b.data[i]
	}
	return Mask[T]{bits: bits}
}

// GreaterEqual performs element-wise greater-than-or-equal comparison.
func GreaterEqual[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] >= b.data[i]
	}
	return Mask[T]{bits: bits}
}

// IsNaN returns a mask indicating which lanes contain NaN values.
func IsNaN[T Floats](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = math.IsNaN(float64(x))
	}
	return Mask[T]{bits: bits}
}

// IsInf returns a mask indicating which lanes contain infinity.
// The sign parameter: 0 = either, > 0 = +Inf only, < 0 = -Inf only.
func IsInf[T Floats](v Vec[T], sign int) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = math.IsInf(float64(x), sign)
	}
	return Mask[T]{bits: bits}
}

// IsFinite returns a mask indicating which lanes contain finite values.
func IsFinite[T Floats](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		f := float64(x)
		bits[i] = !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return Mask[T]{bits: bits}
}

// TestBit returns a mask indicating which lanes have the specified bit set.
// Bit 0 is the least significant bit.
func TestBit[T Integers](v Vec[T], bit int) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = testBitHelper(x, bit)
	}
	return Mask[T]{bits: bits}
}

func testBitHelper[T Integers](val T, bit int) bool {
	switch v := any(val).(type) {
	case int8:
		return (v & (1 << bit)) != 0
	case int16:
		return (v & (1 << bit)) != 0
	case int32:
		return (v & (1 << bit)) != 0
	case int64:
		return (v & (1 << bit)) != 0
	case uint8:
		return (v & (1 << bit)) != 0
	case uint16:
		return (v & (1 << bit)) != 0
	case uint32:
		return (v & (1 << bit)) != 0
	case uint64:
		return (v & (1 << bit)) != 0
	default:
		return false
	}
}

// IfThenElse performs conditional selection.
func IfThenElse[T Lanes](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(b.data), min(len(a.data), len(mask.bits)))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// IfThenElseZero returns a where mask is true, zero otherwise.
func IfThenElseZero[T Lanes](mask Mask[T], a Vec[T]) Vec[T] {
	n := min(len(a.data), len(mask.bits))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		}
	}
	return Vec[T]{data: result}
}

// IfThenZeroElse returns zero where mask is true, b otherwise.
func IfThenZeroElse[T Lanes](mask Mask[T], b Vec[T]) Vec[T] {
	n := min(len(b.data), len(mask.bits))
	result := make([]T, n)
	for i := range n {
		if !mask.bits[i] {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// ZeroIfNegative returns zero for negative lanes, original value otherwise.
func ZeroIfNegative[T Lanes](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, val := range v.data {
		if val >= 0 {
			result[i] = val
		}
	}
	return Vec[T]{data: result}
}

// MaskLoad loads data from a slice only for lanes where the mask is true.
func MaskLoad[T Lanes](mask Mask[T], src []T) Vec[T] {
	n := min(len(src), len(mask.bits))
	result := make([]T, len(mask.bits))
	for i := range n {
		if mask.bits[i] {
			result[i] = src[i]
		}
	}
	return Vec[T]{data: result}
}

// MaskStore stores vector data to a slice only for lanes where the mask is true.
func MaskStore[T Lanes](mask Mask[T], v Vec[T], dst []T) {
	n := min(len(dst), min(len(v.data), len(mask.bits)))
	for i := range n {
		if mask.bits[i] {
			dst[i] = v.data[i]
		}
	}
}

// And performs element-wise bitwise AND.
func And[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = bitwiseAnd(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// Or performs element-wise bitwise OR.
func Or[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = bitwiseOr(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// Xor performs element-wise bitwise XOR.
func Xor[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = bitwiseXor(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// Not performs element-wise bitwise NOT (ones complement).
func Not[T Lanes](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = bitwiseNot(x)
	}
	return Vec[T]{data: result}
}

// AndNot performs element-wise bitwise AND NOT (~a & b).
func AndNot[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = bitwiseAndNot(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// ShiftLeft performs element-wise left shift by a constant number of bits.
func ShiftLeft[T Integers](v Vec[T], bits int) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = shiftLeft(x, bits)
	}
	return Vec[T]{data: result}
}

// ShiftRight performs element-wise right shift by a constant number of bits.
// For signed integers this is arithmetic (sign-extended); for unsigned
// integers it is logical (zero-filled).
func ShiftRight[T Integers](v Vec[T], bits int) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = shiftRight(x, bits)
	}
	return Vec[T]{data: result}
}

// Iota returns an n-lane vector set to [0, 1, 2, ...].
func Iota[T Lanes](n int) Vec[T] {
	data := make([]T, n)
	for i := range data {
		data[i] = T(i)
	}
	return Vec[T]{data: data}
}

func bitwiseAnd[T Lanes](a, b T) T {
	switch any(a).(type) {
	case float32:
		aU := math.Float32bits(any(a).(float32))
		bU := math.Float32bits(any(b).(float32))
		return any(math.Float32frombits(aU & bU)).(T)
	case int8:
		return any(any(a).(int8) & any(b).(int8)).(T)
	case int16:
		return any(any(a).(int16) & any(b).(int16)).(T)
	case int32:
		return any(any(a).(int32) & any(b).(int32)).(T)
	case int64:
		return any(any(a).(int64) & any(b).(int64)).(T)
	case uint8:
		return any(any(a).(uint8) & any(b).(uint8)).(T)
	case uint16:
		return any(any(a).(uint16) & any(b).(uint16)).(T)
	case uint32:
		return any(any(a).(uint32) & any(b).(uint32)).(T)
	case uint64:
		return any(any(a).(uint64) & any(b).(uint64)).(T)
	default:
		return a
	}
}

func bitwiseOr[T Lanes](a, b T) T {
	switch any(a).(type) {
	case float32:
		aU := math.Float32bits(any(a).(float32))
		bU := math.Float32bits(any(b).(float32))
		return any(math.Float32frombits(aU | bU)).(T)
	case int8:
		return any(any(a).(int8) | any(b).(int8)).(T)
	case int16:
		return any(any(a).(int16) | any(b).(int16)).(T)
	case int32:
		return any(any(a).(int32) | any(b).(int32)).(T)
	case int64:
		return any(any(a).(int64) | any(b).(int64)).(T)
	case uint8:
		return any(any(a).(uint8) | any(b).(uint8)).(T)
	case uint16:
		return any(any(a).(uint16) | any(b).(uint16)).(T)
	case uint32:
		return any(any(a).(uint32) | any(b).(uint32)).(T)
	case uint64:
		return any(any(a).(uint64) | any(b).(uint64)).(T)
	default:
		return a
	}
}

func bitwiseXor[T Lanes](a, b T) T {
	switch any(a).(type) {
	case float32:
		aU := math.Float32bits(any(a).(float32))
		bU := math.Float32bits(any(b).(float32))
		return any(math.Float32frombits(aU ^ bU)).(T)
	case int8:
		return any(any(a).(int8) ^ any(b).(int8)).(T)
	case int16:
		return any(any(a).(int16) ^ any(b).(int16)).(T)
	case int32:
		return any(any(a).(int32) ^ any(b).(int32)).(T)
	case int64:
		return any(any(a).(int64) ^ any(b).(int64)).(T)
	case uint8:
		return any(any(a).(uint8) ^ any(b).(uint8)).(T)
	case uint16:
		return any(any(a).(uint16) ^ any(b).(uint16)).(T)
	case uint32:
		return any(any(a).(uint32) ^ any(b).(uint32)).(T)
	case uint64:
		return any(any(a).(uint64) ^ any(b).(uint64)).(T)
	default:
		return a
	}
}

func bitwiseNot[T Lanes](a T) T {
	switch any(a).(type) {
	case float32:
		aU := math.Float32bits(any(a).(float32))
		return any(math.Float32frombits(^aU)).(T)
	case int8:
		return any(^any(a).(int8)).(T)
	case int16:
		return any(^any(a).(int16)).(T)
	case int32:
		return any(^any(a).(int32)).(T)
	case int64:
		return any(^any(a).(int64)).(T)
	case uint8:
		return any(^any(a).(uint8)).(T)
	case uint16:
		return any(^any(a).(uint16)).(T)
	case uint32:
		return any(^any(a).(uint32)).(T)
	case uint64:
		return any(^any(a).(uint64)).(T)
	default:
		return a
	}
}

func bitwiseAndNot[T Lanes](a, b T) T {
	switch any(a).(type) {
	case float32:
		aU := math.Float32bits(any(a).(float32))
		bU := math.Float32bits(any(b).(float32))
		return any(math.Float32frombits((^aU) & bU)).(T)
	case int8:
		return any((^any(a).(int8)) & any(b).(int8)).(T)
	case int16:
		return any((^any(a).(int16)) & any(b).(int16)).(T)
	case int32:
		return any((^any(a).(int32)) & any(b).(int32)).(T)
	case int64:
		return any((^any(a).(int64)) & any(b).(int64)).(T)
	case uint8:
		return any((^any(a).(uint8)) & any(b).(uint8)).(T)
	case uint16:
		return any((^any(a).(uint16)) & any(b).(uint16)).(T)
	case uint32:
		return any((^any(a).(uint32)) & any(b).(uint32)).(T)
	case uint64:
		return any((^any(a).(uint64)) & any(b).(uint64)).(T)
	default:
		return a
	}
}

func shiftLeft[T Integers](a T, bits int) T {
	switch any(a).(type) {
	case int8:
		return any(any(a).(int8) << bits).(T)
	case int16:
		return any(any(a).(int16) << bits).(T)
	case int32:
		return any(any(a).(int32) << bits).(T)
	case int64:
		return any(any(a).(int64) << bits).(T)
	case uint8:
		return any(any(a).(uint8) << bits).(T)
	case uint16:
		return any(any(a).(uint16) << bits).(T)
	case uint32:
		return any(any(a).(uint32) << bits).(T)
	case uint64:
		return any(any(a).(uint64) << bits).(T)
	default:
		return a
	}
}

func shiftRight[T Integers](a T, bits int) T {
	switch any(a).(type) {
	case int8:
		return any(any(a).(int8) >> bits).(T)
	case int16:
		return any(any(a).(int16) >> bits).(T)
	case int32:
		return any(any(a).(int32) >> bits).(T)
	case int64:
		return any(any(a).(int64) >> bits).(T)
	case uint8:
		return any(any(a).(uint8) >> bits).(T)
	case uint16:
		return any(any(a).(uint16) >> bits).(T)
	case uint32:
		return any(any(a).(uint32) >> bits).(T)
	case uint64:
		return any(any(a).(uint64) >> bits).(T)
	default:
		return a
	}
}

// Greater performs element-wise greater-than comparison.
func Greater[T Lanes](a, b Vec[T]) Mask[T] {
	return GreaterThan(a, b)
}

// Less performs element-wise less-than comparison.
func Less[T Lanes](a, b Vec[T]) Mask[T] {
	return LessThan(a, b)
}

// Merge selects elements from a where mask is true, from b otherwise.
func Merge[T Lanes](a, b Vec[T], mask Mask[T]) Vec[T] {
	return IfThenElse(mask, a, b)
}

// AsInt32 reinterprets a float32 vector as int32 (bit cast).
func AsInt32(v Vec[float32]) Vec[int32] {
	result := make([]int32, len(v.data))
	for i, x := range v.data {
		result[i] = int32(math.Float32bits(x))
	}
	return Vec[int32]{data: result}
}

// AsFloat32 reinterprets an int32 vector as float32 (bit cast).
func AsFloat32(v Vec[int32]) Vec[float32] {
	result := make([]float32, len(v.data))
	for i, x := range v.data {
		result[i] = math.Float32frombits(uint32(x))
	}
	return Vec[float32]{data: result}
}

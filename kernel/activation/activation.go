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

// Package activation implements the nine fixed-point activation
// functions: every fixed-point lane is upcast to float64 (standing in
// for the f32 the transcendentals run in), the function is evaluated,
// and the result is downcast with the selected rounding and an
// optional saturate.
package activation

import (
	"math"

	"github.com/vxstream/vxstream/vx"
	"github.com/vxstream/vxstream/vx/fixedpoint"
)

// Func selects one of the nine activation functions.
type Func int

const (
	Logistic Func = iota
	ScaledTanh
	ReLU
	BoundedReLU
	SoftPlus
	Abs
	Square
	Sqrt
	Linear
)

// eval computes the activation in floating point. a and b are the
// per-function parameters: ScaledTanh uses a*tanh(b*x), BoundedReLU
// clamps to [0, a], Linear computes a*x+b; unused by the rest.
func eval(fn Func, x, a, b float64) float64 {
	switch fn {
	case Logistic:
		return 1.0 / (1.0 + math.Exp(-x))
	case ScaledTanh:
		return a * math.Tanh(b*x)
	case ReLU:
		return math.Max(0, x)
	case BoundedReLU:
		return math.Min(a, math.Max(0, x))
	case SoftPlus:
		return math.Log1p(math.Exp(x))
	case Abs:
		return math.Abs(x)
	case Square:
		return x * x
	case Sqrt:
		if x < 0 {
			return 0
		}
		return math.Sqrt(x)
	case Linear:
		return a*x + b
	default:
		return x
	}
}

// Apply runs fn over every Q(fp) fixed-point lane of x. a and b carry
// the per-function parameters (see eval); roundNearest selects
// round-to-nearest vs. truncation on the fixed-point downcast, and
// saturate clamps the result to T's range instead of wrapping.
func Apply[T vx.Integers](x []T, fn Func, a, b float64, fp uint, roundNearest, saturate bool) []T {
	out := make([]T, len(x))
	scale := math.Pow(2, float64(fp))
	lo := int64(fixedpoint.MinOf[T]())
	hi := int64(fixedpoint.MaxOf[T]())

	for i, v := range x {
		xf := float64(v) / scale
		yf := eval(fn, xf, a, b) * scale

		var yi int64
		if roundNearest {
			yi = int64(math.Round(yf))
		} else {
			yi = int64(math.Trunc(yf))
		}
		if saturate {
			yi = fixedpoint.Saturate(yi, lo, hi)
		}
		out[i] = T(yi)
	}
	return out
}

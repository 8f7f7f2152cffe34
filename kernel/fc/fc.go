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

// Package fc implements the fully-connected (vector-by-matrix) layer:
// one dot product per output feature, fixed-point rounding on the
// accumulator, optional saturation, and an optional on-chip weight and
// bias table that is latched from the first batch and reused after.
package fc

import (
	"github.com/vxstream/vxstream/vx"
	"github.com/vxstream/vxstream/vx/fixedpoint"
)

// Params controls the fixed-point accumulation discipline and the
// weight/bias buffering policy shared by every Apply call on a Layer.
type Params struct {
	FP           uint
	RoundNearest bool
	Saturate     bool
	BufferWeight bool // latch weight/bias from the first batch and ignore later ones
}

// Layer holds the optional on-chip weight/bias table across batches.
type Layer[T vx.Integers] struct {
	p        Params
	weight   [][]T // [outFeatures][inFeatures], row-major per output feature
	bias     []T
	buffered bool
}

// New creates a fully-connected layer with the given accumulation
// discipline.
func New[T vx.Integers](p Params) *Layer[T] {
	return &Layer[T]{p: p}
}

func roundShift(sum int64, fp uint, nearest bool) int64 {
	if nearest && fp > 0 {
		sum += int64(1) << (fp - 1)
	}
	return sum >> fp
}

// Apply computes output[o] = round(Σ_i x[i]*weight[o][i], FP) + bias[o]
// for every output feature o. When BufferWeight is set, weight and bias
// are read from the arguments only on the layer's first call; every
// later call reuses the table latched then and ignores its own
// weight/bias arguments, mirroring the convolution engines' on-chip
// coefficient table.
func (l *Layer[T]) Apply(x []T, weight [][]T, bias []T) []T {
	if l.p.BufferWeight {
		if !l.buffered {
			l.weight, l.bias, l.buffered = weight, bias, true
		}
		weight, bias = l.weight, l.bias
	}

	lo := int64(fixedpoint.MinOf[T]())
	hi := int64(fixedpoint.MaxOf[T]())

	out := make([]T, len(weight))
	for o, row := range weight {
		var sum int64
		n := min(len(row), len(x))
		for i := 0; i < n; i++ {
			sum += int64(x[i]) * int64(row[i])
		}
		val := roundShift(sum, l.p.FP, l.p.RoundNearest)
		if o < len(bias) {
			val += int64(bias[o])
		}
		if l.p.Saturate {
			val = fixedpoint.Saturate(val, lo, hi)
		}
		out[o] = T(val)
	}
	return out
}

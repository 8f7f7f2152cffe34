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

// Package softmax implements the two-pass fixed-point softmax: the
// first pass accumulates e^x_i scaled by 2^FP into an i32 exp buffer
// (sized IFM/P, one slot per lane group), the second divides each
// entry by the accumulated sum and emits the Q(FP) probability.
package softmax

import (
	"math"

	"github.com/vxstream/vxstream/vx"
)

// Compute runs the two passes over one batch of IFM fixed-point Q(fp)
// lanes, returning Q(fp) probabilities that sum to (approximately,
// subject to integer rounding) 1<<fp.
func Compute[T vx.Integers](x []T, fp uint) []T {
	n := len(x)
	scale := math.Pow(2, float64(fp))
	expBuf := make([]int64, n)

	var sum int64
	for i, v := range x {
		xf := float64(v) / scale
		e := math.Exp(xf)
		eFixed := int64(math.Round(e * scale))
		expBuf[i] = eFixed
		sum += eFixed
	}

	out := make([]T, n)
	if sum == 0 {
		return out
	}
	full := int64(1) << fp
	for i, e := range expBuf {
		out[i] = T((e*full + sum/2) / sum)
	}
	return out
}

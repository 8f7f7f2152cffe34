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

// Package bitdepth converts lane values between integer scalar types by a
// fixed shift, with a saturate-or-wrap policy applied at the target width.
package bitdepth

import (
	"math"

	"github.com/vxstream/vxstream/vx"
	"github.com/vxstream/vxstream/vx/fixedpoint"
)

// Convert maps each value of in through a left shift of shift bits (when
// shift > 0, widening the representation — e.g. U8→U16) or an arithmetic
// right shift of -shift bits (when shift < 0, narrowing — e.g. S16→U8),
// then either saturates the widened result into Out's range or truncates
// it (wrap). shift == 0 is a plain re-interpretation of In's values as Out.
func Convert[In vx.Integers, Out vx.Integers](in []In, shift int, saturate bool) []Out {
	signedIn := fixedpoint.MinOf[In]() < 0
	loOut := int64(fixedpoint.MinOf[Out]())
	hiOut := int64(fixedpoint.MaxOf[Out]())
	if hiOut < 0 {
		// Out's true maximum (uint64) overflows int64; the widened
		// accumulator below is itself an int64, so it can never exceed
		// math.MaxInt64 anyway.
		hiOut = math.MaxInt64
	}

	out := make([]Out, len(in))
	for i, v := range in {
		wide := int64(v)
		switch {
		case shift > 0:
			wide <<= uint(shift)
		case shift < 0:
			wide = fixedpoint.ArithShiftRight(wide, uint(-shift), signedIn)
		}
		if saturate {
			wide = fixedpoint.Saturate(wide, loOut, hiOut)
		}
		out[i] = Out(wide)
	}
	return out
}

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

// Package conv implements depth-wise and point-wise 3-D convolution over
// the window engine, with fixed-point accumulation, rounding and optional
// saturation.
package conv

import (
	"iter"
	"math"

	"github.com/vxstream/vxstream/kernel/plane"
	"github.com/vxstream/vxstream/kernel/window"
	"github.com/vxstream/vxstream/vx/fixedpoint"
)

// Params controls stride, padding, and the integer accumulation discipline
// shared by DepthWise and PointWise.
type Params struct {
	StrideY, StrideX int
	PadY, PadX       int
	FP               uint // fixed-point position the coefficients are scaled by
	RoundNearest     bool
	Saturate         bool
}

func roundAccum(sum int64, fp uint, nearest bool) int64 {
	if nearest && fp > 0 {
		sum += int64(1) << (fp - 1)
	}
	return sum >> fp
}

func slideFor(p Params) func(*plane.Plane[int32], window.Config) iter.Seq[window.Output[int32]] {
	if p.PadY != 0 || p.PadX != 0 {
		return window.ZeroPaddedSlide[int32]
	}
	return window.Slide[int32]
}

// DepthWise convolves one input channel with its own Ky x Kx kernel (no
// cross-channel reduction); coefficients are taps in kx-innermost,
// ky-outer order, applied as a true convolution (kernel flipped against
// the window, matching `window[(Ky-1-ky),(Kx-1-kx)] * K[ky,kx]`).
func DepthWise(in *plane.Plane[int32], kernel [][]int64, bias int64, p Params) *plane.Plane[int32] {
	ky, kx := len(kernel), len(kernel[0])
	cfg := window.Config{KY: ky, KX: kx, StrideY: p.StrideY, StrideX: p.StrideX, PadY: p.PadY, PadX: p.PadX}
	outW := window.OutputSize(in.Width(), kx, p.PadX, p.StrideX)
	outH := window.OutputSize(in.Height(), ky, p.PadY, p.StrideY)
	out := plane.New[int32](outW, outH)

	for o := range slideFor(p)(in, cfg) {
		var sum int64
		for wy := 0; wy < ky; wy++ {
			for wx := 0; wx < kx; wx++ {
				sum += int64(o.Win[wy][wx]) * kernel[ky-1-wy][kx-1-wx]
			}
		}
		val := roundAccum(sum, p.FP, p.RoundNearest) + bias
		if p.Saturate {
			val = fixedpoint.Saturate(val, math.MinInt32, math.MaxInt32)
		}
		out.Set(o.OX, o.OY, int32(val))
	}
	return out
}

// PointWise convolves ifm input channel planes with a [ofm][ifm][ky][kx]
// coefficient tensor, reducing across every input channel for each
// output channel. biases may be nil (no bias), length 1 (shared), or
// length ofm (per-output-channel).
func PointWise(in []*plane.Plane[int32], kernel [][][][]int64, biases []int64, p Params) []*plane.Plane[int32] {
	ifm := len(in)
	ofm := len(kernel)
	ky, kx := len(kernel[0][0]), len(kernel[0][0][0])
	cfg := window.Config{KY: ky, KX: kx, StrideY: p.StrideY, StrideX: p.StrideX, PadY: p.PadY, PadX: p.PadX}

	outW := window.OutputSize(in[0].Width(), kx, p.PadX, p.StrideX)
	outH := window.OutputSize(in[0].Height(), ky, p.PadY, p.StrideY)
	outs := make([]*plane.Plane[int32], ofm)
	for o := range outs {
		outs[o] = plane.New[int32](outW, outH)
	}

	slide := slideFor(p)
	nexts := make([]func() (window.Output[int32], bool), ifm)
	for c := range in {
		next, stop := iter.Pull(slide(in[c], cfg))
		defer stop()
		nexts[c] = next
	}

	wins := make([]window.Output[int32], ifm)
	for {
		ready := true
		for c := range nexts {
			w, ok := nexts[c]()
			if !ok {
				ready = false
				break
			}
			wins[c] = w
		}
		if !ready {
			break
		}
		oy, ox := wins[0].OY, wins[0].OX
		for f := 0; f < ofm; f++ {
			var sum int64
			for c := 0; c < ifm; c++ {
				for wy := 0; wy < ky; wy++ {
					for wx := 0; wx < kx; wx++ {
						sum += int64(wins[c].Win[wy][wx]) * kernel[f][c][ky-1-wy][kx-1-wx]
					}
				}
			}
			bias := int64(0)
			switch {
			case len(biases) == 1:
				bias = biases[0]
			case len(biases) > f:
				bias = biases[f]
			}
			val := roundAccum(sum, p.FP, p.RoundNearest) + bias
			if p.Saturate {
				val = fixedpoint.Saturate(val, math.MinInt32, math.MaxInt32)
			}
			outs[f].Set(ox, oy, int32(val))
		}
	}
	return outs
}

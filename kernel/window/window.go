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

// Package window turns a raster pixel plane into a sequence of sliding
// Ky×Kx windows, the state machine every 2-D kernel (convolution, pooling,
// scale-down) builds on. Every input pixel is read exactly once per pass;
// the border policy is "replicate at boundary".
package window

import (
	"iter"

	"github.com/vxstream/vxstream/kernel/plane"
	"github.com/vxstream/vxstream/vx"
)

// Config parameters the window engine is statically instantiated with.
type Config struct {
	KY, KX         int // kernel height/width
	StrideY, StrideX int
	PadY, PadX     int // boundary padding; 0 <= PadY <= KY/2, 0 <= PadX <= KX/2
}

// Output is one emitted window: its output-grid coordinate and the Ky×Kx
// neighbourhood of the centred input pixel, rows outermost.
type Output[T vx.Lanes] struct {
	OY, OX int
	Win    [][]T
}

// Slide walks p and yields one Output per emitted output location,
// following §4.2's output condition: the centre visits
// [0, height+KY/2) × [0, width+KX/2), and a window is emitted only when
// both (y-KY/2) and (x-KX/2) are divisible by the stride and within
// range. Columns/rows outside the plane read the replicated border pixel.
func Slide[T vx.Lanes](p *plane.Plane[T], cfg Config) iter.Seq[Output[T]] {
	halfY := cfg.KY / 2
	halfX := cfg.KX / 2
	return func(yield func(Output[T]) bool) {
		for y := 0; y < p.Height()+halfY; y++ {
			for x := 0; x < p.Width()+halfX; x++ {
				if y < halfY || x < halfX {
					continue
				}
				oy := y - halfY
				ox := x - halfX
				if oy%cfg.StrideY != 0 || ox%cfg.StrideX != 0 {
					continue
				}
				oy /= cfg.StrideY
				ox /= cfg.StrideX

				win := make([][]T, cfg.KY)
				for ky := 0; ky < cfg.KY; ky++ {
					row := make([]T, cfg.KX)
					for kx := 0; kx < cfg.KX; kx++ {
						srcY := y - halfY + ky - cfg.PadY
						srcX := x - halfX + kx - cfg.PadX
						row[kx] = p.AtClamped(srcX, srcY)
					}
					win[ky] = row
				}
				if !yield(Output[T]{OY: oy, OX: ox, Win: win}) {
					return
				}
			}
		}
	}
}

// OutputSize returns the output plane dimensions Slide produces for an
// input of the given size under cfg, matching the stride relation used
// by pooling and convolution: out = (in + 2*pad - k)/stride + 1.
func OutputSize(inSize, k, pad, stride int) int {
	return (inSize+2*pad-k)/stride + 1
}

// ZeroPaddedSlide behaves like Slide but supplies zero (rather than a
// replicated edge pixel) outside [0,width)×[0,height) — the border policy
// pooling's average mode and convolution use when PadY/PadX > 0.
func ZeroPaddedSlide[T vx.Lanes](p *plane.Plane[T], cfg Config) iter.Seq[Output[T]] {
	return func(yield func(Output[T]) bool) {
		for y := -cfg.PadY; y < p.Height()+cfg.PadY; y += cfg.StrideY {
			if (y+cfg.PadY)%cfg.StrideY != 0 {
				continue
			}
			for x := -cfg.PadX; x < p.Width()+cfg.PadX; x += cfg.StrideX {
				win := make([][]T, cfg.KY)
				for ky := 0; ky < cfg.KY; ky++ {
					row := make([]T, cfg.KX)
					for kx := 0; kx < cfg.KX; kx++ {
						srcY := y + ky
						srcX := x + kx
						if srcY < 0 || srcY >= p.Height() || srcX < 0 || srcX >= p.Width() {
							var zero T
							row[kx] = zero
						} else {
							row[kx] = p.At(srcX, srcY)
						}
					}
					win[ky] = row
				}
				oy := (y + cfg.PadY) / cfg.StrideY
				ox := (x + cfg.PadX) / cfg.StrideX
				if !yield(Output[T]{OY: oy, OX: ox, Win: win}) {
					return
				}
			}
		}
	}
}

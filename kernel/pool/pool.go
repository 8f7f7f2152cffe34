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

// Package pool implements max and average pooling with padding and
// stride. Average and max disagree on what a padded border tap should
// read (zero vs. the type's minimum), so pooling walks its own window
// loop rather than reusing the convolution window engine's single
// zero-fill border policy.
package pool

import (
	"math"

	"github.com/vxstream/vxstream/kernel/plane"
	"github.com/vxstream/vxstream/kernel/window"
	"github.com/vxstream/vxstream/pipeline/workerpool"
)

// Mode selects the reduction applied within each window.
type Mode int

const (
	Max Mode = iota
	Average
)

// Params controls the pooling window geometry. Stride must satisfy
// 1 <= StrideY,StrideX <= K, matching (ROWS_in+2*Pad-K)/(ROWS_out-1).
type Params struct {
	KY, KX           int
	StrideY, StrideX int
	PadY, PadX       int
	FP               uint // fixed-point position used by the average's reciprocal multiply
}

// Pool reduces each KY x KX window of in to one output lane, using
// integer reciprocal multiplication (Σ * round(2^FP/(KY*KX)) >> FP) for
// the average and a direct max for the max mode.
func Pool(in *plane.Plane[int32], mode Mode, p Params) *plane.Plane[int32] {
	outW := window.OutputSize(in.Width(), p.KX, p.PadX, p.StrideX)
	outH := window.OutputSize(in.Height(), p.KY, p.PadY, p.StrideY)
	out := plane.New[int32](outW, outH)

	area := uint64(p.KY * p.KX)
	mult := (uint64(1)<<p.FP + area/2) / area

	fill := int32(0)
	if mode == Max {
		fill = math.MinInt32
	}

	poolRow := func(oy int) {
		startY := oy*p.StrideY - p.PadY
		for ox := 0; ox < outW; ox++ {
			startX := ox*p.StrideX - p.PadX

			var sum int64
			maxV := int32(math.MinInt32)
			for ky := 0; ky < p.KY; ky++ {
				y := startY + ky
				for kx := 0; kx < p.KX; kx++ {
					x := startX + kx
					v := fill
					if y >= 0 && y < in.Height() && x >= 0 && x < in.Width() {
						v = in.At(x, y)
					}
					if mode == Max {
						if v > maxV {
							maxV = v
						}
					} else {
						sum += int64(v)
					}
				}
			}

			if mode == Max {
				out.Set(ox, oy, maxV)
			} else {
				out.Set(ox, oy, int32((sum*int64(mult))>>p.FP))
			}
		}
	}

	// Each output row writes only to its own row of out, so rows fan out
	// across a shared pool with no synchronization beyond the pool's own
	// completion barrier.
	wp := workerpool.New(0)
	defer wp.Close()
	wp.ParallelFor(outH, func(start, end int) {
		for oy := start; oy < end; oy++ {
			poolRow(oy)
		}
	})
	return out
}

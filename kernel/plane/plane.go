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

// Package plane provides the single-channel 2D buffer every spatial
// kernel (window, convolution, pooling, scale-down, colour conversion)
// reads from and writes to, plus the border-index helpers used at image
// boundaries.
package plane

import "github.com/vxstream/vxstream/vx"

// Plane is a single-channel row-major 2D array. It is the materialised
// form a streaming image takes between kernel stages in this port: a
// producer kernel fills one, a consumer kernel reads it row by row,
// exactly once per position.
type Plane[T vx.Lanes] struct {
	data   []T
	width  int
	height int
}

// New creates a zero-filled plane of the given dimensions.
func New[T vx.Lanes](width, height int) *Plane[T] {
	if width <= 0 || height <= 0 {
		panic("plane: width and height must be positive")
	}
	return &Plane[T]{data: make([]T, width*height), width: width, height: height}
}

// FromRows builds a plane from literal row-major data, one slice per row.
// Every row must have the same length; this panics otherwise, since a
// ragged plane violates every downstream kernel's fixed-stride assumption.
func FromRows[T vx.Lanes](rows [][]T) *Plane[T] {
	if len(rows) == 0 {
		panic("plane: FromRows requires at least one row")
	}
	width := len(rows[0])
	p := New[T](width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			panic("plane: FromRows requires equal-length rows")
		}
		copy(p.Row(y), row)
	}
	return p
}

// Width returns the plane width in pixels.
func (p *Plane[T]) Width() int { return p.width }

// Height returns the plane height in pixels.
func (p *Plane[T]) Height() int { return p.height }

// Row returns the mutable backing slice for row y.
func (p *Plane[T]) Row(y int) []T {
	start := y * p.width
	return p.data[start : start+p.width]
}

// Data returns the mutable backing row-major slice, for kernels (such
// as kernel/bitdepth and kernel/color) that operate on a flat sample
// slice rather than a 2D index.
func (p *Plane[T]) Data() []T {
	return p.data
}

// At returns the value at (x, y) with no bounds adjustment.
func (p *Plane[T]) At(x, y int) T {
	return p.data[y*p.width+x]
}

// Set writes the value at (x, y) with no bounds adjustment.
func (p *Plane[T]) Set(x, y int, v T) {
	p.data[y*p.width+x] = v
}

// AtClamped reads (x, y), clamping out-of-range coordinates to the nearest
// edge pixel — the "replicate at boundary" border policy used by the
// window engine and the scale-down kernels.
func (p *Plane[T]) AtClamped(x, y int) T {
	return p.At(Clamp(x, p.width), Clamp(y, p.height))
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

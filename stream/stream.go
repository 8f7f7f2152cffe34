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

// Package stream defines the transport element every kernel reads and
// writes: a fixed-width lane group plus frame-boundary side-band flags,
// and the channel-based Source/Sink endpoints operators are wired through.
package stream

import "github.com/vxstream/vxstream/vx"

// Elem is one Vec<T,N> stream element: N lane values plus the two 1-bit
// side-band flags that mark frame boundaries. SOF is true on the first
// element of a frame, EOF on the last; every other element has both false.
type Elem[T vx.Lanes] struct {
	Vec vx.Vec[T]
	SOF bool
	EOF bool
}

// NewElem wraps lane values with explicit frame-boundary flags.
func NewElem[T vx.Lanes](lanes []T, sof, eof bool) Elem[T] {
	return Elem[T]{Vec: vx.Load(lanes), SOF: sof, EOF: eof}
}

// Width returns the number of lanes carried by this element.
func (e Elem[T]) Width() int {
	return e.Vec.NumLanes()
}

// Data returns the lane values as a plain slice.
func (e Elem[T]) Data() []T {
	return e.Vec.Data()
}

// Source is the read endpoint of a bounded stream: a channel of elements
// that a producer closes once its EOF element has been sent.
type Source[T vx.Lanes] <-chan Elem[T]

// Sink is the write endpoint of a bounded stream.
type Sink[T vx.Lanes] chan<- Elem[T]

// NewChannel creates a connected Sink/Source pair with the given buffer
// depth. A depth of zero gives lock-step (unbuffered) delivery, matching
// the "initiation interval one" scheduling model between two operators
// that are meant to run in near lock-step; a deeper buffer decouples a
// slow consumer from a bursty producer without changing element order.
func NewChannel[T vx.Lanes](depth int) (Sink[T], Source[T]) {
	ch := make(chan Elem[T], depth)
	return Sink[T](ch), Source[T](ch)
}

// Frames splits a source into per-frame element slices, blocking until
// each frame's EOF element has arrived. It is intended for tests and the
// CLI's batch-oriented PGM front end, not for use inside a kernel's
// steady-state loop.
func Frames[T vx.Lanes](src Source[T]) [][]Elem[T] {
	var frames [][]Elem[T]
	var cur []Elem[T]
	for e := range src {
		cur = append(cur, e)
		if e.EOF {
			frames = append(frames, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		frames = append(frames, cur)
	}
	return frames
}

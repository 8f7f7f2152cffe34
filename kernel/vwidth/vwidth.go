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

// Package vwidth rate-adapts a stream of one vector width to another,
// for both divisible and non-divisible width ratios, with scalar order
// and frame boundaries preserved across the conversion.
package vwidth

import (
	"github.com/vxstream/vxstream/stream"
	"github.com/vxstream/vxstream/vx"
)

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// Convert consumes src, whose elements each carry pSrc lanes, and produces
// a stream of elements each carrying pDst lanes, preserving scalar order
// and SOF/EOF frame boundaries. It picks one of four strategies by
// (pSrc, pDst): equal widths pass straight through; pSrc a multiple of
// pDst splits each source element in lane order; pDst a multiple of pSrc
// accumulates several source elements into one; otherwise a flat scalar
// buffer handles the general, non-dividing case.
func Convert[T vx.Lanes](src stream.Source[T], pSrc, pDst int) stream.Source[T] {
	if pSrc <= 0 || pDst <= 0 {
		panic("vwidth: widths must be positive")
	}
	sink, out := stream.NewChannel[T](0)
	go func() {
		defer close(sink)
		switch {
		case pSrc == pDst:
			passThrough(src, sink)
		case pSrc > pDst && pSrc%pDst == 0:
			split(src, sink, pDst)
		case pDst > pSrc && pDst%pSrc == 0:
			accumulate(src, sink, pDst)
		default:
			interleave(src, sink, pSrc, pDst)
		}
	}()
	return out
}

func passThrough[T vx.Lanes](src stream.Source[T], sink stream.Sink[T]) {
	for e := range src {
		sink <- e
	}
}

// split breaks each pSrc-wide source element into pSrc/pDst output
// elements taken in lane order; only the first sub-element can carry the
// source's SOF and only the last its EOF.
func split[T vx.Lanes](src stream.Source[T], sink stream.Sink[T], pDst int) {
	for e := range src {
		data := e.Data()
		pieces := len(data) / pDst
		for i := 0; i < pieces; i++ {
			chunk := data[i*pDst : (i+1)*pDst]
			sink <- stream.NewElem(chunk, e.SOF && i == 0, e.EOF && i == pieces-1)
		}
	}
}

// accumulate buffers pDst/pSrc consecutive source elements into one
// pDst-wide output element; SOF comes from the first element buffered,
// EOF from whichever element completes the group.
func accumulate[T vx.Lanes](src stream.Source[T], sink stream.Sink[T], pDst int) {
	buf := make([]T, 0, pDst)
	sof := false
	empty := true
	for e := range src {
		if empty {
			sof = e.SOF
			empty = false
		}
		buf = append(buf, e.Data()...)
		if len(buf) == pDst {
			sink <- stream.NewElem(buf, sof, e.EOF)
			buf = make([]T, 0, pDst)
			empty = true
		}
	}
}

// interleave is the general fallback when neither width divides the
// other: scalars are appended to a flat buffer and emitted in pDst-sized
// chunks as they become available, which realises the "source bytes so
// far ≥ destination bytes so far + P_dst" emission gate without needing
// the separate per-ratio offset bookkeeping a fixed-size hardware scratch
// buffer would use.
func interleave[T vx.Lanes](src stream.Source[T], sink stream.Sink[T], pSrc, pDst int) {
	_ = lcm(pSrc, pDst) // the bound a fixed-capacity scratch buffer would need; unbounded here since buf can grow on a Go slice
	var buf []T
	pendingSOF := false
	eofRemaining := -1 // scalars left in buf, from the front, until the pending EOF scalar; -1 if none pending
	for e := range src {
		if e.SOF && len(buf) == 0 {
			pendingSOF = true
		}
		buf = append(buf, e.Data()...)
		if e.EOF {
			eofRemaining = len(buf) - 1
		}
		for len(buf) >= pDst {
			eof := eofRemaining == pDst-1
			sink <- stream.NewElem(buf[:pDst], pendingSOF, eof)
			pendingSOF = false
			buf = buf[pDst:]
			if eofRemaining >= 0 {
				eofRemaining -= pDst
			}
		}
	}
}

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

// Package channel interleaves and de-interleaves multi-plane images: a
// direct byte-pack for U16/U32/RGBX, and the 3-in-4 protocol RGB needs
// because its 24-bit pixel does not divide a lane boundary evenly.
package channel

import "github.com/vxstream/vxstream/vx"

// Combine byte-packs up to four single-channel plane slices into one
// word per source pixel: plane c occupies bits [8c, 8c+8). This is the
// direct U16/U32/RGBX path, which needs no cross-pixel state since every
// output word is byte-aligned with its input pixel.
func Combine[T vx.Integers](planes ...[]uint8) []T {
	if len(planes) == 0 {
		return nil
	}
	n := len(planes[0])
	out := make([]T, n)
	for i := 0; i < n; i++ {
		var word uint64
		for c, plane := range planes {
			word |= uint64(plane[i]) << uint(8*c)
		}
		out[i] = T(word)
	}
	return out
}

// Extract is the inverse of Combine: it unpacks channels consecutive
// byte-aligned planes from packed words.
func Extract[T vx.Integers](packed []T, channels int) [][]uint8 {
	planes := make([][]uint8, channels)
	for c := range planes {
		planes[c] = make([]uint8, len(packed))
	}
	for i, w := range packed {
		word := uint64(w)
		for c := range planes {
			planes[c][i] = uint8(word >> uint(8*c))
		}
	}
	return planes
}

// rgbCombineState mirrors the cases/buffer registers the 3-in-4 packer
// needs across calls: three RGB pixels (9 bytes) fill four packed words
// (up to 16 bytes, of which 9 carry data), so one pixel of state must
// survive from one source read to the next.
type rgbCombineState struct {
	cases  uint8
	buf    [2]uint8
	output [4]uint8
}

// step feeds one (r,g,b) source pixel through the packer. It returns the
// completed output word and whether this step actually has one ready —
// case 1 never completes a word, since it only supplies the fourth byte
// of the word case 0 started.
func (s *rgbCombineState) step(r, g, b uint8) (word uint32, ready bool) {
	switch s.cases {
	case 0:
		s.output[0], s.output[1], s.output[2] = r, g, b
		s.cases = 1
	case 1:
		s.output[3] = r
		s.buf[0], s.buf[1] = g, b
		s.cases = 2
	case 2:
		s.output[0], s.output[1] = s.buf[0], s.buf[1]
		s.output[2], s.output[3] = r, g
		s.buf[0] = b
		s.cases = 3
	default:
		s.output[0] = s.buf[0]
		s.output[1], s.output[2], s.output[3] = r, g, b
		s.cases = 0
	}
	if s.cases != 1 {
		word = uint32(s.output[0]) | uint32(s.output[1])<<8 | uint32(s.output[2])<<16 | uint32(s.output[3])<<24
		ready = true
	}
	return
}

// CombineRGB packs three 8-bit channel planes into a stream of u32 words
// using the 3-in-4 protocol: every 3 input pixels produce 4 output words.
func CombineRGB(r, g, b []uint8) []uint32 {
	n := len(r)
	out := make([]uint32, 0, (n*4+2)/3)
	var st rgbCombineState
	for i := 0; i < n; i++ {
		if word, ready := st.step(r[i], g[i], b[i]); ready {
			out = append(out, word)
		}
	}
	return out
}

// rgbExtractState mirrors ConvertFromRgb's register set: the inverse
// 4-words-in, 3-pixels-out state machine.
type rgbExtractState struct {
	cases uint8
	buf   [3]uint8
}

// step feeds one packed source word through the extractor and returns up
// to one decoded (r,g,b) triplet; readNext reports whether the following
// call should be fed a fresh source word (false only right after case 2,
// which still has one buffered byte left to drain from case 3's data).
func (s *rgbExtractState) step(word uint32) (r, g, b uint8, readNext bool) {
	in := [4]uint8{
		uint8(word), uint8(word >> 8), uint8(word >> 16), uint8(word >> 24),
	}
	switch s.cases {
	case 0:
		r, g, b = in[0], in[1], in[2]
		s.buf[0] = in[3]
		s.cases = 1
	case 1:
		r, g, b = s.buf[0], in[0], in[1]
		s.buf[0], s.buf[1] = in[2], in[3]
		s.cases = 2
	case 2:
		r, g, b = s.buf[0], s.buf[1], in[0]
		s.buf[0], s.buf[1], s.buf[2] = in[1], in[2], in[3]
		s.cases = 3
	default:
		r, g, b = s.buf[0], s.buf[1], s.buf[2]
		s.cases = 0
	}
	readNext = s.cases < 3
	return
}

// ExtractRGB unpacks a stream of 3-in-4-packed u32 words back into three
// 8-bit channel planes: every 4 input words yield 3 output pixels.
func ExtractRGB(packed []uint32) (r, g, b []uint8) {
	r = make([]uint8, 0, len(packed)*3/4+1)
	g = make([]uint8, 0, len(packed)*3/4+1)
	b = make([]uint8, 0, len(packed)*3/4+1)

	var st rgbExtractState
	i := 0
	readNext := true
	var cur uint32
	for i < len(packed) || !readNext {
		if readNext {
			if i >= len(packed) {
				break
			}
			cur = packed[i]
			i++
		}
		rr, gg, bb, next := st.step(cur)
		r = append(r, rr)
		g = append(g, gg)
		b = append(b, bb)
		readNext = next
	}
	return r, g, b
}

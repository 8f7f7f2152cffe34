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

// Package scale implements nearest-neighbour and bilinear image
// down-scaling using fixed-point coordinate accumulation. Both operate on
// a fully materialised plane.Plane rather than the two-row ping-pong
// buffer the original streaming engine keeps, since nothing here needs
// more than replicated-border random access into the source plane.
package scale

import "github.com/vxstream/vxstream/kernel/plane"

const nnAccuracy = 14
const biAccuracy = 12

// scaleFactor computes round((in/out) * 2^accuracy) with integer rounding,
// the fixed-point step every output coordinate advances the source
// coordinate by.
func scaleFactor(in, out, accuracy int) uint32 {
	num := uint64(in) << uint(accuracy)
	return uint32((num + uint64(out)/2) / uint64(out))
}

// nearestSrcCoord computes floor((dst+0.5)*(in/out) - 0.5) entirely in
// integer arithmetic via scale, matching the source pixel a nearest-
// neighbour output sample is drawn from.
func nearestSrcCoord(dst int, scale uint32) int {
	v := ((uint64(dst)<<1 + 1) * uint64(scale)) >> uint(nnAccuracy)
	return int((v - 1) >> 1)
}

// Nearest scale-downs p to outW x outH using nearest-neighbour sampling.
// Scaling 1:1 (outW == p.Width() && outH == p.Height()) reproduces p
// exactly, since the source-coordinate formula is the identity at unit
// scale.
func Nearest(p *plane.Plane[uint8], outW, outH int) *plane.Plane[uint8] {
	colScale := scaleFactor(p.Width(), outW, nnAccuracy)
	rowScale := scaleFactor(p.Height(), outH, nnAccuracy)
	out := plane.New[uint8](outW, outH)
	for yd := 0; yd < outH; yd++ {
		ys := nearestSrcCoord(yd, rowScale)
		for xd := 0; xd < outW; xd++ {
			xs := nearestSrcCoord(xd, colScale)
			out.Set(xd, yd, p.AtClamped(xs, ys))
		}
	}
	return out
}

// Bilinear scale-downs p to outW x outH using bilinear interpolation
// between the four nearest source pixels, with replicated borders at the
// last row and column (fixing the axis swap the streaming source used at
// that boundary test).
func Bilinear(p *plane.Plane[uint8], outW, outH int) *plane.Plane[uint8] {
	colScale := scaleFactor(p.Width(), outW, biAccuracy)
	rowScale := scaleFactor(p.Height(), outH, biAccuracy)
	out := plane.New[uint8](outW, outH)

	const one = uint32(1) << biAccuracy
	const fracShift = 2 // MASK_FRAKTION/x_fract extraction drops the low 2 bits of the 14-bit (ACCURACY+2) source pointer
	const finalShift = 2*biAccuracy - 18

	xStrt := int64(colScale)<<1 - 1
	yStrt := int64(rowScale)<<1 - 1
	xStep := int64(colScale) * 4
	yStep := int64(rowScale) * 4
	mask := (int64(1) << (biAccuracy + 2)) - 1

	for yd := 0; yd < outH; yd++ {
		ySrc := yStrt + int64(yd)*yStep
		yFract := uint32(ySrc&mask) >> fracShift
		yT := int(ySrc >> uint(biAccuracy+2))
		yB := yT + 1

		for xd := 0; xd < outW; xd++ {
			xSrc := xStrt + int64(xd)*xStep
			xFract := uint32(xSrc&mask) >> fracShift
			xL := int(xSrc >> uint(biAccuracy+2))
			xR := xL + 1

			tl := uint32(p.AtClamped(xL, yT))
			tr := uint32(p.AtClamped(xR, yT))
			bl := uint32(p.AtClamped(xL, yB))
			br := uint32(p.AtClamped(xR, yB))

			tlPart := ((one - xFract) * (one - yFract) >> 10) * tl >> 8
			trPart := (xFract * (one - yFract) >> 10) * tr >> 8
			blPart := ((one - xFract) * yFract >> 10) * bl >> 8
			brPart := (xFract * yFract >> 10) * br >> 8

			sum := (tlPart + trPart + blPart + brPart) >> uint(finalShift)
			if sum > 255 {
				sum = 255
			}
			out.Set(xd, yd, uint8(sum))
		}
	}
	return out
}

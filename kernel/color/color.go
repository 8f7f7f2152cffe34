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

// Package color converts between grayscale and RGB/RGBX using the BT.601
// luma matrix with half-LSB rounding, in integer fixed point.
package color

// RGBToGray computes BT.601 luminance with half-LSB rounding:
// (306*R + 601*G + 117*B + 512) >> 10, where 306/601/117 are
// 0.299/0.587/0.114 scaled by 1024 and rounded to the nearest integer.
func RGBToGray(r, g, b []uint8) []uint8 {
	out := make([]uint8, len(r))
	for i := range r {
		gray := 306*uint32(r[i]) + 601*uint32(g[i]) + 117*uint32(b[i])
		out[i] = uint8((gray + 512) >> 10)
	}
	return out
}

// GrayToRGB replicates each gray lane into three equal channels.
func GrayToRGB(gray []uint8) (r, g, b []uint8) {
	r = make([]uint8, len(gray))
	g = make([]uint8, len(gray))
	b = make([]uint8, len(gray))
	copy(r, gray)
	copy(g, gray)
	copy(b, gray)
	return r, g, b
}

// GrayToRGBX replicates each gray lane into the R, G and B channels of a
// four-channel image, leaving the fourth (X) channel at zero.
func GrayToRGBX(gray []uint8) (r, g, b, x []uint8) {
	r, g, b = GrayToRGB(gray)
	x = make([]uint8, len(gray))
	return r, g, b, x
}

// RGBXToGray drops the fourth channel and applies the same BT.601 matrix
// as RGBToGray.
func RGBXToGray(r, g, b, _ []uint8) []uint8 {
	return RGBToGray(r, g, b)
}

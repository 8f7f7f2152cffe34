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

// Package keypoint merges up to sixteen keypoint streams into one, in
// block order (drain a port fully before moving to the next) or
// cyclic order (round-robin one keypoint per active port).
package keypoint

import (
	"github.com/samber/lo"

	"github.com/vxstream/vxstream/stream"
)

// MaxPorts is the largest number of input ports Gather accepts, matching
// the input-port bitmask's width.
const MaxPorts = 16

// Keypoint is the 64-bit record: x, y, response (16 bits each), scale and
// orientation (8 bits each).
type Keypoint struct {
	X, Y, Response uint16
	Scale          uint8
	Orientation    uint8
}

// Sentinel marks "invalid / end of list": the all-bits-set record.
var Sentinel = Keypoint{X: 0xFFFF, Y: 0xFFFF, Response: 0xFFFF, Scale: 0xFF, Orientation: 0xFF}

// IsSentinel reports whether k is the invalid-keypoint marker.
func (k Keypoint) IsSentinel() bool {
	return k == Sentinel
}

// Pack encodes a Keypoint into its 64-bit wire form: x:16 | y:16 |
// response:16 | scale:8 | orientation:8, x in the high bits.
func Pack(k Keypoint) uint64 {
	return uint64(k.X)<<48 | uint64(k.Y)<<32 | uint64(k.Response)<<16 | uint64(k.Scale)<<8 | uint64(k.Orientation)
}

// Unpack decodes the 64-bit wire form back into a Keypoint.
func Unpack(u uint64) Keypoint {
	return Keypoint{
		X:           uint16(u >> 48),
		Y:           uint16(u >> 32),
		Response:    uint16(u >> 16),
		Scale:       uint8(u >> 8),
		Orientation: uint8(u),
	}
}

// Mode selects the merge order.
type Mode int

const (
	Block Mode = iota
	Cyclic
)

// Gather merges up to MaxPorts keypoint streams into one output stream
// of at most m keypoints, followed by one trailing sentinel. Ports
// beyond MaxPorts are ignored, mirroring the fixed 16-bit port mask.
func Gather(ports []stream.Source[uint64], mode Mode, m int) stream.Source[uint64] {
	if len(ports) > MaxPorts {
		ports = ports[:MaxPorts]
	}
	sink, out := stream.NewChannel[uint64](0)

	go func() {
		defer close(sink)
		n := len(ports)
		if n == 0 {
			sink <- stream.NewElem([]uint64{Pack(Sentinel)}, true, true)
			return
		}

		active := make([]bool, n)
		for i := range active {
			active[i] = true
		}
		anyActive := func() bool {
			return lo.SomeBy(active, func(a bool) bool { return a })
		}

		emitted := 0
		emit := func(u uint64) {
			emitted++
			sink <- stream.NewElem([]uint64{u}, emitted == 1, emitted == m)
		}

		switch mode {
		case Block:
			for p := 0; p < n && emitted < m; p++ {
				for active[p] && emitted < m {
					raw, ok := <-ports[p]
					if !ok {
						active[p] = false
						break
					}
					k := Unpack(raw.Data()[0])
					if k.IsSentinel() {
						active[p] = false
						break
					}
					emit(Pack(k))
				}
			}
		case Cyclic:
			cur := 0
			for anyActive() && emitted < m {
				if !active[cur] {
					cur = (cur + 1) % n
					continue
				}
				raw, ok := <-ports[cur]
				if !ok {
					active[cur] = false
					cur = (cur + 1) % n
					continue
				}
				k := Unpack(raw.Data()[0])
				if k.IsSentinel() {
					active[cur] = false
				} else {
					emit(Pack(k))
				}
				cur = (cur + 1) % n
			}
		}

		if emitted < m {
			sof := emitted == 0
			sink <- stream.NewElem([]uint64{Pack(Sentinel)}, sof, true)
		}
	}()

	return out
}

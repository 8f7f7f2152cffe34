package keypoint

import (
	"testing"

	"github.com/vxstream/vxstream/stream"
)

func feedPort(t *testing.T, keypoints ...Keypoint) stream.Source[uint64] {
	t.Helper()
	sink, src := stream.NewChannel[uint64](len(keypoints))
	for _, k := range keypoints {
		sink <- stream.NewElem([]uint64{Pack(k)}, false, false)
	}
	close(sink)
	return src
}

func drain(src stream.Source[uint64]) []Keypoint {
	var out []Keypoint
	for e := range src {
		out = append(out, Unpack(e.Data()[0]))
	}
	return out
}

func TestGatherCyclicScenario(t *testing.T) {
	a := feedPort(t, Keypoint{X: 1, Y: 1}, Keypoint{X: 2, Y: 2}, Sentinel)
	b := feedPort(t, Keypoint{X: 3, Y: 3}, Sentinel)

	out := drain(Gather([]stream.Source[uint64]{a, b}, Cyclic, 4))

	want := []Keypoint{{X: 1, Y: 1}, {X: 3, Y: 3}, {X: 2, Y: 2}, Sentinel}
	if len(out) != len(want) {
		t.Fatalf("got %d keypoints, want %d: %v", len(out), len(want), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("index %d: got %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestGatherBlockDrainsPortsInOrder(t *testing.T) {
	a := feedPort(t, Keypoint{X: 1, Y: 1}, Keypoint{X: 2, Y: 2}, Sentinel)
	b := feedPort(t, Keypoint{X: 3, Y: 3}, Sentinel)

	out := drain(Gather([]stream.Source[uint64]{a, b}, Block, 10))

	want := []Keypoint{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, Sentinel}
	if len(out) != len(want) {
		t.Fatalf("got %d keypoints, want %d: %v", len(out), len(want), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("index %d: got %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestGatherStopsAtM(t *testing.T) {
	a := feedPort(t, Keypoint{X: 1, Y: 1}, Keypoint{X: 2, Y: 2}, Keypoint{X: 4, Y: 4}, Sentinel)

	out := drain(Gather([]stream.Source[uint64]{a}, Block, 2))
	if len(out) != 2 {
		t.Fatalf("got %d keypoints, want 2 (M reached, no trailing sentinel budget consumed)", len(out))
	}
}

func TestGatherAllSentinelEmitsStartOfFrameSentinel(t *testing.T) {
	a := feedPort(t, Sentinel)
	b := feedPort(t, Sentinel)

	var sof bool
	var out []Keypoint
	for e := range Gather([]stream.Source[uint64]{a, b}, Cyclic, 4) {
		out = append(out, Unpack(e.Data()[0]))
		sof = e.SOF
	}
	if len(out) != 1 || !out[0].IsSentinel() {
		t.Fatalf("expected exactly one sentinel, got %v", out)
	}
	if !sof {
		t.Errorf("the lone sentinel must carry start-of-frame when no keypoints were produced")
	}
}

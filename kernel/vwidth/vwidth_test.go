package vwidth

import (
	"testing"

	"github.com/vxstream/vxstream/stream"
)

func feed(data []uint8, width int) stream.Source[uint8] {
	sink, src := stream.NewChannel[uint8](len(data)/width + 2)
	go func() {
		for i := 0; i < len(data); i += width {
			sink <- stream.NewElem(data[i:i+width], i == 0, i+width >= len(data))
		}
		close(sink)
	}()
	return src
}

func drain(src stream.Source[uint8]) []stream.Elem[uint8] {
	var out []stream.Elem[uint8]
	for e := range src {
		out = append(out, e)
	}
	return out
}

func flatten(elems []stream.Elem[uint8]) []uint8 {
	var out []uint8
	for _, e := range elems {
		out = append(out, e.Data()...)
	}
	return out
}

func TestConvertEqualPassThrough(t *testing.T) {
	data := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	out := drain(Convert(feed(data, 4), 4, 4))
	if len(out) != 2 {
		t.Fatalf("got %d elements, want 2", len(out))
	}
	if got := flatten(out); !equal(got, data) {
		t.Errorf("data: got %v, want %v", got, data)
	}
}

func TestConvertSplit(t *testing.T) {
	data := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	out := drain(Convert(feed(data, 8), 8, 4))
	if len(out) != 2 {
		t.Fatalf("got %d elements, want 2", len(out))
	}
	if !out[0].SOF || out[0].EOF {
		t.Errorf("first sub-element flags: got sof=%v eof=%v, want sof=true eof=false", out[0].SOF, out[0].EOF)
	}
	if out[1].SOF || !out[1].EOF {
		t.Errorf("last sub-element flags: got sof=%v eof=%v, want sof=false eof=true", out[1].SOF, out[1].EOF)
	}
	if got := flatten(out); !equal(got, data) {
		t.Errorf("data: got %v, want %v", got, data)
	}
}

func TestConvertAccumulate(t *testing.T) {
	data := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	out := drain(Convert(feed(data, 2), 2, 8))
	if len(out) != 1 {
		t.Fatalf("got %d elements, want 1", len(out))
	}
	if !out[0].SOF || !out[0].EOF {
		t.Errorf("accumulated element flags: got sof=%v eof=%v, want both true", out[0].SOF, out[0].EOF)
	}
	if got := flatten(out); !equal(got, data) {
		t.Errorf("data: got %v, want %v", got, data)
	}
}

func TestConvertInterleaveNonDividing(t *testing.T) {
	data := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	out := drain(Convert(feed(data, 3), 3, 4))
	if got := flatten(out); !equal(got, data) {
		t.Fatalf("data: got %v, want %v (scalar order must survive a non-dividing ratio)", got, data)
	}
	for _, e := range out {
		if e.Width() != 4 {
			t.Errorf("output width: got %d, want 4", e.Width())
		}
	}
	if !out[0].SOF {
		t.Errorf("first output element should carry SOF")
	}
	if !out[len(out)-1].EOF {
		t.Errorf("last output element should carry EOF")
	}
}

func equal(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

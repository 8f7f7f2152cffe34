package stream

import "testing"

func TestNewElemFlags(t *testing.T) {
	e := NewElem([]uint8{1, 2, 3, 4}, true, false)
	if !e.SOF || e.EOF {
		t.Errorf("NewElem flags: got sof=%v eof=%v, want sof=true eof=false", e.SOF, e.EOF)
	}
	if e.Width() != 4 {
		t.Errorf("Width: got %d, want 4", e.Width())
	}
}

func TestNewChannelRoundTrip(t *testing.T) {
	sink, src := NewChannel[uint8](2)
	go func() {
		sink <- NewElem([]uint8{1, 2}, true, false)
		sink <- NewElem([]uint8{3, 4}, false, true)
		close(sink)
	}()

	var got []Elem[uint8]
	for e := range src {
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("got %d elements, want 2", len(got))
	}
	if !got[0].SOF || got[0].EOF {
		t.Errorf("element 0: got sof=%v eof=%v, want sof=true eof=false", got[0].SOF, got[0].EOF)
	}
	if got[1].SOF || !got[1].EOF {
		t.Errorf("element 1: got sof=%v eof=%v, want sof=false eof=true", got[1].SOF, got[1].EOF)
	}
}

func TestFramesSplitsOnEOF(t *testing.T) {
	sink, src := NewChannel[uint8](4)
	go func() {
		sink <- NewElem([]uint8{1}, true, false)
		sink <- NewElem([]uint8{2}, false, true)
		sink <- NewElem([]uint8{3}, true, false)
		sink <- NewElem([]uint8{4}, false, true)
		close(sink)
	}()

	frames := Frames[uint8](src)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	for _, f := range frames {
		if len(f) != 2 {
			t.Errorf("frame length: got %d, want 2", len(f))
		}
		if !f[0].SOF || !f[len(f)-1].EOF {
			t.Errorf("frame boundary flags not set correctly: %+v", f)
		}
	}
}

package frame

import (
	"strconv"
	"testing"
)

func TestWindow_CapacityEviction(t *testing.T) {
	w := NewWindow(3)

	for i := 0; i < 5; i++ {
		w.Append(&Frame{Data: []byte(strconv.Itoa(i))})
	}

	snap := w.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(snap))
	}
	for i, f := range snap {
		want := strconv.Itoa(i + 2)
		if string(f.Data) != want {
			t.Errorf("frame %d: expected %q, got %q", i, want, f.Data)
		}
	}
}

func TestWindow_SnapshotIsCopy(t *testing.T) {
	w := NewWindow(2)
	w.Append(&Frame{Data: []byte("a")})

	snap := w.Snapshot()
	snap[0] = nil

	if w.Latest() == nil {
		t.Error("mutating a snapshot must not affect the window")
	}
}

func TestWindow_Latest(t *testing.T) {
	w := NewWindow(2)
	if w.Latest() != nil {
		t.Error("empty window should have no latest frame")
	}

	w.Append(&Frame{Data: []byte("a")})
	w.Append(&Frame{Data: []byte("b")})
	if string(w.Latest().Data) != "b" {
		t.Errorf("expected latest frame b, got %q", w.Latest().Data)
	}
}

func TestWindow_MinimumCapacity(t *testing.T) {
	w := NewWindow(0)
	w.Append(&Frame{Data: []byte("a")})
	w.Append(&Frame{Data: []byte("b")})

	snap := w.Snapshot()
	if len(snap) != 1 || string(snap[0].Data) != "b" {
		t.Errorf("zero capacity should clamp to 1, got %d frames", len(snap))
	}
}

package frame

import "sync"

// Window holds the most recent frames replayed into the oracle's
// context, oldest evicted first.
type Window struct {
	mu       sync.Mutex
	capacity int
	frames   []*Frame
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{capacity: capacity}
}

func (w *Window) Append(f *Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.frames = append(w.frames, f)
	if len(w.frames) > w.capacity {
		w.frames = w.frames[1:]
	}
}

// Snapshot returns the retained frames in insertion order.
func (w *Window) Snapshot() []*Frame {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]*Frame, len(w.frames))
	copy(out, w.frames)
	return out
}

// Latest returns the most recently appended frame, or nil.
func (w *Window) Latest() *Frame {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.frames) == 0 {
		return nil
	}
	return w.frames[len(w.frames)-1]
}

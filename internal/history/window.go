// Package history keeps the bounded rolling log of past decisions that
// is rendered into the oracle's context on every call.
package history

import (
	"strings"
	"sync"
)

// StartSentinel seeds an empty window so the oracle always has
// non-empty context on the first iteration.
const StartSentinel = "<START>"

// Window is a fixed-capacity ordered log, oldest entry evicted first.
type Window struct {
	mu       sync.Mutex
	capacity int
	entries  []string
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		capacity: capacity,
		entries:  []string{StartSentinel},
	}
}

func (w *Window) Append(entry string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, entry)
	if len(w.entries) > w.capacity {
		w.entries = w.entries[1:]
	}
}

// Snapshot returns the retained entries in insertion order.
func (w *Window) Snapshot() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, len(w.entries))
	copy(out, w.entries)
	return out
}

// Render serializes the snapshot into the text handed to the oracle.
// Deterministic for a given snapshot.
func (w *Window) Render() string {
	return "[" + strings.Join(w.Snapshot(), " | ") + "]"
}

// Package hub fans loop snapshots out to live observers. Observers come
// and go asynchronously to the control loop; a failing or slow observer
// never blocks the loop or its peers.
package hub

import (
	"context"
	"log/slog"
	"sync"
)

type Hub struct {
	mu        sync.RWMutex
	observers map[string]Observer
	logger    *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		observers: make(map[string]Observer),
		logger:    logger.With("component", "hub"),
	}
}

func (h *Hub) Register(o Observer) {
	h.mu.Lock()
	h.observers[o.ID()] = o
	n := len(h.observers)
	h.mu.Unlock()

	h.logger.Info("observer registered", "observer_id", o.ID(), "observers", n)
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	o, ok := h.observers[id]
	if ok {
		delete(h.observers, id)
	}
	n := len(h.observers)
	h.mu.Unlock()

	if ok {
		_ = o.Close()
		h.logger.Info("observer unregistered", "observer_id", id, "observers", n)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Publish fans one snapshot out to every registered observer. The
// message is built lazily: with nobody watching, build is never called.
// A send failure removes only the failing observer.
func (h *Hub) Publish(ctx context.Context, build func() *Message) {
	h.mu.RLock()
	observers := make([]Observer, 0, len(h.observers))
	for _, o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	if len(observers) == 0 {
		return
	}

	msg := build()
	var failed []string
	for _, o := range observers {
		if err := o.Send(ctx, msg); err != nil {
			h.logger.Warn("observer send failed, dropping observer",
				"observer_id", o.ID(), "error", err)
			failed = append(failed, o.ID())
		}
	}

	for _, id := range failed {
		h.Unregister(id)
	}
}

// Close drops every observer. Called once on shutdown.
func (h *Hub) Close() error {
	h.mu.Lock()
	observers := h.observers
	h.observers = make(map[string]Observer)
	h.mu.Unlock()

	for _, o := range observers {
		_ = o.Close()
	}
	return nil
}

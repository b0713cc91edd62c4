package frame

import (
	"context"
	"sync"
	"time"

	"github.com/pwspen/vlmcar/internal/shared"
)

// Channel is a single-slot, latest-wins handoff between the camera
// producer and the control loop. Publish never blocks and never queues:
// an unread frame is simply replaced. Take returns a frame published
// since the channel's last Take, blocking up to a timeout for a fresh
// one. Every waiter is released by the same publish; the semantics are
// "observe current state", not work-item dequeue.
type Channel struct {
	mu       sync.Mutex
	latest   *Frame
	seq      uint64
	takenSeq uint64
	waiters  []chan *Frame
}

func NewChannel() *Channel {
	return &Channel{}
}

// Publish stores f as the current frame, replacing any unread one, and
// releases all blocked Take calls. Producer-side, non-blocking.
func (c *Channel) Publish(f *Frame) {
	c.mu.Lock()
	c.latest = f
	c.seq++
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, w := range waiters {
		w <- f // buffered, never blocks
	}
}

// Take returns the current frame if one arrived since the last Take,
// otherwise blocks until the next Publish, the timeout, or ctx
// cancellation. A timeout returns shared.ErrFrameTimeout; callers treat
// it as a degraded observation, not a failure.
func (c *Channel) Take(ctx context.Context, timeout time.Duration) (*Frame, error) {
	c.mu.Lock()
	if c.seq > c.takenSeq {
		c.takenSeq = c.seq
		f := c.latest
		c.mu.Unlock()
		return f, nil
	}

	w := make(chan *Frame, 1)
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-w:
		// Re-read the slot: another publish may have landed between
		// the wake and here, and the newest frame wins.
		c.mu.Lock()
		f := c.latest
		c.takenSeq = c.seq
		c.mu.Unlock()
		return f, nil
	case <-timer.C:
		c.removeWaiter(w)
		return nil, shared.ErrFrameTimeout
	case <-ctx.Done():
		c.removeWaiter(w)
		return nil, ctx.Err()
	}
}

func (c *Channel) removeWaiter(w chan *Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cand := range c.waiters {
		if cand == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}

package frame

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pwspen/vlmcar/internal/shared"
)

func TestChannel_TakeTimesOutBeforeAnyPublish(t *testing.T) {
	c := NewChannel()

	start := time.Now()
	f, err := c.Take(context.Background(), 100*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, shared.ErrFrameTimeout) {
		t.Fatalf("expected ErrFrameTimeout, got %v", err)
	}
	if f != nil {
		t.Error("expected nil frame on timeout")
	}
	if elapsed < 90*time.Millisecond || elapsed > 500*time.Millisecond {
		t.Errorf("timeout took %v, expected ~100ms", elapsed)
	}
}

func TestChannel_PublishReleasesBlockedTake(t *testing.T) {
	c := NewChannel()
	want := &Frame{Data: []byte("jpeg"), CapturedAt: time.Now()}

	done := make(chan *Frame, 1)
	go func() {
		f, err := c.Take(context.Background(), 2*time.Second)
		if err != nil {
			t.Errorf("Take failed: %v", err)
		}
		done <- f
	}()

	time.Sleep(50 * time.Millisecond)
	c.Publish(want)

	select {
	case got := <-done:
		if got != want {
			t.Errorf("expected published frame, got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Take did not return after Publish")
	}
}

func TestChannel_LatestWins(t *testing.T) {
	c := NewChannel()

	c.Publish(&Frame{Data: []byte("one")})
	c.Publish(&Frame{Data: []byte("two")})
	c.Publish(&Frame{Data: []byte("three")})

	f, err := c.Take(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if string(f.Data) != "three" {
		t.Errorf("expected latest frame, got %q", f.Data)
	}

	// The slot is now consumed; the next Take must wait for a new publish.
	_, err = c.Take(context.Background(), 50*time.Millisecond)
	if !errors.Is(err, shared.ErrFrameTimeout) {
		t.Fatalf("expected ErrFrameTimeout on drained slot, got %v", err)
	}
}

func TestChannel_PublishWakesAllWaiters(t *testing.T) {
	c := NewChannel()

	const n = 5
	var wg sync.WaitGroup
	results := make(chan string, n)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			f, err := c.Take(context.Background(), 2*time.Second)
			if err != nil {
				results <- "err:" + err.Error()
				return
			}
			results <- string(f.Data)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	c.Publish(&Frame{Data: []byte("shared")})

	wg.Wait()
	close(results)

	for r := range results {
		if r != "shared" {
			t.Errorf("waiter got %q, expected the broadcast frame", r)
		}
	}
}

func TestChannel_TakeCancelled(t *testing.T) {
	c := NewChannel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	_, err := c.Take(ctx, 5*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestChannel_NoWaiterLeak(t *testing.T) {
	c := NewChannel()

	for i := 0; i < 10; i++ {
		_, _ = c.Take(context.Background(), time.Millisecond)
	}

	c.mu.Lock()
	n := len(c.waiters)
	c.mu.Unlock()
	if n != 0 {
		t.Errorf("expected no retained waiters after timeouts, got %d", n)
	}
}

package robot

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/pwspen/vlmcar/internal/frame"
)

const (
	simFrameInterval = 200 * time.Millisecond
	simFrameWidth    = 400
	simFrameHeight   = 300
	simMaxRangeCM    = 300.0
	simMinRangeCM    = 20.0
	slowFrameWarn    = time.Second
)

// Sim is an in-process stand-in for the whole car: it renders synthetic
// JPEG frames, reports a heading-dependent distance, and pretends to
// run motors by sleeping for the commanded duration. It implements
// RangeSensor, Camera, and drive.Actuator.
type Sim struct {
	logger *slog.Logger

	mu       sync.Mutex
	heading  float64 // degrees, 0 = facing the far wall
	traveled float64 // meters along current heading
	frameSeq int
	stopped  bool
}

func NewSim(logger *slog.Logger) *Sim {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sim{
		logger: logger.With("component", "sim-robot"),
	}
}

func (s *Sim) Start(ctx context.Context, ch *frame.Channel) error {
	go s.produceFrames(ctx, ch)
	s.logger.Info("simulated camera started", "interval", simFrameInterval)
	return nil
}

func (s *Sim) produceFrames(ctx context.Context, ch *frame.Channel) {
	ticker := time.NewTicker(simFrameInterval)
	defer ticker.Stop()

	var lastPublish time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			data, err := s.renderFrame()
			if err != nil {
				s.logger.Error("frame render failed", "error", err)
				continue
			}
			if !lastPublish.IsZero() {
				if gap := now.Sub(lastPublish); gap > slowFrameWarn {
					s.logger.Warn("long frame interval", "gap", gap)
				}
			}
			lastPublish = now
			ch.Publish(&frame.Frame{Data: data, CapturedAt: now})
		}
	}
}

// renderFrame draws a flat scene whose brightness tracks the simulated
// pose, so successive frames are distinguishable in an observer feed.
func (s *Sim) renderFrame() ([]byte, error) {
	s.mu.Lock()
	seq := s.frameSeq
	heading := s.heading
	s.frameSeq++
	s.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, simFrameWidth, simFrameHeight))
	base := uint8(96 + 64*math.Sin(heading*math.Pi/180))
	for y := 0; y < simFrameHeight; y++ {
		shade := base + uint8((y+seq)%64)
		row := color.RGBA{R: shade, G: shade, B: shade, A: 255}
		for x := 0; x < simFrameWidth; x++ {
			img.SetRGBA(x, y, row)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Sim) Distance() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Distance to a wall simMaxRangeCM ahead, shrinking as the car
	// advances and resetting when it turns away.
	d := simMaxRangeCM - 100*s.traveled
	if d < simMinRangeCM {
		d = simMinRangeCM
	}
	return d, true
}

func (s *Sim) Forward(ctx context.Context, d time.Duration) error {
	return s.run(ctx, d, func(seconds float64) {
		s.traveled += seconds
	})
}

func (s *Sim) Reverse(ctx context.Context, d time.Duration) error {
	return s.run(ctx, d, func(seconds float64) {
		s.traveled -= seconds
	})
}

func (s *Sim) RotateRight(ctx context.Context, d time.Duration) error {
	return s.run(ctx, d, func(seconds float64) {
		s.turn(seconds * 180 / 1.4)
	})
}

func (s *Sim) RotateLeft(ctx context.Context, d time.Duration) error {
	return s.run(ctx, d, func(seconds float64) {
		s.turn(-seconds * 180 / 1.4)
	})
}

func (s *Sim) turn(degrees float64) {
	s.heading = math.Mod(s.heading+degrees, 360)
	s.traveled = 0
}

// run sleeps for the commanded duration, honoring cancellation, then
// applies the pose update. A cancelled movement leaves the pose as it
// was; the real car coasts to a stop the same way.
func (s *Sim) run(ctx context.Context, d time.Duration, apply func(seconds float64)) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	apply(d.Seconds())
	s.mu.Unlock()
	return nil
}

func (s *Sim) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true
	s.logger.Info("simulated robot stopped")
	return nil
}

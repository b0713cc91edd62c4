// Package agent runs the sense-decide-act-publish cycle. One iteration
// at a time, forever, until the context is cancelled; no single
// iteration's failure may take the loop down.
package agent

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pwspen/vlmcar/internal/decision"
	"github.com/pwspen/vlmcar/internal/frame"
	"github.com/pwspen/vlmcar/internal/history"
	"github.com/pwspen/vlmcar/internal/hub"
	"github.com/pwspen/vlmcar/internal/oracle"
	"github.com/pwspen/vlmcar/internal/robot"
)

// Oracle produces one decision per iteration from the recent frames and
// rendered history.
type Oracle interface {
	Decide(ctx context.Context, req oracle.DecideRequest) (*decision.Decision, error)
}

// Executor runs a decision to completion on the actuator.
type Executor interface {
	Execute(ctx context.Context, dec *decision.Decision) error
}

// Publisher fans iteration snapshots out to observers. Publish must
// never block the loop.
type Publisher interface {
	Publish(ctx context.Context, build func() *hub.Message)
}

type Loop struct {
	cfg      Config
	frames   *frame.Channel
	window   *frame.Window
	history  *history.Window
	oracle   Oracle
	executor Executor
	hub      Publisher
	sensor   robot.RangeSensor
	logger   *slog.Logger

	state      atomic.Int32
	iterations atomic.Uint64
	done       chan struct{}
}

func New(
	cfg Config,
	frames *frame.Channel,
	orc Oracle,
	executor Executor,
	publisher Publisher,
	sensor robot.RangeSensor,
	logger *slog.Logger,
) *Loop {
	if cfg.FrameTimeout == 0 {
		cfg.FrameTimeout = time.Second
	}
	if cfg.Pace == 0 {
		cfg.Pace = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Loop{
		cfg:      cfg,
		frames:   frames,
		window:   frame.NewWindow(cfg.NumImages),
		history:  history.NewWindow(cfg.NumLogs),
		oracle:   orc,
		executor: executor,
		hub:      publisher,
		sensor:   sensor,
		logger:   logger.With("component", "loop"),
		done:     make(chan struct{}),
	}
}

// Run drives the cycle until ctx is cancelled, then transitions to
// stopped and returns. The current iteration finishes its in-flight
// suspension point promptly on cancellation.
func (l *Loop) Run(ctx context.Context) {
	defer func() {
		l.setState(StateStopped)
		close(l.done)
		l.logger.Info("control loop stopped", "iterations", l.Iterations())
	}()

	l.logger.Info("control loop started",
		"frame_timeout", l.cfg.FrameTimeout,
		"pace", l.cfg.Pace,
		"num_images", l.cfg.NumImages,
		"num_logs", l.cfg.NumLogs)

	for {
		if ctx.Err() != nil {
			return
		}

		l.iterate(ctx)

		l.setState(StatePacing)
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.cfg.Pace):
		}
	}
}

// Done closes once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) Iterations() uint64 {
	return l.iterations.Load()
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

func (l *Loop) iterate(ctx context.Context) {
	n := l.iterations.Add(1)
	log := l.logger.With("iteration", n)

	l.setState(StateSensing)
	obs := l.sense(ctx, log)
	if ctx.Err() != nil {
		return
	}

	l.setState(StateDeciding)
	dec, err := l.oracle.Decide(ctx, oracle.DecideRequest{
		Frames:      l.window.Snapshot(),
		Distance:    obs.Distance,
		HasDistance: obs.HasDistance,
		History:     l.history.Render(),
	})
	if err != nil {
		log.Error("decision failed, abandoning iteration", "error", err)
		return
	}
	log.Info("decision", "action", dec.Action(), "rationale", dec.Rationale())

	l.setState(StateActing)
	if err := l.executor.Execute(ctx, dec); err != nil {
		// Fail open: the car stays put, the decision is still recorded.
		log.Error("actuation failed", "error", err)
	}

	l.setState(StatePublishing)
	l.history.Append(dec.LogLine())
	l.hub.Publish(ctx, func() *hub.Message {
		return l.buildSnapshot(n, obs, dec)
	})
}

func (l *Loop) sense(ctx context.Context, log *slog.Logger) Observation {
	obs := Observation{CapturedAt: time.Now()}

	f, err := l.frames.Take(ctx, l.cfg.FrameTimeout)
	switch {
	case err == nil:
		obs.Frame = f
		l.window.Append(f)
	case errors.Is(err, context.Canceled):
	default:
		log.Warn("no fresh frame, proceeding without one", "error", err)
	}

	if d, ok := l.sensor.Distance(); ok {
		obs.Distance = d
		obs.HasDistance = true
	} else {
		log.Warn("distance reading unavailable")
	}

	return obs
}

func (l *Loop) buildSnapshot(iteration uint64, obs Observation, dec *decision.Decision) *hub.Message {
	msg := &hub.Message{
		Iteration:   iteration,
		Action:      dec.Action(),
		Rationale:   dec.Rationale(),
		Description: dec.Description(),
		Timestamp:   obs.CapturedAt.UnixMilli(),
	}
	if obs.HasDistance {
		d := obs.Distance
		msg.Distance = &d
	}
	if f := l.window.Latest(); f != nil {
		msg.Image = base64.StdEncoding.EncodeToString(f.Data)
	}
	return msg
}

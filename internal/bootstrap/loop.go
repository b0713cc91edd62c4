package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/pwspen/vlmcar/internal/agent"
	"github.com/pwspen/vlmcar/internal/drive"
	"github.com/pwspen/vlmcar/internal/frame"
	"github.com/pwspen/vlmcar/internal/hub"
	"github.com/pwspen/vlmcar/internal/oracle"
	"github.com/pwspen/vlmcar/internal/robot"
)

func ProvideFrameChannel() *frame.Channel {
	return frame.NewChannel()
}

func ProvideDispatcher(actuator drive.Actuator, logger *slog.Logger) *drive.Dispatcher {
	return drive.NewDispatcher(actuator, logger)
}

func ProvideLoop(
	cfg *Config,
	frames *frame.Channel,
	orc *oracle.Client,
	dispatcher *drive.Dispatcher,
	h *hub.Hub,
	sensor robot.RangeSensor,
	logger *slog.Logger,
) *agent.Loop {
	return agent.New(agent.Config{
		FrameTimeout: cfg.FrameTimeout,
		Pace:         cfg.Pace,
		NumImages:    cfg.NumImages,
		NumLogs:      cfg.NumLogs,
	}, frames, orc, dispatcher, h, sensor, logger)
}

// StartLoop ties the camera and the control loop to the fx lifecycle:
// the camera starts first so the first iteration has a frame to wait
// on, and shutdown cancels the loop then waits for the in-flight
// iteration to drain before stopping the camera.
func StartLoop(
	lc fx.Lifecycle,
	loop *agent.Loop,
	camera robot.Camera,
	frames *frame.Channel,
	h *hub.Hub,
	logger *slog.Logger,
) {
	loopCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := camera.Start(loopCtx, frames); err != nil {
				return err
			}
			go loop.Run(loopCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-loop.Done():
			case <-ctx.Done():
				logger.Warn("control loop did not drain before shutdown deadline")
			}
			if err := camera.Stop(); err != nil {
				logger.Error("camera stop failed", "error", err)
			}
			return h.Close()
		},
	})
}

var LoopModule = fx.Options(
	fx.Provide(
		ProvideFrameChannel,
		ProvideDispatcher,
		ProvideLoop,
	),
	fx.Invoke(StartLoop),
)

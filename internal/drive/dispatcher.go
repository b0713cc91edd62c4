package drive

import (
	"context"
	"log/slog"

	"github.com/pwspen/vlmcar/internal/decision"
)

// Dispatcher maps a decoded decision onto exactly one actuator
// primitive. Decision enums are validated at decode time, but an
// out-of-contract value that slips through is a logic error: it is
// logged and treated as a no-op so the loop never crashes on it.
type Dispatcher struct {
	actuator Actuator
	logger   *slog.Logger
}

func NewDispatcher(actuator Actuator, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		actuator: actuator,
		logger:   logger.With("component", "dispatcher"),
	}
}

// Execute runs the movement and blocks until it settles. Actuator
// errors are returned to the caller; the caller decides the fail-open
// policy.
func (d *Dispatcher) Execute(ctx context.Context, dec *decision.Decision) error {
	switch {
	case dec.Discrete != nil:
		return d.executeDiscrete(ctx, dec.Discrete)
	case dec.Parametric != nil:
		return d.executeParametric(ctx, dec.Parametric)
	default:
		d.logger.Error("decision carries no variant, skipping actuation")
		return nil
	}
}

func (d *Dispatcher) executeDiscrete(ctx context.Context, cmd *decision.DiscreteCommand) error {
	switch cmd.Command {
	case decision.CommandForward:
		return d.actuator.Forward(ctx, DefaultMoveDuration)
	case decision.CommandReverse:
		return d.actuator.Reverse(ctx, DefaultMoveDuration)
	case decision.CommandRotateRight:
		return d.actuator.RotateRight(ctx, DefaultTurnDuration)
	case decision.CommandRotateLeft:
		return d.actuator.RotateLeft(ctx, DefaultTurnDuration)
	default:
		d.logger.Error("unrecognized discrete command, skipping actuation", "command", cmd.Command)
		return nil
	}
}

func (d *Dispatcher) executeParametric(ctx context.Context, cmd *decision.ParametricCommand) error {
	switch cmd.Kind {
	case decision.KindMove:
		dur := MoveDuration(cmd.Magnitude)
		if cmd.Magnitude < 0 {
			return d.actuator.Reverse(ctx, dur)
		}
		return d.actuator.Forward(ctx, dur)
	case decision.KindRotate:
		dur := RotateDuration(cmd.Magnitude)
		if cmd.Magnitude < 0 {
			return d.actuator.RotateLeft(ctx, dur)
		}
		return d.actuator.RotateRight(ctx, dur)
	default:
		d.logger.Error("unrecognized parametric kind, skipping actuation", "kind", cmd.Kind)
		return nil
	}
}

package decision

import (
	"encoding/json"
	"fmt"

	"github.com/pwspen/vlmcar/internal/shared"
)

// Decode parses raw oracle output into the active schema's variant.
// Enum membership and magnitude bounds are enforced here, at decode
// time; callers never see an out-of-bounds decision.
func Decode(schema Schema, raw []byte) (*Decision, error) {
	switch schema {
	case SchemaDiscrete:
		return decodeDiscrete(raw)
	case SchemaParametric:
		return decodeParametric(raw)
	default:
		return nil, fmt.Errorf("unknown decision schema %q", schema)
	}
}

func decodeDiscrete(raw []byte) (*Decision, error) {
	var cmd DiscreteCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedDecision, err)
	}

	switch cmd.Command {
	case CommandForward, CommandReverse, CommandRotateRight, CommandRotateLeft:
	default:
		return nil, fmt.Errorf("%w: command %q not in enum", shared.ErrMalformedDecision, cmd.Command)
	}

	return &Decision{Discrete: &cmd}, nil
}

func decodeParametric(raw []byte) (*Decision, error) {
	var cmd ParametricCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedDecision, err)
	}

	switch cmd.Kind {
	case KindMove:
		if cmd.Magnitude < -MaxMoveMeters || cmd.Magnitude > MaxMoveMeters {
			return nil, fmt.Errorf("%w: move magnitude %.3f outside [%.0f, %.0f]",
				shared.ErrMalformedDecision, cmd.Magnitude, -MaxMoveMeters, MaxMoveMeters)
		}
	case KindRotate:
		if cmd.Magnitude < -MaxRotateDegrees || cmd.Magnitude > MaxRotateDegrees {
			return nil, fmt.Errorf("%w: rotate magnitude %.1f outside [%.0f, %.0f]",
				shared.ErrMalformedDecision, cmd.Magnitude, -MaxRotateDegrees, MaxRotateDegrees)
		}
	default:
		return nil, fmt.Errorf("%w: kind %q not in enum", shared.ErrMalformedDecision, cmd.Kind)
	}

	return &Decision{Parametric: &cmd}, nil
}

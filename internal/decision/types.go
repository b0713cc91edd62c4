package decision

import "fmt"

// Schema selects which wire contract the oracle must produce. Exactly
// one is active per deployment.
type Schema string

const (
	SchemaDiscrete   Schema = "discrete"
	SchemaParametric Schema = "parametric"
)

// Command is the discrete movement command enum.
type Command string

const (
	CommandForward     Command = "forward"
	CommandReverse     Command = "reverse"
	CommandRotateRight Command = "rot_right"
	CommandRotateLeft  Command = "rot_left"
)

// Kind is the parametric command kind.
type Kind string

const (
	KindMove   Kind = "move"
	KindRotate Kind = "rotate"
)

const (
	// MaxMoveMeters bounds a single move command. Positive is forward.
	MaxMoveMeters = 1.0
	// MaxRotateDegrees bounds a single rotate command. Positive is clockwise.
	MaxRotateDegrees = 180.0
)

// DiscreteCommand is one fixed-step movement plus the model's rationale.
type DiscreteCommand struct {
	Command Command `json:"command"`
	Notes   string  `json:"notes"`
}

// ParametricCommand is a magnitude-carrying movement plus the model's
// description of the scene and rationale for the move.
type ParametricCommand struct {
	Kind        Kind    `json:"kind"`
	Magnitude   float64 `json:"magnitude"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
}

// Decision is a tagged variant: exactly one field is non-nil, matching
// the schema the oracle was configured with.
type Decision struct {
	Discrete   *DiscreteCommand
	Parametric *ParametricCommand
}

// Action returns a short human-readable summary of the chosen movement,
// e.g. "forward" or "rotate -90.0 deg".
func (d *Decision) Action() string {
	switch {
	case d.Discrete != nil:
		return string(d.Discrete.Command)
	case d.Parametric != nil:
		switch d.Parametric.Kind {
		case KindMove:
			return fmt.Sprintf("move %.2f m", d.Parametric.Magnitude)
		case KindRotate:
			return fmt.Sprintf("rotate %.1f deg", d.Parametric.Magnitude)
		}
	}
	return "unknown"
}

// Rationale returns the model's free-text notes for the movement.
func (d *Decision) Rationale() string {
	switch {
	case d.Discrete != nil:
		return d.Discrete.Notes
	case d.Parametric != nil:
		return d.Parametric.Notes
	}
	return ""
}

// Description returns the model's scene description, when the active
// schema carries one.
func (d *Decision) Description() string {
	if d.Parametric != nil {
		return d.Parametric.Description
	}
	return ""
}

// LogLine renders the decision for the rolling history window. The
// format is stable so rendered history is deterministic.
func (d *Decision) LogLine() string {
	return fmt.Sprintf("%s (%s)", d.Action(), d.Rationale())
}

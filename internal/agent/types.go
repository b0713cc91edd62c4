package agent

import (
	"time"

	"github.com/pwspen/vlmcar/internal/frame"
)

// State is the loop's current phase.
type State int32

const (
	StateStopped State = iota
	StateSensing
	StateDeciding
	StateActing
	StatePublishing
	StatePacing
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateSensing:
		return "sensing"
	case StateDeciding:
		return "deciding"
	case StateActing:
		return "acting"
	case StatePublishing:
		return "publishing"
	case StatePacing:
		return "pacing"
	default:
		return "unknown"
	}
}

// Observation is one iteration's sensed input. Frame is nil when the
// camera produced nothing within the wait budget.
type Observation struct {
	Frame       *frame.Frame
	Distance    float64
	HasDistance bool
	CapturedAt  time.Time
}

type Config struct {
	FrameTimeout time.Duration
	Pace         time.Duration
	NumImages    int
	NumLogs      int
}

// Package robot defines the hardware collaborator seams. Real drivers
// (GPIO motors, ultrasonic ranging, camera encoder) live outside this
// module and plug in here; a simulated robot ships for bench runs.
package robot

import (
	"context"

	"github.com/pwspen/vlmcar/internal/frame"
)

// RangeSensor reports the distance to the nearest obstacle ahead, in
// centimeters. ok is false when the reading failed; the loop degrades
// rather than aborting.
type RangeSensor interface {
	Distance() (cm float64, ok bool)
}

// Camera produces encoded frames at its own cadence, pushing each one
// into the channel. Start returns once the producer is running; the
// producer exits when ctx is cancelled. Stop releases the device and is
// called exactly once during teardown.
type Camera interface {
	Start(ctx context.Context, ch *frame.Channel) error
	Stop() error
}

package drive

import (
	"math"
	"time"
)

// Motor timing calibration: at drive power the car covers ~1 m per
// second and turns ~180 degrees in 1.4 s.
const (
	secondsPerMeter     = 1.0
	secondsPerHalfTurn  = 1.4
	degreesPerHalfTurn  = 180.0
	DefaultMoveDuration = 1 * time.Second        // ~1 m
	DefaultTurnDuration = 400 * time.Millisecond // ~45 deg
)

// MoveDuration converts a move magnitude in meters to motor run time.
// Sign selects direction and is handled by the dispatcher.
func MoveDuration(meters float64) time.Duration {
	return time.Duration(math.Abs(meters) * secondsPerMeter * float64(time.Second))
}

// RotateDuration converts degrees to motor run time.
func RotateDuration(degrees float64) time.Duration {
	seconds := math.Abs(degrees) * secondsPerHalfTurn / degreesPerHalfTurn
	return time.Duration(seconds * float64(time.Second))
}

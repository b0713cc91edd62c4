package drive

import (
	"context"
	"time"
)

// Actuator is the motor collaborator. Each call runs the motors for the
// given duration and blocks until the movement settles; implementations
// must honor ctx cancellation by stopping early.
type Actuator interface {
	Forward(ctx context.Context, d time.Duration) error
	Reverse(ctx context.Context, d time.Duration) error
	RotateRight(ctx context.Context, d time.Duration) error
	RotateLeft(ctx context.Context, d time.Duration) error
}

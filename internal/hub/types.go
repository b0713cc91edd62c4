package hub

import "context"

// Message is one loop iteration's snapshot, sent verbatim to every
// connected observer. Best effort, at most once per observer.
type Message struct {
	Iteration   uint64   `json:"iteration"`
	Image       string   `json:"image,omitempty"` // base64 JPEG
	Distance    *float64 `json:"distance,omitempty"`
	Description string   `json:"description,omitempty"`
	Action      string   `json:"action"`
	Rationale   string   `json:"rationale,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}

// Observer receives broadcast snapshots. Send must not block the
// control loop; implementations buffer or drop.
type Observer interface {
	ID() string
	Send(ctx context.Context, msg *Message) error
	Close() error
}

package frame

import "time"

// Frame is one encoded camera image. Data is an opaque JPEG blob.
type Frame struct {
	Data       []byte
	CapturedAt time.Time
}

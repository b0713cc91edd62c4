package oracle

import (
	"time"

	"github.com/pwspen/vlmcar/internal/decision"
	"github.com/pwspen/vlmcar/internal/frame"
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Schema      decision.Schema
	Target      string
	MaxAttempts int
	Timeout     time.Duration
}

// DecideRequest carries one iteration's context: the recent frames, the
// latest distance reading if one was available, and the rendered
// history window.
type DecideRequest struct {
	Frames      []*frame.Frame
	Distance    float64
	HasDistance bool
	History     string
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message responseMessage `json:"message"`
}

type responseMessage struct {
	Content string `json:"content"`
}

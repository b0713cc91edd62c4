package oracle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pwspen/vlmcar/internal/decision"
	"github.com/pwspen/vlmcar/internal/shared"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
)

const systemPromptFmt = "You are driving a robot car. Based on the most recent image, your distance " +
	"sensor (the distance to the nearest object in front of you, in centimeters), and your " +
	"logs from past movement cycles, move around the room to find the %s. " +
	"Respond with exactly one movement command per cycle."

// Client asks the remote vision-language model for the next movement.
// Malformed responses are retried up to the configured attempt budget;
// transport failures surface immediately.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	schema      decision.Schema
	target      string
	maxAttempts int
	logger      *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		schema:      cfg.Schema,
		target:      cfg.Target,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "oracle"),
	}
}

// Decide issues one logical decision request. The same request is
// re-sent when the model's output fails to decode; exhausting the
// budget yields shared.ErrRetryExhausted.
func (c *Client) Decide(ctx context.Context, req DecideRequest) (*decision.Decision, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		raw, err := c.complete(ctx, body)
		if err != nil {
			return nil, err
		}

		dec, err := decision.Decode(c.schema, raw)
		if err == nil {
			return dec, nil
		}
		if !errors.Is(err, shared.ErrMalformedDecision) {
			return nil, err
		}

		lastErr = err
		c.logger.Warn("malformed oracle output",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", err)
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", shared.ErrRetryExhausted, c.maxAttempts, lastErr)
}

func (c *Client) complete(ctx context.Context, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("oracle returned no choices")
	}

	return []byte(chatResp.Choices[0].Message.Content), nil
}

func (c *Client) buildRequest(req DecideRequest) chatRequest {
	distance := "unavailable"
	if req.HasDistance {
		distance = fmt.Sprintf("%.1f", req.Distance)
	}

	parts := []contentPart{{
		Type: "text",
		Text: fmt.Sprintf("Distance from sensor: %s\nLogs: %s", distance, req.History),
	}}
	for _, f := range req.Frames {
		parts = append(parts, contentPart{
			Type: "image_url",
			ImageURL: &imageURL{
				URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(f.Data),
				Detail: "low",
			},
		})
	}

	return chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPromptFmt, c.target)},
			{Role: "user", Content: parts},
		},
		ResponseFormat: responseFormatFor(c.schema),
	}
}

// IsAvailable probes the oracle endpoint. Used by the health surface.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

package shared

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrMalformedDecision marks an oracle response that failed to decode
	// into the configured decision schema. Transient: the client retries.
	ErrMalformedDecision = errors.New("malformed decision")

	// ErrRetryExhausted marks a decision request whose malformed-response
	// retry budget ran out. Fatal for the iteration, never for the loop.
	ErrRetryExhausted = errors.New("decision retry budget exhausted")

	// ErrFrameTimeout marks a frame wait that elapsed without a publish.
	ErrFrameTimeout = errors.New("frame wait timed out")
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func (e *APIError) ToHTTP(status int) *echo.HTTPError {
	return echo.NewHTTPError(status, e)
}

func BadRequest(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusBadRequest)
}

func InternalError(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusInternalServerError)
}

// Package upstream wraps the voice backend's HTTP API behind typed methods.
// Each method owns request construction, response shape translation, and the
// error taxonomy; callers never see raw HTTP.
package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/TeloraVapi/telora-dashboard/internal/metrics"
	"github.com/TeloraVapi/telora-dashboard/internal/patterns"
)

// APIError is a non-2xx response from the backend, carrying the
// server-provided message when one was present in the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the text to surface to the operator: the server's own
// message for API errors, a generic connection hint for everything else.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Please check your connection and try again."
}

// Client talks to the voice backend
type Client struct {
	http     *resty.Client
	audio    *resty.Client
	breaker  *patterns.CircuitBreakerWrapper
	bulkhead *patterns.Bulkhead
}

// New creates a backend client. The bearer token is attached to every
// request; no automatic retries, failures propagate to the caller.
func New(baseURL, token string) *Client {
	newClient := func(timeout time.Duration) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(token)
	}

	return &Client{
		http:     newClient(patterns.DefaultTimeout),
		audio:    newClient(patterns.SlowServiceTimeout),
		breaker:  patterns.NewCircuitBreaker("VoiceBackend", "dashboard-service"),
		bulkhead: patterns.NewBulkhead(10, "voice-backend", "dashboard-service"),
	}
}

// execute runs one backend call through the bulkhead and circuit breaker,
// recording the outcome per resource.
func (c *Client) execute(resource string, fn func() (interface{}, error)) (interface{}, error) {
	var result interface{}
	err := c.bulkhead.Execute(func() error {
		var cbErr error
		result, cbErr = c.breaker.Execute(fn)
		return patterns.FormatError("VoiceBackend", cbErr)
	})

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(resource, outcome).Inc()

	return result, err
}

// unmarshalBody decodes a 2xx response body
func unmarshalBody(resp *resty.Response, v interface{}) error {
	return json.Unmarshal(resp.Body(), v)
}

// checkStatus converts a non-2xx response into an APIError, preferring the
// body's detail/message field over the raw text.
func checkStatus(resp *resty.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}

	message := ""
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Detail != "" {
			message = body.Detail
		} else if body.Message != "" {
			message = body.Message
		}
	}
	if message == "" {
		message = resp.String()
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}

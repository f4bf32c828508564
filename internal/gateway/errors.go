package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// APIError is a non-2xx reply from the storefront API. Message carries the
// server-provided error text when the payload had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("storefront api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("storefront api: status %d", e.StatusCode)
}

// Unauthorized reports whether the upstream rejected the session credential.
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// TransitionError is returned when an order status change is rejected by the
// client-side state machine, before any network call is made.
type TransitionError struct {
	From, To Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

// isCancellation reports whether err is the caller or the gateway tearing the
// request down. Cancellation is not a user-facing failure.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

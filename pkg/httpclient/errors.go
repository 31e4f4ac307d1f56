package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// StatusError is a non-2xx response from an upstream API. Body holds the
// trimmed response text, which for most email providers is a short plain
// string such as "The Public Key is invalid".
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Body)
}

// Unwrap maps the status onto the shared error sentinels.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case e.Status == http.StatusTooManyRequests:
		return apperrors.ErrRateLimited
	case e.Status == http.StatusConflict:
		return apperrors.ErrConflict
	case e.Status >= 500:
		return apperrors.ErrServiceUnavail
	case IsClientError(e.Status):
		return apperrors.ErrInvalidInput
	default:
		return nil
	}
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// structuredError matches the {"error":{"code","message"}} envelope our own
// services emit, so their messages survive the hop.
type structuredError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads and closes the body of a non-2xx response and
// returns a *StatusError describing it.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	body := strings.TrimSpace(string(raw))
	var envelope structuredError
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil && envelope.Error.Message != "" {
		body = envelope.Error.Message
	}

	return &StatusError{Service: serviceName, Status: resp.StatusCode, Body: body}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}

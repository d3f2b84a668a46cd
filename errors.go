package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// Fallback error codes used when the server payload carries none.
const (
	ErrorCodeUnknown = "UNKNOWN"
	ErrorCodeNetwork = "NETWORK_ERROR"
)

// APIError is the normalized error every failure path converges to before
// reaching calling code. Status is the HTTP status code, or 0 when no
// response was received at all.
type APIError struct {
	Status    int
	Code      string
	Message   string
	Details   any
	RequestID string

	network bool
	cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = ErrorCodeUnknown
	}
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("%s (%d)", code, e.Status)
	}
	return fmt.Sprintf("%s: %s", code, msg)
}

// Unwrap exposes the underlying transport or decoding failure, when any.
func (e *APIError) Unwrap() error { return e.cause }

// IsNetworkError reports whether the request produced no response at all
// (connection failure, timeout, DNS, abort).
func (e *APIError) IsNetworkError() bool { return e.network }

// IsAuthError reports whether the server rejected the request's credential.
func (e *APIError) IsAuthError() bool { return e.Status == http.StatusUnauthorized }

// ConfigError reports invalid client construction or request input.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string { return "sdk: " + e.Reason }

// NormalizeError maps any failure to an *APIError. Already-normalized errors
// pass through unchanged, so the mapping is idempotent.
func NormalizeError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if isNetworkFailure(err) {
		return &APIError{
			Code:    ErrorCodeNetwork,
			Message: "network request failed, check your connection",
			network: true,
			cause:   err,
		}
	}
	return &APIError{
		Code:    ErrorCodeUnknown,
		Message: "unexpected error",
		Details: err.Error(),
		cause:   err,
	}
}

func isNetworkFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRetryable reports whether a generic retry policy may re-issue the failed
// request: true for network failures and 5xx responses. Auth failures are
// never retryable here; their single retry is owned by the refresh flow.
func IsRetryable(err error) bool {
	apiErr := NormalizeError(err)
	if apiErr == nil || apiErr.IsAuthError() {
		return false
	}
	return apiErr.IsNetworkError() || apiErr.Status >= http.StatusInternalServerError
}

// decodeAPIError reads a failed response body and maps the server's
// {error:{code,message,details}} payload to an APIError. The body is consumed
// but not closed.
func decodeAPIError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{Status: resp.StatusCode}
	if len(data) == 0 {
		apiErr.Message = resp.Status
		return apiErr
	}
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Status  int    `json:"status"`
			Details any    `json:"details"`
		} `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Message = string(data)
		return apiErr
	}
	apiErr.Code = payload.Error.Code
	apiErr.Message = payload.Error.Message
	if payload.Error.Status != 0 {
		apiErr.Status = payload.Error.Status
	}
	apiErr.Details = payload.Error.Details
	apiErr.RequestID = payload.RequestID
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}

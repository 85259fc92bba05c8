// Package common defines shared constants and sentinel errors used across
// the cotrip client layers. Callers should use errors.Is to match the
// sentinels and errors.As to extract *RequestFailedError.
package common

import (
	"errors"
	"fmt"
)

var (
	// Transport-level failures (timeout, DNS, connection reset, open breaker).
	// Retryable by the caller.
	ErrNetwork = errors.New("network error")

	// The remote answered 2xx but the body was missing or unparseable.
	ErrMalformedResponse = errors.New("malformed response")

	// No session token is stored locally.
	ErrUnauthenticated = errors.New("unauthenticated")

	// Auth errors.
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountExists        = errors.New("account already exists")
	ErrProviderRejected     = errors.New("identity provider rejected the request")
	ErrMissingIdentityToken = errors.New("missing identity token")

	// Local persistence failure.
	ErrStorage = errors.New("storage error")

	// Validation.
	ErrInvalidDateRange = errors.New("start date is after end date")
)

// RequestFailedError is returned for any non-2xx answer of a remote service.
type RequestFailedError struct {
	StatusCode int
	Message    string
}

func (e *RequestFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// StatusCode reports the HTTP status carried by err, or 0 when err is not
// a *RequestFailedError.
func StatusCode(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}

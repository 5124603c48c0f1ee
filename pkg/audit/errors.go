package audit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ErrNoOrganizations is returned when organization discovery finds nothing to scan.
var ErrNoOrganizations = errors.New("no organizations found for the provided token")

// AuthError is the error returned when the credential is missing, malformed or rejected.
type AuthError struct {
	StatusCode int    // HTTP status returned by the API (0 when no request was made)
	Reason     string // Description of the problem
}

// Error implements error.
func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("authentication failed: %s", e.Reason)
	}
	return fmt.Sprintf("authentication failed (%d %s): %s", e.StatusCode, http.StatusText(e.StatusCode), e.Reason)
}

// Rejected returns whether the API refused the credential outright, as opposed to
// refusing access to one particular resource.
func (e *AuthError) Rejected() bool {
	return e.StatusCode != http.StatusForbidden
}

// RateLimitError is the error returned when the API signals that the rate limit is exhausted.
type RateLimitError struct {
	StatusCode int       // HTTP status returned by the API
	Reset      time.Time // When the limit resets (zero if unknown)
	Message    string    // Message returned by the API
}

// Error implements error.
func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return fmt.Sprintf("rate limit exceeded (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("rate limit exceeded (%d), resets at %s: %s",
		e.StatusCode, e.Reset.Format(time.RFC3339), e.Message)
}

// Wait returns how long to wait from now until the rate limit resets.
func (e *RateLimitError) Wait(now time.Time) time.Duration {
	if e.Reset.IsZero() || !e.Reset.After(now) {
		return 0
	}
	return e.Reset.Sub(now)
}

// TransientError is the error returned for server side (5xx) failures.
type TransientError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements error.
func (e *TransientError) Error() string {
	return fmt.Sprintf("server error %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// RequestError is the error returned for any other unexpected response, including
// responses whose body does not match the expected schema.
type RequestError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements error.
func (e *RequestError) Error() string {
	return fmt.Sprintf("unexpected response %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// NewSchemaError returns a RequestError describing a response that lacks a required field.
func NewSchemaError(url, field string) *RequestError {
	return &RequestError{
		StatusCode: http.StatusOK,
		URL:        url,
		Body:       fmt.Sprintf("schema mismatch: missing required field '%s'", field),
	}
}

// IsFatal returns whether the error must abort the whole run rather than a single organization.
func IsFatal(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Rejected()
	}
	return errors.Is(err, ErrNoOrganizations)
}

// isSkippable returns whether a failed Dependabot status check should count as "not paused"
// instead of aborting the organization's scan.
func isSkippable(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return true
	}

	var authErr *AuthError
	return errors.As(err, &authErr) && !authErr.Rejected()
}

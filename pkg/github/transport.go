package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
)

const (
	// requestsMetric counts the HTTP requests sent to the GitHub API
	requestsMetric = "github.requests"
	// requestDurationMetric times the HTTP requests sent to the GitHub API
	requestDurationMetric = "github.request.duration"
	// transportErrorsMetric counts requests that failed without a response
	transportErrorsMetric = "github.transport_errors"

	// maxErrorBodySize limits how much of an error response is kept
	maxErrorBodySize = 4096
)

// statusTransport is an http.RoundTripper that turns unsuccessful responses into the typed
// errors of the audit package, so callers can decide what to do regardless of whether the
// request was made by the V3 or the V4 client.
type statusTransport struct {
	base      http.RoundTripper
	registry  metrics.Registry
	userAgent string
	now       func() time.Time
}

func newStatusTransport(base http.RoundTripper, registry metrics.Registry, userAgent string) *statusTransport {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &statusTransport{
		base:      base,
		registry:  registry,
		userAgent: userAgent,
		now:       time.Now,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	start := t.now()
	metrics.GetOrRegisterCounter(requestsMetric, t.registry).Inc(1)
	resp, err := t.base.RoundTrip(req)
	metrics.GetOrRegisterTimer(requestDurationMetric, t.registry).UpdateSince(start)
	if err != nil {
		metrics.GetOrRegisterCounter(transportErrorsMetric, t.registry).Inc(1)
		return nil, err
	}

	metrics.GetOrRegisterCounter(fmt.Sprintf("github.responses.%dxx", resp.StatusCode/100), t.registry).Inc(1)

	// Redirects are followed by the http.Client
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	resp.Body.Close()

	return nil, classifyResponse(resp.StatusCode, resp.Header, body, req.URL.String(), t.now())
}

// classifyResponse returns the error describing an unsuccessful response.
func classifyResponse(statusCode int, header http.Header, body []byte, url string, now time.Time) error {
	msg := apiMessage(body)

	switch {
	case statusCode == http.StatusUnauthorized:
		return &audit.AuthError{StatusCode: statusCode, Reason: msg}

	case statusCode == http.StatusTooManyRequests,
		statusCode == http.StatusForbidden && isRateLimited(header, msg):
		return &audit.RateLimitError{StatusCode: statusCode, Reset: rateLimitReset(header, now), Message: msg}

	case statusCode == http.StatusForbidden:
		return &audit.AuthError{StatusCode: statusCode, Reason: msg}

	case statusCode >= http.StatusInternalServerError:
		return &audit.TransientError{StatusCode: statusCode, URL: url, Body: msg}
	}

	return &audit.RequestError{StatusCode: statusCode, URL: url, Body: msg}
}

// isRateLimited returns whether a 403 response is the API refusing the request because a
// primary or secondary rate limit was exceeded.
func isRateLimited(header http.Header, msg string) bool {
	if header.Get("X-RateLimit-Remaining") == "0" || header.Get("Retry-After") != "" {
		return true
	}
	return strings.Contains(strings.ToLower(msg), "rate limit")
}

// rateLimitReset returns when the rate limit resets, preferring Retry-After over
// X-RateLimit-Reset. The zero time is returned when neither header is usable.
func rateLimitReset(header http.Header, now time.Time) time.Time {
	if secs, err := strconv.ParseInt(header.Get("Retry-After"), 10, 64); err == nil {
		return now.Add(time.Duration(secs) * time.Second)
	}
	if epoch, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		return time.Unix(epoch, 0)
	}
	return time.Time{}
}

// apiMessage returns the message of a GitHub error response, or the raw body if it has none.
func apiMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

package github

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"
	"github.com/pkg/errors"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
)

// retriesMetric counts the failures that were retried
const retriesMetric = "github.retries"

// retrier retries API calls that fail because of rate limiting or server side errors. Rate
// limited calls are not retried before the limit resets.
type retrier struct {
	maxRetries       uint64
	baseDelay        time.Duration
	maxDelay         time.Duration
	maxRateLimitWait time.Duration
	registry         metrics.Registry
	now              func() time.Time
}

func newRetrier(c *audit.GitHubConfig, registry metrics.Registry) *retrier {
	r := &retrier{
		maxRetries:       c.MaxRetries,
		baseDelay:        c.RetryBaseDelay,
		maxDelay:         c.MaxRetryDelay,
		maxRateLimitWait: c.MaxRateLimitWait,
		registry:         registry,
		now:              time.Now,
	}

	if r.baseDelay <= 0 {
		r.baseDelay = time.Millisecond
	}
	if r.maxDelay < r.baseDelay {
		r.maxDelay = r.baseDelay
	}
	if r.registry == nil {
		r.registry = metrics.NewRegistry()
	}

	return r
}

// do calls fn until it succeeds, fails with an error that waiting cannot fix, or the
// retries are exhausted. The last error is returned.
func (r *retrier) do(ctx context.Context, what string, fn func(ctx context.Context) error) error {
	log := zerolog.Ctx(ctx)

	// minWait is raised to the time until the rate limit resets after a rate limited attempt
	var minWait time.Duration
	exp := retry.WithMaxRetries(r.maxRetries, retry.WithCappedDuration(r.maxDelay, retry.NewExponential(r.baseDelay)))
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := exp.Next()
		if stop {
			return 0, true
		}
		if minWait > next {
			next = minWait
		}
		return next, false
	})

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := classifyError(fn(ctx))
		if err == nil {
			return nil
		}

		minWait = 0

		var rateErr *audit.RateLimitError
		var transientErr *audit.TransientError
		switch {
		case errors.As(err, &rateErr):
			wait := rateErr.Wait(r.now())
			if wait > r.maxRateLimitWait {
				log.Warn().Msgf("Rate limit resets in %s which is longer than the %s allowed, giving up %s",
					wait.Round(time.Second), r.maxRateLimitWait, what)
				return err
			}
			minWait = wait
			log.Warn().Msgf("Rate limit exceeded while %s, retrying after at least %s", what, wait.Round(time.Second))

		case errors.As(err, &transientErr):
			log.Warn().Err(err).Msgf("Server error while %s, retrying", what)

		default:
			return err
		}

		metrics.GetOrRegisterCounter(retriesMetric, r.registry).Inc(1)
		return retry.RetryableError(err)
	})
}

// classifyError maps the rate limit errors go-github returns without making a request to
// their audit equivalents. Errors already classified by the statusTransport pass through.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &audit.RateLimitError{
			StatusCode: responseStatus(rateErr.Response, http.StatusForbidden),
			Reset:      rateErr.Rate.Reset.Time,
			Message:    rateErr.Message,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		e := &audit.RateLimitError{
			StatusCode: responseStatus(abuseErr.Response, http.StatusForbidden),
			Message:    abuseErr.Message,
		}
		if abuseErr.RetryAfter != nil {
			e.Reset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return e
	}

	return err
}

// classifyGraphQLError maps errors reported in the body of a successful GraphQL response.
func classifyGraphQLError(url string, err error) error {
	if err == nil || isClassified(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rate limit"):
		return &audit.RateLimitError{StatusCode: http.StatusOK, Message: msg}
	case strings.Contains(lower, "saml"), strings.Contains(lower, "forbidden"):
		// Organizations enforcing SAML SSO refuse unauthorised tokens with a FORBIDDEN error
		return &audit.AuthError{StatusCode: http.StatusForbidden, Reason: msg}
	}
	return &audit.RequestError{StatusCode: http.StatusOK, URL: url, Body: msg}
}

// isClassified returns whether the error already carries one of the audit error types.
func isClassified(err error) bool {
	var (
		authErr      *audit.AuthError
		rateErr      *audit.RateLimitError
		transientErr *audit.TransientError
		reqErr       *audit.RequestError
	)
	return errors.As(err, &authErr) || errors.As(err, &rateErr) ||
		errors.As(err, &transientErr) || errors.As(err, &reqErr)
}

func responseStatus(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}

package cmd

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
)

const (
	tokenEnvKey            = "PAUSED_DEPENDABOT_REPOS_TOKEN"
	apiURLEnvKey           = "GITHUB_API_URL"
	graphQLURLEnvKey       = "GITHUB_GRAPHQL_URL"
	requestTimeoutEnvKey   = "REQUEST_TIMEOUT"
	maxRetriesEnvKey       = "MAX_RETRIES"
	retryBaseDelayEnvKey   = "RETRY_BASE_DELAY"
	maxRateLimitWaitEnvKey = "MAX_RATE_LIMIT_WAIT"
	regionEnvKey           = "REGION"

	// Defaults config values
	defaultAPIURL           = "https://api.github.com/"
	defaultRequestTimeout   = "30s"
	defaultMaxRetries       = "5"
	defaultRetryBaseDelay   = "1s"
	defaultMaxRateLimitWait = "1h"
	defaultRegion           = "ap-southeast-2"

	// fineGrainedTokenPrefix identifies fine-grained personal access tokens, which cannot
	// list the organizations of the user
	fineGrainedTokenPrefix = "github_pat_"

	// gitHubDotComHost is the API host of github.com, whose GraphQL endpoint is not under the
	// REST path like it is for GitHub Enterprise Server
	gitHubDotComHost = "api.github.com"
)

// LookupToken returns the personal access token. A missing or malformed token is an
// audit.AuthError so that it is reported before any request is made.
func LookupToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(tokenEnvKey))
	if token == "" {
		return "", &audit.AuthError{Reason: tokenEnvKey + " environment variable is not set"}
	}

	if strings.ContainsAny(token, " \t\r\n") {
		return "", &audit.AuthError{Reason: tokenEnvKey + " is malformed: it must not contain whitespace"}
	}

	if strings.HasPrefix(token, fineGrainedTokenPrefix) {
		return "", &audit.AuthError{Reason: tokenEnvKey + " is a fine-grained token: a classic personal access token is required"}
	}

	return token, nil
}

// LookupAPIURL returns the base URL of the REST API with a trailing slash.
func LookupAPIURL() (string, error) {
	v := configValue(apiURLEnvKey, defaultAPIURL)
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("bad %s: %s", apiURLEnvKey, v)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return u.String(), nil
}

// LookupGraphQLURL returns the URL of the GraphQL endpoint. Unless it is set explicitly it is
// derived from the REST API URL.
func LookupGraphQLURL(apiURL string) (string, error) {
	if v, ok := os.LookupEnv(graphQLURLEnvKey); ok && v != "" {
		return v, nil
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return "", errors.Wrapf(err, "bad API URL '%s'", apiURL)
	}

	switch {
	case u.Host == gitHubDotComHost:
		u.Path = "/graphql"
	case strings.HasSuffix(u.Path, "/api/v3/"):
		u.Path = strings.TrimSuffix(u.Path, "v3/") + "graphql"
	default:
		u.Path = strings.TrimSuffix(u.Path, "/") + "/graphql"
	}

	return u.String(), nil
}

func LookupRequestTimeout() (time.Duration, error) {
	return lookupDuration(requestTimeoutEnvKey, defaultRequestTimeout)
}

func LookupMaxRetries() (uint64, error) {
	v := configValue(maxRetriesEnvKey, defaultMaxRetries)
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.Errorf("bad %s: %s", maxRetriesEnvKey, v)
	}

	return n, nil
}

func LookupRetryBaseDelay() (time.Duration, error) {
	return lookupDuration(retryBaseDelayEnvKey, defaultRetryBaseDelay)
}

func LookupMaxRateLimitWait() (time.Duration, error) {
	return lookupDuration(maxRateLimitWaitEnvKey, defaultMaxRateLimitWait)
}

func LookupRegion() (string, error) {
	return configValue(regionEnvKey, defaultRegion), nil
}

func lookupDuration(envKey, defaultValue string) (time.Duration, error) {
	v := configValue(envKey, defaultValue)
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, errors.Errorf("bad %s: %s", envKey, v)
	}

	return d, nil
}

func configValue(envKey, defaultValue string) string {
	if v, ok := os.LookupEnv(envKey); ok {
		return v
	}
	return defaultValue
}

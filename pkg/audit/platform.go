package audit

import (
	"time"
)

// Platform provides the domain interface for interacting with the application configuration
// as well as all backend services.
type Platform interface {
	Config() *Config
	GitHubService() GitHubService
}

// Config provides the application configuration.
type Config struct {
	Name    string // Name of this application
	Version string // Version of this application
	Region  string // AWS region used when uploading reports to S3

	GitHubConfig
}

// GitHubConfig provides GitHub API specific configuration.
type GitHubConfig struct {
	Token            string        // Classic personal access token used for every API call
	APIURL           string        // Base URL of the REST API, with a trailing slash
	GraphQLURL       string        // URL of the GraphQL endpoint
	RequestTimeout   time.Duration // Timeout applied to each HTTP request
	MaxRetries       uint64        // Retries for rate limited and transient failures
	RetryBaseDelay   time.Duration // Initial delay of the exponential backoff
	MaxRetryDelay    time.Duration // Upper bound of a single backoff delay
	MaxRateLimitWait time.Duration // Longest time to wait for a rate limit to reset
}

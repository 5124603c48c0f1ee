package cmd

import (
	"time"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/build"
)

// maxRetryDelay caps a single backoff delay; rate limit waits are bounded separately
const maxRetryDelay = time.Minute

// loadConfig builds and returns the audit.Config. The token is checked first so that a
// missing credential is reported ahead of any other configuration problem.
func loadConfig() (*audit.Config, error) {
	token, err := LookupToken()
	if err != nil {
		return nil, err
	}

	gitHubConfig, err := loadGitHubConfig(token)
	if err != nil {
		return nil, err
	}

	region, err := LookupRegion()
	if err != nil {
		return nil, err
	}

	return &audit.Config{
		Name:         build.Name,
		Version:      build.Version,
		Region:       region,
		GitHubConfig: *gitHubConfig,
	}, nil
}

// loadGitHubConfig returns the GitHub API configuration.
func loadGitHubConfig(token string) (*audit.GitHubConfig, error) {
	apiURL, err := LookupAPIURL()
	if err != nil {
		return nil, err
	}

	graphQLURL, err := LookupGraphQLURL(apiURL)
	if err != nil {
		return nil, err
	}

	requestTimeout, err := LookupRequestTimeout()
	if err != nil {
		return nil, err
	}

	maxRetries, err := LookupMaxRetries()
	if err != nil {
		return nil, err
	}

	retryBaseDelay, err := LookupRetryBaseDelay()
	if err != nil {
		return nil, err
	}

	maxRateLimitWait, err := LookupMaxRateLimitWait()
	if err != nil {
		return nil, err
	}

	return &audit.GitHubConfig{
		Token:            token,
		APIURL:           apiURL,
		GraphQLURL:       graphQLURL,
		RequestTimeout:   requestTimeout,
		MaxRetries:       maxRetries,
		RetryBaseDelay:   retryBaseDelay,
		MaxRetryDelay:    maxRetryDelay,
		MaxRateLimitWait: maxRateLimitWait,
	}, nil
}

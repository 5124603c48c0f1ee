package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v73/github"
	"github.com/pkg/errors"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
)

// ClientFactory provides the GitHub clients used by the service. The V3 (REST) and V4 (GraphQL)
// clients share one HTTP client that authenticates every request with the configured token.
type ClientFactory struct {
	v3 *github.Client
	v4 *githubv4.Client
}

// NewTokenClientFactory returns a ClientFactory that creates personal access token based
// GitHub clients. Request metrics are recorded in the specified registry.
func NewTokenClientFactory(c *audit.Config, registry metrics.Registry) (*ClientFactory, error) {
	if c.Token == "" {
		return nil, &audit.AuthError{Reason: "no token configured"}
	}

	baseURL, err := url.Parse(withTrailingSlash(c.APIURL))
	if err != nil {
		return nil, errors.Wrapf(err, "bad GitHub API URL '%s'", c.APIURL)
	}

	httpClient := newHTTPClient(c, registry)

	v3 := github.NewClient(httpClient)
	v3.BaseURL = baseURL
	v3.UserAgent = userAgent(c)

	return &ClientFactory{
		v3: v3,
		v4: githubv4.NewEnterpriseClient(c.GraphQLURL, httpClient),
	}, nil
}

// V3Client returns a V3 GitHub client.
func (f *ClientFactory) V3Client(ctx context.Context) (*github.Client, error) {
	if f.v3 == nil {
		return nil, errors.New("no GitHub V3 client configured")
	}
	return f.v3, nil
}

// V4Client returns a V4 GitHub client.
func (f *ClientFactory) V4Client(ctx context.Context) (*githubv4.Client, error) {
	if f.v4 == nil {
		return nil, errors.New("no GitHub V4 client configured")
	}
	return f.v4, nil
}

// newHTTPClient returns the http.Client shared by the GitHub clients. Requests carry the token
// as a bearer credential and non-2xx responses are turned into errors by the statusTransport.
func newHTTPClient(c *audit.Config, registry metrics.Registry) *http.Client {
	return &http.Client{
		Timeout: c.RequestTimeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token}),
			Base:   newStatusTransport(http.DefaultTransport, registry, userAgent(c)),
		},
	}
}

// userAgent returns the User-Agent sent with every request.
func userAgent(c *audit.Config) string {
	return fmt.Sprintf("%s/%s", c.Name, c.Version)
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

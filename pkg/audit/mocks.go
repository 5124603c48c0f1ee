package audit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang/mock/gomock"
)

// TestPlatform provides a test implementation of Platform that contains mocks.
type TestPlatform struct {
	config *Config

	MockGitHubService *MockGitHubService
}

// NewTestPlatform returns a new TestPlatform instance.
func NewTestPlatform(ctrl *gomock.Controller) *TestPlatform {
	config := &Config{
		Name:    "paused-dependabot-repos",
		Version: "1.0.0",
		GitHubConfig: GitHubConfig{
			Token:  "ghp_test",
			APIURL: "https://api.github.com/",
		},
	}

	return &TestPlatform{
		config:            config,
		MockGitHubService: NewMockGitHubService(ctrl),
	}
}

// Config implements Platform.
func (plat *TestPlatform) Config() *Config {
	return plat.config
}

// GitHubService implements Platform.
func (plat *TestPlatform) GitHubService() GitHubService {
	return plat.MockGitHubService
}

// ExpectWalkRepos configures an expectation on the MockGitHubService for WalkRepos to be
// called for the org and for each of the specified repos to be passed to the walk function.
func (m *MockGitHubService) ExpectWalkRepos(ctx interface{}, orgName string, repos ...*Repo) *gomock.Call {
	return m.
		EXPECT().
		WalkRepos(ctx, orgName, gomock.Any()).
		DoAndReturn(func(ctx context.Context, orgName string, walkFn WalkReposFunc) error {
			for _, r := range repos {
				if err := walkFn(r); err != nil {
					return err
				}
			}
			return nil
		})
}

// ExpectDependabotStatuses configures expectations on the MockGitHubService for DependabotStatus
// to be called once for each repo in the map. A true value reports Dependabot as paused, false
// as active, and repos missing from the map are never expected to be checked.
func (m *MockGitHubService) ExpectDependabotStatuses(ctx interface{}, orgName string, paused map[string]bool) {
	for name, isPaused := range paused {
		m.
			EXPECT().
			DependabotStatus(ctx, orgName, name).
			Return(&DependabotStatus{Enabled: true, Paused: isPaused}, nil)
	}
}

// ExpectDependabotNotAvailable configures an expectation on the MockGitHubService for
// DependabotStatus to fail for the repo the way the API does when Dependabot is not enabled.
func (m *MockGitHubService) ExpectDependabotNotAvailable(ctx interface{}, orgName, repoName string) *gomock.Call {
	return m.
		EXPECT().
		DependabotStatus(ctx, orgName, repoName).
		Return(nil, &RequestError{
			StatusCode: http.StatusNotFound,
			URL:        fmt.Sprintf("https://api.github.com/repos/%s/%s/automated-security-fixes", orgName, repoName),
			Body:       `{"message":"Not Found"}`,
		})
}

// NewTestRepo returns a Repo in the specified org.
func NewTestRepo(orgName, name string) *Repo {
	return &Repo{Org: orgName, Name: name, FullName: orgName + "/" + name}
}

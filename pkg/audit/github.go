package audit

import (
	"context"
)

//go:generate mockgen -source=github.go -destination=mock_github.go -package=audit

// WalkReposFunc is the type of the function called for each repo in the GitHub org
// by the WalkRepos function. If the function returns an error walking stops.
type WalkReposFunc func(r *Repo) error

// GitHubService provides the domain interface for all GitHub interactions. All operations
// are read-only.
type GitHubService interface {
	// AuthenticatedUser returns the login of the user that owns the credential. It is used
	// to verify the credential before any organization is scanned.
	AuthenticatedUser(ctx context.Context) (string, error)

	// ListOrganizations returns the logins of all organizations the credential can access.
	ListOrganizations(ctx context.Context) ([]string, error)

	// WalkRepos walks over all repos in the specified org, passing each to the walk function.
	WalkRepos(ctx context.Context, orgName string, walkFn WalkReposFunc) error

	// DependabotStatus returns the Dependabot security updates status of the specified repo.
	DependabotStatus(ctx context.Context, orgName, repoName string) (*DependabotStatus, error)
}

// Repo represents a GitHub repository.
type Repo struct {
	Org      string `json:"org" yaml:"org"`
	Name     string `json:"name" yaml:"name"`
	FullName string `json:"fullName" yaml:"fullName"`
	Archived bool   `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// DependabotStatus is the state of Dependabot security updates for a repository.
type DependabotStatus struct {
	Enabled bool // Dependabot security updates are enabled
	Paused  bool // Dependabot has been paused due to inactivity
}

// IsPaused returns whether Dependabot has stopped operating on the repository. Only the
// paused flag counts, whatever the enabled flag says.
func (s *DependabotStatus) IsPaused() bool {
	return s != nil && s.Paused
}

package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v73/github"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/shurcooL/githubv4"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
)

const (
	// pageSize is the number of items to return per page in paged responses
	pageSize = 100
)

// reposQuery is used for retrieving information about repos from the Graphql API.
type reposQuery struct {
	Org struct {
		Repositories struct {
			PageInfo pageInfo
			Nodes    []repoNode
		} `graphql:"repositories(first: $first, after: $cursor)"`
	} `graphql:"organization(login: $org)"`
}

// pageInfo is the information needed for paging the Graphql API.
type pageInfo struct {
	EndCursor   string
	HasNextPage bool
}

// repoNode is the repository information returned by the Graphql API.
type repoNode struct {
	Name          string
	NameWithOwner string
	IsArchived    bool
}

// service provides the read-only implementation of audit.GitHubService.
type service struct {
	*ClientFactory
	config  *audit.Config
	retrier *retrier
}

// NewService returns a configured GitHubService implementation.
func NewService(c *audit.Config, f *ClientFactory, registry metrics.Registry) audit.GitHubService {
	return &service{
		ClientFactory: f,
		config:        c,
		retrier:       newRetrier(&c.GitHubConfig, registry),
	}
}

// AuthenticatedUser implements audit.GitHubService.
func (s *service) AuthenticatedUser(ctx context.Context) (string, error) {
	v3, err := s.V3Client(ctx)
	if err != nil {
		return "", err
	}

	var user *github.User
	if err := s.retrier.do(ctx, "verifying the credential", func(ctx context.Context) error {
		var err error
		user, _, err = v3.Users.Get(ctx, "")
		return err
	}); err != nil {
		return "", err
	}

	if user.GetLogin() == "" {
		return "", audit.NewSchemaError(s.restURL("user"), "login")
	}

	return user.GetLogin(), nil
}

// ListOrganizations implements audit.GitHubService.
func (s *service) ListOrganizations(ctx context.Context) ([]string, error) {
	v3, err := s.V3Client(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	opts := github.ListOptions{PerPage: pageSize}

	// Loop until there are no more pages of orgs
	for {
		var orgs []*github.Organization
		var r *github.Response
		if err := s.retrier.do(ctx, "listing organizations", func(ctx context.Context) error {
			var err error
			orgs, r, err = v3.Organizations.List(ctx, "", &opts)
			return err
		}); err != nil {
			return nil, err
		}

		for _, o := range orgs {
			if o.GetLogin() == "" {
				return nil, audit.NewSchemaError(s.restURL("user/orgs"), "login")
			}
			names = append(names, o.GetLogin())
		}

		// Are we done with paging through the orgs?
		if r.NextPage == 0 {
			break
		}

		// Not done yet
		opts.Page = r.NextPage
	}

	return names, nil
}

// WalkRepos implements audit.GitHubService.
func (s *service) WalkRepos(ctx context.Context, orgName string, walkFn audit.WalkReposFunc) error {
	v4, err := s.V4Client(ctx)
	if err != nil {
		return err
	}

	cursor := ""
	vars := map[string]interface{}{
		"org":   githubv4.String(orgName),
		"first": githubv4.Int(pageSize),
	}

	for {
		vars["cursor"] = gitHubV4StringPtr(cursor)

		var q reposQuery
		if err := s.retrier.do(ctx, fmt.Sprintf("listing repos in %s", orgName), func(ctx context.Context) error {
			q = reposQuery{}
			return classifyGraphQLError(s.config.GraphQLURL, v4.Query(ctx, &q, vars))
		}); err != nil {
			return err
		}

		for _, node := range q.Org.Repositories.Nodes {
			if node.NameWithOwner == "" || node.Name == "" {
				return audit.NewSchemaError(s.config.GraphQLURL, "nameWithOwner")
			}

			repo := &audit.Repo{
				Org:      orgName,
				Name:     node.Name,
				FullName: node.NameWithOwner,
				Archived: node.IsArchived,
			}
			if err := walkFn(repo); err != nil {
				return err
			}
		}

		if !q.Org.Repositories.PageInfo.HasNextPage {
			break
		}
		cursor = q.Org.Repositories.PageInfo.EndCursor
	}

	return nil
}

// DependabotStatus implements audit.GitHubService. Only the paused property is required;
// a missing enabled property is read as false.
func (s *service) DependabotStatus(ctx context.Context, orgName, repoName string) (*audit.DependabotStatus, error) {
	v3, err := s.V3Client(ctx)
	if err != nil {
		return nil, err
	}

	var fixes *github.AutomatedSecurityFixes
	if err := s.retrier.do(ctx, fmt.Sprintf("checking %s/%s", orgName, repoName), func(ctx context.Context) error {
		var err error
		fixes, _, err = v3.Repositories.GetAutomatedSecurityFixes(ctx, orgName, repoName)
		return err
	}); err != nil {
		return nil, err
	}

	if fixes == nil || fixes.Paused == nil {
		return nil, audit.NewSchemaError(s.restURL(fmt.Sprintf("repos/%v/%v/automated-security-fixes", orgName, repoName)), "paused")
	}

	return &audit.DependabotStatus{Enabled: fixes.GetEnabled(), Paused: fixes.GetPaused()}, nil
}

// restURL returns the absolute URL of a REST API path.
func (s *service) restURL(path string) string {
	return withTrailingSlash(s.config.APIURL) + path
}

// gitHubV4StringPtr returns a pointer to the GraphQL string, or nil for the empty string so
// the first page of a paged query is requested with a null cursor.
func gitHubV4StringPtr(value string) *githubv4.String {
	if value == "" {
		return nil
	}
	return (*githubv4.String)(&value)
}

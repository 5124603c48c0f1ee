package audit

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plat := NewTestPlatform(ctrl)

	plat.MockGitHubService.
		EXPECT().
		AuthenticatedUser(gomock.Any()).
		Return("octocat", nil)

	plat.MockGitHubService.ExpectWalkRepos(gomock.Any(), "acme",
		NewTestRepo("acme", "a"), NewTestRepo("acme", "b"), NewTestRepo("acme", "c"))
	plat.MockGitHubService.ExpectDependabotStatuses(gomock.Any(), "acme", map[string]bool{
		"a": true,
		"b": false,
		"c": true,
	})

	report, res, err := Run(context.Background(), plat, RunOptions{Orgs: []string{"acme"}})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string][]string{"acme": {"acme/a", "acme/c"}}
	if diff := cmp.Diff(want, report.Entries()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	wantRes := &RunResult{
		User:          "octocat",
		Organizations: []*OrgResult{{Name: "acme", ReposChecked: 3, ReposPaused: 2}},
		ReposChecked:  3,
		ReposPaused:   2,
	}
	if diff := cmp.Diff(wantRes, res); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestRunDiscoveredOrgsWithNothingPaused(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plat := NewTestPlatform(ctrl)

	plat.MockGitHubService.
		EXPECT().
		AuthenticatedUser(gomock.Any()).
		Return("octocat", nil)
	plat.MockGitHubService.
		EXPECT().
		ListOrganizations(gomock.Any()).
		Return([]string{"x", "y"}, nil)

	plat.MockGitHubService.ExpectWalkRepos(gomock.Any(), "x", NewTestRepo("x", "1"))
	plat.MockGitHubService.ExpectWalkRepos(gomock.Any(), "y", NewTestRepo("y", "2"))
	plat.MockGitHubService.ExpectDependabotStatuses(gomock.Any(), "x", map[string]bool{"1": false})
	plat.MockGitHubService.ExpectDependabotStatuses(gomock.Any(), "y", map[string]bool{"2": false})

	report, _, err := Run(context.Background(), plat, RunOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// Orgs without paused repos are omitted entirely
	if diff := cmp.Diff(map[string][]string{}, report.Entries()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestRunRejectedCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plat := NewTestPlatform(ctrl)

	// Nothing else is expected to be called
	wantErr := &AuthError{StatusCode: http.StatusUnauthorized, Reason: "Bad credentials"}
	plat.MockGitHubService.
		EXPECT().
		AuthenticatedUser(gomock.Any()).
		Return("", wantErr)

	report, _, err := Run(context.Background(), plat, RunOptions{Orgs: []string{"acme"}})
	if diff := cmp.Diff(wantErr, errors.Cause(err)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if report != nil {
		t.Errorf("want no report, got %v", report.Entries())
	}
}

func TestRunOrgFailureDoesNotStopOtherOrgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plat := NewTestPlatform(ctrl)

	plat.MockGitHubService.
		EXPECT().
		AuthenticatedUser(gomock.Any()).
		Return("octocat", nil)

	plat.MockGitHubService.
		EXPECT().
		WalkRepos(gomock.Any(), "sso", gomock.Any()).
		Return(&AuthError{StatusCode: http.StatusForbidden, Reason: "Resource protected by organization SAML enforcement."})

	plat.MockGitHubService.
		EXPECT().
		WalkRepos(gomock.Any(), "broken", gomock.Any()).
		Return(&TransientError{StatusCode: http.StatusBadGateway, URL: "https://api.github.com/graphql"})

	plat.MockGitHubService.ExpectWalkRepos(gomock.Any(), "acme", NewTestRepo("acme", "a"))
	plat.MockGitHubService.ExpectDependabotStatuses(gomock.Any(), "acme", map[string]bool{"a": true})

	report, res, err := Run(context.Background(), plat, RunOptions{Orgs: []string{"sso", "broken", "acme"}})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string][]string{"acme": {"acme/a"}}
	if diff := cmp.Diff(want, report.Entries()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	if res.FailedOrganizations != 2 {
		t.Errorf("want 2 failed orgs, got %d", res.FailedOrganizations)
	}
	for i, name := range []string{"sso", "broken", "acme"} {
		if res.Organizations[i].Name != name {
			t.Errorf("want org %s at position %d, got %s", name, i, res.Organizations[i].Name)
		}
	}
	if res.Organizations[0].Error == "" || res.Organizations[2].Error != "" {
		t.Errorf("unexpected org errors: %+v", res.Organizations)
	}
}

func TestRunRevokedCredentialDuringScan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plat := NewTestPlatform(ctrl)

	plat.MockGitHubService.
		EXPECT().
		AuthenticatedUser(gomock.Any()).
		Return("octocat", nil)

	wantErr := &AuthError{StatusCode: http.StatusUnauthorized, Reason: "Bad credentials"}
	plat.MockGitHubService.
		EXPECT().
		WalkRepos(gomock.Any(), "acme", gomock.Any()).
		Return(wantErr)

	_, _, err := Run(context.Background(), plat, RunOptions{Orgs: []string{"acme"}})
	if diff := cmp.Diff(wantErr, errors.Cause(err)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestRunConcurrentOrgsIsDeterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plat := NewTestPlatform(ctrl)

	plat.MockGitHubService.
		EXPECT().
		AuthenticatedUser(gomock.Any()).
		Return("octocat", nil)

	var orgs []string
	want := map[string][]string{}
	for i := 0; i < 6; i++ {
		org := fmt.Sprintf("org%d", i)
		orgs = append(orgs, org)

		var repos []*Repo
		statuses := map[string]bool{}
		for j := 0; j < 4; j++ {
			name := fmt.Sprintf("repo%d", j)
			repos = append(repos, NewTestRepo(org, name))

			// Every other repo is paused
			statuses[name] = j%2 == 0
			if j%2 == 0 {
				want[org] = append(want[org], org+"/"+name)
			}
		}

		plat.MockGitHubService.ExpectWalkRepos(gomock.Any(), org, repos...)
		plat.MockGitHubService.ExpectDependabotStatuses(gomock.Any(), org, statuses)
	}

	report, res, err := Run(context.Background(), plat, RunOptions{Orgs: orgs, Concurrency: 3})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, report.Entries()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if res.ReposPaused != 12 || res.ReposChecked != 24 {
		t.Errorf("want 12 of 24 repos paused, got %d of %d", res.ReposPaused, res.ReposChecked)
	}
}

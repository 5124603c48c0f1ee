package audit

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ScanOptions controls how the repositories of an organization are checked.
type ScanOptions struct {
	SkipArchived bool // Archived repositories are not checked when set
}

// OrgResult summarises the scan of a single organization.
type OrgResult struct {
	Name                string `json:"name" yaml:"name"`
	ReposChecked        int    `json:"reposChecked" yaml:"reposChecked"`
	ReposPaused         int    `json:"reposPaused" yaml:"reposPaused"`
	StatusChecksSkipped int    `json:"statusChecksSkipped,omitempty" yaml:"statusChecksSkipped,omitempty"`
	ArchivedSkipped     int    `json:"archivedSkipped,omitempty" yaml:"archivedSkipped,omitempty"`
	Error               string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ScanOrganization checks every repository in the specified organization and returns the
// repositories whose Dependabot has been paused, in the order the API returned them.
func ScanOrganization(ctx context.Context, plat Platform, orgName string, opts ScanOptions) (*OrgResult, []*Repo, error) {
	log := zerolog.Ctx(ctx)
	res := &OrgResult{Name: orgName}

	// Collect the repositories first so that progress can be reported against a total
	var repos []*Repo
	if err := plat.GitHubService().WalkRepos(ctx, orgName, func(r *Repo) error {
		if opts.SkipArchived && r.Archived {
			res.ArchivedSkipped++
			return nil
		}
		repos = append(repos, r)
		return nil
	}); err != nil {
		return res, nil, errors.Wrapf(err, "could not list repositories in org '%s'", orgName)
	}

	log.Info().Msgf("Checking if Dependabot is paused in %d repos in %s", len(repos), orgName)

	var paused []*Repo
	for i, repo := range repos {
		status, err := plat.GitHubService().DependabotStatus(ctx, orgName, repo.Name)
		res.ReposChecked++

		switch {
		case err == nil:
		case isSkippable(err):
			// Dependabot is not available for this repo so it can't be paused
			res.StatusChecksSkipped++
			log.Debug().Err(err).Msgf("Skipping status check for %s", repo.FullName)
			continue
		default:
			return res, paused, errors.Wrapf(err, "could not check Dependabot status of %s", repo.FullName)
		}

		if status.IsPaused() {
			res.ReposPaused++
			paused = append(paused, repo)
			log.Info().Msgf("Dependabot is paused in %s", repo.FullName)
		}

		log.Debug().Msgf("%d/%d repos in %s checked", i+1, len(repos), orgName)
	}

	log.Info().Msgf("Done checking repos in %s (%d paused)", orgName, res.ReposPaused)
	return res, paused, nil
}

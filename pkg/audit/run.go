package audit

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RunOptions controls a complete scan.
type RunOptions struct {
	Orgs        []string // Organizations to scan; all accessible organizations when empty
	Concurrency int      // Number of organizations scanned at the same time
	ScanOptions
}

// RunResult summarises a complete scan.
type RunResult struct {
	User                string       `json:"user" yaml:"user"`
	Organizations       []*OrgResult `json:"organizations" yaml:"organizations"`
	ReposChecked        int          `json:"reposChecked" yaml:"reposChecked"`
	ReposPaused         int          `json:"reposPaused" yaml:"reposPaused"`
	FailedOrganizations int          `json:"failedOrganizations,omitempty" yaml:"failedOrganizations,omitempty"`
}

// Run verifies the credential, resolves the organizations to scan and scans each of them,
// returning the Report of paused repositories. A failure scanning one organization is logged
// and recorded in the RunResult; only fatal errors are returned.
func Run(ctx context.Context, plat Platform, opts RunOptions) (*Report, *RunResult, error) {
	log := zerolog.Ctx(ctx)

	// Fail before anything is scanned if the credential is rejected
	user, err := plat.GitHubService().AuthenticatedUser(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not verify credential")
	}
	log.Info().Msgf("Authenticated as %s", user)

	orgs, err := ListOrganizations(ctx, plat, opts.Orgs)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msgf("Checking repos in orgs: %s", strings.Join(orgs, ", "))

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	report := NewReport()
	results := make([]*OrgResult, len(orgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, orgName := range orgs {
		i, orgName := i, orgName
		g.Go(func() error {
			res, paused, err := ScanOrganization(gctx, plat, orgName, opts.ScanOptions)
			results[i] = res
			if err != nil {
				if IsFatal(err) {
					return err
				}

				// Partial results are discarded; the scan of the other orgs carries on
				res.Error = err.Error()
				logOrgFailure(gctx, orgName, err)
				return nil
			}

			for _, r := range paused {
				report.Add(orgName, r)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return report, summarise(user, results), nil
}

// summarise builds the RunResult from the per-organization results.
func summarise(user string, results []*OrgResult) *RunResult {
	sum := &RunResult{User: user, Organizations: results}
	for _, res := range results {
		sum.ReposChecked += res.ReposChecked
		sum.ReposPaused += res.ReposPaused
		if res.Error != "" {
			sum.FailedOrganizations++
		}
	}

	return sum
}

// logOrgFailure logs the failure of an organization's scan, adding a hint when the failure
// is likely caused by SAML SSO not being authorised for the token.
func logOrgFailure(ctx context.Context, orgName string, err error) {
	log := zerolog.Ctx(ctx)
	log.Error().Err(err).Msgf("Failed to scan org %s", orgName)

	var authErr *AuthError
	if errors.As(err, &authErr) && !authErr.Rejected() {
		log.Warn().Msgf("You might need to authorize SSO for your token to access non-public repos in %s", orgName)
	}
}

package audit

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ListOrganizations returns the organizations to scan. When explicit names are given they are
// used as-is, otherwise every organization the credential can access is discovered.
func ListOrganizations(ctx context.Context, plat Platform, explicit []string) ([]string, error) {
	if orgs := uniqueNames(explicit); len(orgs) > 0 {
		return orgs, nil
	}

	zerolog.Ctx(ctx).Info().Msg("No organizations specified, discovering all accessible organizations")

	discovered, err := plat.GitHubService().ListOrganizations(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not list organizations")
	}

	orgs := uniqueNames(discovered)
	if len(orgs) == 0 {
		return nil, ErrNoOrganizations
	}

	zerolog.Ctx(ctx).Info().Msgf("Discovered %d organizations: %s", len(orgs), strings.Join(orgs, ", "))
	return orgs, nil
}

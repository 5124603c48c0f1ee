package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/aws"
	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/cmd"
)

// reportUploader copies a written report to durable storage.
type reportUploader interface {
	PutFile(bucket, key, path string) error
}

var (
	// lazyPlatform provides a means of overriding the concrete implementation of
	// Platform used in tests. It's lazy because creation of a real Platform has side-effects.
	lazyPlatform = func() (audit.Platform, cmd.MetricsReporterFunc, error) {
		return cmd.NewPlatform()
	}

	// lazyUploader provides a means of overriding the S3 upload in tests.
	lazyUploader = func(c *audit.Config) (reportUploader, error) {
		sess, err := cmd.NewAWSSession(c)
		if err != nil {
			return nil, err
		}
		return aws.NewS3(sess), nil
	}
)

// newPlatform returns an instance of audit.Platform. Nothing the platform does modifies
// GitHub, so there is no read-write mode.
func newPlatform(ctx context.Context) (audit.Platform, cmd.MetricsReporterFunc, error) {
	zerolog.Ctx(ctx).Info().Msg("Running in READ-ONLY mode")
	return lazyPlatform()
}

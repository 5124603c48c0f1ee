package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/cmd"
	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/report"
)

var (
	debug   = false
	printer cmd.ResultPrinter

	// now is overridden in tests to get predictable report names
	now = time.Now
)

// runOptions holds the flags of the root command.
type runOptions struct {
	orgs         []string
	jsonFile     string
	concurrency  int
	skipArchived bool
	s3Bucket     string
	s3Prefix     string
}

// runSummary is printed once the report has been written.
type runSummary struct {
	audit.RunResult `yaml:",inline"`
	Paused          map[string][]string `json:"paused" yaml:"paused"`
	Report          string              `json:"report" yaml:"report"`
	Upload          string              `json:"upload,omitempty" yaml:"upload,omitempty"`
}

// NewRootCommand returns the root cobra.Command for paused-dependabot-repos.
func NewRootCommand(ctx context.Context) *cobra.Command {
	var format string
	var version bool
	var opts runOptions
	rootCmd := &cobra.Command{
		Use:   "paused-dependabot-repos [org...]",
		Short: "Finds repositories where Dependabot has been paused due to inactivity",
		Long: `Checks every repository in the specified GitHub organizations, or in all organizations
the token can access, and writes a JSON report of the repositories where Dependabot
security updates are paused. The token is read from the PAUSED_DEPENDABOT_REPOS_TOKEN
environment variable and must be a classic personal access token.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			// Don't print usage if the command produces an error as it's confusing. We
			// should only print usage if the CLI syntax is bad.
			c.SilenceUsage = true

			// Enable debug logging if requested
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			// Initialise the ResultPrinter
			p, err := cmd.NewResultPrinter(format, c.OutOrStdout())
			if err != nil {
				return err
			}
			printer = p

			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			if version {
				return printVersion(c.OutOrStdout())
			}

			if opts.concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
			}

			// Positional arguments are organizations too
			opts.orgs = append(opts.orgs, args...)

			return runAudit(ctx, &opts)
		},
	}

	rootCmd.Flags().StringSliceVarP(&opts.orgs, "orgs", "o", nil, "GitHub organizations to check (default all organizations the token can access)")
	rootCmd.Flags().StringVarP(&opts.jsonFile, "json", "j", "", "Report file to write (default paused_dependabot_repos_<timestamp>.json)")
	rootCmd.Flags().IntVar(&opts.concurrency, "concurrency", 1, "Number of organizations checked at the same time")
	rootCmd.Flags().BoolVar(&opts.skipArchived, "skip-archived", false, "Don't check archived repositories")
	rootCmd.Flags().StringVar(&opts.s3Bucket, "s3-bucket", "", "S3 bucket to upload the report to")
	rootCmd.Flags().StringVar(&opts.s3Prefix, "s3-prefix", "", "Prefix of the S3 key the report is uploaded to")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&format, "format", "yaml", "Output format (must be one of 'yaml', 'json', or 'quiet')")
	rootCmd.Flags().BoolVar(&version, "version", false, "Print version information")

	// We'll take care of logging errors
	rootCmd.SilenceErrors = true

	return rootCmd
}

// runAudit checks the organizations, writes the report and, when a bucket is given, uploads it.
func runAudit(ctx context.Context, opts *runOptions) error {
	log := zerolog.Ctx(ctx)

	plat, reportMetrics, err := newPlatform(ctx)
	if err != nil {
		return err
	}
	if reportMetrics != nil {
		defer reportMetrics(ctx)
	}

	paused, res, err := audit.Run(ctx, plat, audit.RunOptions{
		Orgs:        opts.orgs,
		Concurrency: opts.concurrency,
		ScanOptions: audit.ScanOptions{SkipArchived: opts.skipArchived},
	})
	if err != nil {
		return err
	}
	log.Info().Msgf("Found %d repos with paused Dependabot in %d orgs", paused.Len(), len(paused.Orgs()))

	filename := opts.jsonFile
	if filename == "" {
		filename = report.DefaultFilename(now())
	}

	entries := paused.Entries()
	if err := report.Write(entries, filename); err != nil {
		return err
	}
	log.Info().Msgf("Wrote results to %s", filename)

	summary := runSummary{RunResult: *res, Paused: entries, Report: filename}

	if opts.s3Bucket != "" {
		upload, err := uploadReport(ctx, plat.Config(), opts, filename)
		if err != nil {
			return err
		}
		summary.Upload = upload
	}

	return printer.Print(summary)
}

// uploadReport copies the report to S3 and returns its location.
func uploadReport(ctx context.Context, c *audit.Config, opts *runOptions, filename string) (string, error) {
	uploader, err := lazyUploader(c)
	if err != nil {
		return "", errors.Wrap(err, "could not create S3 client")
	}

	key := opts.s3Prefix + filepath.Base(filename)
	if err := uploader.PutFile(opts.s3Bucket, key, filename); err != nil {
		return "", err
	}

	location := fmt.Sprintf("s3://%s/%s", opts.s3Bucket, key)
	zerolog.Ctx(ctx).Info().Msgf("Uploaded results to %s", location)

	return location, nil
}

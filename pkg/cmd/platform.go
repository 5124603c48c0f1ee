package cmd

import (
	awssdk "github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/audit"
	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/github"
)

// platform provides the implementation of audit.Platform.
type platform struct {
	config        *audit.Config
	gitHubService audit.GitHubService
}

// NewPlatform returns a new audit.Platform along with the function that reports the metrics
// recorded by its GitHub clients.
func NewPlatform() (audit.Platform, MetricsReporterFunc, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	clientFactory, err := github.NewTokenClientFactory(config, metricsRegistry)
	if err != nil {
		return nil, nil, err
	}

	return &platform{
		config:        config,
		gitHubService: github.NewService(config, clientFactory, metricsRegistry),
	}, metricsReporter(metricsRegistry), nil
}

// Config implements audit.Platform.Config.
func (plat *platform) Config() *audit.Config {
	return plat.config
}

// GitHubService implements audit.Platform.GitHubService.
func (plat *platform) GitHubService() audit.GitHubService {
	return plat.gitHubService
}

// NewAWSSession creates a new AWS session.Session in the configured region.
func NewAWSSession(c *audit.Config) (*session.Session, error) {
	region := c.Region
	return session.NewSession(&awssdk.Config{Region: &region})
}

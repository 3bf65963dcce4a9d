// Package config loads settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by all commands. Command-line flags take precedence.
type Config struct {
	// Token - GitHub token used as bearer credential
	Token string `envconfig:"GITHUB_TOKEN"`

	// Endpoint - GraphQL endpoint, override for GitHub Enterprise
	Endpoint string `envconfig:"GHSTATS_ENDPOINT" default:"https://api.github.com/graphql"`

	// DatabaseURL - PostgreSQL DSN of the snapshot history
	DatabaseURL string `envconfig:"GHSTATS_DATABASE_URL"`

	// SnapshotTable - relation holding snapshot rows
	SnapshotTable string `envconfig:"GHSTATS_SNAPSHOT_TABLE" default:"github_stats"`

	// LogFile - destination of logs while the terminal UI is running
	LogFile string `envconfig:"GHSTATS_LOG_FILE" default:"ghstats.log"`

	// ReportConcurrency - parallel store reads when building a report
	ReportConcurrency int `envconfig:"GHSTATS_REPORT_CONCURRENCY" default:"4"`
}

// Load reads envFiles (missing files are skipped) and then the process environment.
// Variables already set in the environment are not overridden by the files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("couldn't parse config: %w", err)
	}
	return &conf, nil
}

// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/naka-gawa/ghstats/internal/gateway"
)

// Tracker is the use case behind the interactive view.
// It turns user input into fetches and hands back records ready for display.
type Tracker struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewTracker creates a new Tracker instance.
func NewTracker(fetcher gateway.Fetcher, logger *log.Logger) *Tracker {
	return &Tracker{
		fetcher: fetcher,
		logger:  logger,
	}
}

// AddRepo parses text as owner/name and fetches that repository.
// A malformed id is reported without touching the network.
func (t *Tracker) AddRepo(ctx context.Context, text string) (domain.Repo, error) {
	id, err := domain.ParseRepoID(text)
	if err != nil {
		return domain.Repo{}, err
	}
	repo, err := t.fetcher.FetchRepo(ctx, id)
	if err != nil {
		return domain.Repo{}, err
	}
	t.logger.Info("Repository added", "repo", id)
	return repo, nil
}

// FetchAll parses every id first and then fetches them as one batch.
func (t *Tracker) FetchAll(ctx context.Context, texts []string) ([]domain.Repo, error) {
	ids := make([]domain.RepoID, 0, len(texts))
	for _, text := range texts {
		id, err := domain.ParseRepoID(text)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	repos, err := t.fetcher.FetchRepos(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	return repos, nil
}

// LoadReleases fetches the releases of repo and returns them newest first.
func (t *Tracker) LoadReleases(ctx context.Context, repo domain.Repo) ([]domain.Release, error) {
	releases, err := t.fetcher.FetchReleases(ctx, repo)
	if err != nil {
		return nil, err
	}
	t.logger.Info("Releases loaded", "repo", repo.ID, "count", len(releases))
	return domain.ReverseReleases(releases), nil
}

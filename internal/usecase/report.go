package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/ghstats/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SnapshotSource provides historical snapshots of tracked repositories.
type SnapshotSource interface {
	ListNames(ctx context.Context) ([]string, error)
	ListSnapshots(ctx context.Context, name string) ([]domain.Snapshot, error)
}

// Summary condenses the snapshot history of one repository.
type Summary struct {
	Name                string    `json:"name"`
	Lang                string    `json:"lang"`
	Samples             int       `json:"samples"`
	FirstScrape         time.Time `json:"first_scrape"`
	LastScrape          time.Time `json:"last_scrape"`
	Watchers            int       `json:"watchers"`
	Stargazers          int       `json:"stargazers"`
	Forks               int       `json:"forks"`
	OpenIssues          int       `json:"open_issues"`
	Downloads           int       `json:"downloads"`
	StarsGained         int       `json:"stars_gained"`
	DownloadsGained     int       `json:"downloads_gained"`
	MeanStarsDiff       float64   `json:"mean_stars_diff"`
	MedianStarsDiff     float64   `json:"median_stars_diff"`
	MeanDownloadsDiff   float64   `json:"mean_downloads_diff"`
	MedianDownloadsDiff float64   `json:"median_downloads_diff"`
}

// Reporter builds summaries from a SnapshotSource.
type Reporter struct {
	source      SnapshotSource
	logger      *log.Logger
	concurrency int
}

// NewReporter creates a new Reporter. concurrency bounds the parallel store reads; values below 1 mean 1.
func NewReporter(source SnapshotSource, logger *log.Logger, concurrency int) *Reporter {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Reporter{
		source:      source,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Report summarizes the named repositories, or every tracked one when names is empty.
// The result is sorted by name.
func (r *Reporter) Report(ctx context.Context, names []string) ([]*Summary, error) {
	if len(names) == 0 {
		var err error
		names, err = r.source.ListNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tracked repositories: %w", err)
		}
	}
	r.logger.Debug("Building report", "repositories", len(names))

	summaries := make([]*Summary, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.concurrency)
	for i, name := range names {
		eg.Go(func() error {
			snapshots, err := r.source.ListSnapshots(egCtx, name)
			if err != nil {
				return fmt.Errorf("failed to load snapshots of %s: %w", name, err)
			}
			summary, err := Summarize(name, snapshots)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	r.logger.Debug("Report complete")
	return summaries, nil
}

// Summarize reduces the snapshots of one repository to a Summary.
// The latest snapshot by scrape time provides the absolute values.
func Summarize(name string, snapshots []domain.Snapshot) (*Summary, error) {
	summary := &Summary{Name: name, Samples: len(snapshots)}
	if len(snapshots) == 0 {
		return summary, nil
	}

	sorted := make([]domain.Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScrapeTS.Before(sorted[j].ScrapeTS)
	})

	starDiffs := make(stats.Float64Data, 0, len(sorted))
	downloadDiffs := make(stats.Float64Data, 0, len(sorted))
	for _, s := range sorted {
		starDiffs = append(starDiffs, float64(s.StargazersDiff))
		downloadDiffs = append(downloadDiffs, float64(s.DownloadsDiff))
	}

	last := sorted[len(sorted)-1]
	summary.Lang = last.Lang
	summary.FirstScrape = sorted[0].ScrapeTS
	summary.LastScrape = last.ScrapeTS
	summary.Watchers = last.Watchers
	summary.Stargazers = last.Stargazers
	summary.Forks = last.Forks
	summary.OpenIssues = last.OpenIssues
	summary.Downloads = last.Downloads

	starsGained, err := stats.Sum(starDiffs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum star diffs of %s: %w", name, err)
	}
	downloadsGained, err := stats.Sum(downloadDiffs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum download diffs of %s: %w", name, err)
	}
	summary.StarsGained = int(starsGained)
	summary.DownloadsGained = int(downloadsGained)

	if summary.MeanStarsDiff, err = starDiffs.Mean(); err != nil {
		return nil, err
	}
	if summary.MedianStarsDiff, err = starDiffs.Median(); err != nil {
		return nil, err
	}
	if summary.MeanDownloadsDiff, err = downloadDiffs.Mean(); err != nil {
		return nil, err
	}
	if summary.MedianDownloadsDiff, err = downloadDiffs.Median(); err != nil {
		return nil, err
	}
	return summary, nil
}

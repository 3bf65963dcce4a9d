package domain

import "time"

// Snapshot is a historical record of a repository's metrics at scrape time,
// together with the change since the previous scrape.
type Snapshot struct {
	Name                 string    `json:"name"`
	Lang                 string    `json:"lang"`
	ScrapeTS             time.Time `json:"scrape_ts"`
	Watchers             int       `json:"watchers"`
	WatchersDiff         int       `json:"watchers_diff"`
	Stargazers           int       `json:"stargazers"`
	StargazersDiff       int       `json:"stargazers_diff"`
	Forks                int       `json:"forks"`
	ForksDiff            int       `json:"forks_diff"`
	OpenIssues           int       `json:"open_issues"`
	OpenIssuesDiff       int       `json:"open_issues_diff"`
	OpenPullRequests     int       `json:"open_pull_requests"`
	OpenPullRequestsDiff int       `json:"open_pull_requests_diff"`
	Downloads            int       `json:"downloads"`
	DownloadsDiff        int       `json:"downloads_diff"`
}

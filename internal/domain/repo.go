// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRepoID is returned when a repository identifier is not of the form owner/name.
var ErrInvalidRepoID = errors.New("invalid format")

// RepoID identifies a repository by its owner and name.
type RepoID struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// NewRepoID creates a RepoID from its parts without validation.
func NewRepoID(owner, name string) RepoID {
	return RepoID{Owner: owner, Name: name}
}

// ParseRepoID parses text of the form "owner/name".
// Exactly one slash with a non-empty segment on each side is accepted.
func ParseRepoID(text string) (RepoID, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoID{}, fmt.Errorf("%w - expected: 'owner/name' - received: '%s'", ErrInvalidRepoID, text)
	}
	return RepoID{Owner: parts[0], Name: parts[1]}, nil
}

func (id RepoID) String() string {
	return id.Owner + "/" + id.Name
}

// Repo holds the summary counters of a single repository.
// A Repo is replaced, never modified, when it is fetched again.
type Repo struct {
	ID               RepoID  `json:"id"`
	Description      *string `json:"description"`
	Lang             string  `json:"lang"`
	Watchers         int     `json:"watchers"`
	Stargazers       int     `json:"stargazers"`
	Forks            int     `json:"forks"`
	OpenIssues       int     `json:"open_issues"`
	OpenPullRequests int     `json:"open_pull_requests"`
}

package usecase

import "github.com/naka-gawa/ghstats/internal/domain"

// State is what the interactive view displays.
// It is a value: the With methods return an updated copy and never modify the receiver.
type State struct {
	Repos    []domain.Repo
	Selected *domain.Repo
	Releases []domain.Release
}

// WithRepo returns a state with repo appended to the repository list.
func (s State) WithRepo(repo domain.Repo) State {
	repos := make([]domain.Repo, len(s.Repos), len(s.Repos)+1)
	copy(repos, s.Repos)
	s.Repos = append(repos, repo)
	return s
}

// WithReleases returns a state where repo is selected and releases replace the previous list.
func (s State) WithReleases(repo domain.Repo, releases []domain.Release) State {
	s.Selected = &repo
	s.Releases = releases
	return s
}

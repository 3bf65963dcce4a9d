package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/naka-gawa/ghstats/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockActions struct {
	mock.Mock
}

func (m *mockActions) AddRepo(ctx context.Context, text string) (domain.Repo, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.Repo), args.Error(1)
}

func (m *mockActions) LoadReleases(ctx context.Context, repo domain.Repo) ([]domain.Release, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Release), args.Error(1)
}

// mockFetcher lets a real usecase.Tracker run under the model.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepo(ctx context.Context, id domain.RepoID) (domain.Repo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Repo), args.Error(1)
}

func (m *mockFetcher) FetchRepos(ctx context.Context, ids []domain.RepoID) ([]domain.Repo, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repo), args.Error(1)
}

func (m *mockFetcher) FetchReleases(ctx context.Context, repo domain.Repo) ([]domain.Release, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Release), args.Error(1)
}

func newTestModel(actions Actions) Model {
	return New(context.Background(), actions, log.New(io.Discard))
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(Model), cmd
}

// run executes cmd and feeds the resulting message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestModel_InputFilter(t *testing.T) {
	m := newTestModel(new(mockActions))
	m = typeText(m, "rust lang!/ru$st")
	assert.Equal(t, "rustlang/rust", m.input.Value())

	m, _ = press(t, m, tea.KeyBackspace)
	assert.Equal(t, "rustlang/rus", m.input.Value())

	m, _ = press(t, m, tea.KeyLeft)
	m, _ = press(t, m, tea.KeyDelete)
	assert.Equal(t, "rustlang/ru", m.input.Value())

	m, _ = press(t, m, tea.KeyCtrlU)
	assert.Equal(t, "rustlang/ru", m.input.Value(), "editing shortcuts outside the allowed set are dropped")
}

func TestModel_AddRepo(t *testing.T) {
	actions := new(mockActions)
	rust := domain.Repo{ID: domain.NewRepoID("rust-lang", "rust"), Watchers: 5}
	actions.On("AddRepo", mock.Anything, "rust-lang/rust").Return(rust, nil)

	m := typeText(newTestModel(actions), "rust-lang/rust")
	m, cmd := press(t, m, tea.KeyEnter)
	assert.True(t, m.busy)

	// A second submit while busy is ignored.
	_, second := press(t, m, tea.KeyEnter)
	assert.Nil(t, second)

	m = run(t, m, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, []domain.Repo{rust}, m.State().Repos)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "rust-lang/rust")
	actions.AssertNumberOfCalls(t, "AddRepo", 1)
}

func TestModel_AddRepo_IgnoresTypingWhileBusy(t *testing.T) {
	actions := new(mockActions)
	rust := domain.Repo{ID: domain.NewRepoID("rust-lang", "rust")}
	actions.On("AddRepo", mock.Anything, "rust-lang/rust").Return(rust, nil)

	m := typeText(newTestModel(actions), "rust-lang/rust")
	m, cmd := press(t, m, tea.KeyEnter)
	require.True(t, m.busy)

	m = typeText(m, "x/y")
	m, _ = press(t, m, tea.KeyBackspace)
	assert.Equal(t, "rust-lang/rust", m.input.Value())

	m = run(t, m, cmd)
	assert.Empty(t, m.input.Value())
	m = typeText(m, "x/y")
	assert.Equal(t, "x/y", m.input.Value(), "typing resumes once the add completes")
}

func TestModel_AddRepo_FailureKeepsState(t *testing.T) {
	actions := new(mockActions)
	good := domain.Repo{ID: domain.NewRepoID("o", "good")}
	actions.On("AddRepo", mock.Anything, "o/good").Return(good, nil)
	actions.On("AddRepo", mock.Anything, "o/missing").Return(domain.Repo{}, errors.New("'repository' missing in response"))

	m := typeText(newTestModel(actions), "o/good")
	m, cmd := press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)

	m = typeText(m, "o/missing")
	m, cmd = press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)

	assert.Equal(t, []domain.Repo{good}, m.State().Repos)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "'repository' missing in response")
	assert.Equal(t, "o/missing", m.input.Value(), "input is kept for correction")
}

func TestModel_SelectRepo(t *testing.T) {
	actions := new(mockActions)
	a := domain.Repo{ID: domain.NewRepoID("o", "a")}
	b := domain.Repo{ID: domain.NewRepoID("o", "b")}
	actions.On("AddRepo", mock.Anything, "o/a").Return(a, nil)
	actions.On("AddRepo", mock.Anything, "o/b").Return(b, nil)
	newestFirst := []domain.Release{{TagName: "v3"}, {TagName: "v2"}, {TagName: "v1"}}
	actions.On("LoadReleases", mock.Anything, b).Return(newestFirst, nil)

	m := newTestModel(actions)
	for _, text := range []string{"o/a", "o/b"} {
		var cmd tea.Cmd
		m = typeText(m, text)
		m, cmd = press(t, m, tea.KeyEnter)
		m = run(t, m, cmd)
	}
	assert.Contains(t, m.View(), "No releases")

	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyDown)
	m, cmd := press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)

	state := m.State()
	require.NotNil(t, state.Selected)
	assert.Equal(t, b, *state.Selected)
	assert.Equal(t, newestFirst, state.Releases)
	assert.Contains(t, m.View(), "Releases for repo 'o/b'")
}

func TestModel_WithTracker_ReleasesNewestFirst(t *testing.T) {
	fetcher := new(mockFetcher)
	id := domain.NewRepoID("o", "a")
	repo := domain.Repo{ID: id, Stargazers: 3}
	fetcher.On("FetchRepo", mock.Anything, id).Return(repo, nil)
	apiOrder := []domain.Release{{TagName: "v1"}, {TagName: "v2"}, {TagName: "v3"}}
	fetcher.On("FetchReleases", mock.Anything, repo).Return(apiOrder, nil)

	m := newTestModel(usecase.NewTracker(fetcher, log.New(io.Discard)))
	m = typeText(m, "o/a")
	m, cmd := press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)
	m, _ = press(t, m, tea.KeyTab)
	m, cmd = press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)

	tags := make([]string, 0, 3)
	for _, r := range m.State().Releases {
		tags = append(tags, r.TagName)
	}
	assert.Equal(t, []string{"v3", "v2", "v1"}, tags)
	assert.Equal(t, []string{"v1", "v2", "v3"}, []string{apiOrder[0].TagName, apiOrder[1].TagName, apiOrder[2].TagName}, "fetched slice is left untouched")

	view := m.View()
	require.Contains(t, view, "v3")
	require.Contains(t, view, "v1")
	assert.Less(t, strings.Index(view, "v3"), strings.Index(view, "v1"))
	fetcher.AssertExpectations(t)
}

func TestModel_SelectRepo_Empty(t *testing.T) {
	m := newTestModel(new(mockActions))
	m, _ = press(t, m, tea.KeyTab)
	_, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
}

func TestModel_SelectRepo_FailureKeepsReleases(t *testing.T) {
	actions := new(mockActions)
	a := domain.Repo{ID: domain.NewRepoID("o", "a")}
	actions.On("AddRepo", mock.Anything, "o/a").Return(a, nil)
	actions.On("LoadReleases", mock.Anything, a).Return([]domain.Release{{TagName: "v1"}}, nil).Once()
	actions.On("LoadReleases", mock.Anything, a).Return(nil, errors.New("post failed")).Once()

	m := typeText(newTestModel(actions), "o/a")
	m, cmd := press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)
	m, _ = press(t, m, tea.KeyTab)

	m, cmd = press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)
	m, cmd = press(t, m, tea.KeyEnter)
	m = run(t, m, cmd)

	assert.Equal(t, []domain.Release{{TagName: "v1"}}, m.State().Releases)
	assert.True(t, m.statusErr)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(new(mockActions))
	_, cmd := press(t, m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

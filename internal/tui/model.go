// Package tui implements the interactive two-pane view: tracked repositories
// on the left, releases of the selected repository on the right.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/naka-gawa/ghstats/internal/usecase"
)

// Actions are the operations the view triggers. *usecase.Tracker implements it.
type Actions interface {
	AddRepo(ctx context.Context, text string) (domain.Repo, error)
	LoadReleases(ctx context.Context, repo domain.Repo) ([]domain.Release, error)
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type (
	repoAddedMsg struct {
		repo domain.Repo
	}
	releasesLoadedMsg struct {
		repo     domain.Repo
		releases []domain.Release
	}
	failedMsg struct {
		err error
	}
)

// Model is the bubbletea model of the application.
type Model struct {
	ctx     context.Context
	actions Actions
	logger  *log.Logger

	state  usecase.State
	input  textinput.Model
	focus  focusArea
	cursor int

	// busy is set while an operation is pending; further requests are ignored until it completes.
	busy      bool
	status    string
	statusErr bool

	width int
}

// New creates the model. Operations run with ctx.
func New(ctx context.Context, actions Actions, logger *log.Logger) Model {
	input := textinput.New()
	input.Placeholder = "owner/repo"
	input.Prompt = "› "
	input.CharLimit = 140
	input.Focus()

	return Model{
		ctx:     ctx,
		actions: actions,
		logger:  logger,
		input:   input,
		focus:   focusInput,
	}
}

// State returns the data currently displayed.
func (m Model) State() usecase.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case repoAddedMsg:
		m.busy = false
		m.state = m.state.WithRepo(msg.repo)
		m.input.Reset()
		m.setStatus(fmt.Sprintf("Added %s", msg.repo.ID), false)
		return m, nil

	case releasesLoadedMsg:
		m.busy = false
		m.state = m.state.WithReleases(msg.repo, msg.releases)
		m.setStatus(fmt.Sprintf("Loaded %d releases of %s", len(msg.releases), msg.repo.ID), false)
		return m, nil

	case failedMsg:
		m.busy = false
		m.logger.Error("Operation failed", "err", msg.err)
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab:
		return m.toggleFocus(), nil
	}

	if m.focus == focusInput {
		if msg.Type == tea.KeyEnter {
			return m.submitInput()
		}
		if m.busy || !acceptInputKey(msg) {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Repos)-1 {
			m.cursor++
		}
	case "enter":
		return m.selectRepo()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	text := m.input.Value()
	m.busy = true
	m.setStatus(fmt.Sprintf("Fetching %s...", text), false)
	ctx, actions := m.ctx, m.actions
	return m, func() tea.Msg {
		repo, err := actions.AddRepo(ctx, text)
		if err != nil {
			return failedMsg{err: err}
		}
		return repoAddedMsg{repo: repo}
	}
}

func (m Model) selectRepo() (tea.Model, tea.Cmd) {
	if m.busy || len(m.state.Repos) == 0 {
		return m, nil
	}
	repo := m.state.Repos[m.cursor]
	m.busy = true
	m.setStatus(fmt.Sprintf("Fetching releases of %s...", repo.ID), false)
	ctx, actions := m.ctx, m.actions
	return m, func() tea.Msg {
		releases, err := actions.LoadReleases(ctx, repo)
		if err != nil {
			return failedMsg{err: err}
		}
		return releasesLoadedMsg{repo: repo, releases: releases}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

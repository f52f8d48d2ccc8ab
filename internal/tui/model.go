package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"habit_tracker/internal/calendar"
	"habit_tracker/internal/logger"
	"habit_tracker/internal/models"
	"habit_tracker/internal/tracker"
)

const requestTimeout = 10 * time.Second

type Model struct {
	gw      tracker.Gateway
	toggler *tracker.Toggler
	log     *logger.Logger

	state    tracker.State
	keys     KeyMap
	help     help.Model
	loading  bool
	notice   string
	quitting bool
	width    int
	height   int
}

func NewModel(gw tracker.Gateway, toggler *tracker.Toggler, today calendar.Date, log *logger.Logger) Model {
	return Model{
		gw:      gw,
		toggler: toggler,
		log:     log,
		state:   tracker.NewState(today),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		loading: true,
	}
}

// State exposes the current tracker state.
func (m Model) State() tracker.State { return m.state }

type habitsLoadedMsg struct{ habits []models.Habit }

type indexLoadedMsg struct {
	index    *tracker.Index
	failures map[int]error
}

type loadFailedMsg struct{ err error }

type toggleDoneMsg struct{ result tracker.ToggleResult }

type toggleFailedMsg struct {
	habitID int
	date    string
	err     error
}

func (m Model) Init() tea.Cmd {
	return m.loadHabits()
}

func (m Model) loadHabits() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		habits, err := gw.ListHabits(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return habitsLoadedMsg{habits: habits}
	}
}

func (m Model) loadIndex(habits []models.Habit) tea.Cmd {
	gw, log := m.gw, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		idx, failures := tracker.LoadIndex(ctx, gw, habits, log)
		return indexLoadedMsg{index: idx, failures: failures}
	}
}

// toggle reads a snapshot of the index; Reduce never mutates a published index.
func (m Model) toggle(habitID int, date string) tea.Cmd {
	toggler, idx := m.toggler, m.state.Index
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := toggler.Toggle(ctx, idx, habitID, date)
		if err != nil {
			return toggleFailedMsg{habitID: habitID, date: date, err: err}
		}
		return toggleDoneMsg{result: res}
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"habit_tracker/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case habitsLoadedMsg:
		m.state = tracker.Reduce(m.state, tracker.HabitsLoaded{Habits: msg.habits})
		if m.state.Selected == tracker.AllHabits && len(msg.habits) > 0 {
			m.state = tracker.Reduce(m.state, tracker.HabitSelected{HabitID: msg.habits[0].ID})
		}
		return m, m.loadIndex(msg.habits)

	case indexLoadedMsg:
		m.loading = false
		m.state = tracker.Reduce(m.state, tracker.IndexLoaded{Index: msg.index, Failures: msg.failures})
		if n := len(msg.failures); n > 0 {
			m.notice = pluralize(n, "habit") + " could not be loaded"
		}

	case loadFailedMsg:
		m.loading = false
		m.state = tracker.Reduce(m.state, tracker.LoadFailed{Err: msg.err})
		if m.log != nil {
			m.log.Errorw("habit_list_failed", "error", msg.err)
		}

	case toggleDoneMsg:
		r := msg.result
		m.state = tracker.Reduce(m.state, tracker.CompletionsRefreshed{
			HabitID:   r.HabitID,
			Date:      r.Date,
			Completed: r.Completed,
			Refetched: r.Refetched,
			Dates:     r.Dates,
		})

	case toggleFailedMsg:
		m.state = tracker.Reduce(m.state, tracker.ToggleFailed{HabitID: msg.habitID, Date: msg.date, Err: msg.err})
		if m.log != nil {
			m.log.Warnw("toggle_failed", "habit_id", msg.habitID, "date", msg.date, "error", msg.err)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.state = tracker.Reduce(m.state, tracker.CursorMoved{Days: -1})
	case key.Matches(msg, m.keys.Right):
		m.state = tracker.Reduce(m.state, tracker.CursorMoved{Days: 1})
	case key.Matches(msg, m.keys.Up):
		m.state = tracker.Reduce(m.state, tracker.CursorMoved{Days: -7})
	case key.Matches(msg, m.keys.Down):
		m.state = tracker.Reduce(m.state, tracker.CursorMoved{Days: 7})
	case key.Matches(msg, m.keys.PrevMonth):
		m.state = tracker.Reduce(m.state, tracker.MonthShifted{Delta: -1})
	case key.Matches(msg, m.keys.NextMonth):
		m.state = tracker.Reduce(m.state, tracker.MonthShifted{Delta: 1})
	case key.Matches(msg, m.keys.Today):
		m.state = m.jumpToToday()
	case key.Matches(msg, m.keys.NextHabit):
		m.state = tracker.Reduce(m.state, tracker.HabitSelected{HabitID: m.cycleHabit(1)})
	case key.Matches(msg, m.keys.PrevHabit):
		m.state = tracker.Reduce(m.state, tracker.HabitSelected{HabitID: m.cycleHabit(-1)})
	case key.Matches(msg, m.keys.AllHabits):
		m.state = tracker.Reduce(m.state, tracker.HabitSelected{HabitID: tracker.AllHabits})
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadHabits()
	case key.Matches(msg, m.keys.Toggle):
		return m.startToggle()
	}
	return m, nil
}

func (m Model) startToggle() (tea.Model, tea.Cmd) {
	habitID := m.state.Selected
	if habitID == tracker.AllHabits {
		m.notice = "select a habit to toggle days"
		return m, nil
	}
	date := m.state.Cursor.String()
	if m.state.IsPending(habitID, date) {
		return m, nil
	}
	cmd := m.toggle(habitID, date)
	m.state = tracker.Reduce(m.state, tracker.ToggleStarted{HabitID: habitID, Date: date})
	return m, cmd
}

func (m Model) jumpToToday() tracker.State {
	s := m.state
	// shift month-wise first, then walk the cursor inside the month
	for s.Month.Before(s.Today.FirstOfMonth()) {
		s = tracker.Reduce(s, tracker.MonthShifted{Delta: 1})
	}
	for s.Today.FirstOfMonth().Before(s.Month) {
		s = tracker.Reduce(s, tracker.MonthShifted{Delta: -1})
	}
	for s.Cursor.Before(s.Today) {
		s = tracker.Reduce(s, tracker.CursorMoved{Days: 1})
	}
	for s.Today.Before(s.Cursor) {
		s = tracker.Reduce(s, tracker.CursorMoved{Days: -1})
	}
	return s
}

// cycleHabit returns the id step positions away from the selection,
// passing through the all-habits view.
func (m Model) cycleHabit(step int) int {
	ids := []int{tracker.AllHabits}
	for _, h := range m.state.Habits {
		ids = append(ids, h.ID)
	}
	pos := 0
	for i, id := range ids {
		if id == m.state.Selected {
			pos = i
		}
	}
	return ids[((pos+step)%len(ids)+len(ids))%len(ids)]
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habit_tracker/internal/calendar"
	"habit_tracker/internal/models"
	"habit_tracker/internal/tracker"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		"",
		m.viewMonth(),
		m.viewStatus(),
		m.help.View(m.keys),
	)
	return docStyle.Render(ui)
}

func (m Model) viewTabs() string {
	s := m.state
	tabs := []string{tabStyle(s.Selected == tracker.AllHabits).Render("All")}
	for _, h := range s.Habits {
		style := tabStyle(s.Selected == h.ID)
		if s.Selected == h.ID {
			style = style.Background(habitColor(h)).Foreground(lipgloss.Color("231"))
		}
		label := h.Name
		if _, failed := s.Failures[h.ID]; failed {
			label += " !"
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func tabStyle(active bool) lipgloss.Style {
	if active {
		return activeTabStyle
	}
	return inactiveTabStyle
}

func (m Model) viewMonth() string {
	s := m.state
	title := titleStyle.Render(fmt.Sprintf("%s %d", s.Month.Month, s.Month.Year))

	header := make([]string, 0, calendar.DaysPerWeek)
	for _, wd := range calendar.Weekdays {
		header = append(header, headerStyle.Render(wd))
	}

	rows := []string{title, lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range s.Grid.Rows() {
		cells := make([]string, 0, calendar.DaysPerWeek)
		for _, c := range week {
			cells = append(cells, m.viewCell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewCell(c calendar.Cell) string {
	s := m.state
	date := c.Date.String()
	label := fmt.Sprintf("%2d", c.Date.Day)

	style := cellStyle
	if !c.InMonth {
		style = outsideStyle
	}
	if c.InMonth && s.Completed(date) {
		style = style.Background(m.markColor(date)).Foreground(lipgloss.Color("231"))
	}
	if c.Date.Equal(s.Today) {
		style = style.Bold(true).Underline(true)
	}
	if c.Date.Equal(s.Cursor) {
		style = style.Reverse(true)
	}
	if s.Selected != tracker.AllHabits && s.IsPending(s.Selected, date) {
		label += "…"
	}
	return style.Render(label)
}

// markColor is the selected habit's color, or in the all-habits view the
// color of the first habit completed that day.
func (m Model) markColor(date string) lipgloss.Color {
	if h, ok := m.state.SelectedHabit(); ok {
		return habitColor(h)
	}
	ids := m.state.Index.HabitsOn(date)
	for _, h := range m.state.Habits {
		if len(ids) > 0 && h.ID == ids[0] {
			return habitColor(h)
		}
	}
	return habitColor(models.Habit{})
}

func (m Model) viewStatus() string {
	s := m.state
	var lines []string
	switch {
	case m.loading:
		lines = append(lines, noticeStyle.Render("loading…"))
	case len(s.Habits) == 0:
		lines = append(lines, noticeStyle.Render("no habits yet: add one with `habitcal habits add`"))
	}
	if s.Selected == tracker.AllHabits {
		if ids := s.Index.HabitsOn(s.Cursor.String()); len(ids) > 0 {
			lines = append(lines, noticeStyle.Render(fmt.Sprintf("%s: %s done", s.Cursor, pluralize(len(ids), "habit"))))
		}
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	if s.Err != nil {
		lines = append(lines, errorStyle.Render("error: "+s.Err.Error()))
	}
	return "\n" + strings.Join(lines, "\n")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

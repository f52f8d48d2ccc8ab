package tui

import (
	"github.com/charmbracelet/lipgloss"

	"habit_tracker/internal/models"
)

const cellWidth = 5

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("245"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center)

	outsideStyle = cellStyle.
			Foreground(lipgloss.Color("238"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Margin(1, 2)
)

// habitColor is the habit's own #rrggbb color, or the server default.
func habitColor(h models.Habit) lipgloss.Color {
	if h.Color == "" {
		return lipgloss.Color(models.DefaultHabitColor)
	}
	return lipgloss.Color(h.Color)
}

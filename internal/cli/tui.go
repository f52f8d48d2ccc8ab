package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"habit_tracker/internal/tracker"
	"habit_tracker/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.requireLogin(); err != nil {
		return err
	}

	toggler := tracker.NewToggler(ctx.Client, ctx.Strategy, ctx.Log)
	p := tea.NewProgram(tui.NewModel(ctx.Client, toggler, ctx.today(), ctx.Log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"habit_tracker/internal/tracker"
)

type ToggleCmd struct {
	Habit int    `arg:"" help:"Habit id."`
	Date  string `arg:"" optional:"" default:"today" help:"Day to toggle (YYYY-MM-DD or 'today')."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	if err := ctx.requireLogin(); err != nil {
		return err
	}
	day, err := parseDay(c.Date, ctx.today())
	if err != nil {
		return err
	}
	date := day.String()

	bg := context.Background()
	dates, err := ctx.Client.ListCompletions(bg, c.Habit, "", "")
	if err != nil {
		return fmt.Errorf("load completions: %w", err)
	}
	idx := tracker.NewIndex()
	idx.Replace(c.Habit, dates)

	res, err := tracker.NewToggler(ctx.Client, ctx.Strategy, ctx.Log).Toggle(bg, idx, c.Habit, date)
	if err != nil {
		return err
	}
	if res.Completed {
		ctx.printf("Habit %d done on %s\n", c.Habit, date)
	} else {
		ctx.printf("Habit %d cleared on %s\n", c.Habit, date)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"habit_tracker/internal/client"
)

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.requireLogin(); err != nil {
		return err
	}
	habits, err := ctx.Client.ListHabits(context.Background())
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}
	if len(habits) == 0 {
		ctx.printf("No habits found\n")
		return nil
	}

	ctx.printf("Habits:\n")
	for _, h := range habits {
		ctx.printf("  [%d] %s %s", h.ID, h.Name, h.Color)
		if h.Frequency != nil && *h.Frequency != "" {
			ctx.printf(" (%s)", *h.Frequency)
		}
		ctx.printf("\n")
		if h.Description != nil && *h.Description != "" {
			ctx.printf("      %s\n", *h.Description)
		}
	}
	return nil
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Color       string `help:"Color as #rrggbb." default:""`
	Description string `help:"Free-text description."`
	Frequency   string `help:"Free-text frequency label, e.g. daily."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.requireLogin(); err != nil {
		return err
	}
	in := client.CreateHabitInput{Name: c.Name, Color: c.Color}
	if c.Description != "" {
		in.Description = &c.Description
	}
	if c.Frequency != "" {
		in.Frequency = &c.Frequency
	}

	h, err := ctx.Client.CreateHabit(context.Background(), in)
	if err != nil {
		return fmt.Errorf("add habit: %w", err)
	}
	ctx.printf("Added habit [%d] %s %s\n", h.ID, h.Name, h.Color)
	return nil
}

type HabitColorCmd struct {
	ID    int    `arg:"" help:"Habit id."`
	Color string `arg:"" help:"New color as #rrggbb."`
}

func (c *HabitColorCmd) Run(ctx *Context) error {
	if err := ctx.requireLogin(); err != nil {
		return err
	}
	if err := ctx.Client.UpdateHabitColor(context.Background(), c.ID, c.Color); err != nil {
		return fmt.Errorf("set color: %w", err)
	}
	ctx.printf("Habit %d is now %s\n", c.ID, c.Color)
	return nil
}

type HabitDeleteCmd struct {
	ID int `arg:"" help:"Habit id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.requireLogin(); err != nil {
		return err
	}
	if err := ctx.Client.DeleteHabit(context.Background(), c.ID); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	ctx.printf("Deleted habit %d\n", c.ID)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"habit_tracker/internal/calendar"
	"habit_tracker/internal/models"
	"habit_tracker/internal/tracker"
)

// MonthCmd prints a month grid. With no habit id every habit is overlaid.
type MonthCmd struct {
	Habit int    `arg:"" optional:"" help:"Habit id (all habits when omitted)."`
	Month string `short:"m" help:"Month as YYYY-MM (defaults to the current month)."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	if err := ctx.requireLogin(); err != nil {
		return err
	}
	today := ctx.today()
	month, err := parseMonth(c.Month, today)
	if err != nil {
		return err
	}

	bg := context.Background()
	habits, err := ctx.Client.ListHabits(bg)
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}
	if c.Habit != 0 {
		h, ok := findHabit(habits, c.Habit)
		if !ok {
			return fmt.Errorf("habit %d not found", c.Habit)
		}
		habits = []models.Habit{h}
	}

	idx, failures := tracker.LoadIndex(bg, ctx.Client, habits, ctx.Log)
	for id, ferr := range failures {
		ctx.printf("warning: habit %d: %v\n", id, ferr)
	}

	renderMonth(ctx.Out, calendar.Grid(month), today, func(date string) int {
		return len(idx.HabitsOn(date))
	})
	return nil
}

func findHabit(habits []models.Habit, id int) (models.Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// renderMonth writes a plain-text month view. A day with completions shows
// '*' (one habit) or the number of habits; today is bracketed.
func renderMonth(w io.Writer, m calendar.Month, today calendar.Date, done func(date string) int) {
	var ref calendar.Date
	for _, c := range m {
		if c.InMonth {
			ref = c.Date
			break
		}
	}
	fmt.Fprintf(w, "%s %d\n", ref.Month, ref.Year)

	var b strings.Builder
	for _, wd := range calendar.Weekdays {
		fmt.Fprintf(&b, " %-4s", wd[:2])
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))

	for _, week := range m.Rows() {
		b.Reset()
		for _, c := range week {
			if !c.InMonth {
				b.WriteString("  .  ")
				continue
			}
			mark := " "
			if n := done(c.Date.String()); n == 1 {
				mark = "*"
			} else if n > 1 {
				mark = fmt.Sprintf("%d", n%10)
			}
			if c.Date == today {
				fmt.Fprintf(&b, "[%2d]%s", c.Date.Day, mark)
			} else {
				fmt.Fprintf(&b, " %2d %s", c.Date.Day, mark)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

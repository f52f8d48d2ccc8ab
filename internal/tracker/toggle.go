package tracker

import (
	"context"
	"fmt"

	"habit_tracker/internal/calendar"
	"habit_tracker/internal/logger"
)

// Strategy decides how a toggle converges with the server.
type Strategy int

const (
	// Refetch re-lists the habit's completions after the mutation.
	Refetch Strategy = iota
	// Optimistic flips the local set once the mutation succeeded.
	Optimistic
)

func (s Strategy) String() string {
	switch s {
	case Refetch:
		return "refetch"
	case Optimistic:
		return "optimistic"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "refetch" or "optimistic"; empty means Refetch.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "refetch":
		return Refetch, nil
	case "optimistic":
		return Optimistic, nil
	}
	return Refetch, fmt.Errorf("unknown toggle strategy %q", s)
}

// ToggleResult is the outcome of one toggle.
type ToggleResult struct {
	HabitID int
	Date    string
	// Completed is the state the toggle put the day in.
	Completed bool
	// Refetched is set when Dates was listed from the server after the
	// mutation. Otherwise Dates is the starting index plus this one flip
	// and must not replace a set other toggles may have changed since.
	Refetched bool
	Dates     []string
}

type Toggler struct {
	gw       Gateway
	strategy Strategy
	log      *logger.Logger
}

func NewToggler(gw Gateway, strategy Strategy, log *logger.Logger) *Toggler {
	return &Toggler{gw: gw, strategy: strategy, log: log}
}

// Toggle flips (habitID, date) on the server based on what idx currently holds.
// idx is only read. On error nothing should be applied locally.
func (t *Toggler) Toggle(ctx context.Context, idx *Index, habitID int, date string) (ToggleResult, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return ToggleResult{}, err
	}

	present := idx.Has(habitID, date)
	var err error
	if present {
		err = t.gw.RemoveCompletion(ctx, habitID, date)
	} else {
		err = t.gw.AddCompletion(ctx, habitID, date)
	}
	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggle habit %d on %s: %w", habitID, date, err)
	}

	local := idx.Clone()
	if present {
		local.Remove(habitID, date)
	} else {
		local.Add(habitID, date)
	}

	refetched := false
	if t.strategy == Refetch {
		dates, err := t.gw.ListCompletions(ctx, habitID, "", "")
		if err == nil {
			local.Replace(habitID, dates)
			refetched = true
		} else if t.log != nil {
			// the mutation went through; keep the flipped set
			t.log.Warnw("completion_refetch_failed", "habit_id", habitID, "date", date, "error", err)
		}
	}

	return ToggleResult{
		HabitID:   habitID,
		Date:      date,
		Completed: !present,
		Refetched: refetched,
		Dates:     local.Dates(habitID),
	}, nil
}

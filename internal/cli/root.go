package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"habit_tracker/internal/calendar"
	"habit_tracker/internal/client"
	"habit_tracker/internal/logger"
	"habit_tracker/internal/tracker"
)

// Context is handed to every command's Run.
type Context struct {
	Client   *client.Client
	Log      *logger.Logger
	Out      io.Writer
	Tokens   TokenStore
	Strategy tracker.Strategy
	// Now is overridable in tests.
	Now func() time.Time
}

func (c *Context) today() calendar.Date {
	if c.Now != nil {
		return calendar.FromTime(c.Now())
	}
	return calendar.Today()
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// requireLogin fails early with a readable message when no token is held.
func (c *Context) requireLogin() error {
	if c.Client.Token() == "" {
		return client.ErrNoToken
	}
	return nil
}

// parseDay accepts YYYY-MM-DD or "today".
func parseDay(s string, today calendar.Date) (calendar.Date, error) {
	if s == "" || strings.EqualFold(s, "today") {
		return today, nil
	}
	return calendar.ParseDate(s)
}

// parseMonth accepts YYYY-MM, YYYY-MM-DD or "" for the current month.
func parseMonth(s string, today calendar.Date) (calendar.Date, error) {
	if s == "" {
		return today.FirstOfMonth(), nil
	}
	if len(s) == len("2006-01") {
		s += "-01"
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid month, use YYYY-MM: %w", err)
	}
	return d.FirstOfMonth(), nil
}

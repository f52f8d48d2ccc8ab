package tracker

import (
	"context"

	"habit_tracker/internal/models"
)

// Gateway is the slice of the REST API the tracker needs.
// *client.Client satisfies it.
type Gateway interface {
	ListHabits(ctx context.Context) ([]models.Habit, error)
	ListCompletions(ctx context.Context, habitID int, from, to string) ([]string, error)
	AddCompletion(ctx context.Context, habitID int, date string) error
	RemoveCompletion(ctx context.Context, habitID int, date string) error
}

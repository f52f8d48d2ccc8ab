package repository

import (
	"context"
	"database/sql"
	"time"

	"habit_tracker/internal/logger"
	"habit_tracker/internal/models"

	"github.com/redis/go-redis/v9"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// HabitRepo stores habits. Every lookup and mutation filters on the owner.
type HabitRepo interface {
	List(ctx context.Context, userID int) ([]models.Habit, error)
	Get(ctx context.Context, userID, habitID int) (*models.Habit, error)
	Insert(ctx context.Context, h models.Habit) (int, error)
	Update(ctx context.Context, h models.Habit) (bool, error)
	UpdateColor(ctx context.Context, userID, habitID int, color string) (bool, error)
	Delete(ctx context.Context, userID, habitID int) (bool, error)
}

// CompletionRepo stores per-day completions, unique per (habit, date).
type CompletionRepo interface {
	List(ctx context.Context, habitID int, r DateRange) ([]string, error)
	Exists(ctx context.Context, habitID int, date string) (bool, error)
	Add(ctx context.Context, c models.Completion) (bool, error)
	Remove(ctx context.Context, habitID int, date string) (bool, error)
	DeleteByHabit(ctx context.Context, habitID int) error
}

// DateRange bounds a completion listing; empty ends are open.
type DateRange struct {
	From string // inclusive YYYY-MM-DD
	To   string // inclusive YYYY-MM-DD
}

// IsZero reports whether the range is unbounded on both ends.
func (r DateRange) IsZero() bool { return r.From == "" && r.To == "" }

type Repository struct {
	Auth        Authorization
	Habits      HabitRepo
	Completions CompletionRepo
}

// Options tune NewRepository. A nil Redis client disables the completion cache.
type Options struct {
	Dialect  Dialect
	Redis    *redis.Client
	CacheTTL time.Duration
	Log      *logger.Logger
}

func NewRepository(db *sql.DB, opts Options) *Repository {
	var completions CompletionRepo = NewCompletionRepository(db, opts.Dialect)
	if opts.Redis != nil {
		completions = NewCompletionCache(completions, opts.Redis, opts.CacheTTL, opts.Log)
	}
	return &Repository{
		Auth:        NewUserRepository(db, opts.Dialect),
		Habits:      NewHabitRepository(db, opts.Dialect),
		Completions: completions,
	}
}

package service

import (
	"context"

	"habit_tracker/internal/logger"
	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (models.Principal, error)
}

// Habits is the owner-scoped habit CRUD. Foreign or missing habits are ErrNotFound.
type Habits interface {
	ListHabits(ctx context.Context, userID int) ([]models.Habit, error)
	GetHabit(ctx context.Context, userID, habitID int) (models.Habit, error)
	CreateHabit(ctx context.Context, userID int, p CreateHabitParams) (models.Habit, error)
	UpdateHabit(ctx context.Context, userID, habitID int, p UpdateHabitParams) (models.Habit, error)
	UpdateHabitColor(ctx context.Context, userID, habitID int, color string) error
	DeleteHabit(ctx context.Context, userID, habitID int) error
}

// Completions manages per-day marks of a habit. Add and Remove are idempotent.
type Completions interface {
	ListCompletions(ctx context.Context, userID, habitID int, f LogFilter) ([]string, error)
	AddCompletion(ctx context.Context, userID, habitID int, date string) (bool, error)
	RemoveCompletion(ctx context.Context, userID, habitID int, date string) (bool, error)
	ToggleCompletion(ctx context.Context, userID, habitID int, date string) (bool, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Habits
	Completions
}

func NewService(repos *repository.Repository, auth AuthOptions, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, auth),
		Habits:        NewHabitService(repos.Habits, repos.Completions, log),
		Completions:   NewCompletionService(repos.Habits, repos.Completions),
	}
}

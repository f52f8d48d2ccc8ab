package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"habit_tracker/internal/logger"
	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type HabitService struct {
	habits      repository.HabitRepo
	completions repository.CompletionRepo
	log         *logger.Logger
}

func NewHabitService(habits repository.HabitRepo, completions repository.CompletionRepo, log *logger.Logger) *HabitService {
	return &HabitService{habits: habits, completions: completions, log: log}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	return name, nil
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: color must look like #rrggbb", ErrValidation)
	}
	return nil
}

func (s *HabitService) ListHabits(ctx context.Context, userID int) ([]models.Habit, error) {
	return s.habits.List(ctx, userID)
}

func (s *HabitService) GetHabit(ctx context.Context, userID, habitID int) (models.Habit, error) {
	return ownedHabit(ctx, s.habits, userID, habitID)
}

// CreateHabit stores a habit for userID, defaulting the color.
func (s *HabitService) CreateHabit(ctx context.Context, userID int, p CreateHabitParams) (models.Habit, error) {
	name, err := validateName(p.Name)
	if err != nil {
		return models.Habit{}, err
	}
	color := p.Color
	if color == "" {
		color = models.DefaultHabitColor
	}
	if err := validateColor(color); err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		UserID:      userID,
		Name:        name,
		Color:       color,
		Description: p.Description,
		Frequency:   p.Frequency,
	}
	id, err := s.habits.Insert(ctx, h)
	if err != nil {
		return models.Habit{}, err
	}
	h.ID = id
	return h, nil
}

// UpdateHabit applies the non-nil fields of p.
func (s *HabitService) UpdateHabit(ctx context.Context, userID, habitID int, p UpdateHabitParams) (models.Habit, error) {
	h, err := ownedHabit(ctx, s.habits, userID, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	if p.Name != nil {
		if h.Name, err = validateName(*p.Name); err != nil {
			return models.Habit{}, err
		}
	}
	if p.Color != nil {
		if err := validateColor(*p.Color); err != nil {
			return models.Habit{}, err
		}
		h.Color = *p.Color
	}
	if p.Description != nil {
		h.Description = p.Description
	}
	if p.Frequency != nil {
		h.Frequency = p.Frequency
	}

	ok, err := s.habits.Update(ctx, h)
	if err != nil {
		return models.Habit{}, err
	}
	if !ok {
		return models.Habit{}, ErrNotFound
	}
	return h, nil
}

func (s *HabitService) UpdateHabitColor(ctx context.Context, userID, habitID int, color string) error {
	if err := validateColor(color); err != nil {
		return err
	}
	ok, err := s.habits.UpdateColor(ctx, userID, habitID, color)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteHabit removes the habit's completions, then the habit.
// The two statements are not atomic; a failure in between leaves
// unreachable completions behind, which is tolerated.
func (s *HabitService) DeleteHabit(ctx context.Context, userID, habitID int) error {
	if _, err := ownedHabit(ctx, s.habits, userID, habitID); err != nil {
		return err
	}
	if err := s.completions.DeleteByHabit(ctx, habitID); err != nil {
		return err
	}
	ok, err := s.habits.Delete(ctx, userID, habitID)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("habit_delete_after_completions_failed", "habit_id", habitID, "err", err)
		}
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ownedHabit loads a habit filtered on its owner.
func ownedHabit(ctx context.Context, habits repository.HabitRepo, userID, habitID int) (models.Habit, error) {
	h, err := habits.Get(ctx, userID, habitID)
	if err != nil {
		return models.Habit{}, err
	}
	if h == nil {
		return models.Habit{}, ErrNotFound
	}
	return *h, nil
}

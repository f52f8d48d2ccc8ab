package service

import (
	"context"
	"fmt"

	"habit_tracker/internal/calendar"
	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

type CompletionService struct {
	habits      repository.HabitRepo
	completions repository.CompletionRepo
}

func NewCompletionService(habits repository.HabitRepo, completions repository.CompletionRepo) *CompletionService {
	return &CompletionService{habits: habits, completions: completions}
}

// validateDate rejects anything that is not a strict YYYY-MM-DD calendar day.
func validateDate(s string) (string, error) {
	d, err := calendar.ParseDate(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return d.String(), nil
}

// normalizeAndValidateFilter checks both bounds and their order.
func normalizeAndValidateFilter(f LogFilter) (repository.DateRange, error) {
	var (
		dr       repository.DateRange
		from, to calendar.Date
		err      error
	)
	if f.From != "" {
		if from, err = calendar.ParseDate(f.From); err != nil {
			return dr, fmt.Errorf("%w: from: %v", ErrValidation, err)
		}
		dr.From = from.String()
	}
	if f.To != "" {
		if to, err = calendar.ParseDate(f.To); err != nil {
			return dr, fmt.Errorf("%w: to: %v", ErrValidation, err)
		}
		dr.To = to.String()
	}
	if dr.From != "" && dr.To != "" && to.Before(from) {
		return repository.DateRange{}, fmt.Errorf("%w: from must be <= to", ErrValidation)
	}
	return dr, nil
}

func (s *CompletionService) ListCompletions(ctx context.Context, userID, habitID int, f LogFilter) ([]string, error) {
	dr, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	if _, err := ownedHabit(ctx, s.habits, userID, habitID); err != nil {
		return nil, err
	}
	return s.completions.List(ctx, habitID, dr)
}

// AddCompletion marks date complete. Already complete is success and
// reports false.
func (s *CompletionService) AddCompletion(ctx context.Context, userID, habitID int, date string) (bool, error) {
	date, err := validateDate(date)
	if err != nil {
		return false, err
	}
	if _, err := ownedHabit(ctx, s.habits, userID, habitID); err != nil {
		return false, err
	}
	return s.completions.Add(ctx, models.Completion{HabitID: habitID, UserID: userID, Date: date})
}

// RemoveCompletion clears date. Nothing to clear is success and reports false.
func (s *CompletionService) RemoveCompletion(ctx context.Context, userID, habitID int, date string) (bool, error) {
	date, err := validateDate(date)
	if err != nil {
		return false, err
	}
	if _, err := ownedHabit(ctx, s.habits, userID, habitID); err != nil {
		return false, err
	}
	return s.completions.Remove(ctx, habitID, date)
}

// ToggleCompletion flips date and reports whether it is now complete.
// Concurrent toggles of the same pair are not coordinated: last write wins.
func (s *CompletionService) ToggleCompletion(ctx context.Context, userID, habitID int, date string) (bool, error) {
	date, err := validateDate(date)
	if err != nil {
		return false, err
	}
	if _, err := ownedHabit(ctx, s.habits, userID, habitID); err != nil {
		return false, err
	}

	done, err := s.completions.Exists(ctx, habitID, date)
	if err != nil {
		return false, err
	}
	if done {
		if _, err := s.completions.Remove(ctx, habitID, date); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := s.completions.Add(ctx, models.Completion{HabitID: habitID, UserID: userID, Date: date}); err != nil {
		return false, err
	}
	return true, nil
}

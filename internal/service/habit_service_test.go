package service

import (
	"context"
	"errors"
	"testing"

	"habit_tracker/internal/models"
)

const (
	alice = 1
	bob   = 2
)

func strPtr(s string) *string { return &s }

func TestHabitService_CreateHabit(t *testing.T) {
	tests := []struct {
		name      string
		params    CreateHabitParams
		wantColor string
		wantErr   error
	}{
		{name: "default color", params: CreateHabitParams{Name: "Read"}, wantColor: models.DefaultHabitColor},
		{name: "explicit color", params: CreateHabitParams{Name: "Run", Color: "#FF00aa"}, wantColor: "#FF00aa"},
		{name: "name trimmed", params: CreateHabitParams{Name: "  Walk  "}, wantColor: models.DefaultHabitColor},
		{name: "empty name", params: CreateHabitParams{Name: "   "}, wantErr: ErrValidation},
		{name: "bad color", params: CreateHabitParams{Name: "Read", Color: "blue"}, wantErr: ErrValidation},
		{name: "short hex", params: CreateHabitParams{Name: "Read", Color: "#fff"}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			habits := newMemHabits()
			svc := NewHabitService(habits, newMemCompletions(), nil)

			h, err := svc.CreateHabit(context.Background(), alice, tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(habits.rows) != 0 {
					t.Fatalf("nothing should be stored on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateHabit: %v", err)
			}
			if h.ID == 0 || h.UserID != alice || h.Color != tt.wantColor {
				t.Fatalf("unexpected habit %+v", h)
			}
			if h.Name == "" || h.Name[0] == ' ' {
				t.Fatalf("name not trimmed: %q", h.Name)
			}
		})
	}
}

func TestHabitService_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	habits := newMemHabits(models.Habit{ID: 10, UserID: alice, Name: "Read", Color: "#0066cc"})
	completions := newMemCompletions()
	svc := NewHabitService(habits, completions, nil)

	if _, err := svc.GetHabit(ctx, bob, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetHabit by non-owner: %v", err)
	}
	if err := svc.UpdateHabitColor(ctx, bob, 10, "#123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateHabitColor by non-owner: %v", err)
	}
	if _, err := svc.UpdateHabit(ctx, bob, 10, UpdateHabitParams{Name: strPtr("Mine")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateHabit by non-owner: %v", err)
	}
	if err := svc.DeleteHabit(ctx, bob, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteHabit by non-owner: %v", err)
	}
	if len(completions.calls) != 0 {
		t.Fatalf("non-owner delete must not touch completions: %v", completions.calls)
	}

	list, err := svc.ListHabits(ctx, bob)
	if err != nil || len(list) != 0 {
		t.Fatalf("bob should see no habits, got %v (%v)", list, err)
	}

	h, err := svc.GetHabit(ctx, alice, 10)
	if err != nil || h.Color != "#0066cc" || h.Name != "Read" {
		t.Fatalf("alice's habit changed: %+v (%v)", h, err)
	}
}

func TestHabitService_UpdateHabit_Partial(t *testing.T) {
	ctx := context.Background()
	habits := newMemHabits(models.Habit{ID: 3, UserID: alice, Name: "Read", Color: "#0066cc", Frequency: strPtr("daily")})
	svc := NewHabitService(habits, newMemCompletions(), nil)

	h, err := svc.UpdateHabit(ctx, alice, 3, UpdateHabitParams{Description: strPtr("20 pages")})
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if h.Name != "Read" || h.Color != "#0066cc" || *h.Frequency != "daily" || *h.Description != "20 pages" {
		t.Fatalf("unexpected habit %+v", h)
	}

	if _, err := svc.UpdateHabit(ctx, alice, 3, UpdateHabitParams{Color: strPtr("red")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateHabit(ctx, alice, 3, UpdateHabitParams{Name: strPtr("")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestHabitService_UpdateHabitColor(t *testing.T) {
	ctx := context.Background()
	habits := newMemHabits(models.Habit{ID: 3, UserID: alice, Name: "Read", Color: "#0066cc"})
	svc := NewHabitService(habits, newMemCompletions(), nil)

	if err := svc.UpdateHabitColor(ctx, alice, 3, "#abcdef"); err != nil {
		t.Fatalf("UpdateHabitColor: %v", err)
	}
	if habits.rows[3].Color != "#abcdef" {
		t.Fatalf("color not stored")
	}
	if err := svc.UpdateHabitColor(ctx, alice, 3, "#abcdeg"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateHabitColor(ctx, alice, 99, "#abcdef"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHabitService_DeleteHabit_CascadesCompletionsFirst(t *testing.T) {
	ctx := context.Background()
	habits := newMemHabits(models.Habit{ID: 3, UserID: alice, Name: "Read", Color: "#0066cc"})
	completions := newMemCompletions()
	completions.dates[3] = map[string]bool{"2024-02-29": true}
	svc := NewHabitService(habits, completions, nil)

	if err := svc.DeleteHabit(ctx, alice, 3); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if _, ok := habits.rows[3]; ok {
		t.Fatalf("habit still present")
	}
	if len(completions.dates[3]) != 0 {
		t.Fatalf("completions not removed")
	}
	if len(completions.calls) != 1 || completions.calls[0] != "delete_by_habit" {
		t.Fatalf("unexpected completion calls %v", completions.calls)
	}
}

func TestHabitService_DeleteHabit_SecondStatementFails(t *testing.T) {
	ctx := context.Background()
	habits := newMemHabits(models.Habit{ID: 3, UserID: alice, Name: "Read", Color: "#0066cc"})
	habits.deleteErr = errors.New("connection reset")
	completions := newMemCompletions()
	completions.dates[3] = map[string]bool{"2024-02-29": true}
	svc := NewHabitService(habits, completions, nil)

	if err := svc.DeleteHabit(ctx, alice, 3); err == nil {
		t.Fatalf("expected error")
	}
	// completions are gone, habit stays: not atomic
	if len(completions.dates[3]) != 0 {
		t.Fatalf("completions should already be removed")
	}
	if _, ok := habits.rows[3]; !ok {
		t.Fatalf("habit should survive the failed delete")
	}
}

func TestHabitService_RepoErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")
	habits := newMemHabits()
	habits.err = boom
	svc := NewHabitService(habits, newMemCompletions(), nil)

	if _, err := svc.ListHabits(ctx, alice); !errors.Is(err, boom) {
		t.Fatalf("ListHabits: %v", err)
	}
	if _, err := svc.GetHabit(ctx, alice, 1); !errors.Is(err, boom) {
		t.Fatalf("GetHabit: %v", err)
	}
	if _, err := svc.CreateHabit(ctx, alice, CreateHabitParams{Name: "x"}); !errors.Is(err, boom) {
		t.Fatalf("CreateHabit: %v", err)
	}
}

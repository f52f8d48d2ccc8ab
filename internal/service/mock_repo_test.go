package service

import (
	"context"
	"sort"

	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

// memHabits is an in-memory repository.HabitRepo keyed by habit id.
type memHabits struct {
	rows   map[int]models.Habit
	nextID int
	err    error // returned by every call when set

	deleteErr error
}

func newMemHabits(hs ...models.Habit) *memHabits {
	m := &memHabits{rows: map[int]models.Habit{}, nextID: 1}
	for _, h := range hs {
		m.rows[h.ID] = h
		if h.ID >= m.nextID {
			m.nextID = h.ID + 1
		}
	}
	return m
}

func (m *memHabits) List(_ context.Context, userID int) ([]models.Habit, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Habit{}
	for _, h := range m.rows {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHabits) Get(_ context.Context, userID, habitID int) (*models.Habit, error) {
	if m.err != nil {
		return nil, m.err
	}
	h, ok := m.rows[habitID]
	if !ok || h.UserID != userID {
		return nil, nil
	}
	return &h, nil
}

func (m *memHabits) Insert(_ context.Context, h models.Habit) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	h.ID = m.nextID
	m.nextID++
	m.rows[h.ID] = h
	return h.ID, nil
}

func (m *memHabits) Update(_ context.Context, h models.Habit) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	cur, ok := m.rows[h.ID]
	if !ok || cur.UserID != h.UserID {
		return false, nil
	}
	m.rows[h.ID] = h
	return true, nil
}

func (m *memHabits) UpdateColor(_ context.Context, userID, habitID int, color string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	h, ok := m.rows[habitID]
	if !ok || h.UserID != userID {
		return false, nil
	}
	h.Color = color
	m.rows[habitID] = h
	return true, nil
}

func (m *memHabits) Delete(_ context.Context, userID, habitID int) (bool, error) {
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	h, ok := m.rows[habitID]
	if !ok || h.UserID != userID {
		return false, nil
	}
	delete(m.rows, habitID)
	return true, nil
}

// memCompletions is an in-memory repository.CompletionRepo.
type memCompletions struct {
	dates map[int]map[string]bool
	calls []string
	err   error
}

func newMemCompletions() *memCompletions {
	return &memCompletions{dates: map[int]map[string]bool{}}
}

func (m *memCompletions) List(_ context.Context, habitID int, dr repository.DateRange) ([]string, error) {
	m.calls = append(m.calls, "list")
	if m.err != nil {
		return nil, m.err
	}
	out := []string{}
	for d := range m.dates[habitID] {
		if dr.From != "" && d < dr.From {
			continue
		}
		if dr.To != "" && d > dr.To {
			continue
		}
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memCompletions) Exists(_ context.Context, habitID int, date string) (bool, error) {
	m.calls = append(m.calls, "exists")
	if m.err != nil {
		return false, m.err
	}
	return m.dates[habitID][date], nil
}

func (m *memCompletions) Add(_ context.Context, c models.Completion) (bool, error) {
	m.calls = append(m.calls, "add")
	if m.err != nil {
		return false, m.err
	}
	if m.dates[c.HabitID] == nil {
		m.dates[c.HabitID] = map[string]bool{}
	}
	if m.dates[c.HabitID][c.Date] {
		return false, nil
	}
	m.dates[c.HabitID][c.Date] = true
	return true, nil
}

func (m *memCompletions) Remove(_ context.Context, habitID int, date string) (bool, error) {
	m.calls = append(m.calls, "remove")
	if m.err != nil {
		return false, m.err
	}
	if !m.dates[habitID][date] {
		return false, nil
	}
	delete(m.dates[habitID], date)
	return true, nil
}

func (m *memCompletions) DeleteByHabit(_ context.Context, habitID int) error {
	m.calls = append(m.calls, "delete_by_habit")
	if m.err != nil {
		return m.err
	}
	delete(m.dates, habitID)
	return nil
}

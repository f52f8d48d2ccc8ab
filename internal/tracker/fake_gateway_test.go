package tracker

import (
	"context"
	"errors"
	"sort"
	"sync"

	"habit_tracker/internal/models"
)

var errBoom = errors.New("boom")

// fakeGateway is an in-memory server with per-call error injection.
type fakeGateway struct {
	mu        sync.Mutex
	habits    []models.Habit
	store     map[int]map[string]bool
	listErr   map[int]error
	addErr    error
	removeErr error
	calls     []string
}

func newFakeGateway(habits ...models.Habit) *fakeGateway {
	return &fakeGateway{
		habits:  habits,
		store:   map[int]map[string]bool{},
		listErr: map[int]error{},
	}
}

func (f *fakeGateway) seed(habitID int, dates ...string) {
	if f.store[habitID] == nil {
		f.store[habitID] = map[string]bool{}
	}
	for _, d := range dates {
		f.store[habitID][d] = true
	}
}

func (f *fakeGateway) ListHabits(ctx context.Context) ([]models.Habit, error) {
	return f.habits, nil
}

func (f *fakeGateway) ListCompletions(ctx context.Context, habitID int, from, to string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	if err := f.listErr[habitID]; err != nil {
		return nil, err
	}
	out := []string{}
	for d := range f.store[habitID] {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeGateway) AddCompletion(ctx context.Context, habitID int, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "add")
	if f.addErr != nil {
		return f.addErr
	}
	if f.store[habitID] == nil {
		f.store[habitID] = map[string]bool{}
	}
	f.store[habitID][date] = true
	return nil
}

func (f *fakeGateway) RemoveCompletion(ctx context.Context, habitID int, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "remove")
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.store[habitID], date)
	return nil
}

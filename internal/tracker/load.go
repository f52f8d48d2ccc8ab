package tracker

import (
	"context"
	"sync"

	"habit_tracker/internal/logger"
	"habit_tracker/internal/models"

	"golang.org/x/sync/errgroup"
)

// maxParallelFetches bounds in-flight completion requests during a load.
const maxParallelFetches = 4

// LoadIndex fetches every habit's completions concurrently. A habit whose
// fetch fails is left out of the index and reported in the failure map;
// the others still load.
func LoadIndex(ctx context.Context, gw Gateway, habits []models.Habit, log *logger.Logger) (*Index, map[int]error) {
	idx := NewIndex()
	failures := make(map[int]error)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(maxParallelFetches)

	for _, h := range habits {
		h := h
		g.Go(func() error {
			dates, err := gw.ListCompletions(ctx, h.ID, "", "")

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[h.ID] = err
				if log != nil {
					log.Warnw("completion_fetch_failed", "habit_id", h.ID, "error", err)
				}
				return nil
			}
			idx.Replace(h.ID, dates)
			return nil
		})
	}
	_ = g.Wait()

	return idx, failures
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"habit_tracker/internal/models"
)

type CompletionRepository struct {
	db *sql.DB
	d  Dialect
}

func NewCompletionRepository(db *sql.DB, d Dialect) *CompletionRepository {
	return &CompletionRepository{db: db, d: d}
}

var _ CompletionRepo = (*CompletionRepository)(nil)

const (
	existsCompletionSQL = `SELECT COUNT(1) FROM completions WHERE habit_id = ? AND date = ?`
	// The unique (habit_id, date) key turns a repeated add into a no-op.
	insertCompletionSQL = `INSERT INTO completions (habit_id, user_id, date) VALUES (?, ?, ?) ON CONFLICT (habit_id, date) DO NOTHING`
	deleteCompletionSQL = `DELETE FROM completions WHERE habit_id = ? AND date = ?`
	deleteByHabitSQL    = `DELETE FROM completions WHERE habit_id = ?`
)

// List returns the habit's completion dates in ascending order.
// Dates are stored as YYYY-MM-DD text, so string comparison orders them.
func (r *CompletionRepository) List(ctx context.Context, habitID int, dr DateRange) ([]string, error) {
	conds := []string{"habit_id = ?"}
	args := []any{habitID}

	if dr.From != "" {
		conds = append(conds, "date >= ?")
		args = append(args, dr.From)
	}
	if dr.To != "" {
		conds = append(conds, "date <= ?")
		args = append(args, dr.To)
	}

	q := `SELECT date FROM completions WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list completions of habit %d: %w", habitID, err)
	}
	defer rows.Close()

	out := make([]string, 0, 32)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		out = append(out, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list completions of habit %d: %w", habitID, err)
	}
	return out, nil
}

// Exists reports whether the habit is marked complete on date.
func (r *CompletionRepository) Exists(ctx context.Context, habitID int, date string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, r.d.Rebind(existsCompletionSQL), habitID, date).Scan(&n); err != nil {
		return false, fmt.Errorf("check completion %d/%s: %w", habitID, date, err)
	}
	return n > 0, nil
}

// Add marks the habit complete on c.Date. Reports false if it already was.
func (r *CompletionRepository) Add(ctx context.Context, c models.Completion) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(insertCompletionSQL), c.HabitID, c.UserID, c.Date)
	if err != nil {
		return false, fmt.Errorf("insert completion %d/%s: %w", c.HabitID, c.Date, err)
	}
	return affected(res)
}

// Remove clears the completion on date. Reports false if there was none.
func (r *CompletionRepository) Remove(ctx context.Context, habitID int, date string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(deleteCompletionSQL), habitID, date)
	if err != nil {
		return false, fmt.Errorf("delete completion %d/%s: %w", habitID, date, err)
	}
	return affected(res)
}

// DeleteByHabit removes every completion of the habit.
func (r *CompletionRepository) DeleteByHabit(ctx context.Context, habitID int) error {
	if _, err := r.db.ExecContext(ctx, r.d.Rebind(deleteByHabitSQL), habitID); err != nil {
		return fmt.Errorf("delete completions of habit %d: %w", habitID, err)
	}
	return nil
}

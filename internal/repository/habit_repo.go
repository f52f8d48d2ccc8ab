package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"habit_tracker/internal/models"
)

type HabitRepository struct {
	db *sql.DB
	d  Dialect
}

func NewHabitRepository(db *sql.DB, d Dialect) *HabitRepository {
	return &HabitRepository{db: db, d: d}
}

var _ HabitRepo = (*HabitRepository)(nil)

const (
	habitColumns = `id, user_id, name, color, description, frequency`

	selectHabitsByUserSQL = `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ? ORDER BY id`
	selectHabitSQL        = `SELECT ` + habitColumns + ` FROM habits WHERE id = ? AND user_id = ?`
	insertHabitSQL        = `INSERT INTO habits (user_id, name, color, description, frequency) VALUES (?, ?, ?, ?, ?) RETURNING id`
	updateHabitSQL        = `UPDATE habits SET name = ?, color = ?, description = ?, frequency = ? WHERE id = ? AND user_id = ?`
	updateHabitColorSQL   = `UPDATE habits SET color = ? WHERE id = ? AND user_id = ?`
	deleteHabitSQL        = `DELETE FROM habits WHERE id = ? AND user_id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(s rowScanner) (models.Habit, error) {
	var (
		h           models.Habit
		description sql.NullString
		frequency   sql.NullString
	)
	if err := s.Scan(&h.ID, &h.UserID, &h.Name, &h.Color, &description, &frequency); err != nil {
		return models.Habit{}, err
	}
	if description.Valid {
		h.Description = &description.String
	}
	if frequency.Valid {
		h.Frequency = &frequency.String
	}
	return h, nil
}

// nullable maps nil to SQL NULL.
func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// List returns the owner's habits ordered by id.
func (r *HabitRepository) List(ctx context.Context, userID int) ([]models.Habit, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(selectHabitsByUserSQL), userID)
	if err != nil {
		return nil, fmt.Errorf("list habits of user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Habit, 0, 16)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list habits of user %d: %w", userID, err)
	}
	return out, nil
}

// Get fetches one habit owned by userID. Returns (nil, nil) when it does not
// exist or belongs to someone else.
func (r *HabitRepository) Get(ctx context.Context, userID, habitID int) (*models.Habit, error) {
	h, err := scanHabit(r.db.QueryRowContext(ctx, r.d.Rebind(selectHabitSQL), habitID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select habit %d: %w", habitID, err)
	}
	return &h, nil
}

// Insert stores a new habit and returns its ID.
func (r *HabitRepository) Insert(ctx context.Context, h models.Habit) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, r.d.Rebind(insertHabitSQL),
		h.UserID, h.Name, h.Color, nullable(h.Description), nullable(h.Frequency),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert habit %q: %w", h.Name, err)
	}
	return id, nil
}

// Update overwrites the mutable fields. Reports false when nothing matched.
func (r *HabitRepository) Update(ctx context.Context, h models.Habit) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(updateHabitSQL),
		h.Name, h.Color, nullable(h.Description), nullable(h.Frequency), h.ID, h.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("update habit %d: %w", h.ID, err)
	}
	return affected(res)
}

// UpdateColor changes the display color. Reports false when nothing matched.
func (r *HabitRepository) UpdateColor(ctx context.Context, userID, habitID int, color string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(updateHabitColorSQL), color, habitID, userID)
	if err != nil {
		return false, fmt.Errorf("update color of habit %d: %w", habitID, err)
	}
	return affected(res)
}

// Delete removes the habit row only; completions are removed separately.
func (r *HabitRepository) Delete(ctx context.Context, userID, habitID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(deleteHabitSQL), habitID, userID)
	if err != nil {
		return false, fmt.Errorf("delete habit %d: %w", habitID, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

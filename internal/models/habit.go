package models

// DefaultHabitColor is applied when a habit is created without a color.
const DefaultHabitColor = "#0066cc"

// Habit is a user-owned trackable activity.
type Habit struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty"` // stored, never interpreted
}

// Completion records that a habit was done on a calendar day.
type Completion struct {
	ID      int    `json:"id"`
	HabitID int    `json:"habit_id"`
	UserID  int    `json:"user_id"`
	Date    string `json:"date"` // YYYY-MM-DD
}

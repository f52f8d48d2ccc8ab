package service

// CreateHabitParams carries the fields a client may set on a new habit.
type CreateHabitParams struct {
	Name        string
	Color       string // "" means models.DefaultHabitColor
	Description *string
	Frequency   *string
}

// UpdateHabitParams is a partial update; nil fields are left untouched.
type UpdateHabitParams struct {
	Name        *string
	Color       *string
	Description *string
	Frequency   *string
}

// LogFilter bounds a completion listing (YYYY-MM-DD, inclusive, empty = open).
type LogFilter struct {
	From string
	To   string
}

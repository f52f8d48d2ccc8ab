package tracker

import (
	"habit_tracker/internal/calendar"
	"habit_tracker/internal/models"
)

// AllHabits as the selected habit shows the overlay of every habit.
const AllHabits = 0

// PendingKey identifies a toggle in flight.
type PendingKey struct {
	HabitID int
	Date    string
}

// State is everything the calendar view renders. It only changes through Reduce.
type State struct {
	Today    calendar.Date
	Month    calendar.Date // first day of the visible month
	Grid     calendar.Month
	Cursor   calendar.Date
	Habits   []models.Habit
	Selected int
	Index    *Index
	Pending  map[PendingKey]struct{}
	// Failures holds habits whose completions could not be loaded.
	Failures map[int]error
	Err      error
}

func NewState(today calendar.Date) State {
	month := today.FirstOfMonth()
	return State{
		Today:    today,
		Month:    month,
		Grid:     calendar.Grid(month),
		Cursor:   today,
		Selected: AllHabits,
		Index:    NewIndex(),
		Pending:  map[PendingKey]struct{}{},
		Failures: map[int]error{},
	}
}

// Event is an input to Reduce.
type Event interface{ event() }

type (
	MonthShifted struct{ Delta int }
	CursorMoved  struct{ Days int }
	HabitsLoaded struct{ Habits []models.Habit }
	IndexLoaded  struct {
		Index    *Index
		Failures map[int]error
	}
	HabitSelected struct{ HabitID int }
	ToggleStarted struct {
		HabitID int
		Date    string
	}
	CompletionsRefreshed struct {
		HabitID   int
		Date      string
		Completed bool
		// Dates replaces the habit's set only when Refetched.
		Refetched bool
		Dates     []string
	}
	ToggleFailed struct {
		HabitID int
		Date    string
		Err     error
	}
	LoadFailed struct{ Err error }
)

func (MonthShifted) event()         {}
func (CursorMoved) event()          {}
func (HabitsLoaded) event()         {}
func (IndexLoaded) event()          {}
func (HabitSelected) event()        {}
func (ToggleStarted) event()        {}
func (CompletionsRefreshed) event() {}
func (ToggleFailed) event()         {}
func (LoadFailed) event()           {}

// Reduce returns the state after ev. s is never modified.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case MonthShifted:
		month := s.Month.AddMonths(e.Delta)
		day := s.Cursor.Day
		if n := calendar.DaysIn(month.Year, month.Month); day > n {
			day = n
		}
		s.Cursor = calendar.Date{Year: month.Year, Month: month.Month, Day: day}
		s = showMonth(s, month)

	case CursorMoved:
		s.Cursor = s.Cursor.AddDays(e.Days)
		if !s.Cursor.SameMonth(s.Month) {
			s = showMonth(s, s.Cursor.FirstOfMonth())
		}

	case HabitsLoaded:
		s.Habits = append([]models.Habit(nil), e.Habits...)
		s.Index = s.Index.Clone()
		// drop habits deleted since the index was loaded
		for id := range s.Index.sets {
			if !hasHabit(s.Habits, id) {
				s.Index.Forget(id)
			}
		}
		if s.Selected != AllHabits && !hasHabit(s.Habits, s.Selected) {
			s.Selected = AllHabits
		}
		s.Err = nil

	case IndexLoaded:
		if e.Index != nil {
			s.Index = e.Index.Clone()
		} else {
			s.Index = NewIndex()
		}
		s.Failures = make(map[int]error, len(e.Failures))
		for id, err := range e.Failures {
			s.Failures[id] = err
		}

	case HabitSelected:
		if e.HabitID == AllHabits || hasHabit(s.Habits, e.HabitID) {
			s.Selected = e.HabitID
		}

	case ToggleStarted:
		key := PendingKey{e.HabitID, e.Date}
		if _, busy := s.Pending[key]; busy {
			return s
		}
		s.Pending = clonePending(s.Pending)
		s.Pending[key] = struct{}{}
		s.Err = nil

	case CompletionsRefreshed:
		s.Index = s.Index.Clone()
		switch {
		case e.Refetched:
			s.Index.Replace(e.HabitID, e.Dates)
		case e.Completed:
			s.Index.Add(e.HabitID, e.Date)
		default:
			s.Index.Remove(e.HabitID, e.Date)
		}
		s.Pending = clonePending(s.Pending)
		delete(s.Pending, PendingKey{e.HabitID, e.Date})
		// only a full listing recovers a habit that failed to load
		if _, failed := s.Failures[e.HabitID]; failed && e.Refetched {
			s.Failures = cloneFailures(s.Failures)
			delete(s.Failures, e.HabitID)
		}

	case ToggleFailed:
		s.Pending = clonePending(s.Pending)
		delete(s.Pending, PendingKey{e.HabitID, e.Date})
		s.Err = e.Err

	case LoadFailed:
		s.Err = e.Err
	}
	return s
}

// IsPending reports whether a toggle for (habitID, date) is in flight.
func (s State) IsPending(habitID int, date string) bool {
	_, ok := s.Pending[PendingKey{habitID, date}]
	return ok
}

// Completed reports whether the cell for date is marked: for the selected
// habit, or for any habit in the all-habits view.
func (s State) Completed(date string) bool {
	if s.Selected != AllHabits {
		return s.Index.Has(s.Selected, date)
	}
	return len(s.Index.HabitsOn(date)) > 0
}

// SelectedHabit returns the selected habit, if one is.
func (s State) SelectedHabit() (models.Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == s.Selected {
			return h, true
		}
	}
	return models.Habit{}, false
}

func showMonth(s State, month calendar.Date) State {
	s.Month = month
	s.Grid = calendar.Grid(month)
	return s
}

func hasHabit(habits []models.Habit, id int) bool {
	for _, h := range habits {
		if h.ID == id {
			return true
		}
	}
	return false
}

func clonePending(p map[PendingKey]struct{}) map[PendingKey]struct{} {
	out := make(map[PendingKey]struct{}, len(p)+1)
	for k := range p {
		out[k] = struct{}{}
	}
	return out
}

func cloneFailures(f map[int]error) map[int]error {
	out := make(map[int]error, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

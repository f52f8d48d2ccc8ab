package calendar

// Grid dimensions: six full weeks, Sunday first.
const (
	DaysPerWeek = 7
	Weeks       = 6
	CellCount   = Weeks * DaysPerWeek
)

// Weekdays holds the column headers in grid order.
var Weekdays = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one day slot of a month view.
type Cell struct {
	Date    Date `json:"date"`
	InMonth bool `json:"in_month"`
}

// Month is a 6x7 month view in row-major order.
type Month [CellCount]Cell

// Grid builds the month view containing ref.
// Days of the previous month fill the first week up to the month's first
// weekday, and days of the next month pad the view to 42 cells.
func Grid(ref Date) Month {
	var m Month

	first := ref.FirstOfMonth()
	lead := int(first.Weekday())
	days := DaysIn(first.Year, first.Month)

	i := 0
	for d := lead; d > 0; d-- {
		m[i] = Cell{Date: first.AddDays(-d)}
		i++
	}
	for day := 1; day <= days; day++ {
		m[i] = Cell{Date: Date{Year: first.Year, Month: first.Month, Day: day}, InMonth: true}
		i++
	}
	next := first.AddMonths(1)
	for day := 1; i < CellCount; day++ {
		m[i] = Cell{Date: Date{Year: next.Year, Month: next.Month, Day: day}}
		i++
	}
	return m
}

// Rows splits the view into its six weeks.
func (m Month) Rows() [Weeks][DaysPerWeek]Cell {
	var rows [Weeks][DaysPerWeek]Cell
	for i, c := range m {
		rows[i/DaysPerWeek][i%DaysPerWeek] = c
	}
	return rows
}

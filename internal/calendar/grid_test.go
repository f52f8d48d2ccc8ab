package calendar

import (
	"testing"
	"time"
)

func TestGrid_AllMonthsHave42CellsAndOneContiguousRun(t *testing.T) {
	t.Parallel()

	for year := 1999; year <= 2032; year++ {
		for month := time.January; month <= time.December; month++ {
			g := Grid(NewDate(year, month, 15))

			if len(g) != CellCount {
				t.Fatalf("%d-%02d: got %d cells", year, month, len(g))
			}

			runs, inMonth := 0, 0
			prev := false
			for _, c := range g {
				if c.InMonth {
					inMonth++
					if !prev {
						runs++
					}
					if c.Date.Year != year || c.Date.Month != month {
						t.Fatalf("%d-%02d: in-month cell %s belongs to another month", year, month, c.Date)
					}
				}
				prev = c.InMonth
			}
			if runs != 1 {
				t.Fatalf("%d-%02d: want 1 in-month run, got %d", year, month, runs)
			}
			if want := DaysIn(year, month); inMonth != want {
				t.Fatalf("%d-%02d: in-month cells=%d, want %d", year, month, inMonth, want)
			}

			// consecutive days across the whole grid
			for i := 1; i < CellCount; i++ {
				if g[i].Date != g[i-1].Date.AddDays(1) {
					t.Fatalf("%d-%02d: cell %d (%s) does not follow %s", year, month, i, g[i].Date, g[i-1].Date)
				}
			}
			if g[0].Date.Weekday() != time.Sunday {
				t.Fatalf("%d-%02d: grid starts on %s", year, month, g[0].Date.Weekday())
			}
		}
	}
}

func TestGrid_KnownMonths(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		ref       Date
		lead      int
		first     Date
		last      Date
		monthDays int
	}{
		{
			// Feb 2015 starts on Sunday and has 28 days: no lead, two trailing weeks.
			name: "feb 2015 starts sunday", ref: NewDate(2015, time.February, 10),
			lead: 0, first: NewDate(2015, time.February, 1), last: NewDate(2015, time.March, 14), monthDays: 28,
		},
		{
			name: "leap feb 2024", ref: NewDate(2024, time.February, 29),
			lead: 4, first: NewDate(2024, time.January, 28), last: NewDate(2024, time.March, 9), monthDays: 29,
		},
		{
			name: "march 2025 six-week month", ref: NewDate(2025, time.March, 1),
			lead: 6, first: NewDate(2025, time.February, 23), last: NewDate(2025, time.April, 5), monthDays: 31,
		},
		{
			name: "december rolls into next year", ref: NewDate(2023, time.December, 25),
			lead: 5, first: NewDate(2023, time.November, 26), last: NewDate(2024, time.January, 6), monthDays: 31,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := Grid(tc.ref)
			if g[0].Date != tc.first {
				t.Fatalf("first cell: got %s, want %s", g[0].Date, tc.first)
			}
			if g[CellCount-1].Date != tc.last {
				t.Fatalf("last cell: got %s, want %s", g[CellCount-1].Date, tc.last)
			}
			for i := 0; i < tc.lead; i++ {
				if g[i].InMonth {
					t.Fatalf("lead cell %d marked in month", i)
				}
			}
			if !g[tc.lead].InMonth || g[tc.lead].Date.Day != 1 {
				t.Fatalf("cell %d should be day 1 of the month, got %+v", tc.lead, g[tc.lead])
			}
			if g[tc.lead+tc.monthDays-1].Date.Day != tc.monthDays {
				t.Fatalf("last in-month day mismatch: %+v", g[tc.lead+tc.monthDays-1])
			}
		})
	}
}

func TestGrid_Deterministic(t *testing.T) {
	t.Parallel()

	ref := NewDate(2024, time.February, 29)
	if Grid(ref) != Grid(ref) {
		t.Fatalf("grid is not deterministic")
	}
	// Any day of the month yields the same view.
	if Grid(ref) != Grid(NewDate(2024, time.February, 1)) {
		t.Fatalf("grid depends on day of month")
	}
}

func TestGrid_IgnoresTimezoneOfSource(t *testing.T) {
	t.Parallel()

	// 23:30 on Jan 31 in UTC-10 is already Feb 1 in UTC; the local fields win.
	loc := time.FixedZone("UTC-10", -10*3600)
	d := FromTime(time.Date(2024, time.January, 31, 23, 30, 0, 0, loc))
	if d != NewDate(2024, time.January, 31) {
		t.Fatalf("date shifted: %s", d)
	}
	found := false
	for _, c := range Grid(d) {
		if c.Date == d {
			found = c.InMonth
		}
	}
	if !found {
		t.Fatalf("reference date not in its own month view")
	}
}

func TestMonth_Rows(t *testing.T) {
	t.Parallel()

	g := Grid(NewDate(2024, time.June, 1))
	rows := g.Rows()
	for r := 0; r < Weeks; r++ {
		if rows[r][0].Date.Weekday() != time.Sunday {
			t.Fatalf("row %d does not start on Sunday", r)
		}
		if rows[r][6] != g[r*DaysPerWeek+6] {
			t.Fatalf("row %d last cell mismatch", r)
		}
	}
}

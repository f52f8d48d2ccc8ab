package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-02-29", want: Date{2024, time.February, 29}},
		{in: "1999-12-31", want: Date{1999, time.December, 31}},
		{in: "2023-02-29", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "2024-2-29", wantErr: true},
		{in: "2024-02-29T00:00:00Z", wantErr: true},
		{in: " 2024-02-29", wantErr: true},
		{in: "", wantErr: true},
		{in: "20240229", wantErr: true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDate(c.in)
			if c.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("ParseDate(%q): want ErrInvalidDate, got %v", c.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("ParseDate(%q) = %+v; want %+v", c.in, got, c.want)
			}
			if got.String() != c.in {
				t.Fatalf("round trip: %q -> %q", c.in, got.String())
			}
		})
	}
}

func TestDate_String_ZeroPadded(t *testing.T) {
	t.Parallel()

	if s := NewDate(987, time.March, 5).String(); s != "0987-03-05" {
		t.Fatalf("got %q", s)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	t.Parallel()

	if got := NewDate(2024, time.February, 30); got != (Date{2024, time.March, 1}) {
		t.Fatalf("normalize: %s", got)
	}
	if got := NewDate(2024, time.March, 1).AddDays(-1); got != (Date{2024, time.February, 29}) {
		t.Fatalf("AddDays: %s", got)
	}
	if got := NewDate(2024, time.January, 31).AddMonths(1); got != (Date{2024, time.February, 1}) {
		t.Fatalf("AddMonths: %s", got)
	}
	if got := NewDate(2024, time.January, 15).AddMonths(-1); got != (Date{2023, time.December, 1}) {
		t.Fatalf("AddMonths back: %s", got)
	}
	if !NewDate(2024, time.February, 30).Equal(NewDate(2024, time.March, 1)) {
		t.Fatalf("Equal after normalization")
	}
	if !NewDate(2023, time.December, 31).Before(NewDate(2024, time.January, 1)) {
		t.Fatalf("Before across years")
	}
	if DaysIn(2024, time.February) != 29 || DaysIn(2023, time.February) != 28 || DaysIn(1900, time.February) != 28 || DaysIn(2000, time.February) != 29 {
		t.Fatalf("leap year handling")
	}
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Cell{Date: NewDate(2024, time.February, 29), InMonth: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"date":"2024-02-29","in_month":true}` {
		t.Fatalf("unexpected json: %s", b)
	}

	var c Cell
	if err := json.Unmarshal([]byte(`{"date":"2024-02-30"}`), &c); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

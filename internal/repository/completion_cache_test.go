package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"habit_tracker/internal/models"

	"github.com/go-redis/redismock/v9"
)

type fakeCompletions struct {
	dates     []string
	listCalls int
	lastRange DateRange
	addErr    error
	// duringList runs inside List, before the rows are returned.
	duringList func()
}

func (f *fakeCompletions) List(_ context.Context, _ int, dr DateRange) ([]string, error) {
	f.listCalls++
	f.lastRange = dr
	out := append([]string{}, f.dates...)
	if f.duringList != nil {
		hook := f.duringList
		f.duringList = nil
		hook()
	}
	return out, nil
}
func (f *fakeCompletions) Exists(context.Context, int, string) (bool, error) { return false, nil }
func (f *fakeCompletions) Add(_ context.Context, c models.Completion) (bool, error) {
	if f.addErr != nil {
		return false, f.addErr
	}
	f.dates = append(f.dates, c.Date)
	return true, nil
}
func (f *fakeCompletions) Remove(context.Context, int, string) (bool, error) { return true, nil }
func (f *fakeCompletions) DeleteByHabit(context.Context, int) error          { return nil }

const (
	testTTL    = time.Minute
	testKey    = "habit:4:completions"
	testVerKey = "habit:4:completions:version"
)

func TestCompletionCache_List_MissThenStore(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	next := &fakeCompletions{dates: []string{"2024-02-01", "2024-02-03"}}
	c := NewCompletionCache(next, rdb, testTTL, nil)

	mock.ExpectMGet(testKey, testVerKey).SetVal([]interface{}{nil, "3"})
	mock.ExpectSet(testKey, []byte(`{"version":"3","dates":["2024-02-01","2024-02-03"]}`), testTTL).SetVal("OK")

	got, err := c.List(context.Background(), 4, DateRange{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || next.listCalls != 1 {
		t.Fatalf("got %v after %d db calls", got, next.listCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}

func TestCompletionCache_List_Hit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	next := &fakeCompletions{}
	c := NewCompletionCache(next, rdb, testTTL, nil)

	mock.ExpectMGet(testKey, testVerKey).SetVal([]interface{}{`{"version":"3","dates":["2024-01-31"]}`, "3"})

	got, err := c.List(context.Background(), 4, DateRange{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0] != "2024-01-31" {
		t.Fatalf("unexpected dates %v", got)
	}
	if next.listCalls != 0 {
		t.Fatalf("cache hit must not reach the database")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}

func TestCompletionCache_List_RedisDownFallsThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	next := &fakeCompletions{dates: []string{}}
	c := NewCompletionCache(next, rdb, testTTL, nil)

	mock.ExpectMGet(testKey, testVerKey).SetErr(errors.New("connection refused"))

	got, err := c.List(context.Background(), 4, DateRange{})
	if err != nil {
		t.Fatalf("redis failures must not surface: %v", err)
	}
	if got == nil || next.listCalls != 1 {
		t.Fatalf("want database result, got %v (%d calls)", got, next.listCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("nothing may be stored without a version: %v", err)
	}
}

func TestCompletionCache_WriteDuringMissIsNotServedStale(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	next := &fakeCompletions{dates: []string{}}
	c := NewCompletionCache(next, rdb, testTTL, nil)
	ctx := context.Background()

	// A reader misses and reads the old rows. A writer commits and
	// invalidates before the reader stores what it read.
	mock.ExpectMGet(testKey, testVerKey).SetVal([]interface{}{nil, "1"})
	mock.ExpectIncr(testVerKey).SetVal(2)
	mock.ExpectDel(testKey).SetVal(0)
	mock.ExpectSet(testKey, []byte(`{"version":"1","dates":[]}`), testTTL).SetVal("OK")

	next.duringList = func() {
		if _, err := c.Add(ctx, models.Completion{HabitID: 4, UserID: 1, Date: "2024-02-29"}); err != nil {
			t.Errorf("Add: %v", err)
		}
	}
	got, err := c.List(ctx, 4, DateRange{})
	if err != nil || len(got) != 0 {
		t.Fatalf("first read: %v %v", got, err)
	}

	// The entry stored under version 1 must be rejected now that the version is 2.
	mock.ExpectMGet(testKey, testVerKey).SetVal([]interface{}{`{"version":"1","dates":[]}`, "2"})
	mock.ExpectSet(testKey, []byte(`{"version":"2","dates":["2024-02-29"]}`), testTTL).SetVal("OK")

	got, err = c.List(ctx, 4, DateRange{})
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(got) != 1 || got[0] != "2024-02-29" {
		t.Fatalf("stale listing served: %v", got)
	}
	if next.listCalls != 2 {
		t.Fatalf("stale entry must go back to the database, got %d calls", next.listCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}

func TestCompletionCache_List_RangeBypassesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	next := &fakeCompletions{dates: []string{"2024-02-10"}}
	c := NewCompletionCache(next, rdb, testTTL, nil)

	dr := DateRange{From: "2024-02-01", To: "2024-02-29"}
	if _, err := c.List(context.Background(), 4, dr); err != nil {
		t.Fatalf("List: %v", err)
	}
	if next.lastRange != dr {
		t.Fatalf("range not forwarded: %+v", next.lastRange)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no redis calls expected: %v", err)
	}
}

func TestCompletionCache_WritesInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewCompletionCache(&fakeCompletions{}, rdb, testTTL, nil)
	ctx := context.Background()

	mock.ExpectIncr(testVerKey).SetVal(1)
	mock.ExpectDel(testKey).SetVal(1)
	mock.ExpectIncr(testVerKey).SetVal(2)
	mock.ExpectDel(testKey).SetVal(0)
	mock.ExpectIncr(testVerKey).SetErr(errors.New("timeout"))
	mock.ExpectDel(testKey).SetErr(errors.New("timeout"))

	if _, err := c.Add(ctx, models.Completion{HabitID: 4, UserID: 1, Date: "2024-02-29"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := c.Remove(ctx, 4, "2024-02-29"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.DeleteByHabit(ctx, 4); err != nil {
		t.Fatalf("DeleteByHabit must ignore redis errors: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}

func TestCompletionCache_FailedWriteKeepsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewCompletionCache(&fakeCompletions{addErr: errors.New("db down")}, rdb, testTTL, nil)

	if _, err := c.Add(context.Background(), models.Completion{HabitID: 4, Date: "2024-02-29"}); err == nil {
		t.Fatalf("expected db error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no invalidation expected: %v", err)
	}
}

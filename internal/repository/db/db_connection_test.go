package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	conn, err := InitDB(filepath.Join(t.TempDir(), "habits.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"users", "habits", "completions"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// default color and uniqueness
	if _, err := conn.Exec(`INSERT INTO users (username, password_hash) VALUES ('alice', 'h')`); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO habits (user_id, name) VALUES (1, 'Read')`); err != nil {
		t.Fatalf("insert habit: %v", err)
	}
	var color string
	if err := conn.QueryRow(`SELECT color FROM habits WHERE id = 1`).Scan(&color); err != nil || color != "#0066cc" {
		t.Fatalf("default color: %q, %v", color, err)
	}
	if _, err := conn.Exec(`INSERT INTO completions (habit_id, user_id, date) VALUES (1, 1, '2024-02-29')`); err != nil {
		t.Fatalf("insert completion: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO completions (habit_id, user_id, date) VALUES (1, 1, '2024-02-29')`); err == nil {
		t.Fatalf("expected unique violation for duplicate completion")
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.db")
	for i := 0; i < 2; i++ {
		conn, err := InitDB(path)
		if err != nil {
			t.Fatalf("InitDB #%d: %v", i+1, err)
		}
		_ = conn.Close()
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

package repository_test

// Repository tests run against an in-memory SQLite database: the SQL in this
// package sticks to the portable subset (? placeholders, guarded UPDATEs,
// CURRENT_TIMESTAMP), so no external MySQL server is required.

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const testSchema = `
CREATE TABLE users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user',
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE trips (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    title           TEXT NOT NULL,
    price           REAL NOT NULL,
    duration        TEXT NOT NULL,
    description     TEXT NOT NULL,
    available_slots INTEGER NOT NULL,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE bookings (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    reference        TEXT NOT NULL UNIQUE,
    user_id          INTEGER NOT NULL REFERENCES users(id),
    trip_id          INTEGER NOT NULL REFERENCES trips(id),
    booking_date     DATE NOT NULL,
    guests           INTEGER NULL,
    special_requests TEXT NULL,
    status           TEXT NOT NULL DEFAULT 'pending',
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE contacts (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    message    TEXT NOT NULL,
    ` + "`read`" + `   BOOLEAN NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// One connection only: each sqlite :memory: connection is its own DB.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *sql.DB, name, email, role string) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, "x", role)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func seedTrip(t *testing.T, db *sql.DB, title string, slots int) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO trips (title, price, duration, description, available_slots) VALUES (?,?,?,?,?)",
		title, 499.99, "7 days", "test trip", slots)
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func tripSlots(t *testing.T, db *sql.DB, id uint64) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT available_slots FROM trips WHERE id = ?", id).Scan(&n); err != nil {
		t.Fatalf("read slots: %v", err)
	}
	return n
}

func bookingCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&n); err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	return n
}

var ctx = context.Background()

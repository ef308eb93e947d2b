// Package dbtest opens throwaway SQLite databases with the application schema for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"aerozone_backend/internal/database"
)

// New returns a migrated SQLite database stored under t.TempDir().
func New(t *testing.T) *sqlx.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aerozone_test.db")
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := database.Open(context.Background(), database.Config{Driver: database.DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, db *sqlx.DB, username, role string) int64 {
	t.Helper()
	var id int64
	now := time.Now().UTC()
	err := db.QueryRow(`INSERT INTO users (username, password_hash, role, is_active, created_at, updated_at)
		VALUES (?, 'x', ?, TRUE, ?, ?) RETURNING id`, username, role, now, now).Scan(&id)
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return id
}

// SeedStore inserts a store owned by ownerID with the given status and returns its id.
func SeedStore(t *testing.T, db *sqlx.DB, ownerID int64, name, status string) int64 {
	t.Helper()
	var id int64
	now := time.Now().UTC()
	err := db.QueryRow(`INSERT INTO stores (owner_id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`, ownerID, name, status, now, now).Scan(&id)
	if err != nil {
		t.Fatalf("seed store %s: %v", name, err)
	}
	return id
}

// SeedItem inserts an available stock item and returns its id.
func SeedItem(t *testing.T, db *sqlx.DB, storeID int64, name string, quantity int, price string, reorderLevel, criticalLevel int) int64 {
	t.Helper()
	var id int64
	now := time.Now().UTC()
	err := db.QueryRow(`INSERT INTO stock_items
		(store_id, name, quantity, unit_price, reorder_level, critical_level, is_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, TRUE, ?, ?) RETURNING id`,
		storeID, name, quantity, price, reorderLevel, criticalLevel, now, now).Scan(&id)
	if err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return id
}

// Quantity reads the current quantity of a stock item.
func Quantity(t *testing.T, db *sqlx.DB, itemID int64) int {
	t.Helper()
	var q int
	if err := db.Get(&q, `SELECT quantity FROM stock_items WHERE id = ?`, itemID); err != nil {
		t.Fatalf("read quantity of item %d: %v", itemID, err)
	}
	return q
}

// Count returns SELECT COUNT(*) FROM table.
func Count(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

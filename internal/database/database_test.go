package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (id INT);\n\n  CREATE INDEX i ON a (id);\n")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %q", len(got), got)
	}
	if got[1] != "CREATE INDEX i ON a (id)" {
		t.Errorf("got[1] = %q", got[1])
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "mysql", DSN: "x"}); err == nil {
		t.Fatal("Open with mysql driver: want error")
	}
}

func TestApplySchema_SQLiteIsIdempotent(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "schema.db") + "?_pragma=foreign_keys(1)"
	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := ApplySchema(context.Background(), db); err != nil {
			t.Fatalf("ApplySchema run %d: %v", i+1, err)
		}
	}

	var n int
	err = db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN
		('users', 'stores', 'stock_items', 'sale_transactions', 'sale_lines', 'stock_movements')`)
	if err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if n != 6 {
		t.Errorf("tables = %d, want 6", n)
	}
}

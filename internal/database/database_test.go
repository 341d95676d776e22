package database

import (
	"context"
	"testing"
)

func TestWithParseTime(t *testing.T) {
	cases := map[string]string{
		"u:p@tcp(db:3306)/folio":                "u:p@tcp(db:3306)/folio?parseTime=true",
		"u:p@tcp(db:3306)/folio?charset=utf8mb4": "u:p@tcp(db:3306)/folio?charset=utf8mb4&parseTime=true",
		"u:p@tcp(db:3306)/folio?parseTime=false": "u:p@tcp(db:3306)/folio?parseTime=false",
	}
	for in, want := range cases {
		if got := withParseTime(in); got != want {
			t.Fatalf("withParseTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := Open(context.Background(), "sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("MaxOpenConnections = %d, want 1", got)
	}
}

func TestDriverName(t *testing.T) {
	for in, want := range map[string]string{"postgres": "pgx", "mysql": "mysql", "sqlite3": "sqlite3"} {
		if got := DriverName(in); got != want {
			t.Fatalf("DriverName(%q) = %q, want %q", in, got, want)
		}
	}
}

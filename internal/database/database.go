// Package database centralises connection helpers.  SQL backends go through
// sqlx with go-sql-driver/mysql (MySQL, MariaDB), jackc/pgx (PostgreSQL),
// or mattn/go-sqlite3; the document backend goes through the official
// MongoDB driver.
//
// Public entry points:
//
//	Open(ctx, driver, dsn)                        – SQL with conservative pool sizes.
//	OpenWithOptions(ctx, driver, dsn, maxOpen, maxIdle) – fine-grained control.
//	Connect(ctx, uri)                             – MongoDB client.
//
// Every helper pings before returning so callers can fail fast during
// bootstrap.  Callers own the returned handle and must close it.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DriverName maps a configured driver to the database/sql name.  The
// config says "postgres"; pgx registers itself as "pgx".
func DriverName(driver string) string {
	if driver == "postgres" {
		return "pgx"
	}
	return driver
}

// Open returns a *sqlx.DB with sane defaults: 15 max open, 5 idle, and a
// 30-minute connection lifetime.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, driver, dsn, 15, 5)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle per pool.  SQLite
// is always pinned to one connection so in-memory databases are shared.
func OpenWithOptions(ctx context.Context, driver, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	driver = DriverName(driver)
	if driver == "mysql" {
		dsn = withParseTime(dsn)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}

	lifetime := 30 * time.Minute
	if driver == "sqlite3" {
		maxOpen, maxIdle, lifetime = 1, 1, 0
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driver, err)
	}
	return db, nil
}

// withParseTime makes the MySQL driver scan DATETIME into time.Time.
func withParseTime(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}

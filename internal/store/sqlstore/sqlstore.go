// internal/store/sqlstore/sqlstore.go
//
// sqlx implementation of store.Store for MySQL, PostgreSQL, and SQLite.
//
// Context
// -------
// The relational backend mirrors the document layout: one table per
// entity (blogs or books), plus users and entries.  Ids are UUID strings
// generated in Go so every driver shares one schema.  Queries are written
// with `?` and passed through sqlx Rebind, which turns them into `$n` for
// pgx and leaves them alone elsewhere.
//
// Schema changes run through goose (migrate.go).  Each entity keeps its
// own goose version table, so the blog and library apps can share one
// database.
//
// Notes
// -----
//   - Duplicate-key detection understands MySQL error 1062, PostgreSQL
//     SQLSTATE 23505, and SQLite's UNIQUE constraint code.
//   - Oxford commas, two spaces after periods.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/yanizio/folio/internal/store"
)

// tableName guards the only identifier interpolated into SQL.
var tableName = regexp.MustCompile(`^[a-z][a-z_]{0,62}$`)

// Store is a store.Store over one sqlx pool.
type Store struct {
	db      *sqlx.DB
	table   string
	records *records
	users   *users
	entries *entries
}

var _ store.Store = (*Store)(nil)

// New wires the store.  table is the entity prefix (blogs, books).
func New(db *sqlx.DB, table string) (*Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("sqlstore: invalid table name %q", table)
	}
	return &Store{
		db:      db,
		table:   table,
		records: &records{db: db, table: table},
		users:   &users{db: db},
		entries: &entries{db: db},
	}, nil
}

func (s *Store) Records() store.RecordStore { return s.records }
func (s *Store) Users() store.UserStore     { return s.users }
func (s *Store) Entries() store.EntryStore  { return s.entries }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close(context.Context) error { return s.db.Close() }

// isDuplicate reports a unique-constraint violation on any driver.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) &&
		(se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return true
	}
	return false
}

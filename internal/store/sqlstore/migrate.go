package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// dialect maps the sqlx driver name to goose's dialect.
func dialect(driver string) (database.Dialect, error) {
	switch driver {
	case "mysql":
		return database.DialectMySQL, nil
	case "pgx":
		return database.DialectPostgres, nil
	case "sqlite3":
		return database.DialectSQLite3, nil
	}
	return "", fmt.Errorf("sqlstore: no migrations for driver %q", driver)
}

// timestampType is the column type for created.
func timestampType(driver string) string {
	if driver == "pgx" {
		return "TIMESTAMPTZ"
	}
	return "DATETIME"
}

// Schema returns the statements of the initial migration for this store's
// driver, in order.
func (s *Store) Schema() []string {
	ts := timestampType(s.db.DriverName())
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + s.table + ` (
	id          VARCHAR(36)  NOT NULL PRIMARY KEY,
	title       VARCHAR(255) NOT NULL,
	author      VARCHAR(255) NOT NULL,
	genre       VARCHAR(255) NOT NULL,
	image       TEXT         NOT NULL,
	body        TEXT         NOT NULL,
	releasedate VARCHAR(64)  NOT NULL,
	status      VARCHAR(64)  NOT NULL,
	created     ` + ts + ` NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS users (
	id       VARCHAR(36)  NOT NULL PRIMARY KEY,
	username VARCHAR(191) NOT NULL UNIQUE,
	hash     VARCHAR(255) NOT NULL,
	salt     VARCHAR(255) NOT NULL,
	usertype VARCHAR(64)  NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS entries (
	id      VARCHAR(36)  NOT NULL PRIMARY KEY,
	title   VARCHAR(255) NOT NULL,
	author  VARCHAR(255) NOT NULL,
	genre   VARCHAR(255) NOT NULL,
	name    VARCHAR(255) NOT NULL,
	created ` + ts + ` NOT NULL
)`,
	}
}

// migrations lists the Go migrations in version order.  users and entries
// are shared, hence IF NOT EXISTS and no down step for them.
func (s *Store) migrations() []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1,
			&goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
				for _, stmt := range s.Schema() {
					if _, err := tx.ExecContext(ctx, stmt); err != nil {
						return err
					}
				}
				return nil
			}},
			&goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+s.table)
				return err
			}},
		),
	}
}

// Migrate brings the schema up to date.
func (s *Store) Migrate(ctx context.Context) error {
	d, err := dialect(s.db.DriverName())
	if err != nil {
		return err
	}
	versions, err := database.NewStore(d, "goose_"+s.table+"_version")
	if err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	p, err := goose.NewProvider("", s.db.DB, nil,
		goose.WithStore(versions),
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(s.migrations()...),
	)
	if err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return nil
}

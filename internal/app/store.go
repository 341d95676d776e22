package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/database"
	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/store"
	"github.com/yanizio/folio/internal/store/mongostore"
	"github.com/yanizio/folio/internal/store/sqlstore"
)

// OpenStore connects the configured backend, prepares its schema or
// indexes, and wraps it with the per-operation timeout.
func OpenStore(ctx context.Context, db config.Database, ent record.Entity, root string) (store.Store, error) {
	var st store.Store
	switch db.Driver {
	case "mongo":
		client, err := database.Connect(ctx, db.URI)
		if err != nil {
			return nil, err
		}
		ms := mongostore.New(client, client.Database(db.Name), ent.Prefix)
		if err := ms.EnsureIndexes(ctx); err != nil {
			_ = ms.Close(ctx)
			return nil, err
		}
		st = ms

	case "mysql", "postgres", "sqlite3":
		dsn := db.URI
		if db.Driver == "sqlite3" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			dsn = resolve(root, dsn)
		}
		conn, err := database.Open(ctx, db.Driver, dsn)
		if err != nil {
			return nil, err
		}
		ss, err := sqlstore.New(conn, ent.Prefix)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if err := ss.Migrate(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		st = ss

	default:
		return nil, fmt.Errorf("app: unsupported database driver %q", db.Driver)
	}
	return store.WithTimeout(st, db.Timeout), nil
}

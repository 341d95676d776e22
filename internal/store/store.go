// internal/store/store.go
//
// Persistence contracts shared by the document and SQL backends.
//
// Context
// -------
// Handlers depend only on these interfaces.  Two implementations exist:
//
//   - store/mongostore – MongoDB collections (the default document store).
//   - store/sqlstore   – sqlx over MySQL or SQLite, same semantics.
//
// Every call takes a context so request cancellation and the per-operation
// timeout reach the driver.  Backends translate driver conditions into the
// sentinel errors below; callers test them with errors.Is.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/yanizio/folio/internal/record"
)

var (
	// ErrNotFound is returned for missing or malformed ids and unknown
	// usernames.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when a unique key (username) already exists.
	ErrDuplicate = errors.New("store: duplicate key")
)

// User is one registered account.
type User struct {
	ID       string
	Username string
	Hash     string // argon2id derived key, base64
	Salt     string // random salt, base64
	UserType string
}

// RecordStore persists blog posts or books.
type RecordStore interface {
	All(ctx context.Context) ([]record.Record, error)
	ByStatus(ctx context.Context, status string) ([]record.Record, error)
	Get(ctx context.Context, id string) (*record.Record, error)
	Create(ctx context.Context, r *record.Record) error
	Update(ctx context.Context, id string, p record.Patch) (*record.Record, error)
	Delete(ctx context.Context, id string) error
}

// UserStore persists accounts.  Usernames are unique.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	ByUsername(ctx context.Context, username string) (*User, error)
}

// EntryStore persists library wishlist entries.
type EntryStore interface {
	All(ctx context.Context) ([]record.Entry, error)
	Create(ctx context.Context, e *record.Entry) error
}

// Store bundles the three collections of one app.
type Store interface {
	Records() RecordStore
	Users() UserStore
	Entries() EntryStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Now is the creation clock.  Tests replace it for stable output.
var Now = func() time.Time { return time.Now().UTC() }

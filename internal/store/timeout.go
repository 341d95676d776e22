package store

import (
	"context"
	"time"

	"github.com/yanizio/folio/internal/record"
)

// WithTimeout wraps s so every operation runs under its own deadline.  A
// zero or negative d returns s unchanged.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timed{inner: s, d: d}
}

type timed struct {
	inner Store
	d     time.Duration
}

func (t *timed) Records() RecordStore { return &timedRecords{t.inner.Records(), t.d} }
func (t *timed) Users() UserStore     { return &timedUsers{t.inner.Users(), t.d} }
func (t *timed) Entries() EntryStore  { return &timedEntries{t.inner.Entries(), t.d} }

func (t *timed) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Ping(ctx)
}

func (t *timed) Close(ctx context.Context) error { return t.inner.Close(ctx) }

type timedRecords struct {
	inner RecordStore
	d     time.Duration
}

func (t *timedRecords) All(ctx context.Context) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.All(ctx)
}

func (t *timedRecords) ByStatus(ctx context.Context, status string) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.ByStatus(ctx, status)
}

func (t *timedRecords) Get(ctx context.Context, id string) (*record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Get(ctx, id)
}

func (t *timedRecords) Create(ctx context.Context, r *record.Record) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Create(ctx, r)
}

func (t *timedRecords) Update(ctx context.Context, id string, p record.Patch) (*record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Update(ctx, id, p)
}

func (t *timedRecords) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Delete(ctx, id)
}

type timedUsers struct {
	inner UserStore
	d     time.Duration
}

func (t *timedUsers) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Create(ctx, u)
}

func (t *timedUsers) ByUsername(ctx context.Context, username string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.ByUsername(ctx, username)
}

type timedEntries struct {
	inner EntryStore
	d     time.Duration
}

func (t *timedEntries) All(ctx context.Context) ([]record.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.All(ctx)
}

func (t *timedEntries) Create(ctx context.Context, e *record.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Create(ctx, e)
}

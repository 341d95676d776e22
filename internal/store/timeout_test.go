package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yanizio/folio/internal/record"
)

// deadlineRecords records whether each call saw a deadline.
type deadlineRecords struct {
	RecordStore
	saw bool
}

func (d *deadlineRecords) Get(ctx context.Context, _ string) (*record.Record, error) {
	_, d.saw = ctx.Deadline()
	return nil, ErrNotFound
}

type fakeStore struct{ recs *deadlineRecords }

func (f *fakeStore) Records() RecordStore        { return f.recs }
func (f *fakeStore) Users() UserStore            { return nil }
func (f *fakeStore) Entries() EntryStore         { return nil }
func (f *fakeStore) Ping(context.Context) error  { return nil }
func (f *fakeStore) Close(context.Context) error { return nil }

func TestWithTimeoutAddsDeadline(t *testing.T) {
	fs := &fakeStore{recs: &deadlineRecords{}}
	s := WithTimeout(fs, time.Second)

	_, err := s.Records().Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, fs.recs.saw, "inner store saw no deadline")
}

func TestWithTimeoutZeroIsIdentity(t *testing.T) {
	fs := &fakeStore{recs: &deadlineRecords{}}
	assert.Same(t, Store(fs), WithTimeout(fs, 0))
}

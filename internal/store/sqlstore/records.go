package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/store"
)

const recordColumns = `id, title, author, genre, image, body, releasedate, status, created`

// recordRow is the scan target for one record row.
type recordRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Author      string    `db:"author"`
	Genre       string    `db:"genre"`
	Image       string    `db:"image"`
	Body        string    `db:"body"`
	ReleaseDate string    `db:"releasedate"`
	Status      string    `db:"status"`
	Created     time.Time `db:"created"`
}

func (r recordRow) toRecord() record.Record {
	return record.Record(r)
}

type records struct {
	db    *sqlx.DB
	table string
}

func (r *records) All(ctx context.Context) ([]record.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM ` + r.table + ` ORDER BY created`
	return r.selectRows(ctx, q)
}

func (r *records) ByStatus(ctx context.Context, status string) ([]record.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM ` + r.table + ` WHERE status = ? ORDER BY created`
	return r.selectRows(ctx, q, status)
}

func (r *records) selectRows(ctx context.Context, q string, args ...any) ([]record.Record, error) {
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("sqlstore: select %s: %w", r.table, err)
	}
	out := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (r *records) Get(ctx context.Context, id string) (*record.Record, error) {
	var row recordRow
	q := `SELECT ` + recordColumns + ` FROM ` + r.table + ` WHERE id = ?`
	err := r.db.GetContext(ctx, &row, r.db.Rebind(q), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get %s: %w", id, err)
	}
	rec := row.toRecord()
	return &rec, nil
}

func (r *records) Create(ctx context.Context, rec *record.Record) error {
	if rec.Created.IsZero() {
		rec.Created = store.Now()
	}
	id := uuid.NewString()
	q := `INSERT INTO ` + r.table + ` (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(q),
		id, rec.Title, rec.Author, rec.Genre, rec.Image, rec.Body,
		rec.ReleaseDate, rec.Status, rec.Created,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: insert %s: %w", r.table, err)
	}
	rec.ID = id
	return nil
}

// Update sets only the submitted columns, then re-reads the row.  MySQL
// reports zero affected rows for no-op updates, so existence is decided by
// the read.
func (r *records) Update(ctx context.Context, id string, p record.Patch) (*record.Record, error) {
	keys := p.Keys()
	if len(keys) == 0 {
		return r.Get(ctx, id)
	}
	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		sets = append(sets, k+" = ?")
		args = append(args, p[k])
	}
	args = append(args, id)

	q := `UPDATE ` + r.table + ` SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("sqlstore: update %s: %w", id, err)
	}
	return r.Get(ctx, id)
}

func (r *records) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM `+r.table+` WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", id, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

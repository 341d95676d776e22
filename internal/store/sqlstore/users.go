package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/store"
)

type users struct{ db *sqlx.DB }

func (u *users) Create(ctx context.Context, usr *store.User) error {
	id := uuid.NewString()
	_, err := u.db.ExecContext(ctx,
		u.db.Rebind(`INSERT INTO users (id, username, hash, salt, usertype) VALUES (?, ?, ?, ?, ?)`),
		id, usr.Username, usr.Hash, usr.Salt, usr.UserType,
	)
	if err != nil {
		if isDuplicate(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("sqlstore: insert user: %w", err)
	}
	usr.ID = id
	return nil
}

func (u *users) ByUsername(ctx context.Context, username string) (*store.User, error) {
	var row struct {
		ID       string `db:"id"`
		Username string `db:"username"`
		Hash     string `db:"hash"`
		Salt     string `db:"salt"`
		UserType string `db:"usertype"`
	}
	err := u.db.GetContext(ctx, &row,
		u.db.Rebind(`SELECT id, username, hash, salt, usertype FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: find user: %w", err)
	}
	return &store.User{
		ID:       row.ID,
		Username: row.Username,
		Hash:     row.Hash,
		Salt:     row.Salt,
		UserType: row.UserType,
	}, nil
}

type entries struct{ db *sqlx.DB }

type entryRow struct {
	ID      string    `db:"id"`
	Title   string    `db:"title"`
	Author  string    `db:"author"`
	Genre   string    `db:"genre"`
	Name    string    `db:"name"`
	Created time.Time `db:"created"`
}

func (e *entries) All(ctx context.Context) ([]record.Entry, error) {
	var rows []entryRow
	err := e.db.SelectContext(ctx, &rows,
		`SELECT id, title, author, genre, name, created FROM entries ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: select entries: %w", err)
	}
	out := make([]record.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, record.Entry(r))
	}
	return out, nil
}

func (e *entries) Create(ctx context.Context, en *record.Entry) error {
	if en.Created.IsZero() {
		en.Created = store.Now()
	}
	id := uuid.NewString()
	_, err := e.db.ExecContext(ctx,
		e.db.Rebind(`INSERT INTO entries (id, title, author, genre, name, created) VALUES (?, ?, ?, ?, ?, ?)`),
		id, en.Title, en.Author, en.Genre, en.Name, en.Created,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: insert entry: %w", err)
	}
	en.ID = id
	return nil
}

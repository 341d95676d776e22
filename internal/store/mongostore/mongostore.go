// internal/store/mongostore/mongostore.go
//
// MongoDB implementation of store.Store.
//
// Context
// -------
// One database holds three collections per app:
//
//   - <prefix> (blogs or books) – records,
//   - users                     – accounts, unique index on username,
//   - entries                   – library wishlist rows.
//
// Record documents use lower-case keys (`title`, `releasedate`, `created`),
// the layout of the earlier blog deployment, so its `blogs` collection in
// the RESTfulBlogApp database (conf/blog.yaml) loads unchanged.  Its
// accounts do not carry over: their password hashes use another scheme, so
// those users register again.
//
// Notes
// -----
//   - Malformed ObjectID hex strings are reported as store.ErrNotFound.
//   - Oxford commas, two spaces after periods.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yanizio/folio/internal/store"
)

// Collection names shared by both apps.
const (
	UsersCollection   = "users"
	EntriesCollection = "entries"
)

// Store is a store.Store backed by one Mongo database.
type Store struct {
	client  *mongo.Client
	records *records
	users   *users
	entries *entries
}

var _ store.Store = (*Store)(nil)

// New wires the three collections of db.  recordsColl is the entity prefix.
// It does not create indexes; call EnsureIndexes once at boot.
func New(client *mongo.Client, db *mongo.Database, recordsColl string) *Store {
	return &Store{
		client:  client,
		records: &records{coll: db.Collection(recordsColl)},
		users:   &users{coll: db.Collection(UsersCollection)},
		entries: &entries{coll: db.Collection(EntriesCollection)},
	}
}

// EnsureIndexes creates the unique username index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongostore: username index: %w", err)
	}
	return nil
}

func (s *Store) Records() store.RecordStore { return s.records }
func (s *Store) Users() store.UserStore     { return s.users }
func (s *Store) Entries() store.EntryStore  { return s.entries }

// Ping checks the primary.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/store"
)

type entryDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Title   string             `bson:"title"`
	Author  string             `bson:"author"`
	Genre   string             `bson:"genre"`
	Name    string             `bson:"name"`
	Created time.Time          `bson:"created"`
}

type entries struct{ coll *mongo.Collection }

func (e *entries) All(ctx context.Context) ([]record.Entry, error) {
	cur, err := e.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongostore: find entries: %w", err)
	}
	var docs []entryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongostore: decode entries: %w", err)
	}
	out := make([]record.Entry, 0, len(docs))
	for _, d := range docs {
		out = append(out, record.Entry{
			ID:      d.ID.Hex(),
			Title:   d.Title,
			Author:  d.Author,
			Genre:   d.Genre,
			Name:    d.Name,
			Created: d.Created,
		})
	}
	return out, nil
}

func (e *entries) Create(ctx context.Context, en *record.Entry) error {
	if en.Created.IsZero() {
		en.Created = store.Now()
	}
	d := entryDoc{
		ID:      primitive.NewObjectID(),
		Title:   en.Title,
		Author:  en.Author,
		Genre:   en.Genre,
		Name:    en.Name,
		Created: en.Created,
	}
	if _, err := e.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("mongostore: insert entry: %w", err)
	}
	en.ID = d.ID.Hex()
	return nil
}

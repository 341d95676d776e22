package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/store"
)

// recordDoc is the persisted shape of a record.
type recordDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Author      string             `bson:"author"`
	Genre       string             `bson:"genre"`
	Image       string             `bson:"image"`
	Body        string             `bson:"body"`
	ReleaseDate string             `bson:"releasedate"`
	Status      string             `bson:"status"`
	Created     time.Time          `bson:"created"`
}

func (d recordDoc) toRecord() record.Record {
	return record.Record{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Author:      d.Author,
		Genre:       d.Genre,
		Image:       d.Image,
		Body:        d.Body,
		ReleaseDate: d.ReleaseDate,
		Status:      d.Status,
		Created:     d.Created,
	}
}

type records struct{ coll *mongo.Collection }

func (r *records) All(ctx context.Context) ([]record.Record, error) {
	return r.find(ctx, bson.D{})
}

func (r *records) ByStatus(ctx context.Context, status string) ([]record.Record, error) {
	return r.find(ctx, bson.D{{Key: record.FieldStatus, Value: status}})
}

func (r *records) find(ctx context.Context, filter bson.D) ([]record.Record, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongostore: find %s: %w", r.coll.Name(), err)
	}
	var docs []recordDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongostore: decode %s: %w", r.coll.Name(), err)
	}
	out := make([]record.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRecord())
	}
	return out, nil
}

func (r *records) Get(ctx context.Context, id string) (*record.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	var d recordDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: get %s: %w", id, err)
	}
	rec := d.toRecord()
	return &rec, nil
}

func (r *records) Create(ctx context.Context, rec *record.Record) error {
	if rec.Created.IsZero() {
		rec.Created = store.Now()
	}
	d := recordDoc{
		ID:          primitive.NewObjectID(),
		Title:       rec.Title,
		Author:      rec.Author,
		Genre:       rec.Genre,
		Image:       rec.Image,
		Body:        rec.Body,
		ReleaseDate: rec.ReleaseDate,
		Status:      rec.Status,
		Created:     rec.Created,
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("mongostore: insert %s: %w", r.coll.Name(), err)
	}
	rec.ID = d.ID.Hex()
	return nil
}

// Update applies only the submitted keys with $set and returns the new
// document.
func (r *records) Update(ctx context.Context, id string, p record.Patch) (*record.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	keys := p.Keys()
	if len(keys) == 0 {
		return r.Get(ctx, id)
	}
	set := make(bson.D, 0, len(keys))
	for _, k := range keys {
		set = append(set, bson.E{Key: k, Value: p[k]})
	}

	var d recordDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: update %s: %w", id, err)
	}
	rec := d.toRecord()
	return &rec, nil
}

func (r *records) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("mongostore: delete %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

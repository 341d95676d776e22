package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yanizio/folio/internal/store"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Hash     string             `bson:"hash"`
	Salt     string             `bson:"salt"`
	UserType string             `bson:"usertype"`
}

type users struct{ coll *mongo.Collection }

func (u *users) Create(ctx context.Context, usr *store.User) error {
	d := userDoc{
		ID:       primitive.NewObjectID(),
		Username: usr.Username,
		Hash:     usr.Hash,
		Salt:     usr.Salt,
		UserType: usr.UserType,
	}
	if _, err := u.coll.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("mongostore: insert user: %w", err)
	}
	usr.ID = d.ID.Hex()
	return nil
}

func (u *users) ByUsername(ctx context.Context, username string) (*store.User, error) {
	var d userDoc
	err := u.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: find user: %w", err)
	}
	return &store.User{
		ID:       d.ID.Hex(),
		Username: d.Username,
		Hash:     d.Hash,
		Salt:     d.Salt,
		UserType: d.UserType,
	}, nil
}

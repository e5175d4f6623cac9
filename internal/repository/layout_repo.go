package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// LayoutRepo stores one layout per (session, page).
type LayoutRepo interface {
	Upsert(ctx context.Context, sessionID string, page int, layout *model.Layout) error
	Get(ctx context.Context, sessionID string, page int) (*model.Layout, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

type layoutDoc struct {
	SessionID string       `bson:"sessionId"`
	Page      int          `bson:"page"`
	Layout    model.Layout `bson:"layout"`
	UpdatedAt time.Time    `bson:"updatedAt"`
}

type layoutRepo struct {
	collection *mongo.Collection
}

func NewLayoutRepo(db *mongo.Database) LayoutRepo {
	return &layoutRepo{
		collection: db.Collection("layouts"),
	}
}

func (r *layoutRepo) Upsert(ctx context.Context, sessionID string, page int, layout *model.Layout) error {
	filter := bson.M{"sessionId": sessionID, "page": page}
	update := bson.M{"$set": layoutDoc{
		SessionID: sessionID,
		Page:      page,
		Layout:    *layout,
		UpdatedAt: time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *layoutRepo) Get(ctx context.Context, sessionID string, page int) (*model.Layout, error) {
	var doc layoutDoc
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID, "page": page}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Layout, nil
}

func (r *layoutRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}

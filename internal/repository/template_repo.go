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

// TemplateRepo stores the named starter layouts offered at upload time.
type TemplateRepo interface {
	List(ctx context.Context) ([]string, error)
	GetByName(ctx context.Context, name string) (*model.Layout, error)
	Upsert(ctx context.Context, name string, layout *model.Layout) error
}

type templateDoc struct {
	Name      string       `bson:"_id"`
	Layout    model.Layout `bson:"layout"`
	UpdatedAt time.Time    `bson:"updatedAt"`
}

type templateRepo struct {
	collection *mongo.Collection
}

func NewTemplateRepo(db *mongo.Database) TemplateRepo {
	return &templateRepo{
		collection: db.Collection("templates"),
	}
}

func (r *templateRepo) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []templateDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}

func (r *templateRepo) GetByName(ctx context.Context, name string) (*model.Layout, error) {
	var doc templateDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Layout, nil
}

func (r *templateRepo) Upsert(ctx context.Context, name string, layout *model.Layout) error {
	update := bson.M{"$set": templateDoc{
		Name:      name,
		Layout:    *layout,
		UpdatedAt: time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": name}, update, options.Update().SetUpsert(true))
	return err
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// AnswerKeyRepo stores answer keys, looked up by exam metadata or
// searched by subject code and name.
type AnswerKeyRepo interface {
	Create(ctx context.Context, key *model.AnswerKey) error
	FindByMetadata(ctx context.Context, metadata map[string]string) (*model.AnswerKey, error)
	Search(ctx context.Context, subjectCode, query string) ([]*model.AnswerKey, error)
}

type answerKeyRepo struct {
	collection *mongo.Collection
}

func NewAnswerKeyRepo(db *mongo.Database) AnswerKeyRepo {
	return &answerKeyRepo{
		collection: db.Collection("answer_keys"),
	}
}

func (r *answerKeyRepo) Create(ctx context.Context, key *model.AnswerKey) error {
	if key.ID == "" {
		key.ID = uuid.NewString()
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, key)
	return err
}

func (r *answerKeyRepo) FindByMetadata(ctx context.Context, metadata map[string]string) (*model.AnswerKey, error) {
	filter := bson.M{}
	for k, v := range metadata {
		filter["metadata."+k] = v
	}

	var key model.AnswerKey
	err := r.collection.FindOne(ctx, filter).Decode(&key)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *answerKeyRepo) Search(ctx context.Context, subjectCode, query string) ([]*model.AnswerKey, error) {
	filter := bson.M{}
	if subjectCode != "" {
		filter["subjectCode"] = subjectCode
	}
	if query != "" {
		filter["name"] = bson.M{"$regex": query, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var keys []*model.AnswerKey
	if err = cursor.All(ctx, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

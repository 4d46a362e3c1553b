package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cupid-backend/internal/domains/love/model"
)

const collectionName = "loves"

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection(collectionName),
	}
}

// Create stamps hai timestamps rồi insert; trả về hex của ObjectID
// mà driver đã gán.
func (r *mongoRepository) Create(ctx context.Context, love *model.LovePage) (string, error) {
	now := time.Now().UTC()
	love.CreatedAt = now
	love.UpdatedAt = now

	if love.Songs == nil {
		love.Songs = []string{}
	}

	result, err := r.collection.InsertOne(ctx, love)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type %T", model.ErrPersistence, result.InsertedID)
	}
	love.ID = oid

	return oid.Hex(), nil
}

// FindByID validate định dạng id TRƯỚC khi chạm database: id sai định dạng
// trả ErrInvalidID ngay, không tốn một round trip.
func (r *mongoRepository) FindByID(ctx context.Context, id string) (*model.LovePage, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	var love model.LovePage
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&love)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrLoveNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	return &love, nil
}

package resource

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"salon-api/internal/apperr"
)

// Repository stores documents of type T. Implementations report a missing
// document with apperr.ErrNotFound and a unique-index violation with
// apperr.ErrConflict.
type Repository[T any] interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, doc *T) error
	Update(ctx context.Context, id primitive.ObjectID, doc *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoRepository[T any] struct {
	col  *mongo.Collection
	name string
}

func NewRepository[T any](col *mongo.Collection, name string) *MongoRepository[T] {
	return &MongoRepository[T]{col: col, name: name}
}

func (r *MongoRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(r.name + " not found")
		}
		return nil, err
	}
	return &doc, nil
}

// First returns the first document in natural order, or nil when the
// collection is empty.
func (r *MongoRepository[T]) First(ctx context.Context) (*T, error) {
	var doc T
	if err := r.col.FindOne(ctx, bson.D{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *MongoRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository[T]) Insert(ctx context.Context, doc *T) error {
	_, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict(r.name+" already exists", err)
	}
	return err
}

// Update writes every field of doc except _id and createdAt with $set.
func (r *MongoRepository[T]) Update(ctx context.Context, id primitive.ObjectID, doc *T) error {
	set, err := toSet(doc)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict(r.name+" already exists", err)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound(r.name + " not found")
	}
	return nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound(r.name + " not found")
	}
	return nil
}

func toSet(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	delete(set, "_id")
	delete(set, "createdAt")
	return set, nil
}

// File: database/repository/content/crud.go
package contentRepo

import (
	"context"
	"fmt"
	"time"

	"oasis/database/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoRepo[T, PT]) Create(ctx context.Context, doc *T) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	d := PT(doc)
	id := d.DocID()
	if id == "" {
		id = uuid.New().String()
	}
	d.Stamp(id, time.Time{}, time.Now().UTC())

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.coll.Name(), repository.Translate(err))
	}
	return nil
}

func (r *mongoRepo[T, PT]) Replace(ctx context.Context, doc *T) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	d := PT(doc)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": d.DocID()}, doc)
	if err != nil {
		return fmt.Errorf("failed to replace %s in %s: %w", d.DocID(), r.coll.Name(), repository.Translate(err))
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRepo[T, PT]) SetField(ctx context.Context, id, field string, value any) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{field: value, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update %s in %s: %w", id, r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRepo[T, PT]) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s from %s: %w", id, r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRepo[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return r.FindBy(ctx, "id", id)
}

func (r *mongoRepo[T, PT]) FindBy(ctx context.Context, field string, value any) (*T, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var doc T
	if err := r.coll.FindOne(ctx, bson.M{field: value}).Decode(&doc); err != nil {
		return nil, repository.Translate(err)
	}
	return &doc, nil
}

func (r *mongoRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", r.coll.Name(), err)
	}
	return docs, nil
}

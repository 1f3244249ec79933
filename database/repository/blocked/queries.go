// File: database/repository/blocked/queries.go
package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"oasis/database/repository"
	"oasis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBlockedDateRepo) GetByID(ctx context.Context, id string) (*models.BlockedDate, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoBlockedDateRepo) GetByDate(ctx context.Context, date time.Time) (*models.BlockedDate, error) {
	return r.findOne(ctx, bson.M{"date": models.NormalizeDate(date)})
}

func (r *mongoBlockedDateRepo) GetActiveByDate(ctx context.Context, date time.Time) (*models.BlockedDate, error) {
	return r.findOne(ctx, bson.M{"date": models.NormalizeDate(date), "isActive": true})
}

func (r *mongoBlockedDateRepo) List(ctx context.Context) ([]models.BlockedDate, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBlockedDateRepo) ListActive(ctx context.Context, from time.Time) ([]models.BlockedDate, error) {
	filter := bson.M{"isActive": true}
	if !from.IsZero() {
		filter["date"] = bson.M{"$gte": models.NormalizeDate(from)}
	}
	return r.find(ctx, filter)
}

func (r *mongoBlockedDateRepo) findOne(ctx context.Context, filter bson.M) (*models.BlockedDate, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var b models.BlockedDate
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		return nil, repository.Translate(err)
	}
	return &b, nil
}

func (r *mongoBlockedDateRepo) find(ctx context.Context, filter bson.M) ([]models.BlockedDate, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked dates: %w", err)
	}
	defer cursor.Close(ctx)

	blocks := []models.BlockedDate{}
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding blocked dates: %w", err)
	}
	return blocks, nil
}

// File: database/repository/blocked/crud.go
package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"oasis/database/repository"
	"oasis/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoBlockedDateRepo) Create(ctx context.Context, b *models.BlockedDate) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Version = 1

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create blocked date: %w", repository.Translate(err))
	}
	return nil
}

func (r *mongoBlockedDateRepo) Update(ctx context.Context, b *models.BlockedDate) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	b.UpdatedAt = time.Now().UTC()
	filter := bson.M{"id": b.ID, "version": b.Version}
	update := bson.M{
		"$set": bson.M{
			"reason":           b.Reason,
			"blockedTimeSlots": b.BlockedTimeSlots,
			"isFullDayBlocked": b.IsFullDayBlocked,
			"isActive":         b.IsActive,
			"updatedAt":        b.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update blocked date %s: %w", b.ID, repository.Translate(err))
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, b.ID)
	}
	b.Version++
	return nil
}

func (r *mongoBlockedDateRepo) DeleteVersion(ctx context.Context, id string, version int) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "version": version})
	if err != nil {
		return fmt.Errorf("failed to delete blocked date %s: %w", id, repository.Translate(err))
	}
	if res.DeletedCount == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

func (r *mongoBlockedDateRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete blocked date %s: %w", id, repository.Translate(err))
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// missOrConflict tells a vanished record apart from a stale version.
func (r *mongoBlockedDateRepo) missOrConflict(ctx context.Context, id string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check blocked date %s: %w", id, repository.Translate(err))
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrVersionConflict
}

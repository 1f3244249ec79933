// File: database/repository/settings/crud.go
package settingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oasis/database/repository"
	"oasis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSettingsRepo) GetOrInitialize(ctx context.Context) (*models.BookingSettings, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": models.SettingsKey}
	update := bson.M{"$setOnInsert": models.DefaultBookingSettings(time.Now().UTC())}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var s models.BookingSettings
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s)
	if errors.Is(repository.Translate(err), repository.ErrDuplicateKey) {
		// Lost the upsert race; the winner's document is there now.
		err = r.coll.FindOne(ctx, filter).Decode(&s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking settings: %w", repository.Translate(err))
	}
	return &s, nil
}

func (r *mongoSettingsRepo) Replace(ctx context.Context, s *models.BookingSettings) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	s.UpdatedAt = time.Now().UTC()
	filter := bson.M{"id": models.SettingsKey, "version": s.Version}
	update := bson.M{
		"$set": bson.M{
			"timeSlots":              s.TimeSlots,
			"minAdvanceBookingHours": s.MinAdvanceBookingHours,
			"maxAdvanceBookingDays":  s.MaxAdvanceBookingDays,
			"isEnabled":              s.IsEnabled,
			"weeklySchedule":         s.WeeklySchedule,
			"updatedAt":              s.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking settings: %w", repository.Translate(err))
	}
	if res.MatchedCount == 0 {
		return repository.ErrVersionConflict
	}
	s.Version++
	return nil
}

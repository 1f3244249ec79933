// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"oasis/database/repository"
	"oasis/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Active = a.Status.Occupies()

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create appointment: %w", repository.Translate(err))
	}
	return nil
}

func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"status":    status,
		"active":    status.Occupies(),
		"updatedAt": now,
	}
	update := bson.M{"$set": set}
	if status == models.StatusCancelled {
		set["cancelledAt"] = now
		set["cancellationReason"] = reason
	} else {
		update["$unset"] = bson.M{"cancelledAt": "", "cancellationReason": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, repository.Translate(err))
	}
	return &a, nil
}

func (r *mongoAppointmentRepo) MarkReminderSent(ctx context.Context, id string, channel models.Channel) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	field := "emailReminderSent"
	if channel == models.ChannelSMS {
		field = "smsReminderSent"
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{field: true, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to mark reminder for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoAppointmentRepo) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, 30*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear appointments: %w", err)
	}
	return res.DeletedCount, nil
}

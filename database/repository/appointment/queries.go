// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"oasis/database/repository"
	"oasis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var a models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, repository.Translate(err)
	}
	return &a, nil
}

func (r *mongoAppointmentRepo) List(ctx context.Context, f models.AppointmentFilter) ([]models.Appointment, error) {
	filter := bson.M{}
	if f.Date != nil {
		filter["appointmentDate"] = models.NormalizeDate(*f.Date)
	} else if f.From != nil || f.To != nil {
		rng := bson.M{}
		if f.From != nil {
			rng["$gte"] = models.NormalizeDate(*f.From)
		}
		if f.To != nil {
			rng["$lte"] = models.NormalizeDate(*f.To)
		}
		filter["appointmentDate"] = rng
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return r.find(ctx, filter)
}

func (r *mongoAppointmentRepo) ListActiveByDate(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{
		"appointmentDate": models.NormalizeDate(date),
		"active":          true,
	})
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: 1}, {Key: "slotKey", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

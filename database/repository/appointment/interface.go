// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"oasis/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository persists appointments. The partial unique index on
// (appointmentDate, slotKey) over active documents is what rules out double booking;
// writes that would violate it fail with repository.ErrDuplicateKey.
type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	// ListActiveByDate returns the appointments holding a slot on date.
	ListActiveByDate(ctx context.Context, date time.Time) ([]models.Appointment, error)
	// UpdateStatus moves the appointment to status and keeps the active flag in step.
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error)
	MarkReminderSent(ctx context.Context, id string, channel models.Channel) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a MongoDB AppointmentRepository.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: db.Collection(CollectionName),
	}
}

// CollectionName is the appointments collection.
const CollectionName = "appointments"

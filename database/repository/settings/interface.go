// File: database/repository/settings/interface.go
package settingsRepo

import (
	"context"

	"oasis/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsRepository persists the booking settings singleton.
type SettingsRepository interface {
	// GetOrInitialize returns the settings, atomically creating the default document when
	// none exists. It is idempotent: concurrent first calls observe a single document.
	GetOrInitialize(ctx context.Context) (*models.BookingSettings, error)
	// Replace writes s if the stored version still equals s.Version and bumps the version.
	// It returns repository.ErrVersionConflict otherwise.
	Replace(ctx context.Context, s *models.BookingSettings) error
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo constructs a MongoDB SettingsRepository.
func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepo{
		coll: db.Collection("booking_settings"),
	}
}

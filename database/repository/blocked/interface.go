// File: database/repository/blocked/interface.go
package blockedRepo

import (
	"context"
	"time"

	"oasis/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BlockedDateRepository persists date overrides. Dates are normalized before they reach
// the repository; the unique date index keeps one record per date.
type BlockedDateRepository interface {
	Create(ctx context.Context, b *models.BlockedDate) error
	GetByID(ctx context.Context, id string) (*models.BlockedDate, error)
	// GetByDate returns the record for date whatever its active state.
	GetByDate(ctx context.Context, date time.Time) (*models.BlockedDate, error)
	// GetActiveByDate returns the record for date only when it is active.
	GetActiveByDate(ctx context.Context, date time.Time) (*models.BlockedDate, error)
	List(ctx context.Context) ([]models.BlockedDate, error)
	ListActive(ctx context.Context, from time.Time) ([]models.BlockedDate, error)
	// Update writes b when the stored version equals b.Version and bumps the version.
	Update(ctx context.Context, b *models.BlockedDate) error
	// DeleteVersion removes the record only if it still has the given version.
	DeleteVersion(ctx context.Context, id string, version int) error
	Delete(ctx context.Context, id string) error
}

type mongoBlockedDateRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedDateRepo constructs a MongoDB BlockedDateRepository.
func NewMongoBlockedDateRepo(db *mongo.Database) BlockedDateRepository {
	return &mongoBlockedDateRepo{
		coll: db.Collection(CollectionName),
	}
}

// CollectionName is the blocked dates collection.
const CollectionName = "blocked_dates"

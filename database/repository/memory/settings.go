package memory

import (
	"context"
	"sync"
	"time"

	"oasis/database/repository"
	settingsRepo "oasis/database/repository/settings"
	"oasis/models"
)

type SettingsRepo struct {
	mu  sync.Mutex
	doc *models.BookingSettings
}

var _ settingsRepo.SettingsRepository = (*SettingsRepo)(nil)

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{}
}

func (r *SettingsRepo) GetOrInitialize(_ context.Context) (*models.BookingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc == nil {
		d := models.DefaultBookingSettings(time.Now().UTC())
		r.doc = &d
	}
	return clone(r.doc), nil
}

func (r *SettingsRepo) Replace(_ context.Context, s *models.BookingSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc == nil || r.doc.Version != s.Version {
		return repository.ErrVersionConflict
	}
	s.UpdatedAt = time.Now().UTC()
	s.ID = models.SettingsKey
	s.CreatedAt = r.doc.CreatedAt
	s.Version++
	r.doc = clone(s)
	return nil
}

// Count reports how many settings documents exist (0 or 1).
func (r *SettingsRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doc == nil {
		return 0
	}
	return 1
}

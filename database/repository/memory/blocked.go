package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"oasis/database/repository"
	blockedRepo "oasis/database/repository/blocked"
	"oasis/models"

	"github.com/google/uuid"
)

type BlockedDateRepo struct {
	mu     sync.RWMutex
	byID   map[string]*models.BlockedDate
	byDate map[time.Time]string
}

var _ blockedRepo.BlockedDateRepository = (*BlockedDateRepo)(nil)

func NewBlockedDateRepo() *BlockedDateRepo {
	return &BlockedDateRepo{
		byID:   make(map[string]*models.BlockedDate),
		byDate: make(map[time.Time]string),
	}
}

func (r *BlockedDateRepo) Create(_ context.Context, b *models.BlockedDate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.Date = models.NormalizeDate(b.Date)
	if _, taken := r.byDate[b.Date]; taken {
		return repository.ErrDuplicateKey
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Version = 1

	r.byID[b.ID] = clone(b)
	r.byDate[b.Date] = b.ID
	return nil
}

func (r *BlockedDateRepo) GetByID(_ context.Context, id string) (*models.BlockedDate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(b), nil
}

func (r *BlockedDateRepo) GetByDate(_ context.Context, date time.Time) (*models.BlockedDate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDate[models.NormalizeDate(date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *BlockedDateRepo) GetActiveByDate(ctx context.Context, date time.Time) (*models.BlockedDate, error) {
	b, err := r.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (r *BlockedDateRepo) List(_ context.Context) ([]models.BlockedDate, error) {
	return r.collect(func(*models.BlockedDate) bool { return true }), nil
}

func (r *BlockedDateRepo) ListActive(_ context.Context, from time.Time) ([]models.BlockedDate, error) {
	from = models.NormalizeDate(from)
	return r.collect(func(b *models.BlockedDate) bool {
		return b.IsActive && !b.Date.Before(from)
	}), nil
}

func (r *BlockedDateRepo) collect(keep func(*models.BlockedDate) bool) []models.BlockedDate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.BlockedDate{}
	for _, b := range r.byID {
		if keep(b) {
			out = append(out, *clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *BlockedDateRepo) Update(_ context.Context, b *models.BlockedDate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.Version != b.Version {
		return repository.ErrVersionConflict
	}
	b.Date = cur.Date
	b.CreatedAt = cur.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	b.Version++
	r.byID[b.ID] = clone(b)
	return nil
}

func (r *BlockedDateRepo) DeleteVersion(_ context.Context, id string, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.Version != version {
		return repository.ErrVersionConflict
	}
	r.deleteLocked(cur)
	return nil
}

func (r *BlockedDateRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.deleteLocked(cur)
	return nil
}

func (r *BlockedDateRepo) deleteLocked(b *models.BlockedDate) {
	delete(r.byDate, b.Date)
	delete(r.byID, b.ID)
}

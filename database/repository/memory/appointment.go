package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"oasis/database/repository"
	appointmentRepo "oasis/database/repository/appointment"
	"oasis/models"

	"github.com/google/uuid"
)

type slotKey struct {
	date time.Time
	slot models.Slot
}

type AppointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]*models.Appointment
	// held mirrors the partial unique index over active appointments.
	held map[slotKey]string
}

var _ appointmentRepo.AppointmentRepository = (*AppointmentRepo)(nil)

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{
		byID: make(map[string]*models.Appointment),
		held: make(map[slotKey]string),
	}
}

func keyOf(a *models.Appointment) slotKey {
	return slotKey{date: models.NormalizeDate(a.AppointmentDate), slot: a.SlotKey}
}

func (r *AppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.AppointmentDate = models.NormalizeDate(a.AppointmentDate)
	a.Active = a.Status.Occupies()
	if a.Active {
		if _, taken := r.held[keyOf(a)]; taken {
			return repository.ErrDuplicateKey
		}
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	r.byID[a.ID] = clone(a)
	if a.Active {
		r.held[keyOf(a)] = a.ID
	}
	return nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(a), nil
}

func (r *AppointmentRepo) List(_ context.Context, f models.AppointmentFilter) ([]models.Appointment, error) {
	return r.collect(func(a *models.Appointment) bool {
		switch {
		case f.Date != nil && !a.AppointmentDate.Equal(models.NormalizeDate(*f.Date)):
			return false
		case f.From != nil && a.AppointmentDate.Before(models.NormalizeDate(*f.From)):
			return false
		case f.To != nil && a.AppointmentDate.After(models.NormalizeDate(*f.To)):
			return false
		case f.Status != "" && a.Status != f.Status:
			return false
		}
		return true
	}), nil
}

func (r *AppointmentRepo) ListActiveByDate(_ context.Context, date time.Time) ([]models.Appointment, error) {
	d := models.NormalizeDate(date)
	return r.collect(func(a *models.Appointment) bool {
		return a.Active && a.AppointmentDate.Equal(d)
	}), nil
}

func (r *AppointmentRepo) collect(keep func(*models.Appointment) bool) []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, *clone(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppointmentDate.Equal(out[j].AppointmentDate) {
			return out[i].AppointmentDate.Before(out[j].AppointmentDate)
		}
		return out[i].SlotKey < out[j].SlotKey
	})
	return out
}

func (r *AppointmentRepo) UpdateStatus(_ context.Context, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	k := keyOf(cur)
	if status.Occupies() && !cur.Active {
		if holder, taken := r.held[k]; taken && holder != id {
			return nil, repository.ErrDuplicateKey
		}
	}

	next := clone(cur)
	now := time.Now().UTC()
	next.Status = status
	next.Active = status.Occupies()
	next.UpdatedAt = now
	if status == models.StatusCancelled {
		next.CancelledAt = &now
		next.CancellationReason = reason
	} else {
		next.CancelledAt = nil
		next.CancellationReason = ""
	}

	r.byID[id] = next
	if next.Active {
		r.held[k] = id
	} else if r.held[k] == id {
		delete(r.held, k)
	}
	return clone(next), nil
}

func (r *AppointmentRepo) MarkReminderSent(_ context.Context, id string, channel models.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if channel == models.ChannelSMS {
		a.SMSReminderSent = true
	} else {
		a.EmailReminderSent = true
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *AppointmentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.held[keyOf(a)] == id {
		delete(r.held, keyOf(a))
	}
	delete(r.byID, id)
	return nil
}

func (r *AppointmentRepo) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.byID))
	r.byID = make(map[string]*models.Appointment)
	r.held = make(map[slotKey]string)
	return n, nil
}

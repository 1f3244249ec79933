package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"oasis/database/repository"
	blockedRepo "oasis/database/repository/blocked"
	"oasis/models"
	"oasis/utils"

	"go.uber.org/zap"
)

// BlockUpgradePolicy decides what a full-day request does to a date that already has a
// block record.
type BlockUpgradePolicy string

const (
	// PolicyReject refuses the request with ErrAlreadyBlocked.
	PolicyReject BlockUpgradePolicy = "reject"
	// PolicyUpgrade turns the existing record into an active full-day block.
	PolicyUpgrade BlockUpgradePolicy = "upgrade"
)

// FullDayOnExistingPolicy is the policy used unless a service overrides it.
const FullDayOnExistingPolicy = PolicyReject

const maxCASAttempts = 3

// errRetry marks an attempt that lost a race and should re-read.
var errRetry = errors.New("retry")

// DefaultBlockedDateService implements BlockedDateService with compare-and-swap writes.
type DefaultBlockedDateService struct {
	Repo              blockedRepo.BlockedDateRepository
	Cache             AvailabilityCache
	FullDayOnExisting BlockUpgradePolicy
	Logger            *zap.Logger
}

func NewBlockedDateService(repo blockedRepo.BlockedDateRepository, cache AvailabilityCache, logger *zap.Logger) *DefaultBlockedDateService {
	if cache == nil {
		cache = NoopAvailabilityCache{}
	}
	return &DefaultBlockedDateService{
		Repo:              repo,
		Cache:             cache,
		FullDayOnExisting: FullDayOnExistingPolicy,
		Logger:            logger,
	}
}

// withCAS runs attempt until it stops reporting a lost race.
func withCAS(ctx context.Context, attempt func() error) error {
	for i := 0; i < maxCASAttempts; i++ {
		err := attempt()
		if !errors.Is(err, errRetry) && !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 5 * time.Millisecond):
		}
	}
	return ErrConcurrentModification
}

func parseDateField(field, raw string) (time.Time, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, &utils.ValidationError{Field: field, Message: err.Error()}
	}
	return d, nil
}

// blockSlots checks every label and collapses labels naming the same time, keeping the
// first spelling. Schedule templates stay strict; a block request only expresses a set.
func blockSlots(field string, labels []string) ([]string, error) {
	for _, l := range labels {
		if _, err := models.ParseSlot(l); err != nil {
			return nil, &utils.ValidationError{Field: field, Message: err.Error()}
		}
	}
	return models.UnionSlots(nil, labels), nil
}

func (s *DefaultBlockedDateService) BlockDate(ctx context.Context, rawDate, reason string, slots []string) (*models.BlockedDate, error) {
	date, err := parseDateField("date", rawDate)
	if err != nil {
		return nil, err
	}
	slots, err = blockSlots("timeSlots", slots)
	if err != nil {
		return nil, err
	}
	return s.blockDate(ctx, date, strings.TrimSpace(reason), slots)
}

func (s *DefaultBlockedDateService) blockDate(ctx context.Context, date time.Time, reason string, slots []string) (*models.BlockedDate, error) {
	fullDay := len(slots) == 0
	var result *models.BlockedDate

	err := withCAS(ctx, func() error {
		existing, err := s.Repo.GetByDate(ctx, date)
		if errors.Is(err, repository.ErrNotFound) {
			b := &models.BlockedDate{
				Date:             date,
				Reason:           reason,
				BlockedTimeSlots: append([]string{}, slots...),
				IsFullDayBlocked: fullDay,
				IsActive:         true,
			}
			switch err := s.Repo.Create(ctx, b); {
			case errors.Is(err, repository.ErrDuplicateKey):
				// Someone created the date first; merge into theirs.
				return errRetry
			case err != nil:
				return err
			}
			result = b
			return nil
		}
		if err != nil {
			return err
		}

		if fullDay {
			if s.FullDayOnExisting != PolicyUpgrade {
				return ErrAlreadyBlocked
			}
			existing.IsFullDayBlocked = true
			existing.BlockedTimeSlots = []string{}
		} else {
			merged := models.UnionSlots(existing.BlockedTimeSlots, slots)
			unchanged := len(merged) == len(existing.BlockedTimeSlots) &&
				!existing.IsFullDayBlocked && existing.IsActive &&
				(reason == "" || reason == existing.Reason)
			if unchanged {
				result = existing
				return nil
			}
			existing.BlockedTimeSlots = merged
			existing.IsFullDayBlocked = false
		}
		existing.IsActive = true
		if reason != "" {
			existing.Reason = reason
		}
		if err := s.update(ctx, existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, date)
	s.Logger.Info("date blocked",
		zap.String("date", models.FormatDate(date)),
		zap.Bool("fullDay", result.IsFullDayBlocked),
		zap.Strings("slots", result.BlockedTimeSlots))
	return result, nil
}

// update writes b, treating a vanished record as a lost race.
func (s *DefaultBlockedDateService) update(ctx context.Context, b *models.BlockedDate) error {
	err := s.Repo.Update(ctx, b)
	if errors.Is(err, repository.ErrNotFound) {
		return errRetry
	}
	return err
}

func (s *DefaultBlockedDateService) BlockDatesBulk(ctx context.Context, req models.BulkBlockRequest) (*models.BulkBlockResult, error) {
	slots, err := blockSlots("timeSlots", req.TimeSlots)
	if err != nil {
		return nil, err
	}

	res := &models.BulkBlockResult{
		Blocked: []models.BlockedDate{},
		Skipped: []string{},
		Failed:  []models.BulkBlockFailed{},
	}
	reason := strings.TrimSpace(req.Reason)
	for _, raw := range req.Dates {
		date, err := models.ParseDate(raw)
		if err != nil {
			res.Failed = append(res.Failed, models.BulkBlockFailed{Date: raw, Error: err.Error()})
			continue
		}
		b, err := s.blockDate(ctx, date, reason, slots)
		switch {
		case errors.Is(err, ErrAlreadyBlocked):
			res.Skipped = append(res.Skipped, models.FormatDate(date))
		case err != nil:
			res.Failed = append(res.Failed, models.BulkBlockFailed{Date: raw, Error: err.Error()})
		default:
			res.Blocked = append(res.Blocked, *b)
		}
	}

	res.Summary = models.BulkBlockSummary{
		Requested: len(req.Dates),
		Blocked:   len(res.Blocked),
		Skipped:   len(res.Skipped),
		Failed:    len(res.Failed),
	}
	return res, nil
}

func (s *DefaultBlockedDateService) RemoveSlot(ctx context.Context, id, slot string) (*models.BlockedDate, bool, error) {
	if _, err := models.ParseSlot(slot); err != nil {
		return nil, false, &utils.ValidationError{Field: "slot", Message: err.Error()}
	}

	var (
		result  *models.BlockedDate
		deleted bool
	)
	err := withCAS(ctx, func() error {
		b, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "blocked date", id)
		}
		if b.IsFullDayBlocked {
			return ErrFullDayBlock
		}
		remaining, removed := models.RemoveSlot(b.BlockedTimeSlots, slot)
		if !removed {
			result = b
			return nil
		}
		if len(remaining) == 0 {
			if err := s.Repo.DeleteVersion(ctx, b.ID, b.Version); err != nil {
				return notFound(err, "blocked date", id)
			}
			result, deleted = b, true
			result.BlockedTimeSlots = remaining
			return nil
		}
		b.BlockedTimeSlots = remaining
		if err := s.Repo.Update(ctx, b); err != nil {
			return notFound(err, "blocked date", id)
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	s.Cache.Invalidate(ctx, result.Date)
	return result, deleted, nil
}

func (s *DefaultBlockedDateService) ToggleActive(ctx context.Context, id string) (*models.BlockedDate, error) {
	return s.mutate(ctx, id, func(b *models.BlockedDate) {
		b.IsActive = !b.IsActive
	})
}

func (s *DefaultBlockedDateService) Update(ctx context.Context, id string, req models.UpdateBlockedDateRequest) (*models.BlockedDate, error) {
	var slots []string
	if req.BlockedTimeSlots != nil {
		var err error
		if slots, err = blockSlots("blockedTimeSlots", *req.BlockedTimeSlots); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, id, func(b *models.BlockedDate) {
		if req.Reason != nil {
			b.Reason = strings.TrimSpace(*req.Reason)
		}
		if req.IsActive != nil {
			b.IsActive = *req.IsActive
		}
		if req.BlockedTimeSlots != nil {
			b.BlockedTimeSlots = slots
			b.IsFullDayBlocked = len(b.BlockedTimeSlots) == 0
		}
	})
}

// mutate applies fn to the current record under compare-and-swap.
func (s *DefaultBlockedDateService) mutate(ctx context.Context, id string, fn func(*models.BlockedDate)) (*models.BlockedDate, error) {
	var result *models.BlockedDate
	err := withCAS(ctx, func() error {
		b, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "blocked date", id)
		}
		fn(b)
		if err := s.Repo.Update(ctx, b); err != nil {
			return notFound(err, "blocked date", id)
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, result.Date)
	return result, nil
}

func (s *DefaultBlockedDateService) Delete(ctx context.Context, id string) error {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "blocked date", id)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return notFound(err, "blocked date", id)
	}
	s.Cache.Invalidate(ctx, b.Date)
	return nil
}

func (s *DefaultBlockedDateService) List(ctx context.Context) ([]models.BlockedDate, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultBlockedDateService) ListActive(ctx context.Context) ([]models.ActiveBlockedDate, error) {
	blocks, err := s.Repo.ListActive(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	out := make([]models.ActiveBlockedDate, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, models.ActiveBlockedDate{
			Date:             models.FormatDate(b.Date),
			IsFullDayBlocked: b.IsFullDayBlocked,
			BlockedTimeSlots: nonNil(b.BlockedTimeSlots),
		})
	}
	return out, nil
}

func (s *DefaultBlockedDateService) Check(ctx context.Context, rawDate string) (*models.BlockCheck, error) {
	date, err := parseDateField("date", rawDate)
	if err != nil {
		return nil, err
	}
	res := &models.BlockCheck{Date: models.FormatDate(date), BlockedTimeSlots: []string{}}

	b, err := s.Repo.GetActiveByDate(ctx, date)
	if errors.Is(err, repository.ErrNotFound) {
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	res.IsBlocked = true
	res.IsFullDayBlocked = b.IsFullDayBlocked
	res.BlockedTimeSlots = nonNil(b.BlockedTimeSlots)
	res.Reason = b.Reason
	return res, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

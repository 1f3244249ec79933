package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oasis/database/repository"
	blockedRepo "oasis/database/repository/blocked"
	"oasis/models"
)

const notWorkingDayMessage = "Not a working day"

// DefaultAvailabilityEngine computes bookable-by-schedule slots for a date.
type DefaultAvailabilityEngine struct {
	Resolver ScheduleResolver
	Blocked  blockedRepo.BlockedDateRepository
	Cache    AvailabilityCache
}

func NewAvailabilityEngine(resolver ScheduleResolver, blocked blockedRepo.BlockedDateRepository, cache AvailabilityCache) *DefaultAvailabilityEngine {
	if cache == nil {
		cache = NoopAvailabilityCache{}
	}
	return &DefaultAvailabilityEngine{Resolver: resolver, Blocked: blocked, Cache: cache}
}

func (e *DefaultAvailabilityEngine) ComputeAvailableSlots(ctx context.Context, date time.Time) (*models.Availability, error) {
	d := models.NormalizeDate(date)
	gen := e.Cache.Generation(ctx, d)
	if a, ok := e.Cache.Get(ctx, d, gen); ok {
		return a, nil
	}
	return e.recompute(ctx, d, gen)
}

func (e *DefaultAvailabilityEngine) RecomputeAvailableSlots(ctx context.Context, date time.Time) (*models.Availability, error) {
	d := models.NormalizeDate(date)
	return e.recompute(ctx, d, e.Cache.Generation(ctx, d))
}

// recompute stores the result under gen, which the caller read before computing. A block
// mutation that lands meanwhile advances the generation and the stale value is never served.
func (e *DefaultAvailabilityEngine) recompute(ctx context.Context, d time.Time, gen string) (*models.Availability, error) {
	a, err := e.compute(ctx, d)
	if err != nil {
		return nil, err
	}
	e.Cache.Set(ctx, d, gen, a)
	return a, nil
}

func (e *DefaultAvailabilityEngine) compute(ctx context.Context, d time.Time) (*models.Availability, error) {
	day, err := e.Resolver.ResolveDaySchedule(ctx, d)
	if err != nil {
		return nil, err
	}

	a := &models.Availability{
		Date:           models.FormatDate(d),
		IsWorkingDay:   day.IsWorkingDay,
		AvailableSlots: []string{},
		BlockedSlots:   []string{},
		AllDaySlots:    day.NominalSlots,
	}
	if !day.IsWorkingDay {
		a.Message = notWorkingDayMessage
		return a, nil
	}

	block, err := e.Blocked.GetActiveByDate(ctx, d)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		a.AvailableSlots = append(a.AvailableSlots, day.NominalSlots...)
		return a, nil
	case err != nil:
		return nil, fmt.Errorf("load blocked date: %w", err)
	}

	a.Reason = block.Reason
	if block.IsFullDayBlocked {
		a.IsFullDayBlocked = true
		a.BlockedSlots = append(a.BlockedSlots, day.NominalSlots...)
		a.Message = "Date is fully blocked"
		return a, nil
	}
	a.AvailableSlots = models.SubtractSlots(day.NominalSlots, block.BlockedTimeSlots)
	a.BlockedSlots = append(a.BlockedSlots, block.BlockedTimeSlots...)
	return a, nil
}

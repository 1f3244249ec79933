package booking

import (
	"context"

	settingsRepo "oasis/database/repository/settings"
	"oasis/models"
	"oasis/utils"

	"go.uber.org/zap"
)

// DefaultSettingsService implements SettingsService. Every write is a compare-and-swap
// on the settings version and flushes cached availability.
type DefaultSettingsService struct {
	Repo   settingsRepo.SettingsRepository
	Cache  AvailabilityCache
	Logger *zap.Logger
}

func NewSettingsService(repo settingsRepo.SettingsRepository, cache AvailabilityCache, logger *zap.Logger) *DefaultSettingsService {
	if cache == nil {
		cache = NoopAvailabilityCache{}
	}
	return &DefaultSettingsService{Repo: repo, Cache: cache, Logger: logger}
}

func (s *DefaultSettingsService) GetSettings(ctx context.Context) (*models.BookingSettings, error) {
	return s.Repo.GetOrInitialize(ctx)
}

func (s *DefaultSettingsService) UpdateSettings(ctx context.Context, req models.UpdateSettingsRequest) (*models.BookingSettings, error) {
	if req.TimeSlots != nil {
		if err := models.ValidateSlotLabels(req.TimeSlots); err != nil {
			return nil, &utils.ValidationError{Field: "timeSlots", Message: err.Error()}
		}
	}
	if req.WeeklySchedule != nil {
		if err := req.WeeklySchedule.Validate(); err != nil {
			return nil, &utils.ValidationError{Field: "weeklySchedule", Message: err.Error()}
		}
	}
	if req.MinAdvanceBookingHours != nil && *req.MinAdvanceBookingHours < 0 {
		return nil, utils.NewValidationError("minAdvanceBookingHours", "must not be negative")
	}
	if req.MaxAdvanceBookingDays != nil && *req.MaxAdvanceBookingDays < 0 {
		return nil, utils.NewValidationError("maxAdvanceBookingDays", "must not be negative")
	}

	return s.replace(ctx, func(cur *models.BookingSettings) {
		if req.TimeSlots != nil {
			cur.TimeSlots = append([]string{}, req.TimeSlots...)
		}
		if req.MinAdvanceBookingHours != nil {
			cur.MinAdvanceBookingHours = *req.MinAdvanceBookingHours
		}
		if req.MaxAdvanceBookingDays != nil {
			cur.MaxAdvanceBookingDays = *req.MaxAdvanceBookingDays
		}
		if req.IsEnabled != nil {
			cur.IsEnabled = *req.IsEnabled
		}
		if req.WeeklySchedule != nil {
			cur.WeeklySchedule = *req.WeeklySchedule
		}
	})
}

func (s *DefaultSettingsService) UpdateDay(ctx context.Context, day string, req models.UpdateDayRequest) (*models.BookingSettings, error) {
	weekday, ok := models.ParseWeekday(day)
	if !ok {
		return nil, utils.NewValidationError("day", "invalid day %q", day)
	}
	if req.IsWorking == nil {
		return nil, utils.NewValidationError("isWorking", "isWorking is required")
	}
	if err := models.ValidateSlotLabels(req.TimeSlots); err != nil {
		return nil, &utils.ValidationError{Field: "timeSlots", Message: err.Error()}
	}

	return s.replace(ctx, func(cur *models.BookingSettings) {
		ds := cur.WeeklySchedule.Day(weekday)
		ds.IsWorking = *req.IsWorking
		if req.TimeSlots != nil {
			ds.TimeSlots = append([]string{}, req.TimeSlots...)
		}
		cur.WeeklySchedule.SetDay(weekday, ds)
	})
}

func (s *DefaultSettingsService) replace(ctx context.Context, apply func(*models.BookingSettings)) (*models.BookingSettings, error) {
	var result *models.BookingSettings
	err := withCAS(ctx, func() error {
		cur, err := s.Repo.GetOrInitialize(ctx)
		if err != nil {
			return err
		}
		apply(cur)
		if err := s.Repo.Replace(ctx, cur); err != nil {
			return err
		}
		result = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.InvalidateAll(ctx)
	s.Logger.Info("booking settings updated", zap.Int("version", result.Version))
	return result, nil
}

package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	settingsRepo "oasis/database/repository/settings"
	"oasis/models"
)

// DefaultScheduleResolver reads the weekly template from the settings singleton.
type DefaultScheduleResolver struct {
	Settings settingsRepo.SettingsRepository
}

func NewScheduleResolver(settings settingsRepo.SettingsRepository) *DefaultScheduleResolver {
	return &DefaultScheduleResolver{Settings: settings}
}

// ResolveDaySchedule returns the nominal slots for date. A non-working day resolves to no
// slots even when labels are stored for it.
func (r *DefaultScheduleResolver) ResolveDaySchedule(ctx context.Context, date time.Time) (*models.DayResolution, error) {
	d := models.NormalizeDate(date)
	settings, err := r.Settings.GetOrInitialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve day schedule: %w", err)
	}

	weekday := d.Weekday()
	day := settings.WeeklySchedule.Day(weekday)
	res := &models.DayResolution{
		Weekday:      strings.ToLower(weekday.String()),
		IsWorkingDay: day.IsWorking,
		NominalSlots: []string{},
	}
	if day.IsWorking {
		res.NominalSlots = append(res.NominalSlots, day.TimeSlots...)
	}
	return res, nil
}

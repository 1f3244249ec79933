package models

import (
	"fmt"
	"strings"
	"time"
)

// DaySchedule is one weekday's template. IsWorking is authoritative: a non-working day
// has no bookable slots whatever TimeSlots holds.
type DaySchedule struct {
	IsWorking bool     `bson:"isWorking" json:"isWorking"`
	TimeSlots []string `bson:"timeSlots" json:"timeSlots"`
}

// WeeklySchedule maps each weekday to its template.
type WeeklySchedule struct {
	Sunday    DaySchedule `bson:"sunday" json:"sunday"`
	Monday    DaySchedule `bson:"monday" json:"monday"`
	Tuesday   DaySchedule `bson:"tuesday" json:"tuesday"`
	Wednesday DaySchedule `bson:"wednesday" json:"wednesday"`
	Thursday  DaySchedule `bson:"thursday" json:"thursday"`
	Friday    DaySchedule `bson:"friday" json:"friday"`
	Saturday  DaySchedule `bson:"saturday" json:"saturday"`
}

// Day returns the template for a weekday.
func (w *WeeklySchedule) Day(d time.Weekday) DaySchedule {
	return *w.dayRef(d)
}

// SetDay replaces the template for a weekday.
func (w *WeeklySchedule) SetDay(d time.Weekday, ds DaySchedule) {
	*w.dayRef(d) = ds
}

func (w *WeeklySchedule) dayRef(d time.Weekday) *DaySchedule {
	switch d {
	case time.Sunday:
		return &w.Sunday
	case time.Monday:
		return &w.Monday
	case time.Tuesday:
		return &w.Tuesday
	case time.Wednesday:
		return &w.Wednesday
	case time.Thursday:
		return &w.Thursday
	case time.Friday:
		return &w.Friday
	default:
		return &w.Saturday
	}
}

// Validate checks every working day's labels.
func (w *WeeklySchedule) Validate() error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if err := ValidateSlotLabels(w.Day(d).TimeSlots); err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(d.String()), err)
		}
	}
	return nil
}

// ParseWeekday resolves a case-insensitive weekday name ("monday", "Monday").
func ParseWeekday(name string) (time.Weekday, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == n {
			return d, true
		}
	}
	return 0, false
}

// SettingsKey is the fixed key of the booking settings singleton.
const SettingsKey = "default"

// BookingSettings is the singleton holding the weekly schedule and booking rules.
type BookingSettings struct {
	ID                     string         `bson:"id" json:"id"`
	TimeSlots              []string       `bson:"timeSlots" json:"timeSlots"`
	MinAdvanceBookingHours int            `bson:"minAdvanceBookingHours" json:"minAdvanceBookingHours"`
	MaxAdvanceBookingDays  int            `bson:"maxAdvanceBookingDays" json:"maxAdvanceBookingDays"`
	IsEnabled              bool           `bson:"isEnabled" json:"isEnabled"`
	WeeklySchedule         WeeklySchedule `bson:"weeklySchedule" json:"weeklySchedule"`
	Version                int            `bson:"version" json:"version"`
	CreatedAt              time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// DefaultTimeSlots is the template used for working days when no settings exist.
var DefaultTimeSlots = []string{"10:00", "11:00", "12:30", "13:30", "14:30", "15:30"}

// DefaultBookingSettings returns the settings created on first read.
func DefaultBookingSettings(now time.Time) BookingSettings {
	working := func() DaySchedule {
		return DaySchedule{IsWorking: true, TimeSlots: append([]string(nil), DefaultTimeSlots...)}
	}
	off := DaySchedule{IsWorking: false, TimeSlots: []string{}}

	return BookingSettings{
		ID:                     SettingsKey,
		TimeSlots:              append([]string(nil), DefaultTimeSlots...),
		MinAdvanceBookingHours: 2,
		MaxAdvanceBookingDays:  90,
		IsEnabled:              true,
		WeeklySchedule: WeeklySchedule{
			Sunday:    off,
			Monday:    working(),
			Tuesday:   working(),
			Wednesday: working(),
			Thursday:  working(),
			Friday:    working(),
			Saturday:  off,
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateSettingsRequest is the payload for replacing booking settings. Omitted fields keep
// their stored values.
type UpdateSettingsRequest struct {
	TimeSlots              []string        `json:"timeSlots"`
	MinAdvanceBookingHours *int            `json:"minAdvanceBookingHours" binding:"omitempty,min=0"`
	MaxAdvanceBookingDays  *int            `json:"maxAdvanceBookingDays" binding:"omitempty,min=0"`
	IsEnabled              *bool           `json:"isEnabled"`
	WeeklySchedule         *WeeklySchedule `json:"weeklySchedule"`
}

// UpdateDayRequest patches one weekday.
type UpdateDayRequest struct {
	IsWorking *bool    `json:"isWorking" binding:"required"`
	TimeSlots []string `json:"timeSlots"`
}

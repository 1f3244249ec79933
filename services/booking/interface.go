package booking

import (
	"context"
	"time"

	"oasis/models"
)

// ScheduleResolver turns a date into that day's nominal slot template.
type ScheduleResolver interface {
	ResolveDaySchedule(ctx context.Context, date time.Time) (*models.DayResolution, error)
}

// AvailabilityEngine applies date overrides to the nominal template. It never looks at
// appointments.
type AvailabilityEngine interface {
	ComputeAvailableSlots(ctx context.Context, date time.Time) (*models.Availability, error)
	// RecomputeAvailableSlots bypasses the cache and refreshes it.
	RecomputeAvailableSlots(ctx context.Context, date time.Time) (*models.Availability, error)
}

// SettingsService reads and mutates the booking settings singleton.
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.BookingSettings, error)
	UpdateSettings(ctx context.Context, req models.UpdateSettingsRequest) (*models.BookingSettings, error)
	UpdateDay(ctx context.Context, day string, req models.UpdateDayRequest) (*models.BookingSettings, error)
}

// BlockedDateService manages date overrides.
type BlockedDateService interface {
	BlockDate(ctx context.Context, rawDate, reason string, slots []string) (*models.BlockedDate, error)
	BlockDatesBulk(ctx context.Context, req models.BulkBlockRequest) (*models.BulkBlockResult, error)
	// RemoveSlot unblocks one slot. deleted is true when it was the last slot and the
	// record was removed.
	RemoveSlot(ctx context.Context, id, slot string) (b *models.BlockedDate, deleted bool, err error)
	ToggleActive(ctx context.Context, id string) (*models.BlockedDate, error)
	Update(ctx context.Context, id string, req models.UpdateBlockedDateRequest) (*models.BlockedDate, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.BlockedDate, error)
	ListActive(ctx context.Context) ([]models.ActiveBlockedDate, error)
	Check(ctx context.Context, rawDate string) (*models.BlockCheck, error)
}

// BookingLedger owns appointments and guards slots against double booking.
type BookingLedger interface {
	ListBookedSlots(ctx context.Context, rawDate string) (*models.BookedSlots, error)
	BookableSlots(ctx context.Context, rawDate string) (*models.BookableSlots, error)
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)
	Cancel(ctx context.Context, id, reason string) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) (int64, error)
}

// ReminderScheduler queues the reminder for a new appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

// ConfirmationSender notifies the customer that a booking was received.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error
}

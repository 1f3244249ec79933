package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oasis/database/repository"
	appointmentRepo "oasis/database/repository/appointment"
	settingsRepo "oasis/database/repository/settings"
	"oasis/models"
	"oasis/utils"

	"go.uber.org/zap"
)

// DefaultBookingLedger implements BookingLedger. The storage unique index on active
// (date, slot) pairs is the final arbiter; the checks before the insert only produce
// friendlier errors.
type DefaultBookingLedger struct {
	Appointments  appointmentRepo.AppointmentRepository
	Settings      settingsRepo.SettingsRepository
	Engine        AvailabilityEngine
	Reminders     ReminderScheduler
	Confirmations ConfirmationSender
	Logger        *zap.Logger
	Now           func() time.Time
	// Location is the business time zone slot labels are read in. Nil means UTC.
	Location *time.Location
}

func NewBookingLedger(
	appts appointmentRepo.AppointmentRepository,
	settings settingsRepo.SettingsRepository,
	engine AvailabilityEngine,
	logger *zap.Logger,
) *DefaultBookingLedger {
	return &DefaultBookingLedger{
		Appointments: appts,
		Settings:     settings,
		Engine:       engine,
		Logger:       logger,
		Now:          time.Now,
	}
}

func (l *DefaultBookingLedger) now() time.Time {
	if l.Now == nil {
		return time.Now().UTC()
	}
	return l.Now().UTC()
}

func (l *DefaultBookingLedger) bookedLabels(ctx context.Context, date time.Time) ([]string, error) {
	appts, err := l.Appointments.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(appts))
	for _, a := range appts {
		labels = append(labels, a.AppointmentTime)
	}
	return labels, nil
}

func (l *DefaultBookingLedger) ListBookedSlots(ctx context.Context, rawDate string) (*models.BookedSlots, error) {
	date, err := parseDateField("date", rawDate)
	if err != nil {
		return nil, err
	}
	labels, err := l.bookedLabels(ctx, date)
	if err != nil {
		return nil, err
	}
	return &models.BookedSlots{Date: models.FormatDate(date), BookedSlots: labels}, nil
}

func (l *DefaultBookingLedger) BookableSlots(ctx context.Context, rawDate string) (*models.BookableSlots, error) {
	date, err := parseDateField("date", rawDate)
	if err != nil {
		return nil, err
	}
	avail, err := l.Engine.ComputeAvailableSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	booked, err := l.bookedLabels(ctx, date)
	if err != nil {
		return nil, err
	}
	return &models.BookableSlots{
		Availability:  *avail,
		BookedSlots:   booked,
		BookableSlots: models.SubtractSlots(avail.AvailableSlots, booked),
	}, nil
}

func (l *DefaultBookingLedger) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	appt, err := l.validate(req)
	if err != nil {
		return nil, err
	}

	settings, err := l.Settings.GetOrInitialize(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.IsEnabled {
		return nil, ErrBookingDisabled
	}
	if err := l.checkAdvanceWindow(settings, appt.StartsAt(l.Location)); err != nil {
		return nil, err
	}

	avail, err := l.Engine.RecomputeAvailableSlots(ctx, appt.AppointmentDate)
	if err != nil {
		return nil, err
	}
	label, ok := matchLabel(avail.AvailableSlots, appt.SlotKey)
	switch {
	case !avail.IsWorkingDay:
		return nil, utils.NewConflictError("%s is not a working day", avail.Date)
	case avail.IsFullDayBlocked:
		return nil, utils.NewConflictError("%s is not available for booking", avail.Date)
	case !ok:
		return nil, utils.NewConflictError("time slot %s is not available on %s", req.AppointmentTime, avail.Date)
	}
	appt.AppointmentTime = label

	booked, err := l.bookedLabels(ctx, appt.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if models.NewSlotSet(booked).Has(label) {
		return nil, ErrSlotBooked
	}

	if err := l.Appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	l.Logger.Info("appointment created",
		zap.String("id", appt.ID),
		zap.String("date", models.FormatDate(appt.AppointmentDate)),
		zap.String("time", appt.AppointmentTime))

	l.afterCreate(ctx, appt)
	return appt, nil
}

func (l *DefaultBookingLedger) validate(req models.CreateAppointmentRequest) (*models.Appointment, error) {
	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	phone := strings.TrimSpace(req.CustomerPhone)
	switch {
	case name == "":
		return nil, utils.NewValidationError("customerName", "customer name is required")
	case email == "" || !strings.Contains(email, "@"):
		return nil, utils.NewValidationError("customerEmail", "a valid email address is required")
	case phone == "":
		return nil, utils.NewValidationError("customerPhone", "phone number is required")
	}

	date, err := parseDateField("appointmentDate", req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	slot, err := models.ParseSlot(req.AppointmentTime)
	if err != nil {
		return nil, &utils.ValidationError{Field: "appointmentTime", Message: err.Error()}
	}

	return &models.Appointment{
		CustomerName:    name,
		CustomerEmail:   strings.ToLower(email),
		CustomerPhone:   phone,
		ServiceID:       req.ServiceID,
		ServiceName:     strings.TrimSpace(req.ServiceName),
		Notes:           strings.TrimSpace(req.Notes),
		Language:        req.Language,
		AppointmentDate: date,
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		SlotKey:         slot,
		Status:          models.StatusPending,
	}, nil
}

func (l *DefaultBookingLedger) checkAdvanceWindow(s *models.BookingSettings, start time.Time) error {
	now := l.now()
	if !start.After(now) {
		return utils.NewValidationError("appointmentDate", "cannot book a time in the past")
	}
	if s.MinAdvanceBookingHours > 0 && start.Before(now.Add(time.Duration(s.MinAdvanceBookingHours)*time.Hour)) {
		return utils.NewValidationError("appointmentDate",
			"appointments must be booked at least %d hours in advance", s.MinAdvanceBookingHours)
	}
	if s.MaxAdvanceBookingDays > 0 && start.After(now.AddDate(0, 0, s.MaxAdvanceBookingDays)) {
		return utils.NewValidationError("appointmentDate",
			"appointments cannot be booked more than %d days in advance", s.MaxAdvanceBookingDays)
	}
	return nil
}

// matchLabel finds the offered label naming slot.
func matchLabel(labels []string, slot models.Slot) (string, bool) {
	for _, l := range labels {
		if s, err := models.ParseSlot(l); err == nil && s == slot {
			return l, true
		}
	}
	return "", false
}

func (l *DefaultBookingLedger) afterCreate(ctx context.Context, appt *models.Appointment) {
	if l.Reminders != nil {
		if err := l.Reminders.ScheduleReminder(ctx, appt); err != nil {
			l.Logger.Warn("failed to schedule reminder", zap.String("id", appt.ID), zap.Error(err))
		}
	}
	if l.Confirmations != nil {
		go func(a models.Appointment) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := l.Confirmations.SendBookingConfirmation(ctx, &a); err != nil {
				l.Logger.Warn("failed to send booking confirmation", zap.String("id", a.ID), zap.Error(err))
			}
		}(*appt)
	}
}

func (l *DefaultBookingLedger) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	a, err := l.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "appointment", id)
	}
	return a, nil
}

func (l *DefaultBookingLedger) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, utils.NewValidationError("status", "unknown status %q", filter.Status)
	}
	return l.Appointments.List(ctx, filter)
}

func (l *DefaultBookingLedger) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, utils.NewValidationError("status", "unknown status %q", status)
	}
	return l.transition(ctx, id, status, "")
}

func (l *DefaultBookingLedger) Cancel(ctx context.Context, id, reason string) (*models.Appointment, error) {
	return l.transition(ctx, id, models.StatusCancelled, strings.TrimSpace(reason))
}

func (l *DefaultBookingLedger) transition(ctx context.Context, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error) {
	a, err := l.Appointments.UpdateStatus(ctx, id, status, reason)
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return nil, ErrSlotTaken
	case err != nil:
		return nil, notFound(err, "appointment", id)
	}
	l.Logger.Info("appointment status changed", zap.String("id", id), zap.String("status", string(status)))
	return a, nil
}

func (l *DefaultBookingLedger) Delete(ctx context.Context, id string) error {
	if err := l.Appointments.Delete(ctx, id); err != nil {
		return notFound(err, "appointment", id)
	}
	return nil
}

func (l *DefaultBookingLedger) ClearAll(ctx context.Context) (int64, error) {
	n, err := l.Appointments.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear appointments: %w", err)
	}
	l.Logger.Warn("all appointments cleared", zap.Int64("count", n))
	return n, nil
}

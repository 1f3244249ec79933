package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"oasis/database/repository"
	appointmentRepo "oasis/database/repository/appointment"
	"oasis/models"
	"oasis/services/notification"
	"oasis/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker sends the reminders queued by tasks.ReminderScheduler.
type ReminderWorker struct {
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.NotificationService
	Logger       *zap.Logger
}

// StartReminderWorker runs the asynq server in the background. Call Shutdown on the
// returned server when the process exits.
func StartReminderWorker(w *ReminderWorker, redisOpt asynq.RedisClientOpt) (*asynq.Server, error) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: w.Logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, w.HandleReminder)

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start reminder worker: %w", err)
	}
	w.Logger.Info("reminder worker started")
	return srv, nil
}

// HandleReminder delivers the email and SMS reminder for one appointment. Channels that
// already went out are not resent on retry.
func (w *ReminderWorker) HandleReminder(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.Logger.Error("invalid reminder payload", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	appt, err := w.Appointments.GetByID(ctx, p.AppointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		w.Logger.Info("reminder skipped, appointment gone", zap.String("appointmentId", p.AppointmentID))
		return nil
	}
	if err != nil {
		return err
	}
	if !appt.Status.Occupies() {
		w.Logger.Info("reminder skipped, appointment cancelled", zap.String("appointmentId", appt.ID))
		return nil
	}

	var failed []error
	if !appt.EmailReminderSent && appt.CustomerEmail != "" {
		failed = append(failed, w.deliver(ctx, appt, models.ChannelEmail))
	}
	if !appt.SMSReminderSent && appt.CustomerPhone != "" {
		failed = append(failed, w.deliver(ctx, appt, models.ChannelSMS))
	}
	return errors.Join(failed...)
}

func (w *ReminderWorker) deliver(ctx context.Context, appt *models.Appointment, channel models.Channel) error {
	if err := w.Notifier.SendAppointmentReminder(ctx, appt, channel); err != nil {
		return fmt.Errorf("%s reminder for %s: %w", channel, appt.ID, err)
	}
	if err := w.Appointments.MarkReminderSent(ctx, appt.ID, channel); err != nil {
		return fmt.Errorf("mark %s reminder for %s: %w", channel, appt.ID, err)
	}
	w.Logger.Info("reminder sent", zap.String("appointmentId", appt.ID), zap.String("channel", string(channel)))
	return nil
}

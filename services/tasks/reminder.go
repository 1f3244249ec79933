package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"oasis/config"
	"oasis/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// RedisOpt is the asynq connection for the reminder queue (REDIS_REMINDER_QUEUE_DB).
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.AppointmentID),
		asynq.MaxRetry(5),
	}

	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues one reminder per appointment, Lead before it starts.
type ReminderScheduler struct {
	Queue  Enqueuer
	Lead   time.Duration
	Logger *zap.Logger
	Now    func() time.Time
	// Location is the business time zone; nil means UTC.
	Location *time.Location
}

func NewReminderScheduler(queue Enqueuer, lead time.Duration, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{Queue: queue, Lead: lead, Logger: logger, Now: time.Now}
}

func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	start := appt.StartsAt(s.Location)
	now := s.Now().UTC()
	if !start.After(now) {
		return nil
	}
	fireAt := start.Add(-s.Lead)
	if fireAt.Before(now) {
		fireAt = now
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		AppointmentID: appt.ID,
		FireDate:      fireAt.UTC().Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", appt.ID, err)
	}
	s.Logger.Info("reminder scheduled",
		zap.String("appointmentId", appt.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

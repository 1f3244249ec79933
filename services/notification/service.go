package notification

import (
	"context"
	"fmt"
	"time"

	"oasis/config"
	"oasis/models"

	"go.uber.org/zap"
)

// DefaultNotificationService routes messages to the configured transports.
type DefaultNotificationService struct {
	Mail         Mailer
	SMS          SMSSender
	BusinessName string
	AdminEmail   string
	Logger       *zap.Logger
}

// NewFromConfig builds a service from config.AppConfig. Transports that are not
// configured fall back to logging the message.
func NewFromConfig(logger *zap.Logger) *DefaultNotificationService {
	cfg := config.AppConfig
	svc := &DefaultNotificationService{
		Mail:         &LogMailer{Logger: logger},
		SMS:          &LogSMSSender{Logger: logger},
		BusinessName: cfg.BusinessName,
		AdminEmail:   cfg.AdminEmail,
		Logger:       logger,
	}
	if cfg.SMTPHost != "" {
		svc.Mail = &SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			Timeout:  15 * time.Second,
		}
	}
	if cfg.SMSAPIURL != "" {
		svc.SMS = NewHTTPSMSSender(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSSender)
	}
	return svc
}

func (s *DefaultNotificationService) SendEmail(ctx context.Context, to, subject, body string) error {
	err := s.Mail.Send(ctx, to, subject, body)
	s.record(models.Notification{Channel: models.ChannelEmail, To: to, Subject: subject, Body: body}, err)
	return err
}

func (s *DefaultNotificationService) SendSMS(ctx context.Context, to, body string) error {
	err := s.SMS.Send(ctx, to, body)
	s.record(models.Notification{Channel: models.ChannelSMS, To: to, Body: body}, err)
	return err
}

func (s *DefaultNotificationService) record(n models.Notification, err error) {
	n.Sent = err == nil
	n.CreatedAt = time.Now().UTC()
	if err != nil {
		s.Logger.Warn("notification failed",
			zap.String("channel", string(n.Channel)),
			zap.String("to", n.To),
			zap.Error(err))
		return
	}
	s.Logger.Debug("notification sent",
		zap.String("channel", string(n.Channel)),
		zap.String("to", n.To))
}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error {
	subject, body := BookingConfirmationEmail(s.BusinessName, appt)
	return s.SendEmail(ctx, appt.CustomerEmail, subject, body)
}

func (s *DefaultNotificationService) SendAppointmentReminder(ctx context.Context, appt *models.Appointment, channel models.Channel) error {
	switch channel {
	case models.ChannelEmail:
		subject, body := ReminderEmail(s.BusinessName, appt)
		return s.SendEmail(ctx, appt.CustomerEmail, subject, body)
	case models.ChannelSMS:
		return s.SendSMS(ctx, appt.CustomerPhone, ReminderSMS(s.BusinessName, appt))
	}
	return fmt.Errorf("unknown notification channel %q", channel)
}

func (s *DefaultNotificationService) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if s.AdminEmail == "" {
		s.Logger.Info("contact message received, no admin email configured", zap.String("from", msg.Email))
		return nil
	}
	subject, body := ContactMessageEmail(msg)
	return s.SendEmail(ctx, s.AdminEmail, subject, body)
}

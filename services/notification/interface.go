package notification

import (
	"context"

	"oasis/models"
)

// Notifier delivers outbound customer and admin messages.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}

// Mailer sends one email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender sends one text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// NotificationService renders and sends the business notifications.
type NotificationService interface {
	Notifier
	SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error
	SendAppointmentReminder(ctx context.Context, appt *models.Appointment, channel models.Channel) error
	NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

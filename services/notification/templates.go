package notification

import (
	"fmt"
	"strings"

	"oasis/models"
)

func when(a *models.Appointment) string {
	return fmt.Sprintf("%s at %s", a.AppointmentDate.Format("Monday, January 2, 2006"), a.AppointmentTime)
}

func BookingConfirmationEmail(business string, a *models.Appointment) (string, string) {
	subject := fmt.Sprintf("%s: we received your booking", business)
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", a.CustomerName)
	fmt.Fprintf(&b, "Thank you for booking with %s. Your appointment request for %s", business, when(a))
	if a.ServiceName != "" {
		fmt.Fprintf(&b, " (%s)", a.ServiceName)
	}
	b.WriteString(" has been received and is pending confirmation.\n\n")
	fmt.Fprintf(&b, "Reference: %s\n", a.ID)
	return subject, b.String()
}

func ReminderEmail(business string, a *models.Appointment) (string, string) {
	subject := fmt.Sprintf("%s: appointment reminder", business)
	body := fmt.Sprintf("Hello %s,\n\nThis is a reminder of your appointment on %s.\n\nSee you soon,\n%s\n",
		a.CustomerName, when(a), business)
	return subject, body
}

func ReminderSMS(business string, a *models.Appointment) string {
	return fmt.Sprintf("%s reminder: your appointment is on %s.", business, when(a))
}

func ContactMessageEmail(m *models.ContactMessage) (string, string) {
	subject := "New contact message"
	if m.Subject != "" {
		subject += ": " + m.Subject
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", m.Name, m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", m.Phone)
	}
	b.WriteString("\n")
	b.WriteString(m.Message)
	b.WriteString("\n")
	return subject, b.String()
}

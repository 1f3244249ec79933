// File: oasis/handlers/bundle.go
package handlers

import (
	"oasis/models"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	BookingSettings *BookingSettingsHandler
	BlockedDates    *BlockedDateHandler
	Appointments    *AppointmentHandler

	Services     *ContentHandler[models.Service]
	Properties   *ContentHandler[models.Property]
	Testimonials *ContentHandler[models.Testimonial]
	FAQs         *ContentHandler[models.FAQ]
	Legal        *LegalHandler

	Contact *ContactHandler
	Admin   *AdminHandler
}

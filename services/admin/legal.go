package admin

import (
	"fmt"
	"time"

	"oasis/models"
)

// DefaultLegalPage returns the built-in copy for a legal slug, used until an admin saves
// their own version. Unknown slugs return nil.
func DefaultLegalPage(business string) func(slug string) *models.LegalPage {
	published := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func(slug string) *models.LegalPage {
		var title, content string
		switch slug {
		case models.LegalSlugTerms:
			title, content = "Terms of Service", generateTermsOfService(business)
		case models.LegalSlugPrivacy:
			title, content = "Privacy Policy", generatePrivacyPolicy(business)
		case models.LegalSlugCancellation:
			title, content = "Cancellation Policy", generateCancellationPolicy(business)
		case models.LegalSlugCookies:
			title, content = "Cookie Policy", generateCookiePolicy(business)
		default:
			return nil
		}
		return &models.LegalPage{
			Base:    models.Base{ID: "default-" + slug, CreatedAt: published, UpdatedAt: published},
			Slug:    slug,
			Title:   title,
			Content: content,
		}
	}
}

func generateTermsOfService(b string) string {
	return fmt.Sprintf(`Welcome to %[1]s. By booking a treatment or a stay with us you agree to these terms.

1. Bookings: Appointment requests are pending until confirmed by %[1]s.
2. Arrival: Please arrive 10 minutes before your appointment.
3. Rentals: Property bookings are completed through the listed booking partner.
4. Liability: Tell us about any health conditions before your treatment.`, b)
}

func generatePrivacyPolicy(b string) string {
	return fmt.Sprintf(`%[1]s collects only the details needed to manage your booking: name, email, phone number and appointment notes.

We use them to confirm and remind you of appointments by email and SMS. We do not sell personal data. Contact us to have your data removed.`, b)
}

func generateCancellationPolicy(b string) string {
	return fmt.Sprintf(`You can cancel or reschedule an appointment free of charge up to 24 hours before it starts.

Late cancellations and no-shows may be charged. %[1]s may cancel an appointment due to illness or emergencies and will contact you to rebook.`, b)
}

func generateCookiePolicy(b string) string {
	return fmt.Sprintf(`The %[1]s website uses only cookies that are necessary for it to work, such as remembering your language preference.`, b)
}

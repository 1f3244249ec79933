package models

// Legal page slugs.
const (
	LegalSlugTerms        = "terms"
	LegalSlugPrivacy      = "privacy"
	LegalSlugCancellation = "cancellation"
	LegalSlugCookies      = "cookies"
)

// AllLegalSlugs returns every accepted legal page slug.
func AllLegalSlugs() []string {
	return []string{LegalSlugTerms, LegalSlugPrivacy, LegalSlugCancellation, LegalSlugCookies}
}

// IsValidLegalSlug checks a slug against AllLegalSlugs.
func IsValidLegalSlug(slug string) bool {
	for _, s := range AllLegalSlugs() {
		if s == slug {
			return true
		}
	}
	return false
}

// LegalPage is an editable legal document addressed by slug.
type LegalPage struct {
	Base         `bson:",inline"`
	Slug         string       `bson:"slug" json:"slug"`
	Title        string       `bson:"title" json:"title" binding:"required"`
	Content      string       `bson:"content" json:"content"`
	Translations Translations `bson:"translations,omitempty" json:"translations,omitempty"`
}

func (l *LegalPage) Public() bool { return true }
func (l *LegalPage) SortKey() int { return 0 }

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Base    `bson:",inline"`
	Name    string `bson:"name" json:"name" binding:"required"`
	Email   string `bson:"email" json:"email" binding:"required,email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject string `bson:"subject" json:"subject"`
	Message string `bson:"message" json:"message" binding:"required,max=5000"`
	IsRead  bool   `bson:"isRead" json:"isRead"`
}

func (m *ContactMessage) Public() bool { return false }
func (m *ContactMessage) SortKey() int { return 0 }

// AdminLoginRequest is the admin credential payload.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

package models

import "time"

// Translations holds pre-computed copies of text fields: language -> field -> text.
type Translations map[string]map[string]string

// Base is embedded in every catalog document.
type Base struct {
	ID        string    `bson:"id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (b *Base) DocID() string { return b.ID }

func (b *Base) Created() time.Time { return b.CreatedAt }

// Stamp sets the identity and timestamps. A zero created means a new document.
func (b *Base) Stamp(id string, created, now time.Time) {
	b.ID = id
	b.CreatedAt = created
	if created.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Document is implemented by pointers to catalog types.
type Document interface {
	DocID() string
	Created() time.Time
	Stamp(id string, created, now time.Time)
	// Public reports whether the item is shown on the public site.
	Public() bool
	// SortKey orders items in listings.
	SortKey() int
}

// Service is a spa/wellness offering.
type Service struct {
	Base            `bson:",inline"`
	Name            string       `bson:"name" json:"name" binding:"required"`
	Description     string       `bson:"description" json:"description"`
	Category        string       `bson:"category" json:"category"`
	DurationMinutes int          `bson:"durationMinutes" json:"durationMinutes" binding:"min=0"`
	Price           float64      `bson:"price" json:"price" binding:"min=0"`
	ImageURL        string       `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsActive        bool         `bson:"isActive" json:"isActive"`
	Order           int          `bson:"order" json:"order"`
	Translations    Translations `bson:"translations,omitempty" json:"translations,omitempty"`
}

func (s *Service) Public() bool { return s.IsActive }
func (s *Service) SortKey() int { return s.Order }

// Property is a short-term rental listing.
type Property struct {
	Base               `bson:",inline"`
	Title              string       `bson:"title" json:"title" binding:"required"`
	Description        string       `bson:"description" json:"description"`
	Location           string       `bson:"location" json:"location"`
	PricePerNight      float64      `bson:"pricePerNight" json:"pricePerNight" binding:"min=0"`
	MaxGuests          int          `bson:"maxGuests" json:"maxGuests" binding:"min=0"`
	Bedrooms           int          `bson:"bedrooms" json:"bedrooms" binding:"min=0"`
	Bathrooms          int          `bson:"bathrooms" json:"bathrooms" binding:"min=0"`
	Amenities          []string     `bson:"amenities" json:"amenities"`
	Images             []string     `bson:"images" json:"images"`
	ExternalBookingURL string       `bson:"externalBookingUrl,omitempty" json:"externalBookingUrl,omitempty"`
	IsActive           bool         `bson:"isActive" json:"isActive"`
	Order              int          `bson:"order" json:"order"`
	Translations       Translations `bson:"translations,omitempty" json:"translations,omitempty"`
}

func (p *Property) Public() bool { return p.IsActive }
func (p *Property) SortKey() int { return p.Order }

// Testimonial is a customer review shown once approved.
type Testimonial struct {
	Base         `bson:",inline"`
	CustomerName string       `bson:"customerName" json:"customerName" binding:"required"`
	Content      string       `bson:"content" json:"content" binding:"required"`
	Rating       int          `bson:"rating" json:"rating" binding:"min=1,max=5"`
	IsApproved   bool         `bson:"isApproved" json:"isApproved"`
	Order        int          `bson:"order" json:"order"`
	Translations Translations `bson:"translations,omitempty" json:"translations,omitempty"`
}

func (t *Testimonial) Public() bool { return t.IsApproved }
func (t *Testimonial) SortKey() int { return t.Order }

// FAQ is a question/answer pair.
type FAQ struct {
	Base         `bson:",inline"`
	Question     string       `bson:"question" json:"question" binding:"required"`
	Answer       string       `bson:"answer" json:"answer" binding:"required"`
	Category     string       `bson:"category" json:"category"`
	IsActive     bool         `bson:"isActive" json:"isActive"`
	Order        int          `bson:"order" json:"order"`
	Translations Translations `bson:"translations,omitempty" json:"translations,omitempty"`
}

func (f *FAQ) Public() bool { return f.IsActive }
func (f *FAQ) SortKey() int { return f.Order }

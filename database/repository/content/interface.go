// File: database/repository/content/interface.go
package contentRepo

import (
	"context"

	"oasis/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Doc constrains PT to be a pointer to T implementing models.Document.
type Doc[T any] interface {
	*T
	models.Document
}

// Repository is CRUD over one catalog collection.
type Repository[T any] interface {
	// List returns every document ordered by "order" then creation time.
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	// FindBy returns the first document whose field equals value.
	FindBy(ctx context.Context, field string, value any) (*T, error)
	Create(ctx context.Context, doc *T) error
	Replace(ctx context.Context, doc *T) error
	// SetField updates a single top-level field.
	SetField(ctx context.Context, id, field string, value any) error
	Delete(ctx context.Context, id string) error
}

type mongoRepo[T any, PT Doc[T]] struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a Repository over the named collection.
func NewMongoRepo[T any, PT Doc[T]](db *mongo.Database, collection string) Repository[T] {
	return &mongoRepo[T, PT]{
		coll: db.Collection(collection),
	}
}

// Collection names.
const (
	ServicesCollection     = "services"
	PropertiesCollection   = "properties"
	TestimonialsCollection = "testimonials"
	FAQsCollection         = "faqs"
	LegalPagesCollection   = "legal_pages"
	ContactCollection      = "contact_messages"
)

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"oasis/database/repository"
	contentRepo "oasis/database/repository/content"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ContentRepo is a generic in-memory catalog collection.
type ContentRepo[T any, PT contentRepo.Doc[T]] struct {
	mu   sync.RWMutex
	docs map[string]*T
}

func NewContentRepo[T any, PT contentRepo.Doc[T]]() *ContentRepo[T, PT] {
	return &ContentRepo[T, PT]{docs: make(map[string]*T)}
}

func (r *ContentRepo[T, PT]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, *clone(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := PT(&out[i]), PT(&out[j])
		if a.SortKey() != b.SortKey() {
			return a.SortKey() < b.SortKey()
		}
		return a.Created().Before(b.Created())
	})
	return out, nil
}

func (r *ContentRepo[T, PT]) Get(_ context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(d), nil
}

func (r *ContentRepo[T, PT]) FindBy(_ context.Context, field string, value any) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.docs {
		m, err := toMap(d)
		if err != nil {
			return nil, err
		}
		if m[field] == value {
			return clone(d), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ContentRepo[T, PT]) Create(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := PT(doc)
	id := d.DocID()
	if id == "" {
		id = uuid.New().String()
	}
	if _, exists := r.docs[id]; exists {
		return repository.ErrDuplicateKey
	}
	d.Stamp(id, time.Time{}, time.Now().UTC())
	r.docs[id] = clone(doc)
	return nil
}

func (r *ContentRepo[T, PT]) Replace(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := PT(doc).DocID()
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	r.docs[id] = clone(doc)
	return nil
}

func (r *ContentRepo[T, PT]) SetField(_ context.Context, id, field string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	m, err := toMap(d)
	if err != nil {
		return err
	}
	m[field] = value
	m["updatedAt"] = time.Now().UTC()

	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	var next T
	if err := bson.Unmarshal(raw, &next); err != nil {
		return err
	}
	r.docs[id] = &next
	return nil
}

func (r *ContentRepo[T, PT]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func toMap[T any](doc *T) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

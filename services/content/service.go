package content

import (
	"context"
	"time"

	contentRepo "oasis/database/repository/content"
	"oasis/utils"

	"go.uber.org/zap"
)

// Service is CRUD over one catalog collection. Hidden items (inactive, unapproved) are
// visible only when the caller asks for everything.
type Service[T any, PT contentRepo.Doc[T]] struct {
	Repo     contentRepo.Repository[T]
	Resource string
	// Validate runs before every write when set.
	Validate func(*T) error
	Logger   *zap.Logger
}

func NewService[T any, PT contentRepo.Doc[T]](repo contentRepo.Repository[T], resource string, logger *zap.Logger) *Service[T, PT] {
	return &Service[T, PT]{Repo: repo, Resource: resource, Logger: logger}
}

func (s *Service[T, PT]) List(ctx context.Context, includeHidden bool) ([]T, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if includeHidden {
		return items, nil
	}
	visible := make([]T, 0, len(items))
	for i := range items {
		if PT(&items[i]).Public() {
			visible = append(visible, items[i])
		}
	}
	return visible, nil
}

func (s *Service[T, PT]) Get(ctx context.Context, id string, includeHidden bool) (*T, error) {
	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, s.Resource, id)
	}
	if !includeHidden && !PT(item).Public() {
		return nil, utils.NewNotFoundError(s.Resource, id)
	}
	return item, nil
}

func (s *Service[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	PT(item).Stamp("", time.Time{}, time.Now().UTC())
	if err := s.validate(item); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, conflict(err, s.Resource)
	}
	s.Logger.Info(s.Resource+" created", zap.String("id", PT(item).DocID()))
	return item, nil
}

func (s *Service[T, PT]) Update(ctx context.Context, id string, item *T) (*T, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, s.Resource, id)
	}
	PT(item).Stamp(id, PT(existing).Created(), time.Now().UTC())
	if err := s.validate(item); err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(ctx, item); err != nil {
		return nil, conflict(notFound(err, s.Resource, id), s.Resource)
	}
	return item, nil
}

func (s *Service[T, PT]) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return notFound(err, s.Resource, id)
	}
	s.Logger.Info(s.Resource+" deleted", zap.String("id", id))
	return nil
}

func (s *Service[T, PT]) validate(item *T) error {
	if s.Validate == nil {
		return nil
	}
	return s.Validate(item)
}

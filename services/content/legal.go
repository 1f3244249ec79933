package content

import (
	"context"
	"errors"
	"strings"

	"oasis/database/repository"
	contentRepo "oasis/database/repository/content"
	"oasis/models"
	"oasis/utils"

	"go.uber.org/zap"
)

// LegalService manages legal pages, which are addressed by slug.
type LegalService struct {
	*Service[models.LegalPage, *models.LegalPage]
	// Fallback supplies built-in copy for slugs that were never saved.
	Fallback func(slug string) *models.LegalPage
}

func NewLegalService(repo contentRepo.Repository[models.LegalPage], fallback func(string) *models.LegalPage, logger *zap.Logger) *LegalService {
	svc := &LegalService{
		Service:  NewService[models.LegalPage](repo, "legal page", logger),
		Fallback: fallback,
	}
	svc.Validate = func(p *models.LegalPage) error {
		p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
		if !models.IsValidLegalSlug(p.Slug) {
			return utils.NewValidationError("slug", "slug must be one of %s", strings.Join(models.AllLegalSlugs(), ", "))
		}
		return nil
	}
	return svc
}

func (s *LegalService) GetBySlug(ctx context.Context, slug string) (*models.LegalPage, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !models.IsValidLegalSlug(slug) {
		return nil, utils.NewNotFoundError("legal page", slug)
	}
	page, err := s.Repo.FindBy(ctx, "slug", slug)
	if errors.Is(err, repository.ErrNotFound) {
		if s.Fallback != nil {
			if p := s.Fallback(slug); p != nil {
				return p, nil
			}
		}
		return nil, utils.NewNotFoundError("legal page", slug)
	}
	return page, err
}

// Create rejects a second page for the same slug.
func (s *LegalService) Create(ctx context.Context, page *models.LegalPage) (*models.LegalPage, error) {
	if err := s.Validate(page); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, page.Slug, ""); err != nil {
		return nil, err
	}
	return s.Service.Create(ctx, page)
}

func (s *LegalService) Update(ctx context.Context, id string, page *models.LegalPage) (*models.LegalPage, error) {
	if err := s.Validate(page); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, page.Slug, id); err != nil {
		return nil, err
	}
	return s.Service.Update(ctx, id, page)
}

func (s *LegalService) ensureSlugFree(ctx context.Context, slug, ownerID string) error {
	existing, err := s.Repo.FindBy(ctx, "slug", slug)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return utils.NewConflictError("legal page %q already exists", slug)
	}
	return nil
}

// Upsert saves the page for slug, creating it when only the built-in copy exists.
func (s *LegalService) Upsert(ctx context.Context, slug string, page *models.LegalPage) (*models.LegalPage, error) {
	page.Slug = slug
	if err := s.Validate(page); err != nil {
		return nil, err
	}
	existing, err := s.Repo.FindBy(ctx, "slug", page.Slug)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.Service.Create(ctx, page)
	case err != nil:
		return nil, err
	}
	return s.Service.Update(ctx, existing.ID, page)
}

// DeleteBySlug removes a saved page. The built-in copy is served again afterwards.
func (s *LegalService) DeleteBySlug(ctx context.Context, slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	existing, err := s.Repo.FindBy(ctx, "slug", slug)
	if err != nil {
		return notFound(err, "legal page", slug)
	}
	return s.Service.Delete(ctx, existing.ID)
}

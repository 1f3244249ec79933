package contact

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"oasis/database/repository"
	contentRepo "oasis/database/repository/content"
	"oasis/models"
	"oasis/utils"

	"go.uber.org/zap"
)

// Notifier is told about every new message.
type Notifier interface {
	NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// ContactService stores contact form submissions for the admin inbox.
type ContactService interface {
	Submit(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type DefaultContactService struct {
	Repo     contentRepo.Repository[models.ContactMessage]
	Notifier Notifier
	Logger   *zap.Logger
}

func NewContactService(repo contentRepo.Repository[models.ContactMessage], notifier Notifier, logger *zap.Logger) *DefaultContactService {
	return &DefaultContactService{Repo: repo, Notifier: notifier, Logger: logger}
}

func (s *DefaultContactService) Submit(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	switch {
	case msg.Name == "":
		return nil, utils.NewValidationError("name", "name is required")
	case !strings.Contains(msg.Email, "@"):
		return nil, utils.NewValidationError("email", "a valid email address is required")
	case msg.Message == "":
		return nil, utils.NewValidationError("message", "message is required")
	}
	msg.ID = ""
	msg.IsRead = false

	if err := s.Repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.Logger.Info("contact message received", zap.String("id", msg.ID), zap.String("from", msg.Email))

	if s.Notifier != nil {
		go func(m models.ContactMessage) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.Notifier.NotifyContactMessage(ctx, &m); err != nil {
				s.Logger.Warn("failed to notify admin of contact message", zap.String("id", m.ID), zap.Error(err))
			}
		}(*msg)
	}
	return msg, nil
}

// List returns messages newest first.
func (s *DefaultContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	msgs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (s *DefaultContactService) MarkRead(ctx context.Context, id string) error {
	err := s.Repo.SetField(ctx, id, "isRead", true)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError("contact message", id)
	}
	return err
}

func (s *DefaultContactService) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError("contact message", id)
	}
	return err
}

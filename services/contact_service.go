package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/events"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

type ContactService interface {
	Create(ctx context.Context, req *models.CreateContactRequest) (*models.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context, filter models.ContactFilter, page models.Page) ([]models.Contact, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateContactRequest) (*models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactServiceImpl struct {
	repo      repository.ContactRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewContactService(repo repository.ContactRepository, publisher events.Publisher, logger *zap.Logger) ContactService {
	return &contactServiceImpl{repo: repo, publisher: publisher, logger: logger}
}

func (s *contactServiceImpl) Create(ctx context.Context, req *models.CreateContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   models.NormalizeEmail(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, apperrors.Internal("Failed to save message", err)
	}

	events.PublishAsync(s.publisher, s.logger, models.EventContactReceived, contact.ID.String(), models.ContactReceivedEvent{
		ContactID: contact.ID,
		Email:     contact.Email,
		Subject:   contact.Subject,
	})
	return contact, nil
}

func (s *contactServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Contact not found")
	}
	return contact, nil
}

func (s *contactServiceImpl) List(ctx context.Context, filter models.ContactFilter, page models.Page) ([]models.Contact, int64, error) {
	contacts, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list contacts", err)
	}
	return contacts, total, nil
}

// Update marks a message read, or unread again when read is false. An empty
// body marks it read.
func (s *contactServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateContactRequest) (*models.Contact, error) {
	read := true
	if req.Read != nil {
		read = *req.Read
	}
	if err := s.repo.SetRead(ctx, id, read); err != nil {
		return nil, notFoundOr(err, "Contact not found")
	}
	return s.Get(ctx, id)
}

func (s *contactServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Contact not found")
	}
	return nil
}

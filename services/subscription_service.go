package services

import (
	"context"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.EmailSubscription, bool, error)
	List(ctx context.Context, page models.Page) ([]models.EmailSubscription, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type subscriptionServiceImpl struct {
	repo   repository.SubscriptionRepository
	logger *zap.Logger
}

func NewSubscriptionService(repo repository.SubscriptionRepository, logger *zap.Logger) SubscriptionService {
	return &subscriptionServiceImpl{repo: repo, logger: logger}
}

// Subscribe is idempotent per address. The bool reports whether a new row was
// created.
func (s *subscriptionServiceImpl) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.EmailSubscription, bool, error) {
	email := models.NormalizeEmail(req.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !repository.IsNotFound(err) {
		return nil, false, apperrors.Internal("Failed to look up subscription", err)
	}

	sub := &models.EmailSubscription{Email: email}
	if err := s.repo.Create(ctx, sub); err != nil {
		if repository.IsDuplicate(err) {
			// Lost a race with a concurrent subscribe for the same address.
			if existing, err := s.repo.FindByEmail(ctx, email); err == nil {
				return existing, false, nil
			}
		}
		return nil, false, apperrors.Internal("Failed to subscribe", err)
	}

	s.logger.Info("email subscribed", zap.String("subscription_id", sub.ID.String()))
	return sub, true, nil
}

func (s *subscriptionServiceImpl) List(ctx context.Context, page models.Page) ([]models.EmailSubscription, int64, error) {
	subs, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list subscriptions", err)
	}
	return subs, total, nil
}

func (s *subscriptionServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Subscription not found")
	}
	return nil
}

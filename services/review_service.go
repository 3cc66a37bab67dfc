package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/events"
	"github.com/yashrajoria/restaurant-service/models"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

type ReviewService interface {
	Create(ctx context.Context, caller Caller, req *models.CreateReviewRequest) (*models.Review, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Review, error)
	List(ctx context.Context, caller Caller, filter models.ReviewFilter, page models.Page) ([]models.Review, int64, error)
	Update(ctx context.Context, caller Caller, id uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
}

type reviewServiceImpl struct {
	repo      repository.ReviewRepository
	menuRepo  repository.MenuRepository
	menuCache *CacheManager
	publisher events.Publisher
	metrics   *awspkg.MetricsClient
	logger    *zap.Logger
}

func NewReviewService(
	repo repository.ReviewRepository,
	menuRepo repository.MenuRepository,
	menuCache *CacheManager,
	publisher events.Publisher,
	metrics *awspkg.MetricsClient,
	logger *zap.Logger,
) ReviewService {
	return &reviewServiceImpl{
		repo:      repo,
		menuRepo:  menuRepo,
		menuCache: menuCache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create accepts a review only from a caller who has been served a paid order
// containing the menu, and only once per menu.
func (s *reviewServiceImpl) Create(ctx context.Context, caller Caller, req *models.CreateReviewRequest) (*models.Review, error) {
	if caller.UserID == nil {
		return nil, apperrors.ErrUnauthorized
	}
	userID := *caller.UserID

	if _, err := s.menuRepo.FindByID(ctx, req.Menu, repository.Scope{}); err != nil {
		return nil, notFoundOr(err, "Menu not found")
	}

	purchased, err := s.repo.HasServedPurchase(ctx, userID, req.Menu)
	if err != nil {
		return nil, apperrors.Internal("Failed to check purchase history", err)
	}
	if !purchased {
		return nil, apperrors.ErrReviewNotAllowed
	}

	exists, err := s.repo.Exists(ctx, userID, req.Menu)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing reviews", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &models.Review{
		MenuID:   req.Menu,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, apperrors.Internal("Failed to create review", err)
	}

	s.menuCache.Invalidate(ctx)
	recordCountAsync(s.metrics, awspkg.MetricReviewsCreated)
	events.PublishAsync(s.publisher, s.logger, models.EventReviewCreated, review.MenuID.String(), models.ReviewCreatedEvent{
		ReviewID: review.ID,
		MenuID:   review.MenuID,
		UserID:   review.UserID,
		Rating:   review.Rating,
	})
	return review, nil
}

func (s *reviewServiceImpl) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, id, caller.PublicScope())
	if err != nil {
		return nil, notFoundOr(err, "Review not found")
	}
	return review, nil
}

func (s *reviewServiceImpl) List(ctx context.Context, caller Caller, filter models.ReviewFilter, page models.Page) ([]models.Review, int64, error) {
	reviews, total, err := s.repo.List(ctx, filter, page, caller.PublicScope())
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list reviews", err)
	}
	return reviews, total, nil
}

// Update is reserved to the author.
func (s *reviewServiceImpl) Update(ctx context.Context, caller Caller, id uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, id, caller.PublicScope())
	if err != nil {
		return nil, notFoundOr(err, "Review not found")
	}
	if caller.UserID == nil || review.UserID != *caller.UserID {
		return nil, apperrors.ErrForbidden
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = strings.TrimSpace(*req.Comment)
	}
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, apperrors.Internal("Failed to update review", err)
	}

	s.menuCache.Invalidate(ctx)
	return review, nil
}

// Delete is allowed to the author and to staff.
func (s *reviewServiceImpl) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	review, err := s.repo.FindByID(ctx, id, caller.PublicScope())
	if err != nil {
		return notFoundOr(err, "Review not found")
	}
	if !caller.IsStaff() && (caller.UserID == nil || review.UserID != *caller.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Review not found")
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

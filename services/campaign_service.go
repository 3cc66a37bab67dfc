package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

type CampaignService interface {
	Create(ctx context.Context, req *models.CreateCampaignRequest) (*models.Campaign, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Campaign, error)
	List(ctx context.Context, caller Caller, page models.Page) ([]models.Campaign, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateCampaignRequest) (*models.Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type campaignServiceImpl struct {
	repo   repository.CampaignRepository
	logger *zap.Logger
}

func NewCampaignService(repo repository.CampaignRepository, logger *zap.Logger) CampaignService {
	return &campaignServiceImpl{repo: repo, logger: logger}
}

func (s *campaignServiceImpl) Create(ctx context.Context, req *models.CreateCampaignRequest) (*models.Campaign, error) {
	endDate, err := parseEndDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Image:       req.Image,
		EndDate:     endDate,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, apperrors.Internal("Failed to create campaign", err)
	}

	s.logger.Info("campaign created", zap.String("campaign_id", campaign.ID.String()))
	return campaign, nil
}

func (s *campaignServiceImpl) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id, caller.PublicScope())
	if err != nil {
		return nil, notFoundOr(err, "Campaign not found")
	}
	return campaign, nil
}

func (s *campaignServiceImpl) List(ctx context.Context, caller Caller, page models.Page) ([]models.Campaign, int64, error) {
	campaigns, total, err := s.repo.List(ctx, page, caller.PublicScope())
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list campaigns", err)
	}
	return campaigns, total, nil
}

func (s *campaignServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateCampaignRequest) (*models.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id, repository.StaffScope())
	if err != nil {
		return nil, notFoundOr(err, "Campaign not found")
	}

	if req.Title != nil {
		campaign.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Image != nil {
		campaign.Image = *req.Image
	}
	if req.EndDate != nil {
		endDate, err := parseEndDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		campaign.EndDate = endDate
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, apperrors.Internal("Failed to update campaign", err)
	}
	return campaign, nil
}

func (s *campaignServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Campaign not found")
	}
	return nil
}

func parseEndDate(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.Validation(map[string]string{"end_date": "must be a date in YYYY-MM-DD format"})
	}
	return t, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Campaign, error)
	List(ctx context.Context, page models.Page, scope Scope) ([]models.Campaign, int64, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormCampaignRepository struct {
	db *gorm.DB
}

func NewGormCampaignRepository(db *gorm.DB) CampaignRepository {
	return &GormCampaignRepository{db: db}
}

func (r *GormCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *GormCampaignRepository) FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Campaign, error) {
	var campaign models.Campaign
	query := scope.active(r.db.WithContext(ctx), "campaigns")
	if err := query.Where("campaigns.id = ?", id).First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *GormCampaignRepository) List(ctx context.Context, page models.Page, scope Scope) ([]models.Campaign, int64, error) {
	query := scope.active(r.db.WithContext(ctx).Model(&models.Campaign{}), "campaigns")
	return findPage[models.Campaign](query, page, "campaigns.created_at DESC")
}

func (r *GormCampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

func (r *GormCampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Campaign{}, id)
}

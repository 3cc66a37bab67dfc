package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.EmailSubscription, error)
	Create(ctx context.Context, sub *models.EmailSubscription) error
	List(ctx context.Context, page models.Page) ([]models.EmailSubscription, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormSubscriptionRepository struct {
	db *gorm.DB
}

func NewGormSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

func (r *GormSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*models.EmailSubscription, error) {
	var sub models.EmailSubscription
	if err := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormSubscriptionRepository) Create(ctx context.Context, sub *models.EmailSubscription) error {
	sub.Email = models.NormalizeEmail(sub.Email)
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *GormSubscriptionRepository) List(ctx context.Context, page models.Page) ([]models.EmailSubscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EmailSubscription{})
	return findPage[models.EmailSubscription](query, page, "subscribed_at DESC")
}

func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.EmailSubscription{}, id)
}

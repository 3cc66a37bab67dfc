package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Review, error)
	List(ctx context.Context, filter models.ReviewFilter, page models.Page, scope Scope) ([]models.Review, int64, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasServedPurchase(ctx context.Context, userID, menuID uuid.UUID) (bool, error)
	Exists(ctx context.Context, userID, menuID uuid.UUID) (bool, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("User", "Menu").Create(review).Error
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Review, error) {
	var review models.Review
	query := scope.active(r.db.WithContext(ctx), "reviews")
	if err := query.Preload("User").Where("reviews.id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) List(ctx context.Context, filter models.ReviewFilter, page models.Page, scope Scope) ([]models.Review, int64, error) {
	query := scope.active(r.db.WithContext(ctx).Model(&models.Review{}), "reviews")
	if filter.MenuID != nil {
		query = query.Where("reviews.menu_id = ?", *filter.MenuID)
	}
	return findPage[models.Review](query, page, "reviews.created_at DESC", "User")
}

func (r *GormReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("User", "Menu").Save(review).Error
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Review{}, id)
}

// HasServedPurchase reports whether userID has an order item for menuID in an
// order that is both paid and served.
func (r *GormReviewRepository) HasServedPurchase(ctx context.Context, userID, menuID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.menu_id = ? AND orders.user_id = ? AND orders.is_paid = ? AND orders.is_served = ?", menuID, userID, true, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormReviewRepository) Exists(ctx context.Context, userID, menuID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND menu_id = ?", userID, menuID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

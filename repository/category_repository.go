package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Category, error)
	List(ctx context.Context, page models.Page, scope Scope) ([]models.Category, int64, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Category, error) {
	var category models.Category
	query := scope.active(r.db.WithContext(ctx), "categories")
	if err := query.Where("categories.id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) List(ctx context.Context, page models.Page, scope Scope) ([]models.Category, int64, error) {
	query := scope.active(r.db.WithContext(ctx).Model(&models.Category{}), "categories")
	return findPage[models.Category](query, page, "categories.created_at DESC")
}

func (r *GormCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Category{}, id)
}

func (r *GormCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return slugExists(r.db.WithContext(ctx).Model(&models.Category{}), slug, excludeID)
}

func slugExists(query *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error) {
	query = query.Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

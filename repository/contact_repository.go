package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context, filter models.ContactFilter, page models.Page) ([]models.Contact, int64, error)
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormContactRepository struct {
	db *gorm.DB
}

func NewGormContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *GormContactRepository) List(ctx context.Context, filter models.ContactFilter, page models.Page) ([]models.Contact, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{})
	if filter.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	return findPage[models.Contact](query, page, "created_at DESC")
}

func (r *GormContactRepository) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	result := r.db.WithContext(ctx).Model(&models.Contact{}).Where("id = ?", id).Update("read", read)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Contact{}, id)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Reservation, error)
	List(ctx context.Context, page models.Page, scope Scope) ([]models.Reservation, int64, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) ReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Omit("User").Create(reservation).Error
}

func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Reservation, error) {
	var reservation models.Reservation
	query := scope.owned(r.db.WithContext(ctx), "reservations")
	if err := query.Preload("User").Where("reservations.id = ?", id).First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormReservationRepository) List(ctx context.Context, page models.Page, scope Scope) ([]models.Reservation, int64, error) {
	query := scope.owned(r.db.WithContext(ctx).Model(&models.Reservation{}), "reservations")
	return findPage[models.Reservation](query, page, "reservations.created_at DESC", "User")
}

func (r *GormReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Omit("User").Save(reservation).Error
}

func (r *GormReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Reservation{}, id)
}

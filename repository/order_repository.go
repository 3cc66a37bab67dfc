package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderBuilder turns the menus referenced by a cart into an order ready to be
// inserted. It runs inside the checkout transaction; returning an error rolls
// the whole checkout back.
type OrderBuilder func(menus map[uuid.UUID]models.Menu) (*models.Order, error)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Checkout(ctx context.Context, menuIDs []uuid.UUID, build OrderBuilder) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Order, error)
	List(ctx context.Context, page models.Page, scope Scope) ([]models.Order, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Checkout loads the active menus for menuIDs (locking them against concurrent
// edits), lets build price the order and inserts the order with its items,
// all in one transaction.
func (r *GormOrderRepository) Checkout(ctx context.Context, menuIDs []uuid.UUID, build OrderBuilder) (*models.Order, error) {
	var created *models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menus []models.Menu
		if err := tx.
			Clauses(clause.Locking{Strength: "SHARE"}).
			Where("id IN ? AND is_active = ?", menuIDs, true).
			Find(&menus).Error; err != nil {
			return err
		}

		byID := make(map[uuid.UUID]models.Menu, len(menus))
		for _, m := range menus {
			byID[m.ID] = m
		}

		order, err := build(byID)
		if err != nil {
			return err
		}

		if err := tx.Omit("User").Create(order).Error; err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, created.ID, StaffScope())
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Order, error) {
	var order models.Order
	query := scope.owned(r.db.WithContext(ctx), "orders")
	if err := query.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("User").
		Where("orders.id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) List(ctx context.Context, page models.Page, scope Scope) ([]models.Order, int64, error) {
	query := scope.owned(r.db.WithContext(ctx).Model(&models.Order{}), "orders")
	return findPage[models.Order](query, page, "orders.created_at DESC", "OrderItems", "User")
}

func (r *GormOrderRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Order{}, id)
}

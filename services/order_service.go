package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/events"
	"github.com/yashrajoria/restaurant-service/models"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

// totalTolerance is how far a submitted total may drift from the computed one.
var totalTolerance = decimal.New(1, -2)

type OrderService interface {
	Create(ctx context.Context, caller Caller, req *models.CreateOrderRequest) (*models.Order, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, caller Caller, page models.Page) ([]models.Order, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderServiceImpl struct {
	repo      repository.OrderRepository
	taxRate   decimal.Decimal
	publisher events.Publisher
	metrics   *awspkg.MetricsClient
	logger    *zap.Logger
}

func NewOrderService(
	repo repository.OrderRepository,
	taxRate decimal.Decimal,
	publisher events.Publisher,
	metrics *awspkg.MetricsClient,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		repo:      repo,
		taxRate:   taxRate,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create checks out the caller's cart in one transaction. Prices, tax and
// total are computed from the menus as stored; a submitted total_price only
// serves as a staleness check.
func (s *orderServiceImpl) Create(ctx context.Context, caller Caller, req *models.CreateOrderRequest) (*models.Order, error) {
	if caller.UserID == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if len(req.OrderItems) == 0 {
		return nil, apperrors.ErrEmptyOrder
	}

	menuIDs := make([]uuid.UUID, 0, len(req.OrderItems))
	seen := make(map[uuid.UUID]bool, len(req.OrderItems))
	for i, line := range req.OrderItems {
		if line.Quantity < 1 {
			return nil, apperrors.Validation(map[string]string{
				fmt.Sprintf("order_items[%d].quantity", i): "must be at least 1",
			})
		}
		if line.Quantity > models.MaxItemQuantity {
			return nil, apperrors.Validation(map[string]string{
				fmt.Sprintf("order_items[%d].quantity", i): fmt.Sprintf("must be at most %d", models.MaxItemQuantity),
			})
		}
		if !seen[line.Menu] {
			seen[line.Menu] = true
			menuIDs = append(menuIDs, line.Menu)
		}
	}

	order, err := s.repo.Checkout(ctx, menuIDs, s.builder(*caller.UserID, req))
	if err != nil {
		recordCountAsync(s.metrics, awspkg.MetricCheckoutFailed)
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Internal("Failed to create order", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", order.UserID.String()),
		zap.Int("items", len(order.OrderItems)),
		zap.String("total_price", order.TotalPrice.StringFixed(2)),
	)
	recordCountAsync(s.metrics, awspkg.MetricOrdersCreated)
	recordValueAsync(s.metrics, awspkg.MetricOrderRevenue, order.TotalPrice.InexactFloat64())
	events.PublishAsync(s.publisher, s.logger, models.EventOrderCreated, order.ID.String(), models.OrderCreatedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Items:      len(order.OrderItems),
		TotalPrice: order.TotalPrice,
	})

	return order, nil
}

// builder prices the order from the locked menus.
func (s *orderServiceImpl) builder(userID uuid.UUID, req *models.CreateOrderRequest) repository.OrderBuilder {
	return func(menus map[uuid.UUID]models.Menu) (*models.Order, error) {
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.OrderItems))

		for _, line := range req.OrderItems {
			menu, ok := menus[line.Menu]
			if !ok {
				return nil, apperrors.NotFound("Menu not found")
			}

			menuID := menu.ID
			unit := menu.UnitPrice()
			items = append(items, models.OrderItem{
				MenuID:   &menuID,
				Name:     menu.Name,
				Image:    menu.Image,
				Quantity: int(line.Quantity),
				Price:    unit,
			})
			subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		tax := subtotal.Mul(s.taxRate).Round(2)
		total := subtotal.Add(tax)

		if req.TotalPrice != nil && req.TotalPrice.Sub(total).Abs().GreaterThan(totalTolerance) {
			return nil, apperrors.ErrTotalMismatch
		}

		return &models.Order{
			UserID:     userID,
			TotalPrice: total,
			Tax:        tax,
			IsActive:   true,
			OrderItems: items,
		}, nil
	}
}

func (s *orderServiceImpl) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id, caller.Scope())
	if err != nil {
		return nil, notFoundOr(err, "Order not found")
	}
	return order, nil
}

func (s *orderServiceImpl) List(ctx context.Context, caller Caller, page models.Page) ([]models.Order, int64, error) {
	orders, total, err := s.repo.List(ctx, page, caller.Scope())
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list orders", err)
	}
	return orders, total, nil
}

func (s *orderServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error) {
	if updates := req.Updates(); len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, notFoundOr(err, "Order not found")
		}
		s.logger.Info("order updated", zap.String("order_id", id.String()), zap.Any("updates", updates))
	}
	return s.Get(ctx, Caller{Role: models.RoleStaff}, id)
}

func (s *orderServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Order not found")
	}
	s.logger.Info("order deleted", zap.String("order_id", id.String()))
	return nil
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/events"
	"github.com/yashrajoria/restaurant-service/models"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type orderFixture struct {
	repo    *fakeOrderRepository
	svc     OrderService
	caller  Caller
	soup    models.Menu
	burger  models.Menu
	retired models.Menu
}

func newOrderFixture(taxRate string) *orderFixture {
	soup := models.Menu{ID: uuid.New(), Name: "Tomato Soup", Image: "soup.jpg", Price: dec("10.00"), IsActive: true}
	burger := models.Menu{ID: uuid.New(), Name: "Burger", Image: "burger.jpg", Price: dec("5.00"), OfferPrice: dec("4.50"), IsActive: true}
	retired := models.Menu{ID: uuid.New(), Name: "Old Special", Price: dec("7.00"), IsActive: false}

	repo := &fakeOrderRepository{menus: map[uuid.UUID]models.Menu{
		soup.ID:    soup,
		burger.ID:  burger,
		retired.ID: retired,
	}}
	userID := uuid.New()

	return &orderFixture{
		repo:    repo,
		svc:     NewOrderService(repo, dec(taxRate), events.NoopPublisher{}, nil, zap.NewNop()),
		caller:  Caller{UserID: &userID, Role: models.RoleCustomer},
		soup:    soup,
		burger:  burger,
		retired: retired,
	}
}

func TestOrderCreate_EmptyItems(t *testing.T) {
	f := newOrderFixture("0")

	_, err := f.svc.Create(context.Background(), f.caller, &models.CreateOrderRequest{})

	assert.ErrorIs(t, err, apperrors.ErrEmptyOrder)
	assert.Nil(t, f.repo.created)
}

func TestOrderCreate_RequiresCaller(t *testing.T) {
	f := newOrderFixture("0")

	_, err := f.svc.Create(context.Background(), Caller{}, &models.CreateOrderRequest{
		OrderItems: []models.OrderItemRequest{{Menu: f.soup.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestOrderCreate_RejectsZeroQuantity(t *testing.T) {
	f := newOrderFixture("0")

	_, err := f.svc.Create(context.Background(), f.caller, &models.CreateOrderRequest{
		OrderItems: []models.OrderItemRequest{{Menu: f.soup.ID, Quantity: 0}},
	})

	appErr := apperrors.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Fields, "order_items[0].quantity")
}

func TestOrderCreate_UnknownOrInactiveMenu(t *testing.T) {
	f := newOrderFixture("0")

	for _, id := range []uuid.UUID{uuid.New(), f.retired.ID} {
		_, err := f.svc.Create(context.Background(), f.caller, &models.CreateOrderRequest{
			OrderItems: []models.OrderItemRequest{
				{Menu: f.soup.ID, Quantity: 1},
				{Menu: id, Quantity: 1},
			},
		})

		appErr := apperrors.From(err)
		assert.Equal(t, 404, appErr.Code)
		assert.Equal(t, "Menu not found", appErr.Message)
	}
	assert.Nil(t, f.repo.created)
}

func TestOrderCreate_ComputesTotalsAndSnapshots(t *testing.T) {
	f := newOrderFixture("0.0825")

	order, err := f.svc.Create(context.Background(), f.caller, &models.CreateOrderRequest{
		OrderItems: []models.OrderItemRequest{
			{Menu: f.soup.ID, Quantity: 2},
			{Menu: f.burger.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 2 x 10.00 + 3 x 4.50 = 33.50; tax 2.76375 rounds to 2.76
	assert.Equal(t, "2.76", order.Tax.StringFixed(2))
	assert.Equal(t, "36.26", order.TotalPrice.StringFixed(2))
	assert.Equal(t, *f.caller.UserID, order.UserID)
	assert.True(t, order.IsActive)
	assert.False(t, order.IsPaid)

	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "Tomato Soup", order.OrderItems[0].Name)
	assert.Equal(t, "soup.jpg", order.OrderItems[0].Image)
	assert.Equal(t, f.soup.ID, *order.OrderItems[0].MenuID)
	assert.True(t, dec("4.50").Equal(order.OrderItems[1].Price), "offer price is the unit price")
	assert.Equal(t, 3, order.OrderItems[1].Quantity)
}

func TestOrderCreate_DeduplicatesMenuLookups(t *testing.T) {
	f := newOrderFixture("0")

	order, err := f.svc.Create(context.Background(), f.caller, &models.CreateOrderRequest{
		OrderItems: []models.OrderItemRequest{
			{Menu: f.soup.ID, Quantity: 1},
			{Menu: f.soup.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.soup.ID}, f.repo.lastMenuIDs)
	assert.Len(t, order.OrderItems, 2)
	assert.Equal(t, "30.00", order.TotalPrice.StringFixed(2))
}

func TestOrderCreate_SubmittedTotal(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		wantErr bool
	}{
		{name: "exact", total: "10.80", wantErr: false},
		{name: "within a cent", total: "10.79", wantErr: false},
		{name: "stale cart", total: "9.50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture("0.08")

			_, err := f.svc.Create(context.Background(), f.caller, &models.CreateOrderRequest{
				OrderItems: []models.OrderItemRequest{{Menu: f.soup.ID, Quantity: 1}},
				TotalPrice: decPtr(tt.total),
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrTotalMismatch)
				assert.Nil(t, f.repo.created)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderCreate_RejectsQuantityAboveCap(t *testing.T) {
	f := newOrderFixture("0")

	_, err := f.svc.Create(context.Background(), f.caller, &models.CreateOrderRequest{
		OrderItems: []models.OrderItemRequest{{Menu: f.soup.ID, Quantity: models.MaxItemQuantity + 1}},
	})

	appErr := apperrors.From(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Fields, "order_items[0].quantity")
}

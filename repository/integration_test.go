//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yashrajoria/restaurant-service/database"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("restaurant"),
		postgres.WithUsername("restaurant"),
		postgres.WithPassword("restaurant"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, models.Migrate(db))
	return db
}

func createUser(t *testing.T, users repository.UserRepository, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "x", FirstName: "T", LastName: "U", IsActive: true}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func createMenu(t *testing.T, menus repository.MenuRepository, name, price string, active bool) *models.Menu {
	t.Helper()
	m := &models.Menu{
		Name:        name,
		Slug:        uuid.NewString(),
		Price:       decimal.RequireFromString(price),
		Description: name,
		IsActive:    active,
	}
	require.NoError(t, menus.Create(context.Background(), m))
	return m
}

func TestIntegration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users := repository.NewGormUserRepository(db)
	menus := repository.NewGormMenuRepository(db)
	orders := repository.NewGormOrderRepository(db)
	reviews := repository.NewGormReviewRepository(db)

	buyer := createUser(t, users, "buyer@example.com")

	t.Run("Checkout Persists Every Item", func(t *testing.T) {
		a := createMenu(t, menus, "Pho", "9.50", true)
		b := createMenu(t, menus, "Banh mi", "6.00", true)
		c := createMenu(t, menus, "Spring rolls", "4.25", true)

		order, err := orders.Checkout(ctx, []uuid.UUID{a.ID, b.ID, c.ID}, func(found map[uuid.UUID]models.Menu) (*models.Order, error) {
			require.Len(t, found, 3)
			o := &models.Order{UserID: buyer.ID, TotalPrice: decimal.RequireFromString("19.75"), Tax: decimal.Zero, IsActive: true}
			for _, m := range []*models.Menu{a, b, c} {
				id := m.ID
				o.OrderItems = append(o.OrderItems, models.OrderItem{MenuID: &id, Name: m.Name, Quantity: 1, Price: m.Price})
			}
			return o, nil
		})
		require.NoError(t, err)
		assert.Len(t, order.OrderItems, 3)
		assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("19.75")))
	})

	t.Run("Checkout Skips Inactive Menus", func(t *testing.T) {
		hidden := createMenu(t, menus, "Off menu", "3.00", false)

		_, err := orders.Checkout(ctx, []uuid.UUID{hidden.ID}, func(found map[uuid.UUID]models.Menu) (*models.Order, error) {
			assert.Empty(t, found)
			return nil, fmt.Errorf("menu not available")
		})
		assert.Error(t, err)
	})

	t.Run("Deleting A Menu Keeps The Item Snapshot", func(t *testing.T) {
		m := createMenu(t, menus, "Seasonal soup", "7.00", true)
		order, err := orders.Checkout(ctx, []uuid.UUID{m.ID}, func(found map[uuid.UUID]models.Menu) (*models.Order, error) {
			id := m.ID
			return &models.Order{
				UserID:     buyer.ID,
				TotalPrice: m.Price,
				Tax:        decimal.Zero,
				IsActive:   true,
				OrderItems: []models.OrderItem{{MenuID: &id, Name: m.Name, Quantity: 1, Price: m.Price}},
			}, nil
		})
		require.NoError(t, err)

		require.NoError(t, menus.Delete(ctx, m.ID))

		reloaded, err := orders.FindByID(ctx, order.ID, repository.StaffScope())
		require.NoError(t, err)
		require.Len(t, reloaded.OrderItems, 1)
		assert.Nil(t, reloaded.OrderItems[0].MenuID)
		assert.Equal(t, "Seasonal soup", reloaded.OrderItems[0].Name)
		assert.True(t, reloaded.OrderItems[0].Price.Equal(decimal.RequireFromString("7.00")))
	})

	t.Run("Editing A Menu Keeps The Item Snapshot", func(t *testing.T) {
		m := createMenu(t, menus, "Ramen", "12.00", true)
		m.Image = "menus/ramen.jpg"
		require.NoError(t, menus.Update(ctx, m))

		order, err := orders.Checkout(ctx, []uuid.UUID{m.ID}, func(found map[uuid.UUID]models.Menu) (*models.Order, error) {
			snap := found[m.ID]
			id := snap.ID
			return &models.Order{
				UserID:     buyer.ID,
				TotalPrice: snap.Price.Mul(decimal.NewFromInt(2)),
				Tax:        decimal.Zero,
				IsActive:   true,
				OrderItems: []models.OrderItem{{MenuID: &id, Name: snap.Name, Image: snap.Image, Quantity: 2, Price: snap.Price}},
			}, nil
		})
		require.NoError(t, err)

		m.Name = "Spicy ramen"
		m.Image = "menus/spicy-ramen.jpg"
		m.Price = decimal.RequireFromString("15.50")
		require.NoError(t, menus.Update(ctx, m))

		reloaded, err := orders.FindByID(ctx, order.ID, repository.StaffScope())
		require.NoError(t, err)
		require.Len(t, reloaded.OrderItems, 1)
		item := reloaded.OrderItems[0]
		if assert.NotNil(t, item.MenuID) {
			assert.Equal(t, m.ID, *item.MenuID)
		}
		assert.Equal(t, "Ramen", item.Name)
		assert.Equal(t, "menus/ramen.jpg", item.Image)
		assert.True(t, item.Price.Equal(decimal.RequireFromString("12.00")))
		assert.True(t, reloaded.TotalPrice.Equal(decimal.RequireFromString("24.00")))
	})

	t.Run("Review Gate Needs Paid And Served Order", func(t *testing.T) {
		m := createMenu(t, menus, "Curry", "11.00", true)
		order, err := orders.Checkout(ctx, []uuid.UUID{m.ID}, func(found map[uuid.UUID]models.Menu) (*models.Order, error) {
			id := m.ID
			return &models.Order{
				UserID:     buyer.ID,
				TotalPrice: m.Price,
				Tax:        decimal.Zero,
				IsActive:   true,
				OrderItems: []models.OrderItem{{MenuID: &id, Name: m.Name, Quantity: 1, Price: m.Price}},
			}, nil
		})
		require.NoError(t, err)

		ok, err := reviews.HasServedPurchase(ctx, buyer.ID, m.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, orders.Update(ctx, order.ID, map[string]interface{}{"is_paid": true}))
		ok, err = reviews.HasServedPurchase(ctx, buyer.ID, m.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, orders.Update(ctx, order.ID, map[string]interface{}{"is_served": true}))
		ok, err = reviews.HasServedPurchase(ctx, buyer.ID, m.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, reviews.Create(ctx, &models.Review{MenuID: m.ID, UserID: buyer.ID, Rating: 4, Comment: "Good", IsActive: true}))
		err = reviews.Create(ctx, &models.Review{MenuID: m.ID, UserID: buyer.ID, Rating: 5, Comment: "Again", IsActive: true})
		assert.True(t, repository.IsDuplicate(err))
	})

	t.Run("Top Rated Is Capped And Ignores Inactive Menus", func(t *testing.T) {
		require.NoError(t, db.Exec("DELETE FROM reviews").Error)
		require.NoError(t, db.Exec("UPDATE menus SET is_active = false").Error)

		best := createMenu(t, menus, "Best", "10.00", true)
		good := createMenu(t, menus, "Good", "10.00", true)
		hidden := createMenu(t, menus, "Hidden", "10.00", false)
		createMenu(t, menus, "Unrated", "10.00", true)

		for i, rating := range []int{5, 5} {
			u := createUser(t, users, fmt.Sprintf("best%d@example.com", i))
			require.NoError(t, reviews.Create(ctx, &models.Review{MenuID: best.ID, UserID: u.ID, Rating: rating, Comment: "!", IsActive: true}))
		}
		u := createUser(t, users, "good@example.com")
		require.NoError(t, reviews.Create(ctx, &models.Review{MenuID: good.ID, UserID: u.ID, Rating: 3, Comment: "ok", IsActive: true}))
		u = createUser(t, users, "hidden@example.com")
		require.NoError(t, reviews.Create(ctx, &models.Review{MenuID: hidden.ID, UserID: u.ID, Rating: 5, Comment: "!", IsActive: true}))

		top, err := menus.TopRated(ctx, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, best.ID, top[0].ID)
		assert.Equal(t, good.ID, top[1].ID)
		if assert.NotNil(t, top[0].ReviewCount) {
			assert.Equal(t, int64(2), *top[0].ReviewCount)
		}
	})
}

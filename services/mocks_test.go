package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"gorm.io/gorm"
)

var errNotFound = gorm.ErrRecordNotFound

// --- Mocks for Dependencies ---

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, page models.Page, includeSuperusers bool) ([]models.User, int64, error) {
	args := m.Called(ctx, page, includeSuperusers)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID, scope repository.Scope) (*models.Review, error) {
	args := m.Called(ctx, id, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, filter models.ReviewFilter, page models.Page, scope repository.Scope) ([]models.Review, int64, error) {
	args := m.Called(ctx, filter, page, scope)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) HasServedPurchase(ctx context.Context, userID, menuID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, menuID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Exists(ctx context.Context, userID, menuID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, menuID)
	return args.Bool(0), args.Error(1)
}

// fakeMenuRepository serves menus from a map; only lookups are exercised.
type fakeMenuRepository struct {
	repository.MenuRepository
	menus map[uuid.UUID]*models.Menu
	slugs map[string]bool
}

func (f *fakeMenuRepository) FindByID(_ context.Context, id uuid.UUID, scope repository.Scope) (*models.Menu, error) {
	m, ok := f.menus[id]
	if !ok || (!scope.IncludeInactive && !m.IsActive) {
		return nil, errNotFound
	}
	return m, nil
}

func (f *fakeMenuRepository) SlugExists(_ context.Context, slug string, _ *uuid.UUID) (bool, error) {
	return f.slugs[slug], nil
}

// fakeOrderRepository runs the builder against its menus the way the
// transactional checkout does.
type fakeOrderRepository struct {
	repository.OrderRepository
	menus       map[uuid.UUID]models.Menu
	lastMenuIDs []uuid.UUID
	created     *models.Order
}

func (f *fakeOrderRepository) Checkout(_ context.Context, menuIDs []uuid.UUID, build repository.OrderBuilder) (*models.Order, error) {
	f.lastMenuIDs = menuIDs
	found := map[uuid.UUID]models.Menu{}
	for _, id := range menuIDs {
		if m, ok := f.menus[id]; ok && m.IsActive {
			found[id] = m
		}
	}
	order, err := build(found)
	if err != nil {
		return nil, err
	}
	order.ID = uuid.New()
	f.created = order
	return order, nil
}

type fakeReservationRepository struct {
	repository.ReservationRepository
	rows    map[uuid.UUID]*models.Reservation
	updated *models.Reservation
}

func (f *fakeReservationRepository) Create(_ context.Context, r *models.Reservation) error {
	r.ID = uuid.New()
	f.rows[r.ID] = r
	return nil
}

func (f *fakeReservationRepository) FindByID(_ context.Context, id uuid.UUID, scope repository.Scope) (*models.Reservation, error) {
	r, ok := f.rows[id]
	if !ok || (scope.OwnerID != nil && r.UserID != *scope.OwnerID) {
		return nil, errNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepository) Update(_ context.Context, r *models.Reservation) error {
	f.updated = r
	f.rows[r.ID] = r
	return nil
}

type fakeSubscriptionRepository struct {
	repository.SubscriptionRepository
	byEmail map[string]*models.EmailSubscription
}

func (f *fakeSubscriptionRepository) FindByEmail(_ context.Context, email string) (*models.EmailSubscription, error) {
	s, ok := f.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (f *fakeSubscriptionRepository) Create(_ context.Context, s *models.EmailSubscription) error {
	s.ID = uuid.New()
	f.byEmail[s.Email] = s
	return nil
}

type stubQR struct{}

func (stubQR) Generate(uuid.UUID) ([]byte, error) { return []byte("png"), nil }

type stubPresigner struct {
	key string
}

func (p *stubPresigner) PresignPut(_ context.Context, key, contentType string, _ time.Duration) (string, map[string]string, error) {
	p.key = key
	return "https://upload.example.com/" + key, map[string]string{"Content-Type": contentType}, nil
}

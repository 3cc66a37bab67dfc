package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter mounts routes behind the error middleware with a fixed caller.
func setupRouter(caller services.Caller, register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware(nil))
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CallerContextKey, caller)
		c.Next()
	})
	register(r)
	return r
}

func customer(id uuid.UUID) services.Caller {
	return services.Caller{UserID: &id, Role: models.RoleCustomer}
}

func staff() services.Caller {
	id := uuid.New()
	return services.Caller{UserID: &id, Role: models.RoleStaff}
}

// --- Auth ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockAuthService) ListUsers(ctx context.Context, caller services.Caller, page models.Page) ([]models.User, int64, error) {
	args := m.Called(ctx, caller, page)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockAuthService) CreateSuperuser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// --- Orders ---

type mockOrderService struct {
	CreateFunc func(ctx context.Context, caller services.Caller, req *models.CreateOrderRequest) (*models.Order, error)
	GetFunc    func(ctx context.Context, caller services.Caller, id uuid.UUID) (*models.Order, error)
	ListFunc   func(ctx context.Context, caller services.Caller, page models.Page) ([]models.Order, int64, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockOrderService) Create(ctx context.Context, caller services.Caller, req *models.CreateOrderRequest) (*models.Order, error) {
	return m.CreateFunc(ctx, caller, req)
}

func (m *mockOrderService) Get(ctx context.Context, caller services.Caller, id uuid.UUID) (*models.Order, error) {
	return m.GetFunc(ctx, caller, id)
}

func (m *mockOrderService) List(ctx context.Context, caller services.Caller, page models.Page) ([]models.Order, int64, error) {
	return m.ListFunc(ctx, caller, page)
}

func (m *mockOrderService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

// --- Reservations ---

type mockReservationService struct {
	CreateFunc func(ctx context.Context, caller services.Caller, req *models.CreateReservationRequest) (*models.Reservation, error)
	CancelFunc func(ctx context.Context, caller services.Caller, id uuid.UUID) (*models.Reservation, error)
	QRCodeFunc func(ctx context.Context, caller services.Caller, id uuid.UUID) ([]byte, error)
}

func (m *mockReservationService) Create(ctx context.Context, caller services.Caller, req *models.CreateReservationRequest) (*models.Reservation, error) {
	return m.CreateFunc(ctx, caller, req)
}

func (m *mockReservationService) Get(ctx context.Context, caller services.Caller, id uuid.UUID) (*models.Reservation, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockReservationService) List(ctx context.Context, caller services.Caller, page models.Page) ([]models.Reservation, int64, error) {
	return nil, 0, nil
}

func (m *mockReservationService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateReservationRequest) (*models.Reservation, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockReservationService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *mockReservationService) Cancel(ctx context.Context, caller services.Caller, id uuid.UUID) (*models.Reservation, error) {
	return m.CancelFunc(ctx, caller, id)
}

func (m *mockReservationService) QRCode(ctx context.Context, caller services.Caller, id uuid.UUID) ([]byte, error) {
	return m.QRCodeFunc(ctx, caller, id)
}

// --- Reviews ---

type mockReviewService struct {
	ListFunc   func(ctx context.Context, caller services.Caller, filter models.ReviewFilter, page models.Page) ([]models.Review, int64, error)
	CreateFunc func(ctx context.Context, caller services.Caller, req *models.CreateReviewRequest) (*models.Review, error)
}

func (m *mockReviewService) Create(ctx context.Context, caller services.Caller, req *models.CreateReviewRequest) (*models.Review, error) {
	return m.CreateFunc(ctx, caller, req)
}

func (m *mockReviewService) Get(ctx context.Context, caller services.Caller, id uuid.UUID) (*models.Review, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockReviewService) List(ctx context.Context, caller services.Caller, filter models.ReviewFilter, page models.Page) ([]models.Review, int64, error) {
	return m.ListFunc(ctx, caller, filter, page)
}

func (m *mockReviewService) Update(ctx context.Context, caller services.Caller, id uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error) {
	return nil, apperrors.ErrForbidden
}

func (m *mockReviewService) Delete(ctx context.Context, caller services.Caller, id uuid.UUID) error {
	return nil
}

// --- Subscriptions ---

type mockSubscriptionService struct {
	SubscribeFunc func(ctx context.Context, req *models.SubscribeRequest) (*models.EmailSubscription, bool, error)
}

func (m *mockSubscriptionService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.EmailSubscription, bool, error) {
	return m.SubscribeFunc(ctx, req)
}

func (m *mockSubscriptionService) List(ctx context.Context, page models.Page) ([]models.EmailSubscription, int64, error) {
	return nil, 0, nil
}

func (m *mockSubscriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

// --- Menus ---

type mockMenuService struct {
	ListFunc     func(ctx context.Context, caller services.Caller, filter models.MenuFilter, page models.Page) ([]models.Menu, int64, error)
	TopRatedFunc func(ctx context.Context) ([]models.Menu, error)
}

func (m *mockMenuService) Create(ctx context.Context, req *models.CreateMenuRequest) (*models.Menu, error) {
	return nil, apperrors.ErrBadRequest
}

func (m *mockMenuService) Get(ctx context.Context, caller services.Caller, id uuid.UUID) (*models.Menu, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockMenuService) List(ctx context.Context, caller services.Caller, filter models.MenuFilter, page models.Page) ([]models.Menu, int64, error) {
	return m.ListFunc(ctx, caller, filter, page)
}

func (m *mockMenuService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateMenuRequest) (*models.Menu, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockMenuService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *mockMenuService) TopRated(ctx context.Context) ([]models.Menu, error) {
	return m.TopRatedFunc(ctx)
}

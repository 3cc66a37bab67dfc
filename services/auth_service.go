package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/events"
	"github.com/yashrajoria/restaurant-service/models"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

// AuthService covers registration, login and the caller's own account.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error
	ListUsers(ctx context.Context, caller Caller, page models.Page) ([]models.User, int64, error)
	CreateSuperuser(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepository
	tokens    TokenService
	passwords *PasswordValidator
	publisher events.Publisher
	metrics   *awspkg.MetricsClient
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenService,
	publisher events.Publisher,
	metrics *awspkg.MetricsClient,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		passwords: NewPasswordValidator(),
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	user, err := s.createUser(ctx, req, false)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate tokens", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	recordCountAsync(s.metrics, awspkg.MetricUsersRegistered)
	events.PublishAsync(s.publisher, s.logger, models.EventUserRegistered, user.ID.String(), models.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
	})

	return &models.AuthResponse{User: user, Access: pair.AccessToken, Refresh: pair.RefreshToken}, nil
}

func (s *authServiceImpl) CreateSuperuser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	user, err := s.createUser(ctx, req, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info("superuser created", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
	return user, nil
}

func (s *authServiceImpl) createUser(ctx context.Context, req *models.RegisterRequest, superuser bool) (*models.User, error) {
	if err := s.passwords.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.Validation(map[string]string{"password": err.Error()})
	}

	email := models.NormalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !repository.IsNotFound(err) {
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Email:       email,
		Password:    hashed,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		IsStaff:     superuser,
		IsSuperuser: superuser,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.Internal("Failed to create account", err)
	}
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if !user.IsActive || !CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate tokens", err)
	}
	return &models.AuthResponse{User: user, Access: pair.AccessToken, Refresh: pair.RefreshToken}, nil
}

// Refresh exchanges a refresh token for a new pair. The role is re-read from
// the user row so privilege changes take effect on the next refresh.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidToken
	}

	pair, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate tokens", err)
	}
	return pair, nil
}

func (s *authServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return user, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, updates); err != nil {
			return nil, notFoundOr(err, "User not found")
		}
	}
	return s.GetProfile(ctx, userID)
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}

	if !CheckPassword(user.Password, req.OldPassword) {
		return apperrors.ErrWrongOldPassword
	}
	if err := s.passwords.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.Validation(map[string]string{"new_password": err.Error()})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Internal("Failed to hash password", err)
	}
	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"password": hashed}); err != nil {
		return notFoundOr(err, "User not found")
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

// ListUsers hides superusers from staff who are not superusers themselves.
func (s *authServiceImpl) ListUsers(ctx context.Context, caller Caller, page models.Page) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, page, caller.Role == models.RoleSuperuser)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list users", err)
	}
	return users, total, nil
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

// AuthController serves the /accounts endpoints.
type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /accounts/registration.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /accounts/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /accounts/token/refresh.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := ac.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": pair.AccessToken, "refresh": pair.RefreshToken})
}

// ListUsers handles GET /accounts/users (staff).
func (ac *AuthController) ListUsers(c *gin.Context) {
	page := parsePagination(c)

	users, total, err := ac.authService.ListUsers(c.Request.Context(), middleware.GetCaller(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "users", users, page, total)
}

// GetProfile handles GET /accounts/profile.
func (ac *AuthController) GetProfile(c *gin.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	user, err := ac.authService.GetProfile(c.Request.Context(), *caller.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT and PATCH /accounts/profile.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.authService.UpdateProfile(c.Request.Context(), *caller.UserID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword handles POST /accounts/change-password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ac.authService.ChangePassword(c.Request.Context(), *caller.UserID, &req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

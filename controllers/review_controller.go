package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type ReviewController struct {
	reviewService services.ReviewService
}

func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// List handles GET /reviews, optionally narrowed with ?menu=<id>.
func (rc *ReviewController) List(c *gin.Context) {
	page := parsePagination(c)

	var filter models.ReviewFilter
	if raw := c.Query("menu"); raw != "" {
		menuID, err := uuid.Parse(raw)
		if err != nil {
			_ = c.Error(apperrors.Validation(map[string]string{"menu": "Must be a valid UUID."}))
			return
		}
		filter.MenuID = &menuID
	}

	reviews, total, err := rc.reviewService.List(c.Request.Context(), middleware.GetCaller(c), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "reviews", reviews, page, total)
}

func (rc *ReviewController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	review, err := rc.reviewService.Get(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (rc *ReviewController) Create(c *gin.Context) {
	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := rc.reviewService.Create(c.Request.Context(), middleware.GetCaller(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (rc *ReviewController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := rc.reviewService.Update(c.Request.Context(), middleware.GetCaller(c), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (rc *ReviewController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.reviewService.Delete(c.Request.Context(), middleware.GetCaller(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

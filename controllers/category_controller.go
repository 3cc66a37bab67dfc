package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type CategoryController struct {
	categoryService services.CategoryService
}

func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

func (cc *CategoryController) List(c *gin.Context) {
	page := parsePagination(c)

	categories, total, err := cc.categoryService.List(c.Request.Context(), middleware.GetCaller(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "categories", categories, page, total)
}

func (cc *CategoryController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := cc.categoryService.Get(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (cc *CategoryController) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.categoryService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type MenuController struct {
	menuService services.MenuService
}

func NewMenuController(menuService services.MenuService) *MenuController {
	return &MenuController{menuService: menuService}
}

// List handles GET /menus?keyword=&category=<slug>.
func (mc *MenuController) List(c *gin.Context) {
	page := parsePagination(c)
	filter := models.MenuFilter{
		Keyword:      strings.TrimSpace(c.Query("keyword")),
		CategorySlug: strings.TrimSpace(c.Query("category")),
	}

	menus, total, err := mc.menuService.List(c.Request.Context(), middleware.GetCaller(c), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "menus", menus, page, total)
}

// TopRated handles GET /menus/top-rated.
func (mc *MenuController) TopRated(c *gin.Context) {
	menus, err := mc.menuService.TopRated(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

func (mc *MenuController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	menu, err := mc.menuService.Get(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (mc *MenuController) Create(c *gin.Context) {
	var req models.CreateMenuRequest
	if !bindJSON(c, &req) {
		return
	}

	menu, err := mc.menuService.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, menu)
}

func (mc *MenuController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateMenuRequest
	if !bindJSON(c, &req) {
		return
	}

	menu, err := mc.menuService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (mc *MenuController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := mc.menuService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Create handles POST /orders, the checkout.
func (oc *OrderController) Create(c *gin.Context) {
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := oc.orderService.Create(c.Request.Context(), middleware.GetCaller(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (oc *OrderController) List(c *gin.Context) {
	page := parsePagination(c)

	orders, total, err := oc.orderService.List(c.Request.Context(), middleware.GetCaller(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "orders", orders, page, total)
}

func (oc *OrderController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := oc.orderService.Get(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := oc.orderService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := oc.orderService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionService
}

func NewSubscriptionController(subscriptionService services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

// Subscribe answers 201 for a new address and 200 when it was already on the list.
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, created, err := sc.subscriptionService.Subscribe(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, sub)
}

func (sc *SubscriptionController) List(c *gin.Context) {
	page := parsePagination(c)

	subs, total, err := sc.subscriptionService.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "subscriptions", subs, page, total)
}

func (sc *SubscriptionController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := sc.subscriptionService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

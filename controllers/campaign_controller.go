package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type CampaignController struct {
	campaignService services.CampaignService
}

func NewCampaignController(campaignService services.CampaignService) *CampaignController {
	return &CampaignController{campaignService: campaignService}
}

func (cc *CampaignController) List(c *gin.Context) {
	page := parsePagination(c)

	campaigns, total, err := cc.campaignService.List(c.Request.Context(), middleware.GetCaller(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "campaigns", campaigns, page, total)
}

func (cc *CampaignController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	campaign, err := cc.campaignService.Get(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (cc *CampaignController) Create(c *gin.Context) {
	var req models.CreateCampaignRequest
	if !bindJSON(c, &req) {
		return
	}

	campaign, err := cc.campaignService.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (cc *CampaignController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateCampaignRequest
	if !bindJSON(c, &req) {
		return
	}

	campaign, err := cc.campaignService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (cc *CampaignController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.campaignService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/services"
)

type StatisticsController struct {
	statisticsService services.StatisticsService
}

func NewStatisticsController(statisticsService services.StatisticsService) *StatisticsController {
	return &StatisticsController{statisticsService: statisticsService}
}

// Summary handles GET /statistics/summary.
func (sc *StatisticsController) Summary(c *gin.Context) {
	summary, err := sc.statisticsService.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type UploadController struct {
	uploadService services.UploadService
}

func NewUploadController(uploadService services.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// Presign handles POST /uploads/presign. The client PUTs the image straight
// to S3 and stores the returned object_url on the menu or campaign.
func (uc *UploadController) Presign(c *gin.Context) {
	var req models.PresignRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := uc.uploadService.Presign(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

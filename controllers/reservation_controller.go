package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

type ReservationController struct {
	reservationService services.ReservationService
}

func NewReservationController(reservationService services.ReservationService) *ReservationController {
	return &ReservationController{reservationService: reservationService}
}

func (rc *ReservationController) Create(c *gin.Context) {
	var req models.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := rc.reservationService.Create(c.Request.Context(), middleware.GetCaller(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (rc *ReservationController) List(c *gin.Context) {
	page := parsePagination(c)

	reservations, total, err := rc.reservationService.List(c.Request.Context(), middleware.GetCaller(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "reservations", reservations, page, total)
}

func (rc *ReservationController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := rc.reservationService.Get(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (rc *ReservationController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := rc.reservationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (rc *ReservationController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.reservationService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cancel handles POST /reservations/:id/cancel.
func (rc *ReservationController) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := rc.reservationService.Cancel(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// QRCode handles GET /reservations/:id/qrcode and streams a PNG.
func (rc *ReservationController) QRCode(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	png, err := rc.reservationService.QRCode(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

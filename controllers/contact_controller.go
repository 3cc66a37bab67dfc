package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/services"
)

// ContactController accepts public messages; everything else is staff only.
type ContactController struct {
	contactService services.ContactService
}

func NewContactController(contactService services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

func (cc *ContactController) Create(c *gin.Context) {
	var req models.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := cc.contactService.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// List handles GET /contacts?unread=true.
func (cc *ContactController) List(c *gin.Context) {
	page := parsePagination(c)
	unread, _ := strconv.ParseBool(c.Query("unread"))

	contacts, total, err := cc.contactService.List(c.Request.Context(), models.ContactFilter{UnreadOnly: unread}, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondList(c, "contacts", contacts, page, total)
}

func (cc *ContactController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	contact, err := cc.contactService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (cc *ContactController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := cc.contactService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (cc *ContactController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.contactService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

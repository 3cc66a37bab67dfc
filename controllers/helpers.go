package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
)

// Pagination constants
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

func init() {
	// Report validation errors under the JSON field names clients send.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// parsePagination reads page and limit, falling back to defaults on bad input.
func parsePagination(c *gin.Context) models.Page {
	page, limit := DefaultPage, DefaultLimit

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}

	return models.Page{Page: page, Limit: limit}
}

// parseID reads the :id parameter. On failure the error is pushed to the
// context and false returned.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperrors.NotFound("Not found"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body into req and renders binding failures as
// per-field validation errors.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) *apperrors.Error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		return apperrors.Validation(fields)
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return apperrors.Validation(map[string]string{te.Field: typeMessage(te.Type)})
	}

	if errors.Is(err, io.EOF) {
		return apperrors.BadRequest("Request body is required")
	}
	return apperrors.ErrInvalidInput.Wrap(err)
}

// fieldPath drops the struct name from the namespace:
// "CreateOrderRequest.order_items[0].quantity" becomes "order_items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Invalid value."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	default:
		return "Invalid value."
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("Must be a date in %s format.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

// respondList renders a page of items under key with pagination meta.
func respondList(c *gin.Context, key string, items interface{}, page models.Page, total int64) {
	c.JSON(http.StatusOK, gin.H{
		key:    items,
		"meta": models.NewPaginationMeta(page.Page, page.Limit, total),
	})
}

package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on status code and message so sentinel values survive wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *Error { return New(http.StatusBadRequest, message, nil) }
func NotFound(message string) *Error   { return New(http.StatusNotFound, message, nil) }
func Conflict(message string) *Error   { return New(http.StatusConflict, message, nil) }
func Forbidden(message string) *Error  { return New(http.StatusForbidden, message, nil) }

// Internal wraps an unexpected failure behind a generic message.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Validation builds a 400 carrying per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{
		Code:    http.StatusBadRequest,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Authentication credentials were not provided", nil)
	ErrForbidden          = New(http.StatusForbidden, "You do not have permission to perform this action", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrMethodNotAllowed   = New(http.StatusMethodNotAllowed, "Method not allowed", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid email or password", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid or expired token", nil)
)

// Business logic error types
var (
	ErrEmptyOrder        = New(http.StatusBadRequest, "No Order Items", nil)
	ErrTotalMismatch     = New(http.StatusBadRequest, "Submitted total does not match", nil)
	ErrReviewNotAllowed  = New(http.StatusBadRequest, "You must order this menu to review.", nil)
	ErrDuplicateReview   = New(http.StatusConflict, "You have already reviewed this menu", nil)
	ErrWrongOldPassword  = New(http.StatusBadRequest, "Old password is incorrect", nil)
	ErrEmailExists       = New(http.StatusConflict, "Email already exists", nil)
	ErrReservationClosed = New(http.StatusBadRequest, "Reservation can no longer be cancelled", nil)
)

// From converts any error into an *Error, defaulting to a 500.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.Wrap(err)
}

// ErrorMiddleware renders the last error pushed with c.Error.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := From(c.Errors.Last().Err)
		if appErr.Code >= http.StatusInternalServerError && logger != nil {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("request_id", c.GetString("request_id")),
				zap.Error(appErr),
			)
		}

		c.AbortWithStatusJSON(appErr.Code, appErr)
	}
}

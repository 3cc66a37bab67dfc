package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"github.com/yashrajoria/restaurant-service/repository"
)

// Caller is the identity a service acts on behalf of.
type Caller struct {
	UserID *uuid.UUID
	Role   models.Role
}

func (c Caller) IsStaff() bool {
	return c.Role >= models.RoleStaff
}

// Scope derives the visibility of rows owned by users: staff see every row,
// everyone else only their own.
func (c Caller) Scope() repository.Scope {
	if c.IsStaff() {
		return repository.StaffScope()
	}
	return repository.Scope{OwnerID: c.UserID}
}

// PublicScope is the visibility of catalogue rows: staff also see inactive
// ones.
func (c Caller) PublicScope() repository.Scope {
	if c.IsStaff() {
		return repository.StaffScope()
	}
	return repository.Scope{}
}

// notFoundOr maps a missing row to a 404 with message and anything else to a
// 500.
func notFoundOr(err error, message string) error {
	if repository.IsNotFound(err) {
		return apperrors.NotFound(message)
	}
	return apperrors.Internal("Internal server error", err)
}

func recordCountAsync(m *awspkg.MetricsClient, name string) {
	recordAsync(m, func(ctx context.Context) error {
		return m.RecordCount(ctx, name, nil)
	})
}

func recordValueAsync(m *awspkg.MetricsClient, name string, value float64) {
	recordAsync(m, func(ctx context.Context) error {
		return m.RecordValue(ctx, name, value, nil)
	})
}

func recordAsync(m *awspkg.MetricsClient, put func(ctx context.Context) error) {
	if !m.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = put(ctx)
	}()
}

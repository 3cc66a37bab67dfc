package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

// Scope restricts what a caller may see. The zero value is the most
// restrictive public view: active rows only, no ownership filter.
type Scope struct {
	IncludeInactive bool
	OwnerID         *uuid.UUID
}

// StaffScope sees every row.
func StaffScope() Scope {
	return Scope{IncludeInactive: true}
}

func (s Scope) active(db *gorm.DB, table string) *gorm.DB {
	if s.IncludeInactive {
		return db
	}
	return db.Where(table+".is_active = ?", true)
}

func (s Scope) owned(db *gorm.DB, table string) *gorm.DB {
	if s.OwnerID == nil {
		return db
	}
	return db.Where(table+".user_id = ?", *s.OwnerID)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// findPage counts the query and then loads one page of it. Preloads apply to
// the page query only.
func findPage[T any](query *gorm.DB, page models.Page, order string, preloads ...string) ([]T, int64, error) {
	var (
		rows  []T
		total int64
	)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	find := query
	for _, p := range preloads {
		find = find.Preload(p)
	}

	if err := find.
		Offset(page.Offset()).
		Limit(page.Limit).
		Order(order).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// deleteByID removes one row and maps "nothing deleted" to ErrRecordNotFound.
func deleteByID(db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Menu struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category"`
	Name        string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug        string          `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Image       string          `gorm:"type:varchar(500)" json:"image"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	OfferPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"offer_price"`
	Description string          `gorm:"type:text;not null" json:"description"`
	CookTime    int             `gorm:"not null" json:"cook_time"`
	IsActive    bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Filled only by the top-rated listing.
	AverageRating *float64 `gorm:"-" json:"average_rating,omitempty"`
	ReviewCount   *int64   `gorm:"-" json:"review_count,omitempty"`
}

// UnitPrice is the price charged per unit: the offer price when one is set.
func (m *Menu) UnitPrice() decimal.Decimal {
	if m.OfferPrice.IsPositive() {
		return m.OfferPrice
	}
	return m.Price
}

type CreateMenuRequest struct {
	CategoryID  *uuid.UUID       `json:"category"`
	Name        string           `json:"name" binding:"required,max=100"`
	Slug        string           `json:"slug" binding:"omitempty,max=120"`
	Image       string           `json:"image" binding:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	OfferPrice  *decimal.Decimal `json:"offer_price"`
	Description string           `json:"description" binding:"required"`
	CookTime    *int             `json:"cook_time" binding:"required,gte=0"`
	IsActive    *bool            `json:"is_active"`
}

type UpdateMenuRequest struct {
	CategoryID  *uuid.UUID       `json:"category"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string          `json:"slug" binding:"omitempty,max=120"`
	Image       *string          `json:"image" binding:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price"`
	OfferPrice  *decimal.Decimal `json:"offer_price"`
	Description *string          `json:"description"`
	CookTime    *int             `json:"cook_time" binding:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
}

// MenuFilter narrows the menu listing.
type MenuFilter struct {
	Keyword      string
	CategorySlug string
}

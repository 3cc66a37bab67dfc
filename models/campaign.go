package models

import (
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DateLayout is the wire format of Campaign.EndDate in requests.
const DateLayout = "2006-01-02"

type CreateCampaignRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Image       string `json:"image" binding:"omitempty,max=500"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateCampaignRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Image       *string `json:"image" binding:"omitempty,max=500"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	IsActive    *bool   `json:"is_active"`
}

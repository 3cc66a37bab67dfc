package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is unique per (user, menu).
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MenuID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_menu,priority:2" json:"menu"`
	Menu      *Menu     `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_menu,priority:1" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Rating    int       `gorm:"type:smallint;not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type CreateReviewRequest struct {
	Menu    uuid.UUID `json:"menu" binding:"required"`
	Rating  int       `json:"rating" binding:"required,min=1,max=5"`
	Comment string    `json:"comment" binding:"required"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,min=1"`
}

// ReviewFilter narrows the review listing.
type ReviewFilter struct {
	MenuID *uuid.UUID
}

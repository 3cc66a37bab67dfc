package models

import (
	"time"

	"github.com/google/uuid"
)

type EmailSubscription struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribed_at"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

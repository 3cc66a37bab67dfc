package models

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

const (
	DefaultPartySize = 2
	MaxPartySize     = 12
)

type Reservation struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Name      string            `gorm:"type:varchar(100);not null" json:"name"`
	Time      time.Time         `gorm:"not null;index" json:"time"`
	Person    int               `gorm:"not null;check:chk_reservations_person,person >= 1 AND person <= 12" json:"person"`
	Status    ReservationStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	IsActive  bool              `gorm:"not null" json:"is_active"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type CreateReservationRequest struct {
	Name   string     `json:"name" binding:"required,max=100"`
	Time   *time.Time `json:"time" binding:"required"`
	Person *int       `json:"person" binding:"omitempty,min=1,max=12"`
}

type UpdateReservationRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Time     *time.Time `json:"time"`
	Person   *int       `json:"person" binding:"omitempty,min=1,max=12"`
	Status   *string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	IsActive *bool      `json:"is_active"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types published on the domain event bus.
const (
	EventUserRegistered  = "user_registered"
	EventOrderCreated    = "order_created"
	EventReviewCreated   = "review_created"
	EventContactReceived = "contact_received"
)

// Event is the envelope every published message uses.
type Event struct {
	Type      string      `json:"type"`
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

type UserRegisteredEvent struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type OrderCreatedEvent struct {
	OrderID    uuid.UUID       `json:"order_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Items      int             `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ReviewCreatedEvent struct {
	ReviewID uuid.UUID `json:"review_id"`
	MenuID   uuid.UUID `json:"menu_id"`
	UserID   uuid.UUID `json:"user_id"`
	Rating   int       `json:"rating"`
}

type ContactReceivedEvent struct {
	ContactID uuid.UUID `json:"contact_id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
}

package models

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Tax        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tax"`
	IsPaid     bool            `gorm:"not null" json:"is_paid"`
	IsServed   bool            `gorm:"not null" json:"is_served"`
	IsActive   bool            `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	OrderItems []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

// OrderItem keeps a snapshot of the menu at purchase time; the menu link is
// nulled when the menu is deleted.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order"`
	MenuID    *uuid.UUID      `gorm:"type:uuid;index" json:"menu"`
	Menu      *Menu           `gorm:"foreignKey:MenuID;constraint:OnDelete:SET NULL" json:"-"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Image     string          `gorm:"type:varchar(500)" json:"image"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// MaxItemQuantity caps a single order line.
const MaxItemQuantity = 1000

type OrderItemRequest struct {
	Menu     uuid.UUID `json:"menu" binding:"required"`
	Quantity Quantity  `json:"quantity" binding:"required,min=1,max=1000"`
}

// Quantity decodes integral JSON numbers and numeric strings, so 2, 2.0 and
// "2" all read as 2.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil || !d.IsInteger() || d.Abs().GreaterThan(decimal.NewFromInt(1<<31-1)) {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(*q)}
	}
	*q = Quantity(d.IntPart())
	return nil
}

// CreateOrderRequest is the checkout payload. Tax and TotalPrice are what the
// client believes the order costs; the server recomputes both.
type CreateOrderRequest struct {
	OrderItems []OrderItemRequest `json:"order_items" binding:"dive"`
	Tax        *decimal.Decimal   `json:"tax"`
	TotalPrice *decimal.Decimal   `json:"total_price"`
}

type UpdateOrderRequest struct {
	IsPaid   *bool `json:"is_paid"`
	IsServed *bool `json:"is_served"`
	IsActive *bool `json:"is_active"`
}

// Updates returns the column map for a partial update.
func (r UpdateOrderRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.IsPaid != nil {
		updates["is_paid"] = *r.IsPaid
	}
	if r.IsServed != nil {
		updates["is_served"] = *r.IsServed
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	return updates
}

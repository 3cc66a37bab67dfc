package models

import "github.com/shopspring/decimal"

// StatisticsSummary is the staff dashboard snapshot.
type StatisticsSummary struct {
	Users               int64           `json:"users"`
	Orders              int64           `json:"orders"`
	PaidOrders          int64           `json:"paid_orders"`
	ServedOrders        int64           `json:"served_orders"`
	Revenue             decimal.Decimal `json:"revenue"`
	PendingReservations int64           `json:"pending_reservations"`
	UnreadContacts      int64           `json:"unread_contacts"`
	ActiveMenus         int64           `json:"active_menus"`
	Reviews             int64           `json:"reviews"`
	AverageRating       float64         `json:"average_rating"`
}

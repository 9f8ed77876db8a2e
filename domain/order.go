package domain

import "time"

const (
	OrderStatusPending  = "pending"
	OrderStatusAccepted = "accepted"
	OrderStatusRejected = "rejected"
)

type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Reference       string    `gorm:"column:reference;size:36;uniqueIndex;not null" json:"reference"`
	BuyerID         uint      `gorm:"column:buyer_id;index;not null" json:"buyer_id"`
	ProductID       uint      `gorm:"column:product_id;index;not null" json:"product_id"`
	Quantity        int       `gorm:"column:quantity;not null" json:"quantity"`
	TotalPrice      float64   `gorm:"column:total_price;type:numeric;not null" json:"total_price"`
	Status          string    `gorm:"column:status;size:20;default:pending" json:"status"`
	DeliveryAddress string    `gorm:"column:delivery_address;size:500" json:"delivery_address"`
	CreatedAt       time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderReceipt is what the buyer gets back after placing an order.
// NotificationSent is false when the order committed but one or both
// confirmation emails could not be delivered.
type OrderReceipt struct {
	Order            Order   `json:"order"`
	MessageID        uint    `json:"message_id"`
	TotalPrice       float64 `json:"total_price"`
	NotificationSent bool    `json:"notification_sent"`
}

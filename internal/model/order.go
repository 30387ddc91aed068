package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is owned by the checkout system; returns only read it.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order carries the return aggregates alongside the checkout fields.
// HasActiveReturns and TotalReturnedAmount are derived from return_requests
// and only written by the aggregate recomputation.
type Order struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderCode           string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"order_code"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Status              OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DeliveredAt         *time.Time      `json:"delivered_at"`
	HasActiveReturns    bool            `gorm:"not null;default:false" json:"has_active_returns"`
	TotalReturnedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_returned_amount"`
	IsReturnable        bool            `gorm:"not null" json:"is_returnable"`
	ReturnWindowExpires *time.Time      `gorm:"index" json:"return_window_expires"`
	Items               []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// OrderItem represents a line item within an Order
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID" json:"-"`
	VariationID *uuid.UUID      `gorm:"type:uuid" json:"variation_id"`
	Quantity    int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
}

// Subtotal is what the customer paid for the line.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

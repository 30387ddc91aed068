package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents an item in the inventory
type Product struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU          string             `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name         string             `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID   *uuid.UUID         `gorm:"type:uuid;index" json:"category_id"`
	CurrentStock int                `gorm:"type:int;default:0;not null" json:"current_stock"`
	Price        decimal.Decimal    `gorm:"type:decimal(18,2);not null" json:"price"`
	Variations   []ProductVariation `gorm:"foreignKey:ProductID" json:"variations,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

// ProductVariation holds stock for one size/colour of a product.
type ProductVariation struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	SKU          string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name         string          `gorm:"type:varchar(255)" json:"name"`
	CurrentStock int             `gorm:"type:int;default:0;not null" json:"current_stock"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2)" json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionType Enum Simulation
const (
	TxTypeIn  = "IN"
	TxTypeOut = "OUT"
)

// Stock movement reasons
const (
	TxReasonReturnRestock = "RETURN_RESTOCK"
)

// InventoryTransaction (stock card) records stock changes strictly
type InventoryTransaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	VariationID     *uuid.UUID `gorm:"type:uuid;index" json:"variation_id"`
	OrderID         *uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ReturnRequestID *uuid.UUID `gorm:"type:uuid;index" json:"return_request_id"`
	QualityCheckID  *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"quality_check_id"`     // one restock per inspection
	TransactionType string     `gorm:"type:varchar(10);not null" json:"transaction_type"` // IN, OUT
	Reason          string     `gorm:"type:varchar(50)" json:"reason"`
	QuantityChanged int        `gorm:"type:int;not null" json:"quantity_changed"`
	StockAfter      int        `gorm:"type:int;not null" json:"stock_after"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

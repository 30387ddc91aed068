package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatistics summarises return activity over a time range.
type ReturnStatistics struct {
	TimeRangeStartDate  time.Time         `json:"time_range_start_date"`
	TimeRangeEndDate    time.Time         `json:"time_range_end_date"`
	GroupBy             string            `json:"group_by"`
	TotalRequested      int               `json:"total_requested"`
	TotalCompleted      int               `json:"total_completed"`
	TotalRefunded       decimal.Decimal   `json:"total_refunded"`
	TotalRestockingFees decimal.Decimal   `json:"total_restocking_fees"`
	Trend               []ReturnTrendRow  `json:"trend"`
	TopReturnedProducts []ProductRanking  `json:"top_returned_products"`
	Reasons             []ReasonBreakdown `json:"reasons"`
}

// ReturnTrendRow is one period bucket of return activity.
type ReturnTrendRow struct {
	Period         string          `gorm:"column:period" json:"period"`
	Requested      int             `gorm:"column:requested" json:"requested"`
	Approved       int             `gorm:"column:approved" json:"approved"`
	Rejected       int             `gorm:"column:rejected" json:"rejected"`
	Completed      int             `gorm:"column:completed" json:"completed"`
	RefundedAmount decimal.Decimal `gorm:"column:refunded_amount" json:"refunded_amount"`
	RestockingFees decimal.Decimal `gorm:"column:restocking_fees" json:"restocking_fees"`
}

// ProductRanking ranks a product by returned units.
type ProductRanking struct {
	ProductID     string          `gorm:"column:product_id" json:"product_id"`
	ProductName   string          `gorm:"column:product_name" json:"product_name"`
	ProductSKU    string          `gorm:"column:product_sku" json:"product_sku"`
	TotalQuantity int             `gorm:"column:total_quantity" json:"total_quantity"`
	TotalValue    decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

type ReasonBreakdown struct {
	ReasonCode ReasonCode `gorm:"column:reason_code" json:"reason_code"`
	Count      int        `gorm:"column:count" json:"count"`
}

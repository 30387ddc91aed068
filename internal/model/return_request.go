package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ReturnRequest is one return attempt for one order item. Rows are never deleted.
type ReturnRequest struct {
	ID                      uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReturnNumber            string                      `gorm:"type:varchar(30);uniqueIndex;not null" json:"return_number"`
	OrderID                 uuid.UUID                   `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderItemID             uuid.UUID                   `gorm:"type:uuid;not null;index" json:"order_item_id"`
	UserID                  uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID               uuid.UUID                   `gorm:"type:uuid;not null;index" json:"product_id"`
	VariationID             *uuid.UUID                  `gorm:"type:uuid" json:"variation_id"`
	PolicyID                uuid.UUID                   `gorm:"type:uuid;not null;index" json:"policy_id"`
	Quantity                int                         `gorm:"type:int;not null" json:"quantity"`
	ReasonCode              ReasonCode                  `gorm:"type:varchar(30);not null" json:"reason_code"`
	Description             string                      `gorm:"type:text" json:"description"`
	ReturnType              ReturnType                  `gorm:"type:varchar(20);not null" json:"return_type"`
	RequestedAmount         decimal.Decimal             `gorm:"type:decimal(18,2);not null" json:"requested_amount"`
	ApprovedAmount          decimal.NullDecimal         `gorm:"type:decimal(18,2)" json:"approved_amount"`
	RestockingFeePercentage decimal.Decimal             `gorm:"type:decimal(5,2);not null;default:0" json:"restocking_fee_percentage"`
	RestockingFee           decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0" json:"restocking_fee"`
	RefundAdjustment        decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0" json:"refund_adjustment"`
	RefundedAmount          decimal.NullDecimal         `gorm:"type:decimal(18,2)" json:"refunded_amount"`
	PhotoRefs               datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"photo_refs"`
	Status                  ReturnStatus                `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNotes              string                      `gorm:"type:text" json:"admin_notes"`
	CustomerNotes           string                      `gorm:"type:text" json:"customer_notes"`
	RejectionReason         string                      `gorm:"type:text" json:"rejection_reason"`
	ReturnDeadline          time.Time                   `gorm:"not null" json:"return_deadline"`
	Courier                 string                      `gorm:"type:varchar(100)" json:"courier"`
	TrackingNumber          string                      `gorm:"type:varchar(100)" json:"tracking_number"`
	ReturnShippingPaidBy    ShippingPayer               `gorm:"type:varchar(20)" json:"return_shipping_paid_by"`
	RefundMethod            RefundMethod                `gorm:"type:varchar(30);not null" json:"refund_method"`
	RefundStatus            RefundStatus                `gorm:"type:varchar(20);not null;default:'pending'" json:"refund_status"`
	RefundReference         string                      `gorm:"type:varchar(100)" json:"refund_reference"`
	RefundAttempts          int                         `gorm:"type:int;not null;default:0" json:"refund_attempts"`
	ApprovedBy              *uuid.UUID                  `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt              *time.Time                  `json:"approved_at"`
	RejectedBy              *uuid.UUID                  `gorm:"type:uuid" json:"rejected_by"`
	RejectedAt              *time.Time                  `json:"rejected_at"`
	ReceivedBy              *uuid.UUID                  `gorm:"type:uuid" json:"received_by"`
	ReceivedAt              *time.Time                  `json:"received_at"`
	CancelledAt             *time.Time                  `json:"cancelled_at"`
	ProcessedBy             *uuid.UUID                  `gorm:"type:uuid" json:"processed_by"`
	ProcessedAt             *time.Time                  `json:"processed_at"`
	QCOverallCondition      OverallCondition            `gorm:"column:qc_overall_condition;type:varchar(20)" json:"qc_overall_condition,omitempty"`
	QCDisposition           Disposition                 `gorm:"column:qc_disposition;type:varchar(30)" json:"qc_disposition,omitempty"`
	QCSellableQuantity      int                         `gorm:"column:qc_sellable_quantity;type:int;not null;default:0" json:"qc_sellable_quantity"`
	QCDamagedQuantity       int                         `gorm:"column:qc_damaged_quantity;type:int;not null;default:0" json:"qc_damaged_quantity"`
	QCMissingQuantity       int                         `gorm:"column:qc_missing_quantity;type:int;not null;default:0" json:"qc_missing_quantity"`
	ReplacementOrderID      *uuid.UUID                  `gorm:"type:uuid" json:"replacement_order_id"`
	History                 []ReturnStatusHistory       `gorm:"foreignKey:ReturnRequestID" json:"history,omitempty"`
	CreatedAt               time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt               time.Time                   `json:"updated_at"`
}

// EffectiveApprovedAmount falls back to the requested amount before approval.
func (r *ReturnRequest) EffectiveApprovedAmount() decimal.Decimal {
	if r.ApprovedAmount.Valid {
		return r.ApprovedAmount.Decimal
	}
	return r.RequestedAmount
}

// ReturnStatusHistory is one recorded edge of a request's lifecycle walk.
type ReturnStatusHistory struct {
	ID              uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReturnRequestID uuid.UUID    `gorm:"type:uuid;not null;index" json:"return_request_id"`
	FromStatus      ReturnStatus `gorm:"type:varchar(20)" json:"from_status"` // empty for the creation entry
	ToStatus        ReturnStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	ActorID         *uuid.UUID   `gorm:"type:uuid" json:"actor_id"`
	Note            string       `gorm:"type:text" json:"note"`
	CreatedAt       time.Time    `gorm:"index" json:"created_at"`
}

func (ReturnStatusHistory) TableName() string {
	return "return_status_history"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DamageNote is one free-form finding on the inspection sheet.
type DamageNote struct {
	Area        string         `json:"area"`
	Description string         `json:"description"`
	Severity    DamageSeverity `json:"severity,omitempty"`
}

// QualityCheck records the physical inspection of a received return.
// Exactly one exists per request that reached item_received.
type QualityCheck struct {
	ID                   uuid.UUID                       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReturnRequestID      uuid.UUID                       `gorm:"type:uuid;not null;uniqueIndex" json:"return_request_id"`
	ProductID            uuid.UUID                       `gorm:"type:uuid;not null;index" json:"product_id"`
	VariationID          *uuid.UUID                      `gorm:"type:uuid" json:"variation_id"`
	QuantityExpected     int                             `gorm:"type:int;not null" json:"quantity_expected"`
	QuantityReceived     int                             `gorm:"type:int;not null;default:0" json:"quantity_received"`
	ConditionStatus      ConditionStatus                 `gorm:"type:varchar(30);not null;default:'pending_inspection'" json:"condition_status"`
	OverallCondition     OverallCondition                `gorm:"type:varchar(20)" json:"overall_condition,omitempty"`
	SellableQuantity     int                             `gorm:"type:int;not null;default:0" json:"sellable_quantity"`
	DamagedQuantity      int                             `gorm:"type:int;not null;default:0" json:"damaged_quantity"`
	MissingQuantity      int                             `gorm:"type:int;not null;default:0" json:"missing_quantity"`
	Checklist            datatypes.JSONMap               `gorm:"type:jsonb" json:"checklist"`
	DamageDetails        datatypes.JSONSlice[DamageNote] `gorm:"type:jsonb" json:"damage_details"`
	DamageType           DamageType                      `gorm:"type:varchar(30)" json:"damage_type,omitempty"`
	DamageSeverity       DamageSeverity                  `gorm:"type:varchar(20)" json:"damage_severity,omitempty"`
	CustomerFault        bool                            `gorm:"not null;default:false" json:"customer_fault"`
	InspectorID          *uuid.UUID                      `gorm:"type:uuid" json:"inspector_id"`
	InspectorNotes       string                          `gorm:"type:text" json:"inspector_notes"`
	Disposition          Disposition                     `gorm:"type:varchar(30)" json:"disposition,omitempty"`
	RefundAdjustment     decimal.Decimal                 `gorm:"type:decimal(18,2);not null;default:0" json:"refund_adjustment"`
	StartedAt            *time.Time                      `json:"started_at"`
	InspectedAt          *time.Time                      `json:"inspected_at"`
	DispositionAppliedAt *time.Time                      `json:"disposition_applied_at"` // set once stock and write-offs are booked
	CreatedAt            time.Time                       `json:"created_at"`
	UpdatedAt            time.Time                       `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DamagedInventory tracks written-off units until their fate is settled.
type DamagedInventory struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	VariationID       *uuid.UUID      `gorm:"type:uuid" json:"variation_id"`
	QualityCheckID    *uuid.UUID      `gorm:"type:uuid;index" json:"quality_check_id"`
	ReturnRequestID   *uuid.UUID      `gorm:"type:uuid;index" json:"return_request_id"`
	Quantity          int             `gorm:"type:int;not null" json:"quantity"`
	DamageType        DamageType      `gorm:"type:varchar(30);not null" json:"damage_type"`
	DamageSeverity    DamageSeverity  `gorm:"type:varchar(20);not null" json:"damage_severity"`
	Disposition       Disposition     `gorm:"type:varchar(30)" json:"disposition"`
	Source            DamageSource    `gorm:"type:varchar(30);not null;index" json:"source"`
	Status            DamageStatus    `gorm:"type:varchar(30);not null;default:'pending_assessment';index" json:"status"`
	UnitValue         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"unit_value"`
	EstimatedValue    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"estimated_value"`
	SalvageValue      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"salvage_value"`
	RepairCost        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"repair_cost"`
	InsuranceClaimRef string          `gorm:"type:varchar(100)" json:"insurance_claim_ref"`
	SupplierClaimRef  string          `gorm:"type:varchar(100)" json:"supplier_claim_ref"`
	Notes             string          `gorm:"type:text" json:"notes"`
	ReportedBy        *uuid.UUID      `gorm:"type:uuid" json:"reported_by"`
	AssessedBy        *uuid.UUID      `gorm:"type:uuid" json:"assessed_by"`
	AssessedAt        *time.Time      `json:"assessed_at"`
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (DamagedInventory) TableName() string {
	return "damaged_inventory"
}

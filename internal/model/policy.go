package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PolicyScope ranks how specifically a policy targets an item.
type PolicyScope int

const (
	ScopeDefault PolicyScope = iota
	ScopeCategory
	ScopeProduct
)

func (s PolicyScope) String() string {
	switch s {
	case ScopeProduct:
		return "product"
	case ScopeCategory:
		return "category"
	default:
		return "default"
	}
}

// AutoApprovalRule lets small returns skip the admin queue.
type AutoApprovalRule struct {
	Enabled         bool            `json:"enabled"`
	MaxAmount       decimal.Decimal `json:"max_amount"`
	TrustedCustomer bool            `json:"trusted_customer"` // only trusted customers qualify
}

// Permits reports whether a request for amount by a customer with the given
// trust flag satisfies the rule.
func (r AutoApprovalRule) Permits(amount decimal.Decimal, trusted bool) bool {
	if !r.Enabled {
		return false
	}
	if amount.GreaterThan(r.MaxAmount) {
		return false
	}
	if r.TrustedCustomer && !trusted {
		return false
	}
	return true
}

// ReturnPolicy scopes to a product, a category, or neither (the store default).
type ReturnPolicy struct {
	ID                        uuid.UUID                            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                      string                               `gorm:"type:varchar(255);not null" json:"name"`
	ProductID                 *uuid.UUID                           `gorm:"type:uuid;index" json:"product_id"`
	CategoryID                *uuid.UUID                           `gorm:"type:uuid;index" json:"category_id"`
	IsReturnable              bool                                 `gorm:"not null" json:"is_returnable"`
	ReturnWindowDays          int                                  `gorm:"type:int;not null" json:"return_window_days"`
	ExchangeWindowDays        int                                  `gorm:"type:int;not null" json:"exchange_window_days"`
	RestockingFeePercentage   decimal.Decimal                      `gorm:"type:decimal(5,2);not null;default:0" json:"restocking_fee_percentage"`
	ReturnShippingPaidBy      ShippingPayer                        `gorm:"type:varchar(20);not null;default:'customer'" json:"return_shipping_paid_by"`
	ReplacementShippingPaidBy ShippingPayer                        `gorm:"type:varchar(20);not null;default:'store'" json:"replacement_shipping_paid_by"`
	AllowedReasons            datatypes.JSONSlice[ReasonCode]      `gorm:"type:jsonb" json:"allowed_reasons"` // empty means any
	ExcludedReasons           datatypes.JSONSlice[ReasonCode]      `gorm:"type:jsonb" json:"excluded_reasons"`
	RefundMethods             datatypes.JSONSlice[RefundMethod]    `gorm:"type:jsonb" json:"refund_methods"` // ordered, first is the default
	AutoApproval              datatypes.JSONType[AutoApprovalRule] `gorm:"type:jsonb" json:"auto_approval"`
	RequiresApproval          bool                                 `gorm:"not null" json:"requires_approval"`
	QualityCheckRequired      bool                                 `gorm:"not null" json:"quality_check_required"`
	Priority                  int                                  `gorm:"type:int;not null;default:0;index" json:"priority"`
	IsActive                  bool                                 `gorm:"not null;index" json:"is_active"`
	CreatedAt                 time.Time                            `json:"created_at"`
	UpdatedAt                 time.Time                            `json:"updated_at"`
}

// Scope derives the policy's specificity from which target is set.
func (p *ReturnPolicy) Scope() PolicyScope {
	switch {
	case p.ProductID != nil:
		return ScopeProduct
	case p.CategoryID != nil:
		return ScopeCategory
	default:
		return ScopeDefault
	}
}

// AllowsReason applies the allow and exclude lists.
func (p *ReturnPolicy) AllowsReason(code ReasonCode) bool {
	if contains([]ReasonCode(p.ExcludedReasons), code) {
		return false
	}
	if len(p.AllowedReasons) == 0 {
		return true
	}
	return contains([]ReasonCode(p.AllowedReasons), code)
}

// ResolveRefundMethod returns the requested method if permitted, or the
// policy's first permitted method when none was requested.
func (p *ReturnPolicy) ResolveRefundMethod(requested RefundMethod) (RefundMethod, bool) {
	methods := []RefundMethod(p.RefundMethods)
	if len(methods) == 0 {
		methods = []RefundMethod{RefundMethodOriginalPayment}
	}
	if requested == "" {
		return methods[0], true
	}
	return requested, contains(methods, requested)
}

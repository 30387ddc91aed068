package model

import (
	"fmt"
	"strings"
)

// ReasonCode is the customer-declared reason for a return.
type ReasonCode string

const (
	ReasonDefective         ReasonCode = "defective"
	ReasonDamagedInShipping ReasonCode = "damaged_in_shipping"
	ReasonWrongItem         ReasonCode = "wrong_item"
	ReasonNotAsDescribed    ReasonCode = "not_as_described"
	ReasonSizeIssue         ReasonCode = "size_issue"
	ReasonQualityIssue      ReasonCode = "quality_issue"
	ReasonChangedMind       ReasonCode = "changed_mind"
	ReasonOther             ReasonCode = "other"
)

var reasonCodes = []ReasonCode{
	ReasonDefective, ReasonDamagedInShipping, ReasonWrongItem, ReasonNotAsDescribed,
	ReasonSizeIssue, ReasonQualityIssue, ReasonChangedMind, ReasonOther,
}

func (c ReasonCode) Valid() bool { return contains(reasonCodes, c) }

func ParseReasonCode(s string) (ReasonCode, error) { return parseEnum("reason_code", s, reasonCodes) }

// ReturnType selects what the customer receives in exchange for the goods.
type ReturnType string

const (
	ReturnTypeRefund      ReturnType = "refund"
	ReturnTypeExchange    ReturnType = "exchange"
	ReturnTypeStoreCredit ReturnType = "store_credit"
)

var returnTypes = []ReturnType{ReturnTypeRefund, ReturnTypeExchange, ReturnTypeStoreCredit}

func (t ReturnType) Valid() bool { return contains(returnTypes, t) }

func ParseReturnType(s string) (ReturnType, error) { return parseEnum("return_type", s, returnTypes) }

// ReturnStatus is the lifecycle state of a return request.
type ReturnStatus string

const (
	ReturnStatusPending      ReturnStatus = "pending"
	ReturnStatusApproved     ReturnStatus = "approved"
	ReturnStatusRejected     ReturnStatus = "rejected"
	ReturnStatusItemReceived ReturnStatus = "item_received"
	ReturnStatusQualityCheck ReturnStatus = "quality_check"
	ReturnStatusProcessing   ReturnStatus = "processing"
	ReturnStatusCompleted    ReturnStatus = "completed"
	ReturnStatusCancelled    ReturnStatus = "cancelled"
)

var returnStatuses = []ReturnStatus{
	ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusItemReceived,
	ReturnStatusQualityCheck, ReturnStatusProcessing, ReturnStatusCompleted, ReturnStatusCancelled,
}

// TerminalReturnStatuses never transition further.
var TerminalReturnStatuses = []ReturnStatus{ReturnStatusRejected, ReturnStatusCancelled, ReturnStatusCompleted}

func (s ReturnStatus) Valid() bool { return contains(returnStatuses, s) }

// IsTerminal reports whether s is rejected, cancelled or completed.
func (s ReturnStatus) IsTerminal() bool { return contains(TerminalReturnStatuses, s) }

func ParseReturnStatus(s string) (ReturnStatus, error) { return parseEnum("status", s, returnStatuses) }

type RefundStatus string

const (
	RefundStatusPending    RefundStatus = "pending"
	RefundStatusProcessing RefundStatus = "processing"
	RefundStatusCompleted  RefundStatus = "completed"
	RefundStatusFailed     RefundStatus = "failed"
)

var refundStatuses = []RefundStatus{RefundStatusPending, RefundStatusProcessing, RefundStatusCompleted, RefundStatusFailed}

func (s RefundStatus) Valid() bool { return contains(refundStatuses, s) }

type RefundMethod string

const (
	RefundMethodOriginalPayment RefundMethod = "original_payment"
	RefundMethodStoreCredit     RefundMethod = "store_credit"
	RefundMethodBankTransfer    RefundMethod = "bank_transfer"
	RefundMethodWallet          RefundMethod = "wallet"
)

var refundMethods = []RefundMethod{RefundMethodOriginalPayment, RefundMethodStoreCredit, RefundMethodBankTransfer, RefundMethodWallet}

func (m RefundMethod) Valid() bool { return contains(refundMethods, m) }

func ParseRefundMethod(s string) (RefundMethod, error) {
	return parseEnum("refund_method", s, refundMethods)
}

// ShippingPayer says who bears a shipping leg's cost.
type ShippingPayer string

const (
	ShippingPayerCustomer ShippingPayer = "customer"
	ShippingPayerStore    ShippingPayer = "store"
)

var shippingPayers = []ShippingPayer{ShippingPayerCustomer, ShippingPayerStore}

func (p ShippingPayer) Valid() bool { return contains(shippingPayers, p) }

type ConditionStatus string

const (
	ConditionPendingInspection ConditionStatus = "pending_inspection"
	ConditionInspecting        ConditionStatus = "inspecting"
	ConditionCompleted         ConditionStatus = "completed"
)

// OverallCondition is the inspector's six-point grade.
type OverallCondition string

const (
	ConditionNew     OverallCondition = "new"
	ConditionLikeNew OverallCondition = "like_new"
	ConditionGood    OverallCondition = "good"
	ConditionFair    OverallCondition = "fair"
	ConditionPoor    OverallCondition = "poor"
	ConditionDamaged OverallCondition = "damaged"
)

var overallConditions = []OverallCondition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged}

func (c OverallCondition) Valid() bool { return contains(overallConditions, c) }

func ParseOverallCondition(s string) (OverallCondition, error) {
	return parseEnum("overall_condition", s, overallConditions)
}

type Disposition string

const (
	DispositionRestock          Disposition = "restock"
	DispositionRepair           Disposition = "repair"
	DispositionSalvage          Disposition = "salvage"
	DispositionDispose          Disposition = "dispose"
	DispositionReturnToSupplier Disposition = "return_to_supplier"
)

var dispositions = []Disposition{DispositionRestock, DispositionRepair, DispositionSalvage, DispositionDispose, DispositionReturnToSupplier}

func (d Disposition) Valid() bool { return contains(dispositions, d) }

func ParseDisposition(s string) (Disposition, error) { return parseEnum("disposition", s, dispositions) }

type DamageType string

const (
	DamagePhysical            DamageType = "physical_damage"
	DamageWater               DamageType = "water_damage"
	DamageManufacturingDefect DamageType = "manufacturing_defect"
	DamageMissingItem         DamageType = "missing_item"
	DamagePackaging           DamageType = "packaging_damage"
	DamageExpired             DamageType = "expired"
	DamageContaminated        DamageType = "contaminated"
	DamageWearAndTear         DamageType = "wear_and_tear"
	DamageOther               DamageType = "other"
)

var damageTypes = []DamageType{
	DamagePhysical, DamageWater, DamageManufacturingDefect, DamageMissingItem, DamagePackaging,
	DamageExpired, DamageContaminated, DamageWearAndTear, DamageOther,
}

func (t DamageType) Valid() bool { return contains(damageTypes, t) }

func ParseDamageType(s string) (DamageType, error) { return parseEnum("damage_type", s, damageTypes) }

type DamageSeverity string

const (
	SeverityMinor     DamageSeverity = "minor"
	SeverityModerate  DamageSeverity = "moderate"
	SeveritySevere    DamageSeverity = "severe"
	SeverityTotalLoss DamageSeverity = "total_loss"
)

var damageSeverities = []DamageSeverity{SeverityMinor, SeverityModerate, SeveritySevere, SeverityTotalLoss}

func (s DamageSeverity) Valid() bool { return contains(damageSeverities, s) }

func ParseDamageSeverity(s string) (DamageSeverity, error) {
	return parseEnum("damage_severity", s, damageSeverities)
}

type DamageStatus string

const (
	DamageStatusPendingAssessment  DamageStatus = "pending_assessment"
	DamageStatusAssessed           DamageStatus = "assessed"
	DamageStatusRepairable         DamageStatus = "repairable"
	DamageStatusSalvageable        DamageStatus = "salvageable"
	DamageStatusDisposed           DamageStatus = "disposed"
	DamageStatusReturnedToSupplier DamageStatus = "returned_to_supplier"
)

var damageStatuses = []DamageStatus{
	DamageStatusPendingAssessment, DamageStatusAssessed, DamageStatusRepairable,
	DamageStatusSalvageable, DamageStatusDisposed, DamageStatusReturnedToSupplier,
}

func (s DamageStatus) Valid() bool { return contains(damageStatuses, s) }

func ParseDamageStatus(s string) (DamageStatus, error) {
	return parseEnum("damage_status", s, damageStatuses)
}

type DamageSource string

const (
	DamageSourceCustomerReturn DamageSource = "customer_return"
	DamageSourceWarehouse      DamageSource = "warehouse"
	DamageSourceShipping       DamageSource = "shipping"
	DamageSourceSupplier       DamageSource = "supplier"
)

var damageSources = []DamageSource{DamageSourceCustomerReturn, DamageSourceWarehouse, DamageSourceShipping, DamageSourceSupplier}

func (s DamageSource) Valid() bool { return contains(damageSources, s) }

func ParseDamageSource(s string) (DamageSource, error) {
	return parseEnum("damage_source", s, damageSources)
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](field, raw string, allowed []T) (T, error) {
	v := T(strings.TrimSpace(raw))
	if contains(allowed, v) {
		return v, nil
	}
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q: must be one of %s", field, raw, strings.Join(names, ", "))
}

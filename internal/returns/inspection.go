package returns

import (
	"fulfillment/internal/model"

	"github.com/shopspring/decimal"
)

// Inspection is the inspector's verdict on a received return.
type Inspection struct {
	QuantityReceived int
	Sellable         int
	Damaged          int
	Missing          int
	OverallCondition model.OverallCondition
	Disposition      model.Disposition
	DamageType       model.DamageType
	DamageSeverity   model.DamageSeverity
	CustomerFault    bool
}

// AdjustmentRates weight the per-unit deduction for customer-fault damage
// and missing units.
type AdjustmentRates struct {
	Damaged decimal.Decimal
	Missing decimal.Decimal
}

func DefaultAdjustmentRates() AdjustmentRates {
	return AdjustmentRates{Damaged: decimal.NewFromInt(1), Missing: decimal.NewFromInt(1)}
}

// ValidateInspection checks enums and quantity conservation.
func ValidateInspection(in Inspection, quantityExpected int) error {
	if !in.OverallCondition.Valid() {
		return Errorf(ErrValidation, "invalid overall_condition %q", in.OverallCondition)
	}
	if !in.Disposition.Valid() {
		return Errorf(ErrValidation, "invalid disposition %q", in.Disposition)
	}
	if in.DamageType != "" && !in.DamageType.Valid() {
		return Errorf(ErrValidation, "invalid damage_type %q", in.DamageType)
	}
	if in.DamageSeverity != "" && !in.DamageSeverity.Valid() {
		return Errorf(ErrValidation, "invalid damage_severity %q", in.DamageSeverity)
	}
	if in.QuantityReceived < 0 || in.Sellable < 0 || in.Damaged < 0 || in.Missing < 0 {
		return Errorf(ErrQuantityMismatch, "quantities must not be negative")
	}
	if in.QuantityReceived > quantityExpected {
		return Errorf(ErrQuantityMismatch, "received %d units but only %d were expected", in.QuantityReceived, quantityExpected)
	}
	if sum := in.Sellable + in.Damaged + in.Missing; sum != in.QuantityReceived {
		return Errorf(ErrQuantityMismatch, "sellable %d + damaged %d + missing %d = %d, want %d",
			in.Sellable, in.Damaged, in.Missing, sum, in.QuantityReceived)
	}
	return nil
}

// ComputeAdjustment returns the signed amount applied on top of the base
// refund. Only inspector-declared customer fault produces a deduction:
// unit refund x (damaged x rate + missing x rate), returned as a negative
// amount rounded to cents.
func ComputeAdjustment(approved decimal.Decimal, quantityExpected int, in Inspection, rates AdjustmentRates) decimal.Decimal {
	if !in.CustomerFault || quantityExpected <= 0 {
		return decimal.Zero
	}
	unit := approved.Div(decimal.NewFromInt(int64(quantityExpected)))
	weighted := decimal.NewFromInt(int64(in.Damaged)).Mul(rates.Damaged).
		Add(decimal.NewFromInt(int64(in.Missing)).Mul(rates.Missing))
	return unit.Mul(weighted).Neg().Round(2)
}

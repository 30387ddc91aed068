package returns

import (
	"fulfillment/internal/model"

	"github.com/shopspring/decimal"
)

// WriteOff is one damaged-inventory record to be created from an inspection.
type WriteOff struct {
	DamageType     model.DamageType
	DamageSeverity model.DamageSeverity
	Disposition    model.Disposition
	Quantity       int
	UnitValue      decimal.Decimal
	EstimatedValue decimal.Decimal
}

// DispositionPlan is the ledger outcome of a completed inspection.
type DispositionPlan struct {
	Restock   int
	WriteOffs []WriteOff
}

type writeOffKey struct {
	damageType  model.DamageType
	disposition model.Disposition
}

// PlanDisposition splits an inspection into a stock increment and write-offs
// grouped by (damage type, disposition). Sellable units go back to stock only
// under a restock disposition; damaged units under a restock disposition are
// routed to repair; missing units carry no physical disposition.
func PlanDisposition(qc *model.QualityCheck, unitPrice decimal.Decimal) DispositionPlan {
	var plan DispositionPlan
	groups := make(map[writeOffKey]int)
	severity := make(map[writeOffKey]model.DamageSeverity)
	var order []writeOffKey

	add := func(k writeOffKey, qty int, sev model.DamageSeverity) {
		if qty <= 0 {
			return
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
			severity[k] = sev
		}
		groups[k] += qty
	}

	if qc.SellableQuantity > 0 {
		if qc.Disposition == model.DispositionRestock {
			plan.Restock = qc.SellableQuantity
		} else {
			add(writeOffKey{model.DamageOther, qc.Disposition}, qc.SellableQuantity, model.SeverityMinor)
		}
	}

	if qc.DamagedQuantity > 0 {
		dt := qc.DamageType
		if dt == "" || dt == model.DamageMissingItem {
			dt = model.DamagePhysical
		}
		sev := qc.DamageSeverity
		if sev == "" {
			sev = model.SeverityModerate
		}
		disp := qc.Disposition
		if disp == model.DispositionRestock {
			disp = model.DispositionRepair
		}
		add(writeOffKey{dt, disp}, qc.DamagedQuantity, sev)
	}

	// Units that never arrived cannot be recovered.
	add(writeOffKey{model.DamageMissingItem, model.DispositionDispose}, qc.MissingQuantity, model.SeverityTotalLoss)

	for _, k := range order {
		qty := groups[k]
		plan.WriteOffs = append(plan.WriteOffs, WriteOff{
			DamageType:     k.damageType,
			DamageSeverity: severity[k],
			Disposition:    k.disposition,
			Quantity:       qty,
			UnitValue:      unitPrice,
			EstimatedValue: unitPrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return plan
}

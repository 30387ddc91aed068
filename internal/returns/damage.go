package returns

import "fulfillment/internal/model"

var damageTransitions = map[model.DamageStatus][]model.DamageStatus{
	model.DamageStatusPendingAssessment: {model.DamageStatusAssessed},
	model.DamageStatusAssessed: {
		model.DamageStatusRepairable,
		model.DamageStatusSalvageable,
		model.DamageStatusDisposed,
		model.DamageStatusReturnedToSupplier,
	},
	model.DamageStatusRepairable:  {model.DamageStatusDisposed},
	model.DamageStatusSalvageable: {model.DamageStatusDisposed},
}

// CanMoveDamaged reports whether a damaged-inventory record may move from one
// status to another. Staying put is always allowed so valuations can be
// amended without a status change.
func CanMoveDamaged(from, to model.DamageStatus) bool {
	if from == to {
		return true
	}
	for _, s := range damageTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// DispositionForStatus is the physical fate implied by a settled status.
func DispositionForStatus(status model.DamageStatus) (model.Disposition, bool) {
	switch status {
	case model.DamageStatusRepairable:
		return model.DispositionRepair, true
	case model.DamageStatusSalvageable:
		return model.DispositionSalvage, true
	case model.DamageStatusDisposed:
		return model.DispositionDispose, true
	case model.DamageStatusReturnedToSupplier:
		return model.DispositionReturnToSupplier, true
	}
	return "", false
}

package returns

import (
	"testing"

	"fulfillment/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCanMoveDamaged(t *testing.T) {
	tests := []struct {
		from, to model.DamageStatus
		want     bool
	}{
		{model.DamageStatusPendingAssessment, model.DamageStatusAssessed, true},
		{model.DamageStatusPendingAssessment, model.DamageStatusDisposed, false},
		{model.DamageStatusAssessed, model.DamageStatusRepairable, true},
		{model.DamageStatusAssessed, model.DamageStatusReturnedToSupplier, true},
		{model.DamageStatusRepairable, model.DamageStatusDisposed, true},
		{model.DamageStatusSalvageable, model.DamageStatusDisposed, true},
		{model.DamageStatusSalvageable, model.DamageStatusRepairable, false},
		{model.DamageStatusDisposed, model.DamageStatusAssessed, false},
		{model.DamageStatusReturnedToSupplier, model.DamageStatusDisposed, false},
		{model.DamageStatusAssessed, model.DamageStatusAssessed, true},
	}
	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, CanMoveDamaged(tc.from, tc.to))
		})
	}
}

func TestDispositionForStatus(t *testing.T) {
	d, ok := DispositionForStatus(model.DamageStatusSalvageable)
	assert.True(t, ok)
	assert.Equal(t, model.DispositionSalvage, d)

	_, ok = DispositionForStatus(model.DamageStatusAssessed)
	assert.False(t, ok)
}

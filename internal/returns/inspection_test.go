package returns

import (
	"testing"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inspection(received, sellable, damaged, missing int) Inspection {
	return Inspection{
		QuantityReceived: received,
		Sellable:         sellable,
		Damaged:          damaged,
		Missing:          missing,
		OverallCondition: model.ConditionGood,
		Disposition:      model.DispositionRestock,
	}
}

func TestValidateInspection(t *testing.T) {
	tests := []struct {
		name     string
		in       Inspection
		expected int
		wantErr  *Error
	}{
		{"all sellable", inspection(3, 3, 0, 0), 3, nil},
		{"mixed outcome conserves", inspection(3, 1, 1, 1), 3, nil},
		{"partial receipt", inspection(2, 2, 0, 0), 3, nil},
		{"sum short of received", inspection(3, 1, 1, 0), 3, ErrQuantityMismatch},
		{"sum above received", inspection(2, 2, 1, 0), 3, ErrQuantityMismatch},
		{"received above expected", inspection(4, 4, 0, 0), 3, ErrQuantityMismatch},
		{"negative count", inspection(1, 2, -1, 0), 3, ErrQuantityMismatch},
		{"bad condition", Inspection{QuantityReceived: 1, Sellable: 1, OverallCondition: "mint", Disposition: model.DispositionRestock}, 1, ErrValidation},
		{"bad disposition", Inspection{QuantityReceived: 1, Sellable: 1, OverallCondition: model.ConditionNew, Disposition: "burn"}, 1, ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateInspection(tc.in, tc.expected)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestComputeAdjustment(t *testing.T) {
	approved := decimal.NewFromInt(90000)

	noFault := inspection(3, 1, 1, 1)
	assert.True(t, ComputeAdjustment(approved, 3, noFault, DefaultAdjustmentRates()).IsZero())

	fault := noFault
	fault.CustomerFault = true
	adj := ComputeAdjustment(approved, 3, fault, DefaultAdjustmentRates())
	assert.True(t, adj.Equal(decimal.NewFromInt(-60000)), adj.String())

	halfRates := AdjustmentRates{Damaged: decimal.RequireFromString("0.5"), Missing: decimal.NewFromInt(1)}
	adj = ComputeAdjustment(approved, 3, fault, halfRates)
	assert.True(t, adj.Equal(decimal.NewFromInt(-45000)), adj.String())
}

func TestPlanDisposition_MixedOutcome(t *testing.T) {
	qc := &model.QualityCheck{
		ID:               uuid.New(),
		QuantityExpected: 3,
		QuantityReceived: 3,
		SellableQuantity: 1,
		DamagedQuantity:  1,
		MissingQuantity:  1,
		Disposition:      model.DispositionRestock,
	}

	plan := PlanDisposition(qc, decimal.NewFromInt(25000))

	assert.Equal(t, 1, plan.Restock)
	require.Len(t, plan.WriteOffs, 2)

	damaged := plan.WriteOffs[0]
	assert.Equal(t, model.DamagePhysical, damaged.DamageType)
	assert.Equal(t, model.DispositionRepair, damaged.Disposition)
	assert.Equal(t, 1, damaged.Quantity)
	assert.True(t, damaged.EstimatedValue.Equal(decimal.NewFromInt(25000)))

	missing := plan.WriteOffs[1]
	assert.Equal(t, model.DamageMissingItem, missing.DamageType)
	assert.Equal(t, model.SeverityTotalLoss, missing.DamageSeverity)
	assert.Equal(t, model.DispositionDispose, missing.Disposition)
	assert.Equal(t, 1, missing.Quantity)
}

func TestPlanDisposition_NonRestockGroupsBySellableAndDamaged(t *testing.T) {
	qc := &model.QualityCheck{
		QuantityReceived: 5,
		SellableQuantity: 2,
		DamagedQuantity:  3,
		DamageType:       model.DamageWater,
		DamageSeverity:   model.SeveritySevere,
		Disposition:      model.DispositionSalvage,
	}

	plan := PlanDisposition(qc, decimal.NewFromInt(10))

	assert.Zero(t, plan.Restock)
	require.Len(t, plan.WriteOffs, 2)
	assert.Equal(t, model.DamageOther, plan.WriteOffs[0].DamageType)
	assert.Equal(t, 2, plan.WriteOffs[0].Quantity)
	assert.Equal(t, model.DamageWater, plan.WriteOffs[1].DamageType)
	assert.Equal(t, model.DispositionSalvage, plan.WriteOffs[1].Disposition)
	assert.Equal(t, model.SeveritySevere, plan.WriteOffs[1].DamageSeverity)
	assert.True(t, plan.WriteOffs[1].EstimatedValue.Equal(decimal.NewFromInt(30)))
}

func TestPlanDisposition_MergesSameGroup(t *testing.T) {
	qc := &model.QualityCheck{
		QuantityReceived: 4,
		SellableQuantity: 1,
		DamagedQuantity:  3,
		DamageType:       model.DamageOther,
		Disposition:      model.DispositionDispose,
	}

	plan := PlanDisposition(qc, decimal.NewFromInt(1))

	require.Len(t, plan.WriteOffs, 1)
	assert.Equal(t, 4, plan.WriteOffs[0].Quantity)
}

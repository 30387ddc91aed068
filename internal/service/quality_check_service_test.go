package service

import (
	"context"
	"testing"

	"fulfillment/internal/model"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// receivedReturn walks a fresh return to item_received.
func receivedReturn(t *testing.T, f *fixture) *model.ReturnRequest {
	t.Helper()
	r := f.submit(t)
	f.approve(t, r.ID, nil)
	f.receive(t, r.ID)
	return r
}

func TestSubmitQualityCheck_MixedOutcome(t *testing.T) {
	f := newFixture(t)
	f.setItemQuantity(3)
	r := receivedReturn(t, f)

	res := f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 3,
		SellableQuantity: 1,
		DamagedQuantity:  1,
		MissingQuantity:  1,
		OverallCondition: "fair",
		Disposition:      "restock",
		DamageType:       "physical_damage",
		DamageSeverity:   "minor",
		InspectorNotes:   "one cracked, one missing",
	})

	assert.Equal(t, model.ReturnStatusQualityCheck, res.Return.Status)
	assert.Equal(t, model.ConditionCompleted, res.QualityCheck.ConditionStatus)
	assert.NotNil(t, res.QualityCheck.DispositionAppliedAt)
	assertMoney(t, "0", res.QualityCheck.RefundAdjustment)
	assert.Equal(t, 1, res.Disposition.Restocked)
	assert.Equal(t, 11, f.getProduct().CurrentStock)

	damaged := f.damagedFor(r.ID)
	require.Len(t, damaged, 2)
	byType := map[model.DamageType]model.DamagedInventory{}
	for _, d := range damaged {
		byType[d.DamageType] = d
		assert.Equal(t, 1, d.Quantity)
		assert.Equal(t, model.DamageSourceCustomerReturn, d.Source)
		assert.Equal(t, model.DamageStatusPendingAssessment, d.Status)
		assertMoney(t, "100000", d.EstimatedValue)
	}
	assert.Equal(t, model.DispositionRepair, byType[model.DamagePhysical].Disposition)
	assert.Equal(t, model.DispositionDispose, byType[model.DamageMissingItem].Disposition)

	stored := f.getReturn(t, r.ID)
	assert.Equal(t, 1, stored.QCSellableQuantity)
	assert.Equal(t, 1, stored.QCDamagedQuantity)
	assert.Equal(t, 1, stored.QCMissingQuantity)
}

func TestSubmitQualityCheck_CustomerFaultDeduction(t *testing.T) {
	f := newFixture(t)
	f.setItemQuantity(3)
	r := receivedReturn(t, f)

	res := f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 3,
		SellableQuantity: 2,
		DamagedQuantity:  1,
		OverallCondition: "poor",
		Disposition:      "restock",
		CustomerFault:    true,
	})

	assertMoney(t, "-100000", res.QualityCheck.RefundAdjustment)
	assertMoney(t, "-100000", f.getReturn(t, r.ID).RefundAdjustment)
}

func TestSubmitQualityCheck_QuantityMismatchChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.setItemQuantity(3)
	r := receivedReturn(t, f)
	_, historyBefore, auditsBefore, _ := f.countRows()

	_, err := f.qualityCheckService().SubmitQualityCheck(context.Background(), f.staff.ID.String(), r.ID.String(), QualityCheckSubmission{
		QuantityReceived: 3,
		SellableQuantity: 2,
		DamagedQuantity:  2,
		OverallCondition: "good",
		Disposition:      "restock",
	})
	assertCode(t, returns.CodeQuantityMismatch, err)

	assert.Equal(t, model.ReturnStatusItemReceived, f.getReturn(t, r.ID).Status)
	qc, err := f.qualityCheckService().GetQualityCheck(context.Background(), r.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.ConditionPendingInspection, qc.ConditionStatus)
	assert.Equal(t, 10, f.getProduct().CurrentStock)
	assert.Empty(t, f.damagedFor(r.ID))
	_, historyAfter, auditsAfter, _ := f.countRows()
	assert.Equal(t, historyBefore, historyAfter)
	assert.Equal(t, auditsBefore, auditsAfter)
}

func TestSubmitQualityCheck_MoreThanExpected(t *testing.T) {
	f := newFixture(t)
	r := receivedReturn(t, f)

	_, err := f.qualityCheckService().SubmitQualityCheck(context.Background(), f.staff.ID.String(), r.ID.String(), QualityCheckSubmission{
		QuantityReceived: 2,
		SellableQuantity: 2,
		OverallCondition: "good",
		Disposition:      "restock",
	})
	assertCode(t, returns.CodeQuantityMismatch, err)
}

func TestSubmitQualityCheck_BeforeReceipt(t *testing.T) {
	f := newFixture(t)
	r := f.submit(t)
	f.approve(t, r.ID, nil)

	_, err := f.qualityCheckService().SubmitQualityCheck(context.Background(), f.staff.ID.String(), r.ID.String(), QualityCheckSubmission{
		QuantityReceived: 1,
		SellableQuantity: 1,
		OverallCondition: "good",
		Disposition:      "restock",
	})
	assertCode(t, returns.CodeInvalidStateTransition, err)
}

func TestSubmitQualityCheck_InvalidEnum(t *testing.T) {
	f := newFixture(t)
	r := receivedReturn(t, f)

	_, err := f.qualityCheckService().SubmitQualityCheck(context.Background(), f.staff.ID.String(), r.ID.String(), QualityCheckSubmission{
		QuantityReceived: 1,
		SellableQuantity: 1,
		OverallCondition: "sparkling",
		Disposition:      "restock",
	})
	assertCode(t, returns.CodeValidation, err)
}

func TestSubmitQualityCheck_NonRestockDispositionWritesOffSellable(t *testing.T) {
	f := newFixture(t)
	f.setItemQuantity(2)
	r := receivedReturn(t, f)

	res := f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 2,
		SellableQuantity: 2,
		OverallCondition: "like_new",
		Disposition:      "return_to_supplier",
	})

	assert.Zero(t, res.Disposition.Restocked)
	assert.Equal(t, 10, f.getProduct().CurrentStock)
	require.Len(t, res.Disposition.WriteOffs, 1)
	assert.Equal(t, 2, res.Disposition.WriteOffs[0].Quantity)
	assert.Equal(t, model.DispositionReturnToSupplier, res.Disposition.WriteOffs[0].Disposition)
}

func TestStartInspection(t *testing.T) {
	f := newFixture(t)
	r := receivedReturn(t, f)
	svc := f.qualityCheckService()

	qc, err := svc.StartInspection(context.Background(), f.staff.ID.String(), r.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.ConditionInspecting, qc.ConditionStatus)
	require.NotNil(t, qc.InspectorID)
	assert.Equal(t, f.staff.ID, *qc.InspectorID)
	require.NotNil(t, qc.StartedAt)
	assert.Equal(t, model.ReturnStatusItemReceived, f.getReturn(t, r.ID).Status)

	_, err = svc.StartInspection(context.Background(), f.staff.ID.String(), r.ID.String())
	assertCode(t, returns.CodeInvalidStateTransition, err)

	res := f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 1,
		SellableQuantity: 1,
		OverallCondition: "good",
		Disposition:      "restock",
	})
	assert.True(t, qc.StartedAt.Equal(*res.QualityCheck.StartedAt))
}

func TestStartInspection_NotReceived(t *testing.T) {
	f := newFixture(t)
	r := f.submit(t)

	_, err := f.qualityCheckService().StartInspection(context.Background(), f.staff.ID.String(), r.ID.String())
	assertCode(t, returns.CodeInvalidStateTransition, err)
}

func TestDispositionApply_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.setItemQuantity(2)
	r := receivedReturn(t, f)
	f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 2,
		SellableQuantity: 1,
		DamagedQuantity:  1,
		OverallCondition: "fair",
		Disposition:      "restock",
	})
	require.Equal(t, 11, f.getProduct().CurrentStock)

	again, err := f.dispositionService().Apply(context.Background(), f.staff.ID.String(), r.ID)
	require.NoError(t, err)

	assert.True(t, again.AlreadyApplied)
	assert.Zero(t, again.Restocked)
	assert.Equal(t, 11, f.getProduct().CurrentStock)
	assert.Len(t, f.damagedFor(r.ID), 1)
}

func TestDispositionApply_RequiresCompletedInspection(t *testing.T) {
	f := newFixture(t)
	r := receivedReturn(t, f)

	_, err := f.dispositionService().Apply(context.Background(), f.staff.ID.String(), r.ID)
	assertCode(t, returns.CodeInvalidStateTransition, err)
	assert.Equal(t, 10, f.getProduct().CurrentStock)
}

func TestDispositionApply_RestocksVariation(t *testing.T) {
	f := newFixture(t)
	variation := model.ProductVariation{ID: uuid.New(), ProductID: f.product.ID, SKU: "SKU-1-L", CurrentStock: 4}
	f.store.read(func(t *tables) {
		t.variations[variation.ID] = variation
		item := t.items[f.item.ID]
		item.VariationID = &variation.ID
		t.items[f.item.ID] = item
	})
	r := receivedReturn(t, f)

	f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 1,
		SellableQuantity: 1,
		OverallCondition: "new",
		Disposition:      "restock",
	})

	var got model.ProductVariation
	f.store.read(func(t *tables) { got = t.variations[variation.ID] })
	assert.Equal(t, 5, got.CurrentStock)
	assert.Equal(t, 10, f.getProduct().CurrentStock)
}

package service

import (
	"context"
	"testing"

	"fulfillment/internal/model"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (f *fixture) damagedInventoryService() *damagedInventoryService {
	svc := NewDamagedInventoryService(f.repos, f.tx, zap.NewNop()).(*damagedInventoryService)
	svc.now = f.clock
	return svc
}

func newWarehouseDamage(t *testing.T, f *fixture) *model.DamagedInventory {
	t.Helper()
	rec, err := f.damagedInventoryService().CreateRecord(context.Background(), f.staff.ID.String(), CreateDamagedInventoryRequest{
		ProductID:      f.product.ID.String(),
		Quantity:       2,
		DamageType:     "water_damage",
		DamageSeverity: "severe",
		Source:         "warehouse",
		Notes:          "roof leak, aisle 4",
	})
	require.NoError(t, err)
	return rec
}

func TestCreateDamagedRecord(t *testing.T) {
	f := newFixture(t)

	rec := newWarehouseDamage(t, f)

	assert.Equal(t, model.DamageStatusPendingAssessment, rec.Status)
	assert.Equal(t, model.DamageSourceWarehouse, rec.Source)
	assertMoney(t, "100000", rec.UnitValue)
	assertMoney(t, "200000", rec.EstimatedValue)
	require.NotNil(t, rec.ReportedBy)
	assert.Equal(t, f.staff.ID, *rec.ReportedBy)
}

func TestCreateDamagedRecord_Validation(t *testing.T) {
	f := newFixture(t)
	svc := f.damagedInventoryService()

	_, err := svc.CreateRecord(context.Background(), f.staff.ID.String(), CreateDamagedInventoryRequest{
		ProductID:      f.product.ID.String(),
		Quantity:       1,
		DamageType:     "meteor",
		DamageSeverity: "minor",
		Source:         "warehouse",
	})
	assertCode(t, returns.CodeValidation, err)

	_, err = svc.CreateRecord(context.Background(), f.staff.ID.String(), CreateDamagedInventoryRequest{
		ProductID:      uuid.NewString(),
		Quantity:       1,
		DamageType:     "other",
		DamageSeverity: "minor",
		Source:         "shipping",
	})
	assertCode(t, returns.CodeNotFound, err)
}

func TestUpdateDamagedRecord_Lifecycle(t *testing.T) {
	f := newFixture(t)
	rec := newWarehouseDamage(t, f)
	svc := f.damagedInventoryService()

	assessed, err := svc.UpdateRecord(context.Background(), f.staff.ID.String(), rec.ID.String(), UpdateDamagedInventoryRequest{Status: "assessed"})
	require.NoError(t, err)
	assert.Equal(t, model.DamageStatusAssessed, assessed.Status)
	require.NotNil(t, assessed.AssessedAt)
	assert.True(t, f.now.Equal(*assessed.AssessedAt))

	salvage := decimal.NewFromInt(15000)
	claim := "INS-778"
	salvageable, err := svc.UpdateRecord(context.Background(), f.staff.ID.String(), rec.ID.String(), UpdateDamagedInventoryRequest{
		Status:            "salvageable",
		SalvageValue:      &salvage,
		InsuranceClaimRef: &claim,
		Notes:             "parts usable",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DispositionSalvage, salvageable.Disposition)
	assertMoney(t, "15000", salvageable.SalvageValue)
	assert.Equal(t, "INS-778", salvageable.InsuranceClaimRef)
	assert.Equal(t, "roof leak, aisle 4\nparts usable", salvageable.Notes)

	disposed, err := svc.UpdateRecord(context.Background(), f.staff.ID.String(), rec.ID.String(), UpdateDamagedInventoryRequest{Status: "disposed"})
	require.NoError(t, err)
	assert.Equal(t, model.DispositionDispose, disposed.Disposition)

	_, err = svc.UpdateRecord(context.Background(), f.staff.ID.String(), rec.ID.String(), UpdateDamagedInventoryRequest{Status: "assessed"})
	assertCode(t, returns.CodeInvalidStateTransition, err)
}

func TestUpdateDamagedRecord_SkippingAssessment(t *testing.T) {
	f := newFixture(t)
	rec := newWarehouseDamage(t, f)

	_, err := f.damagedInventoryService().UpdateRecord(context.Background(), f.staff.ID.String(), rec.ID.String(), UpdateDamagedInventoryRequest{Status: "disposed"})
	assertCode(t, returns.CodeInvalidStateTransition, err)

	got, err := f.damagedInventoryService().GetRecord(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.DamageStatusPendingAssessment, got.Status)
}

func TestUpdateDamagedRecord_NegativeValues(t *testing.T) {
	f := newFixture(t)
	rec := newWarehouseDamage(t, f)
	cost := decimal.NewFromInt(-1)

	_, err := f.damagedInventoryService().UpdateRecord(context.Background(), f.staff.ID.String(), rec.ID.String(), UpdateDamagedInventoryRequest{
		Status:     "pending_assessment",
		RepairCost: &cost,
	})
	assertCode(t, returns.CodeValidation, err)
}

func TestListDamagedRecords_Filters(t *testing.T) {
	f := newFixture(t)
	newWarehouseDamage(t, f)
	f.setItemQuantity(2)
	r := receivedReturn(t, f)
	f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 2,
		SellableQuantity: 1,
		DamagedQuantity:  1,
		OverallCondition: "fair",
		Disposition:      "restock",
	})
	svc := f.damagedInventoryService()

	all, total, err := svc.ListRecords(context.Background(), DamagedInventoryQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	fromReturns, total, err := svc.ListRecords(context.Background(), DamagedInventoryQuery{Source: "customer_return"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.NotNil(t, fromReturns[0].ReturnRequestID)
	assert.Equal(t, r.ID, *fromReturns[0].ReturnRequestID)

	_, _, err = svc.ListRecords(context.Background(), DamagedInventoryQuery{Status: "vaporised"})
	assertCode(t, returns.CodeValidation, err)
}

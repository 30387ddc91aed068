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

func TestGetStockCard_ShowsReturnRestock(t *testing.T) {
	f := newFixture(t)
	r := receivedReturn(t, f)
	f.inspect(t, r.ID, QualityCheckSubmission{
		QuantityReceived: 1,
		SellableQuantity: 1,
		OverallCondition: "like_new",
		Disposition:      "restock",
	})

	card, err := NewInventoryService(f.repos.Products, f.repos.InventoryTx).GetStockCard(context.Background(), f.product.ID.String(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 11, card.Product.CurrentStock)
	assert.Equal(t, "100000.00", card.Product.Price)
	assert.EqualValues(t, 1, card.Total)
	require.Len(t, card.Movements, 1)
	mv := card.Movements[0]
	assert.Equal(t, model.TxTypeIn, mv.TransactionType)
	assert.Equal(t, model.TxReasonReturnRestock, mv.Reason)
	assert.Equal(t, 1, mv.QuantityChanged)
	assert.Equal(t, 11, mv.StockAfter)
	require.NotNil(t, mv.ReturnRequestID)
	assert.Equal(t, r.ID, *mv.ReturnRequestID)
}

func TestGetStockCard_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.repos.Products, f.repos.InventoryTx)

	_, err := svc.GetStockCard(context.Background(), uuid.NewString(), 1, 20)
	assertCode(t, returns.CodeNotFound, err)

	_, err = svc.GetStockCard(context.Background(), "not-a-uuid", 1, 20)
	assertCode(t, returns.CodeValidation, err)
}

package repository

import (
	"context"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryTxRepository interface {
	Create(ctx context.Context, tx *model.InventoryTransaction) error
	ExistsForQualityCheck(ctx context.Context, qualityCheckID uuid.UUID) (bool, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, offset, limit int) ([]model.InventoryTransaction, int64, error)
}

type inventoryTxRepository struct {
	db *gorm.DB
}

func NewInventoryTxRepository(db *gorm.DB) InventoryTxRepository {
	return &inventoryTxRepository{db: db}
}

func (r *inventoryTxRepository) Create(ctx context.Context, tx *model.InventoryTransaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *inventoryTxRepository) ExistsForQualityCheck(ctx context.Context, qualityCheckID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.InventoryTransaction{}).
		Where("quality_check_id = ?", qualityCheckID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByProduct returns a product's stock card, newest movement first.
func (r *inventoryTxRepository) ListByProduct(ctx context.Context, productID uuid.UUID, offset, limit int) ([]model.InventoryTransaction, int64, error) {
	var total int64
	query := GetDB(ctx, r.db).Model(&model.InventoryTransaction{}).Where("product_id = ?", productID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []model.InventoryTransaction
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

package repository

import (
	"context"
	"time"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository reads orders owned by checkout and maintains their return fields.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindItem(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error)
	// FindItemForUpdate serialises concurrent return submissions for one item.
	FindItemForUpdate(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error)
	UpdateReturnAggregates(ctx context.Context, orderID uuid.UUID, hasActive bool, total decimal.Decimal) error
	CloseExpiredReturnWindows(ctx context.Context, now time.Time) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindItem(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := GetDB(ctx, r.db).Preload("Product").
		Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) FindItemForUpdate(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
		return nil, err
	}

	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", item.ProductID).Error; err != nil {
		return nil, err
	}
	item.Product = product
	return &item, nil
}

func (r *orderRepository) UpdateReturnAggregates(ctx context.Context, orderID uuid.UUID, hasActive bool, total decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"has_active_returns":    hasActive,
		"total_returned_amount": total,
	}).Error
}

func (r *orderRepository) CloseExpiredReturnWindows(ctx context.Context, now time.Time) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Order{}).
		Where("is_returnable = ? AND return_window_expires IS NOT NULL AND return_window_expires < ?", true, now).
		Update("is_returnable", false)
	return res.RowsAffected, res.Error
}

package repository

import (
	"context"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DamagedInventoryFilter struct {
	ProductID       *uuid.UUID
	ReturnRequestID *uuid.UUID
	Status          model.DamageStatus
	Source          model.DamageSource
	Page            int
	Limit           int
}

type DamagedInventoryRepository interface {
	Create(ctx context.Context, rec *model.DamagedInventory) error
	Update(ctx context.Context, rec *model.DamagedInventory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DamagedInventory, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.DamagedInventory, error)
	List(ctx context.Context, filter DamagedInventoryFilter) ([]model.DamagedInventory, int64, error)
}

type damagedInventoryRepository struct {
	db *gorm.DB
}

func NewDamagedInventoryRepository(db *gorm.DB) DamagedInventoryRepository {
	return &damagedInventoryRepository{db: db}
}

func (r *damagedInventoryRepository) Create(ctx context.Context, rec *model.DamagedInventory) error {
	return GetDB(ctx, r.db).Create(rec).Error
}

func (r *damagedInventoryRepository) Update(ctx context.Context, rec *model.DamagedInventory) error {
	return GetDB(ctx, r.db).Save(rec).Error
}

func (r *damagedInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DamagedInventory, error) {
	var rec model.DamagedInventory
	if err := GetDB(ctx, r.db).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *damagedInventoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.DamagedInventory, error) {
	var rec model.DamagedInventory
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *damagedInventoryRepository) List(ctx context.Context, filter DamagedInventoryFilter) ([]model.DamagedInventory, int64, error) {
	var recs []model.DamagedInventory
	var total int64

	db := GetDB(ctx, r.db).Model(&model.DamagedInventory{})
	if filter.ProductID != nil {
		db = db.Where("product_id = ?", *filter.ProductID)
	}
	if filter.ReturnRequestID != nil {
		db = db.Where("return_request_id = ?", *filter.ReturnRequestID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		db = db.Where("source = ?", filter.Source)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&recs).Error; err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}

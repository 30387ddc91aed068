package repository

import (
	"context"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PolicyFilter struct {
	ProductID  *uuid.UUID
	CategoryID *uuid.UUID
	ActiveOnly bool
	Page       int
	Limit      int
}

type PolicyRepository interface {
	Create(ctx context.Context, policy *model.ReturnPolicy) error
	Update(ctx context.Context, policy *model.ReturnPolicy) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnPolicy, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReturnPolicy, error)
	// ListCandidates returns every active policy that could apply to the product.
	ListCandidates(ctx context.Context, productID uuid.UUID, categoryID *uuid.UUID) ([]model.ReturnPolicy, error)
	List(ctx context.Context, filter PolicyFilter) ([]model.ReturnPolicy, int64, error)
}

type policyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) Create(ctx context.Context, policy *model.ReturnPolicy) error {
	return GetDB(ctx, r.db).Create(policy).Error
}

func (r *policyRepository) Update(ctx context.Context, policy *model.ReturnPolicy) error {
	return GetDB(ctx, r.db).Save(policy).Error
}

func (r *policyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnPolicy, error) {
	var policy model.ReturnPolicy
	if err := GetDB(ctx, r.db).First(&policy, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReturnPolicy, error) {
	var policy model.ReturnPolicy
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepository) ListCandidates(ctx context.Context, productID uuid.UUID, categoryID *uuid.UUID) ([]model.ReturnPolicy, error) {
	var policies []model.ReturnPolicy

	db := GetDB(ctx, r.db).Where("is_active = ?", true)
	scope := r.db.Where("product_id = ?", productID).
		Or("product_id IS NULL AND category_id IS NULL")
	if categoryID != nil {
		scope = scope.Or("product_id IS NULL AND category_id = ?", *categoryID)
	}

	if err := db.Where(scope).Order("priority DESC").Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *policyRepository) List(ctx context.Context, filter PolicyFilter) ([]model.ReturnPolicy, int64, error) {
	var policies []model.ReturnPolicy
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ReturnPolicy{})
	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if filter.ProductID != nil {
		db = db.Where("product_id = ?", *filter.ProductID)
	}
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.Order("priority DESC, created_at ASC").Offset(offset).Limit(filter.Limit).Find(&policies).Error; err != nil {
		return nil, 0, err
	}

	return policies, total, nil
}

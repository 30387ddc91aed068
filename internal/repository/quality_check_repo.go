package repository

import (
	"context"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QualityCheckRepository interface {
	Create(ctx context.Context, qc *model.QualityCheck) error
	Update(ctx context.Context, qc *model.QualityCheck) error
	FindByReturnID(ctx context.Context, returnID uuid.UUID) (*model.QualityCheck, error)
	FindByReturnIDForUpdate(ctx context.Context, returnID uuid.UUID) (*model.QualityCheck, error)
}

type qualityCheckRepository struct {
	db *gorm.DB
}

func NewQualityCheckRepository(db *gorm.DB) QualityCheckRepository {
	return &qualityCheckRepository{db: db}
}

func (r *qualityCheckRepository) Create(ctx context.Context, qc *model.QualityCheck) error {
	return GetDB(ctx, r.db).Create(qc).Error
}

func (r *qualityCheckRepository) Update(ctx context.Context, qc *model.QualityCheck) error {
	return GetDB(ctx, r.db).Save(qc).Error
}

func (r *qualityCheckRepository) FindByReturnID(ctx context.Context, returnID uuid.UUID) (*model.QualityCheck, error) {
	var qc model.QualityCheck
	if err := GetDB(ctx, r.db).First(&qc, "return_request_id = ?", returnID).Error; err != nil {
		return nil, err
	}
	return &qc, nil
}

func (r *qualityCheckRepository) FindByReturnIDForUpdate(ctx context.Context, returnID uuid.UUID) (*model.QualityCheck, error) {
	var qc model.QualityCheck
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("return_request_id = ?", returnID).First(&qc).Error; err != nil {
		return nil, err
	}
	return &qc, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReturnFilter struct {
	UserID  *uuid.UUID
	OrderID *uuid.UUID
	Status  model.ReturnStatus
	Search  string // matches return number or tracking number
	Page    int
	Limit   int
}

type ReturnRepository interface {
	Create(ctx context.Context, r *model.ReturnRequest) error
	Update(ctx context.Context, r *model.ReturnRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error)
	FindByIDWithHistory(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error)
	HasActiveForItem(ctx context.Context, orderItemID uuid.UUID) (bool, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ReturnRequest, error)
	List(ctx context.Context, filter ReturnFilter) ([]model.ReturnRequest, int64, error)
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]model.ReturnRequest, error)
	CountActiveByPolicy(ctx context.Context, policyID uuid.UUID) (int64, error)
	NextReturnNumber(ctx context.Context, now time.Time) (string, error)
	AddHistory(ctx context.Context, h *model.ReturnStatusHistory) error
}

type returnRepository struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) ReturnRepository {
	return &returnRepository{db: db}
}

var terminalStatuses = []model.ReturnStatus{
	model.ReturnStatusRejected,
	model.ReturnStatusCancelled,
	model.ReturnStatusCompleted,
}

func (r *returnRepository) Create(ctx context.Context, req *model.ReturnRequest) error {
	return GetDB(ctx, r.db).Omit("History").Create(req).Error
}

func (r *returnRepository) Update(ctx context.Context, req *model.ReturnRequest) error {
	return GetDB(ctx, r.db).Omit("History").Save(req).Error
}

func (r *returnRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *returnRepository) FindByIDWithHistory(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	if err := GetDB(ctx, r.db).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *returnRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *returnRepository) HasActiveForItem(ctx context.Context, orderItemID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.ReturnRequest{}).
		Where("order_item_id = ? AND status NOT IN ?", orderItemID, terminalStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *returnRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ReturnRequest, error) {
	var reqs []model.ReturnRequest
	if err := GetDB(ctx, r.db).Where("order_id = ?", orderID).Order("created_at ASC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *returnRepository) List(ctx context.Context, filter ReturnFilter) ([]model.ReturnRequest, int64, error) {
	var reqs []model.ReturnRequest
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ReturnRequest{})
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.OrderID != nil {
		db = db.Where("order_id = ?", *filter.OrderID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("return_number ILIKE ? OR tracking_number ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		db = db.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := db.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}

func (r *returnRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]model.ReturnRequest, error) {
	var reqs []model.ReturnRequest
	if err := GetDB(ctx, r.db).
		Where("status = ? AND return_deadline < ?", model.ReturnStatusPending, now).
		Order("return_deadline ASC").
		Limit(limit).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *returnRepository) CountActiveByPolicy(ctx context.Context, policyID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ReturnRequest{}).
		Where("policy_id = ? AND status NOT IN ?", policyID, terminalStatuses).
		Count(&count).Error
	return count, err
}

// NextReturnNumber must run inside a transaction; the advisory lock is held
// until commit so concurrent creations get distinct sequence numbers.
func (r *returnRepository) NextReturnNumber(ctx context.Context, now time.Time) (string, error) {
	db := GetDB(ctx, r.db)
	prefix := "RET-" + now.Format("20060102") + "-"

	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error; err != nil {
		return "", err
	}

	var count int64
	if err := db.Model(&model.ReturnRequest{}).
		Where("return_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

func (r *returnRepository) AddHistory(ctx context.Context, h *model.ReturnStatusHistory) error {
	return GetDB(ctx, r.db).Create(h).Error
}

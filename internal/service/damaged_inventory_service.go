package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type CreateDamagedInventoryRequest struct {
	ProductID         string  `json:"product_id" binding:"required,uuid"`
	VariationID       *string `json:"variation_id" binding:"omitempty,uuid"`
	Quantity          int     `json:"quantity" binding:"required,min=1"`
	DamageType        string  `json:"damage_type" binding:"required,damage_type"`
	DamageSeverity    string  `json:"damage_severity" binding:"required,damage_severity"`
	Source            string  `json:"source" binding:"required,damage_source"`
	Disposition       string  `json:"disposition" binding:"omitempty,disposition"`
	InsuranceClaimRef string  `json:"insurance_claim_ref" binding:"max=100"`
	SupplierClaimRef  string  `json:"supplier_claim_ref" binding:"max=100"`
	Notes             string  `json:"notes" binding:"max=4000"`
}

type UpdateDamagedInventoryRequest struct {
	Status            string           `json:"status" binding:"required,damage_status"`
	SalvageValue      *decimal.Decimal `json:"salvage_value" swaggertype:"string"`
	RepairCost        *decimal.Decimal `json:"repair_cost" swaggertype:"string"`
	InsuranceClaimRef *string          `json:"insurance_claim_ref" binding:"omitempty,max=100"`
	SupplierClaimRef  *string          `json:"supplier_claim_ref" binding:"omitempty,max=100"`
	Notes             string           `json:"notes" binding:"max=4000"`
}

type DamagedInventoryQuery struct {
	ProductID       string
	ReturnRequestID string
	Status          string
	Source          string
	Page            int
	Limit           int
}

// --- Interface ---

type DamagedInventoryService interface {
	CreateRecord(ctx context.Context, userID string, req CreateDamagedInventoryRequest) (*model.DamagedInventory, error)
	ListRecords(ctx context.Context, q DamagedInventoryQuery) ([]model.DamagedInventory, int64, error)
	GetRecord(ctx context.Context, id string) (*model.DamagedInventory, error)
	UpdateRecord(ctx context.Context, userID, id string, req UpdateDamagedInventoryRequest) (*model.DamagedInventory, error)
}

type damagedInventoryService struct {
	repos     Repositories
	txManager repository.TransactionManager
	logger    *zap.Logger
	now       func() time.Time
}

func NewDamagedInventoryService(repos Repositories, txManager repository.TransactionManager, logger *zap.Logger) DamagedInventoryService {
	return &damagedInventoryService{
		repos:     repos,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// --- Implementation ---

// CreateRecord logs damage found outside the returns flow, valued at the
// product's current unit price.
func (s *damagedInventoryService) CreateRecord(ctx context.Context, userID string, req CreateDamagedInventoryRequest) (*model.DamagedInventory, error) {
	productID, err := parseID(req.ProductID, "product")
	if err != nil {
		return nil, err
	}
	variationID, err := optionalID(req.VariationID, "variation")
	if err != nil {
		return nil, err
	}
	damageType, err := model.ParseDamageType(req.DamageType)
	if err != nil {
		return nil, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	severity, err := model.ParseDamageSeverity(req.DamageSeverity)
	if err != nil {
		return nil, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	source, err := model.ParseDamageSource(req.Source)
	if err != nil {
		return nil, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	var disposition model.Disposition
	if req.Disposition != "" {
		if disposition, err = model.ParseDisposition(req.Disposition); err != nil {
			return nil, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
	}
	if req.Quantity <= 0 {
		return nil, returns.Errorf(returns.ErrValidation, "quantity must be positive")
	}

	rec := &model.DamagedInventory{
		ProductID:         productID,
		VariationID:       variationID,
		Quantity:          req.Quantity,
		DamageType:        damageType,
		DamageSeverity:    severity,
		Disposition:       disposition,
		Source:            source,
		Status:            model.DamageStatusPendingAssessment,
		InsuranceClaimRef: strings.TrimSpace(req.InsuranceClaimRef),
		SupplierClaimRef:  strings.TrimSpace(req.SupplierClaimRef),
		Notes:             strings.TrimSpace(req.Notes),
		ReportedBy:        actorPtr(userID),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, err := s.repos.Products.FindByID(txCtx, productID)
		if err != nil {
			return lookupErr(err, "product")
		}
		rec.UnitValue = product.Price
		rec.EstimatedValue = product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2)

		if err := s.repos.Damaged.Create(txCtx, rec); err != nil {
			return fmt.Errorf("failed to create damaged inventory record: %w", err)
		}
		return writeAudit(txCtx, s.repos.Audit, userID, model.ActionCreateDamagedRecord, rec.ID.String(), product.Name, req)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *damagedInventoryService) ListRecords(ctx context.Context, q DamagedInventoryQuery) ([]model.DamagedInventory, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	filter := repository.DamagedInventoryFilter{Page: q.Page, Limit: q.Limit}
	if q.ProductID != "" {
		id, err := parseID(q.ProductID, "product")
		if err != nil {
			return nil, 0, err
		}
		filter.ProductID = &id
	}
	if q.ReturnRequestID != "" {
		id, err := parseID(q.ReturnRequestID, "return")
		if err != nil {
			return nil, 0, err
		}
		filter.ReturnRequestID = &id
	}
	if q.Status != "" {
		status, err := model.ParseDamageStatus(q.Status)
		if err != nil {
			return nil, 0, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
		filter.Status = status
	}
	if q.Source != "" {
		source, err := model.ParseDamageSource(q.Source)
		if err != nil {
			return nil, 0, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
		filter.Source = source
	}

	recs, total, err := s.repos.Damaged.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch damaged inventory: %w", err)
	}
	return recs, total, nil
}

func (s *damagedInventoryService) GetRecord(ctx context.Context, id string) (*model.DamagedInventory, error) {
	recID, err := parseID(id, "damaged inventory")
	if err != nil {
		return nil, err
	}
	rec, err := s.repos.Damaged.FindByID(ctx, recID)
	if err != nil {
		return nil, lookupErr(err, "damaged inventory record")
	}
	return rec, nil
}

// UpdateRecord advances a record's assessment and amends its valuation.
func (s *damagedInventoryService) UpdateRecord(ctx context.Context, userID, id string, req UpdateDamagedInventoryRequest) (*model.DamagedInventory, error) {
	recID, err := parseID(id, "damaged inventory")
	if err != nil {
		return nil, err
	}
	target, err := model.ParseDamageStatus(req.Status)
	if err != nil {
		return nil, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	for name, v := range map[string]*decimal.Decimal{"salvage_value": req.SalvageValue, "repair_cost": req.RepairCost} {
		if v != nil && v.IsNegative() {
			return nil, returns.Errorf(returns.ErrValidation, "%s must not be negative", name)
		}
	}

	var rec *model.DamagedInventory
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		rec, err = s.repos.Damaged.FindByIDForUpdate(txCtx, recID)
		if err != nil {
			return lookupErr(err, "damaged inventory record")
		}
		from := rec.Status
		if !returns.CanMoveDamaged(from, target) {
			return returns.Errorf(returns.ErrInvalidStateTransition, "cannot move damaged inventory from %s to %s", from, target)
		}

		now := s.now().UTC()
		rec.Status = target
		if target == model.DamageStatusAssessed && from != target {
			rec.AssessedBy = actorPtr(userID)
			rec.AssessedAt = &now
		}
		if d, ok := returns.DispositionForStatus(target); ok {
			rec.Disposition = d
		}
		if req.SalvageValue != nil {
			rec.SalvageValue = req.SalvageValue.Round(2)
		}
		if req.RepairCost != nil {
			rec.RepairCost = req.RepairCost.Round(2)
		}
		if req.InsuranceClaimRef != nil {
			rec.InsuranceClaimRef = strings.TrimSpace(*req.InsuranceClaimRef)
		}
		if req.SupplierClaimRef != nil {
			rec.SupplierClaimRef = strings.TrimSpace(*req.SupplierClaimRef)
		}
		rec.Notes = returns.AppendNote(rec.Notes, req.Notes)
		rec.UpdatedAt = now

		if err := s.repos.Damaged.Update(txCtx, rec); err != nil {
			return fmt.Errorf("failed to update damaged inventory record: %w", err)
		}
		return writeAudit(txCtx, s.repos.Audit, userID, model.ActionUpdateDamagedRecord, rec.ID.String(), string(rec.DamageType), map[string]interface{}{
			"from":    from,
			"to":      target,
			"request": req,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("damaged inventory updated",
		zap.String("record_id", rec.ID.String()),
		zap.String("status", string(rec.Status)))
	return rec, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repositories bundles the data access layer shared by the returns services.
type Repositories struct {
	Returns       repository.ReturnRepository
	Orders        repository.OrderRepository
	Policies      repository.PolicyRepository
	Users         repository.UserRepository
	Products      repository.ProductRepository
	QualityChecks repository.QualityCheckRepository
	Damaged       repository.DamagedInventoryRepository
	InventoryTx   repository.InventoryTxRepository
	Outbox        repository.OutboxRepository
	Audit         repository.AuditRepository
}

type DispositionResult struct {
	Restocked      int                      `json:"restocked"`
	WriteOffs      []model.DamagedInventory `json:"write_offs"`
	AlreadyApplied bool                     `json:"already_applied"`
}

// DispositionService books a completed inspection into stock and the
// damaged-inventory ledger.
type DispositionService interface {
	Apply(ctx context.Context, userID string, returnID uuid.UUID) (*DispositionResult, error)
}

type dispositionService struct {
	repos     Repositories
	txManager repository.TransactionManager
	logger    *zap.Logger
	now       func() time.Time
}

func NewDispositionService(repos Repositories, txManager repository.TransactionManager, logger *zap.Logger) DispositionService {
	return &dispositionService{
		repos:     repos,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Apply is idempotent per quality check: the first call restocks and writes
// off, later calls report AlreadyApplied and change nothing.
func (s *dispositionService) Apply(ctx context.Context, userID string, returnID uuid.UUID) (*DispositionResult, error) {
	result := &DispositionResult{}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		qc, err := s.repos.QualityChecks.FindByReturnIDForUpdate(txCtx, returnID)
		if err != nil {
			return lookupErr(err, "quality check")
		}
		if qc.ConditionStatus != model.ConditionCompleted {
			return returns.Errorf(returns.ErrInvalidStateTransition, "quality check for return %s is not completed", returnID)
		}
		if qc.DispositionAppliedAt != nil {
			result.AlreadyApplied = true
			return nil
		}

		product, err := s.repos.Products.FindByIDForUpdate(txCtx, qc.ProductID)
		if err != nil {
			return lookupErr(err, "product")
		}

		unitPrice := product.Price
		var variation *model.ProductVariation
		if qc.VariationID != nil {
			variation, err = s.repos.Products.FindVariationForUpdate(txCtx, *qc.VariationID)
			if err != nil {
				return lookupErr(err, "product variation")
			}
			if variation.Price.GreaterThan(decimal.Zero) {
				unitPrice = variation.Price
			}
		}

		plan := returns.PlanDisposition(qc, unitPrice)

		if plan.Restock > 0 {
			if err := s.restock(txCtx, qc, product, variation, plan.Restock); err != nil {
				return err
			}
			result.Restocked = plan.Restock
		}

		for _, w := range plan.WriteOffs {
			rec := &model.DamagedInventory{
				ProductID:       qc.ProductID,
				VariationID:     qc.VariationID,
				QualityCheckID:  &qc.ID,
				ReturnRequestID: &qc.ReturnRequestID,
				Quantity:        w.Quantity,
				DamageType:      w.DamageType,
				DamageSeverity:  w.DamageSeverity,
				Disposition:     w.Disposition,
				Source:          model.DamageSourceCustomerReturn,
				Status:          model.DamageStatusPendingAssessment,
				UnitValue:       w.UnitValue,
				EstimatedValue:  w.EstimatedValue,
				Notes:           qc.InspectorNotes,
				ReportedBy:      qc.InspectorID,
			}
			if err := s.repos.Damaged.Create(txCtx, rec); err != nil {
				return fmt.Errorf("failed to create damaged inventory record: %w", err)
			}
			result.WriteOffs = append(result.WriteOffs, *rec)
		}

		now := s.now().UTC()
		qc.DispositionAppliedAt = &now
		if err := s.repos.QualityChecks.Update(txCtx, qc); err != nil {
			return fmt.Errorf("failed to mark disposition applied: %w", err)
		}

		return writeAudit(txCtx, s.repos.Audit, userID, model.ActionApplyDisposition, qc.ReturnRequestID.String(), product.Name, map[string]interface{}{
			"quality_check_id": qc.ID.String(),
			"disposition":      qc.Disposition,
			"restocked":        result.Restocked,
			"write_offs":       len(result.WriteOffs),
		})
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyApplied {
		s.logger.Info("disposition already applied", zap.String("return_id", returnID.String()))
	}
	return result, nil
}

// restock increments the variation's stock when the line had one, the
// product's otherwise, and writes the stock card entry keyed by the
// quality check.
func (s *dispositionService) restock(ctx context.Context, qc *model.QualityCheck, product *model.Product, variation *model.ProductVariation, qty int) error {
	booked, err := s.repos.InventoryTx.ExistsForQualityCheck(ctx, qc.ID)
	if err != nil {
		return fmt.Errorf("failed to check stock card: %w", err)
	}
	if booked {
		return nil
	}

	var stockAfter int
	if variation != nil {
		stockAfter = variation.CurrentStock + qty
		if err := s.repos.Products.UpdateVariationStock(ctx, variation.ID, stockAfter); err != nil {
			return fmt.Errorf("failed to restock variation: %w", err)
		}
	} else {
		stockAfter = product.CurrentStock + qty
		if err := s.repos.Products.UpdateStock(ctx, product.ID, stockAfter); err != nil {
			return fmt.Errorf("failed to restock product: %w", err)
		}
	}

	entry := &model.InventoryTransaction{
		ProductID:       product.ID,
		VariationID:     qc.VariationID,
		ReturnRequestID: &qc.ReturnRequestID,
		QualityCheckID:  &qc.ID,
		TransactionType: model.TxTypeIn,
		Reason:          model.TxReasonReturnRestock,
		QuantityChanged: qty,
		StockAfter:      stockAfter,
	}
	if err := s.repos.InventoryTx.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write stock card entry: %w", err)
	}
	return nil
}

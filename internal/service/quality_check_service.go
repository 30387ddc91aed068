package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/metrics"
	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// --- DTOs ---

type QualityCheckSubmission struct {
	QuantityReceived int                    `json:"quantity_received" binding:"min=0"`
	SellableQuantity int                    `json:"sellable_quantity" binding:"min=0"`
	DamagedQuantity  int                    `json:"damaged_quantity" binding:"min=0"`
	MissingQuantity  int                    `json:"missing_quantity" binding:"min=0"`
	OverallCondition string                 `json:"overall_condition" binding:"required,overall_condition"`
	Disposition      string                 `json:"disposition" binding:"required,disposition"`
	DamageType       string                 `json:"damage_type" binding:"omitempty,damage_type"`
	DamageSeverity   string                 `json:"damage_severity" binding:"omitempty,damage_severity"`
	CustomerFault    bool                   `json:"customer_fault"`
	Checklist        map[string]interface{} `json:"checklist"`
	DamageDetails    []model.DamageNote     `json:"damage_details" binding:"omitempty,max=50"`
	InspectorNotes   string                 `json:"inspector_notes" binding:"max=4000"`
}

type QualityCheckResult struct {
	Return       *model.ReturnRequest `json:"return"`
	QualityCheck *model.QualityCheck  `json:"quality_check"`
	Disposition  *DispositionResult   `json:"disposition"`
}

// --- Interface ---

type QualityCheckService interface {
	StartInspection(ctx context.Context, userID, returnID string) (*model.QualityCheck, error)
	SubmitQualityCheck(ctx context.Context, userID, returnID string, req QualityCheckSubmission) (*QualityCheckResult, error)
	GetQualityCheck(ctx context.Context, returnID string) (*model.QualityCheck, error)
}

type qualityCheckService struct {
	repos       Repositories
	txManager   repository.TransactionManager
	disposition DispositionService
	recorder    *lifecycleRecorder
	aggregates  *orderAggregates
	rates       returns.AdjustmentRates
	logger      *zap.Logger
	now         func() time.Time
}

func NewQualityCheckService(
	repos Repositories,
	txManager repository.TransactionManager,
	disposition DispositionService,
	rates returns.AdjustmentRates,
	eventTopic string,
	logger *zap.Logger,
) QualityCheckService {
	return &qualityCheckService{
		repos:       repos,
		txManager:   txManager,
		disposition: disposition,
		recorder:    newLifecycleRecorder(repos.Returns, repos.Outbox, eventTopic),
		aggregates:  newOrderAggregates(repos.Returns, repos.Orders),
		rates:       rates,
		logger:      logger,
		now:         time.Now,
	}
}

// --- Implementation ---

// StartInspection claims a received return for an inspector. The request
// itself stays item_received until results are submitted.
func (s *qualityCheckService) StartInspection(ctx context.Context, userID, returnID string) (*model.QualityCheck, error) {
	inspector, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	id, err := parseID(returnID, "return")
	if err != nil {
		return nil, err
	}

	var qc *model.QualityCheck
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.repos.Returns.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "return request")
		}
		if err := returns.CheckGuard(returns.ActionStartInspection, r.Status); err != nil {
			return err
		}

		qc, err = s.repos.QualityChecks.FindByReturnIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "quality check")
		}
		if qc.ConditionStatus != model.ConditionPendingInspection {
			return returns.Errorf(returns.ErrInvalidStateTransition, "inspection for %s is already %s", r.ReturnNumber, qc.ConditionStatus)
		}

		now := s.now().UTC()
		qc.ConditionStatus = model.ConditionInspecting
		qc.InspectorID = &inspector
		qc.StartedAt = &now
		if err := s.repos.QualityChecks.Update(txCtx, qc); err != nil {
			return fmt.Errorf("failed to start inspection: %w", err)
		}
		return writeAudit(txCtx, s.repos.Audit, userID, model.ActionStartInspection, r.ID.String(), r.ReturnNumber, map[string]interface{}{
			"quality_check_id": qc.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return qc, nil
}

// SubmitQualityCheck records the inspector's verdict, derives the refund
// adjustment, books the disposition and moves the request to quality_check,
// all in one transaction.
func (s *qualityCheckService) SubmitQualityCheck(ctx context.Context, userID, returnID string, req QualityCheckSubmission) (*QualityCheckResult, error) {
	inspector, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	id, err := parseID(returnID, "return")
	if err != nil {
		return nil, err
	}
	in, err := req.inspection()
	if err != nil {
		return nil, err
	}

	result := &QualityCheckResult{}
	var step returns.Step
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.repos.Returns.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "return request")
		}
		if err := returns.CheckGuard(returns.ActionSubmitQC, r.Status); err != nil {
			return err
		}

		qc, err := s.repos.QualityChecks.FindByReturnIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "quality check")
		}
		if qc.ConditionStatus == model.ConditionCompleted {
			return returns.Errorf(returns.ErrInvalidStateTransition, "inspection for %s is already completed", r.ReturnNumber)
		}
		if err := returns.ValidateInspection(in, qc.QuantityExpected); err != nil {
			return err
		}

		now := s.now().UTC()
		qc.QuantityReceived = in.QuantityReceived
		qc.SellableQuantity = in.Sellable
		qc.DamagedQuantity = in.Damaged
		qc.MissingQuantity = in.Missing
		qc.OverallCondition = in.OverallCondition
		qc.Disposition = in.Disposition
		qc.DamageType = in.DamageType
		qc.DamageSeverity = in.DamageSeverity
		qc.CustomerFault = in.CustomerFault
		qc.Checklist = datatypes.JSONMap(req.Checklist)
		qc.DamageDetails = req.DamageDetails
		qc.InspectorNotes = strings.TrimSpace(req.InspectorNotes)
		qc.InspectorID = &inspector
		qc.RefundAdjustment = returns.ComputeAdjustment(r.EffectiveApprovedAmount(), qc.QuantityExpected, in, s.rates)
		qc.ConditionStatus = model.ConditionCompleted
		if qc.StartedAt == nil {
			qc.StartedAt = &now
		}
		qc.InspectedAt = &now
		if err := s.repos.QualityChecks.Update(txCtx, qc); err != nil {
			return fmt.Errorf("failed to save quality check: %w", err)
		}

		applyInspectionToReturn(r, qc)
		step, err = returns.Advance(r, model.ReturnStatusQualityCheck)
		if err != nil {
			return err
		}
		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to update return: %w", err)
		}
		if err := s.recorder.Record(txCtx, r, step, &inspector, qc.InspectorNotes, now); err != nil {
			return err
		}

		disp, err := s.disposition.Apply(txCtx, userID, r.ID)
		if err != nil {
			return err
		}

		if err := writeAudit(txCtx, s.repos.Audit, userID, model.ActionSubmitQualityCheck, r.ID.String(), r.ReturnNumber, map[string]interface{}{
			"quality_check_id":  qc.ID.String(),
			"quantity_received": qc.QuantityReceived,
			"sellable":          qc.SellableQuantity,
			"damaged":           qc.DamagedQuantity,
			"missing":           qc.MissingQuantity,
			"disposition":       qc.Disposition,
			"customer_fault":    qc.CustomerFault,
			"refund_adjustment": qc.RefundAdjustment.StringFixed(2),
		}); err != nil {
			return err
		}
		if err := s.aggregates.Recompute(txCtx, r.OrderID); err != nil {
			return err
		}

		result.Return = r
		result.QualityCheck = qc
		result.Disposition = disp
		return nil
	})
	if err != nil {
		return nil, err
	}

	observeTransitions(step)
	metrics.QualityChecksTotal.WithLabelValues(string(in.Disposition)).Inc()
	s.logger.Info("quality check submitted",
		zap.String("return_id", result.Return.ID.String()),
		zap.String("disposition", string(in.Disposition)),
		zap.Int("restocked", result.Disposition.Restocked),
		zap.Int("write_offs", len(result.Disposition.WriteOffs)))
	return result, nil
}

func (s *qualityCheckService) GetQualityCheck(ctx context.Context, returnID string) (*model.QualityCheck, error) {
	id, err := parseID(returnID, "return")
	if err != nil {
		return nil, err
	}
	qc, err := s.repos.QualityChecks.FindByReturnID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "quality check")
	}
	return qc, nil
}

func (req QualityCheckSubmission) inspection() (returns.Inspection, error) {
	condition, err := model.ParseOverallCondition(req.OverallCondition)
	if err != nil {
		return returns.Inspection{}, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	disposition, err := model.ParseDisposition(req.Disposition)
	if err != nil {
		return returns.Inspection{}, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	in := returns.Inspection{
		QuantityReceived: req.QuantityReceived,
		Sellable:         req.SellableQuantity,
		Damaged:          req.DamagedQuantity,
		Missing:          req.MissingQuantity,
		OverallCondition: condition,
		Disposition:      disposition,
		CustomerFault:    req.CustomerFault,
	}
	if req.DamageType != "" {
		if in.DamageType, err = model.ParseDamageType(req.DamageType); err != nil {
			return returns.Inspection{}, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
	}
	if req.DamageSeverity != "" {
		if in.DamageSeverity, err = model.ParseDamageSeverity(req.DamageSeverity); err != nil {
			return returns.Inspection{}, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
	}
	return in, nil
}

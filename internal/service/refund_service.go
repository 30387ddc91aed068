package service

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/gateway"
	"fulfillment/internal/lock"
	"fulfillment/internal/metrics"
	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProcessRefundRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

type RefundOutcome struct {
	Return  *model.ReturnRequest `json:"return"`
	Amount  decimal.Decimal      `json:"amount"`
	Warning string               `json:"warning,omitempty"`
}

type RefundService interface {
	ProcessRefund(ctx context.Context, userID, returnID string, req ProcessRefundRequest) (*RefundOutcome, error)
}

type refundService struct {
	repos      Repositories
	txManager  repository.TransactionManager
	gateway    gateway.PaymentGateway
	locker     lock.Locker
	lockTTL    time.Duration
	recorder   *lifecycleRecorder
	aggregates *orderAggregates
	logger     *zap.Logger
	now        func() time.Time
}

func NewRefundService(
	repos Repositories,
	txManager repository.TransactionManager,
	paymentGateway gateway.PaymentGateway,
	locker lock.Locker,
	lockTTL time.Duration,
	eventTopic string,
	logger *zap.Logger,
) RefundService {
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	return &refundService{
		repos:      repos,
		txManager:  txManager,
		gateway:    paymentGateway,
		locker:     locker,
		lockTTL:    lockTTL,
		recorder:   newLifecycleRecorder(repos.Returns, repos.Outbox, eventTopic),
		aggregates: newOrderAggregates(repos.Returns, repos.Orders),
		logger:     logger,
		now:        time.Now,
	}
}

// ProcessRefund pays out an inspected return in three steps: mark the
// attempt (processing), call the gateway with no transaction open, then
// settle to completed or record the failure for a later retry. A per-return
// lock keeps concurrent attempts from reaching the gateway twice.
func (s *refundService) ProcessRefund(ctx context.Context, userID, returnID string, req ProcessRefundRequest) (*RefundOutcome, error) {
	actor, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	id, err := parseID(returnID, "return")
	if err != nil {
		return nil, err
	}

	held, err := s.locker.Acquire(ctx, "refund:"+id.String(), s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire refund lock: %w", err)
	}
	if !held.IsAcquired() {
		return nil, returns.ErrRefundInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), held); err != nil {
			s.logger.Warn("failed to release refund lock", zap.String("return_id", id.String()), zap.Error(err))
		}
	}()

	r, amount, steps, err := s.begin(ctx, id, actor, userID, req)
	if err != nil {
		return nil, err
	}
	observeTransitions(steps...)

	var reference string
	var gwErr error
	if amount.Amount.IsPositive() {
		var res gateway.RefundResult
		res, gwErr = s.gateway.ExecuteRefund(ctx, gateway.RefundRequest{
			IdempotencyKey: r.ID.String(),
			OrderID:        r.OrderID,
			Amount:         amount.Amount,
			Method:         string(r.RefundMethod),
		})
		reference = res.Reference
	}

	if gwErr != nil {
		metrics.RefundsTotal.WithLabelValues("failed").Inc()
		failed, err := s.fail(ctx, id, userID, r.RefundAttempts, gwErr)
		if err != nil {
			s.logger.Error("failed to record refund failure", zap.String("return_id", id.String()), zap.Error(err))
			return nil, err
		}
		s.logger.Warn("refund gateway call failed",
			zap.String("return_id", failed.ID.String()),
			zap.Int("attempt", failed.RefundAttempts),
			zap.Error(gwErr))
		return nil, returns.Errorf(returns.ErrRefundGatewayFailure, "payment gateway refused the refund: %v", gwErr)
	}

	done, step, err := s.complete(ctx, id, actor, userID, amount.Amount, reference)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("refund_settle").Inc()
		s.logger.Error("refund paid but settlement failed; retry will reuse the idempotency key",
			zap.String("return_id", id.String()),
			zap.String("reference", reference),
			zap.Error(err))
		return nil, err
	}
	observeTransitions(step)
	metrics.RefundsTotal.WithLabelValues("completed").Inc()

	out := &RefundOutcome{Return: done, Amount: amount.Amount}
	if warn := amount.Warning(); warn != nil {
		out.Warning = warn.Error()
		s.logger.Warn("refund floored at zero", zap.String("return_id", id.String()))
	}
	s.logger.Info("refund completed",
		zap.String("return_id", done.ID.String()),
		zap.String("amount", amount.Amount.StringFixed(2)),
		zap.String("reference", reference))
	return out, nil
}

// begin validates the guard, moves the request to processing and counts the
// attempt.
func (s *refundService) begin(ctx context.Context, id, actor uuid.UUID, userID string, req ProcessRefundRequest) (*model.ReturnRequest, returns.RefundAmount, []returns.Step, error) {
	var r *model.ReturnRequest
	var amount returns.RefundAmount
	var steps []returns.Step

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		r, err = s.repos.Returns.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "return request")
		}
		if err := returns.CheckGuard(returns.ActionProcessRefund, r.Status); err != nil {
			return err
		}

		now := s.now().UTC()
		if r.Status == model.ReturnStatusQualityCheck {
			step, err := returns.Advance(r, model.ReturnStatusProcessing)
			if err != nil {
				return err
			}
			steps = append(steps, step)
		}

		amount = returns.RefundFor(r)
		r.RefundStatus = model.RefundStatusProcessing
		r.RefundAttempts++
		r.AdminNotes = returns.AppendNote(r.AdminNotes, req.Notes)
		if amount.BelowZero {
			r.AdminNotes = returns.AppendNote(r.AdminNotes, "refund floored at zero: fee and deductions exceed the approved amount")
		}
		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to mark refund processing: %w", err)
		}
		if err := s.recorder.RecordAll(txCtx, r, steps, &actor, req.Notes, now); err != nil {
			return err
		}
		return writeAudit(txCtx, s.repos.Audit, userID, model.ActionRefundAttempt, r.ID.String(), r.ReturnNumber, map[string]interface{}{
			"attempt": r.RefundAttempts,
			"amount":  amount.Amount.StringFixed(2),
			"method":  r.RefundMethod,
		})
	})
	if err != nil {
		return nil, returns.RefundAmount{}, nil, err
	}
	return r, amount, steps, nil
}

func (s *refundService) fail(ctx context.Context, id uuid.UUID, userID string, attempt int, cause error) (*model.ReturnRequest, error) {
	var r *model.ReturnRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		r, err = s.repos.Returns.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "return request")
		}
		now := s.now().UTC()
		r.RefundStatus = model.RefundStatusFailed
		r.AdminNotes = returns.AppendNote(r.AdminNotes, fmt.Sprintf("refund attempt %d failed at %s: %v", attempt, now.Format(time.RFC3339), cause))
		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to record refund failure: %w", err)
		}
		return writeAudit(txCtx, s.repos.Audit, userID, model.ActionRefundFailed, r.ID.String(), r.ReturnNumber, map[string]interface{}{
			"attempt": attempt,
			"error":   cause.Error(),
		})
	})
	return r, err
}

func (s *refundService) complete(ctx context.Context, id, actor uuid.UUID, userID string, amount decimal.Decimal, reference string) (*model.ReturnRequest, returns.Step, error) {
	var r *model.ReturnRequest
	var step returns.Step
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		r, err = s.repos.Returns.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "return request")
		}

		now := s.now().UTC()
		step, err = returns.Advance(r, model.ReturnStatusCompleted)
		if err != nil {
			return err
		}
		r.RefundStatus = model.RefundStatusCompleted
		r.RefundedAmount = decimal.NewNullDecimal(amount)
		r.RefundReference = reference
		r.ProcessedBy = &actor
		r.ProcessedAt = &now
		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to complete refund: %w", err)
		}
		if err := s.recorder.Record(txCtx, r, step, &actor, "refund completed", now); err != nil {
			return err
		}
		if err := writeAudit(txCtx, s.repos.Audit, userID, model.ActionRefundCompleted, r.ID.String(), r.ReturnNumber, map[string]interface{}{
			"amount":    amount.StringFixed(2),
			"reference": reference,
		}); err != nil {
			return err
		}
		return s.aggregates.Recompute(txCtx, r.OrderID)
	})
	if err != nil {
		return nil, returns.Step{}, err
	}
	return r, step, nil
}

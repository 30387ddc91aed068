package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fulfillment/internal/metrics"
	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateReturnRequest struct {
	ReasonCode   string   `json:"reason_code" binding:"required,reason_code"`
	Description  string   `json:"description" binding:"max=2000"`
	ReturnType   string   `json:"return_type" binding:"required,return_type"`
	RefundMethod string   `json:"refund_method" binding:"omitempty,refund_method"`
	Notes        string   `json:"notes" binding:"max=2000"`
	PhotoRefs    []string `json:"photo_refs" binding:"max=10,dive,max=500"`
}

type CancelReturnRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

type ProcessReturnRequest struct {
	Action          string           `json:"action" binding:"required,oneof=approve reject"`
	AdminNotes      string           `json:"admin_notes" binding:"max=2000"`
	ApprovedAmount  *decimal.Decimal `json:"approved_amount" swaggertype:"string"`
	RejectionReason string           `json:"rejection_reason" binding:"required_if=Action reject,max=1000"`
}

type ReceiveReturnRequest struct {
	Courier        string `json:"courier" binding:"max=100"`
	TrackingNumber string `json:"tracking_number" binding:"max=100"`
	Notes          string `json:"notes" binding:"max=2000"`
}

type ReturnQuery struct {
	UserID  string
	OrderID string
	Status  string
	Search  string
	Page    int
	Limit   int
}

type EligibilityResponse struct {
	returns.Eligibility
	OrderID                 string               `json:"order_id"`
	OrderItemID             string               `json:"order_item_id"`
	PolicyID                string               `json:"policy_id,omitempty"`
	RequestedAmount         decimal.Decimal      `json:"requested_amount"`
	RestockingFeePercentage decimal.Decimal      `json:"restocking_fee_percentage"`
	RefundMethods           []model.RefundMethod `json:"refund_methods,omitempty"`
	AllowedReasons          []model.ReasonCode   `json:"allowed_reasons,omitempty"`
}

// --- Interface ---

type ReturnService interface {
	CheckEligibility(ctx context.Context, userID, orderID, itemID string) (*EligibilityResponse, error)
	CreateReturn(ctx context.Context, userID, orderID, itemID string, req CreateReturnRequest) (*model.ReturnRequest, error)
	ListMyReturns(ctx context.Context, userID string, q ReturnQuery) ([]model.ReturnRequest, int64, error)
	CancelReturn(ctx context.Context, userID, id string, req CancelReturnRequest) (*model.ReturnRequest, error)
	ListReturns(ctx context.Context, q ReturnQuery) ([]model.ReturnRequest, int64, error)
	GetReturn(ctx context.Context, id string) (*model.ReturnRequest, error)
	ProcessReturn(ctx context.Context, userID, id string, req ProcessReturnRequest) (*model.ReturnRequest, error)
	MarkReceived(ctx context.Context, userID, id string, req ReceiveReturnRequest) (*model.ReturnRequest, error)
	ExpireStalePending(ctx context.Context, batchSize int) (int, error)
	ExportReturns(ctx context.Context, q ReturnQuery, w io.Writer) (int, error)
}

type returnService struct {
	repos       Repositories
	txManager   repository.TransactionManager
	disposition DispositionService
	recorder    *lifecycleRecorder
	aggregates  *orderAggregates
	logger      *zap.Logger
	now         func() time.Time
}

func NewReturnService(
	repos Repositories,
	txManager repository.TransactionManager,
	disposition DispositionService,
	eventTopic string,
	logger *zap.Logger,
) ReturnService {
	return &returnService{
		repos:       repos,
		txManager:   txManager,
		disposition: disposition,
		recorder:    newLifecycleRecorder(repos.Returns, repos.Outbox, eventTopic),
		aggregates:  newOrderAggregates(repos.Returns, repos.Orders),
		logger:      logger,
		now:         time.Now,
	}
}

// --- Customer operations ---

func (s *returnService) CheckEligibility(ctx context.Context, userID, orderID, itemID string) (*EligibilityResponse, error) {
	uid, oid, iid, err := parseItemRef(userID, orderID, itemID)
	if err != nil {
		return nil, err
	}

	order, err := s.repos.Orders.FindByID(ctx, oid)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	if order.UserID != uid {
		return nil, returns.Errorf(returns.ErrForbidden, "order does not belong to the caller")
	}
	item, err := s.repos.Orders.FindItem(ctx, oid, iid)
	if err != nil {
		return nil, lookupErr(err, "order item")
	}

	policy, elig, err := s.evaluate(ctx, order, item)
	if err != nil {
		return nil, err
	}

	res := &EligibilityResponse{
		Eligibility:     elig,
		OrderID:         order.ID.String(),
		OrderItemID:     item.ID.String(),
		RequestedAmount: item.Subtotal(),
	}
	if policy != nil {
		res.PolicyID = policy.ID.String()
		res.RestockingFeePercentage = policy.RestockingFeePercentage
		res.RefundMethods = policy.RefundMethods
		res.AllowedReasons = policy.AllowedReasons
	}
	return res, nil
}

// CreateReturn re-runs eligibility under a row lock on the order item so
// concurrent submissions for one item serialise; the partial unique index on
// active returns backs this up.
func (s *returnService) CreateReturn(ctx context.Context, userID, orderID, itemID string, req CreateReturnRequest) (*model.ReturnRequest, error) {
	uid, oid, iid, err := parseItemRef(userID, orderID, itemID)
	if err != nil {
		return nil, err
	}
	draft, err := req.draft()
	if err != nil {
		return nil, err
	}

	var created *model.ReturnRequest
	var steps []returns.Step
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.repos.Orders.FindItemForUpdate(txCtx, oid, iid)
		if err != nil {
			return lookupErr(err, "order item")
		}
		order, err := s.repos.Orders.FindByID(txCtx, oid)
		if err != nil {
			return lookupErr(err, "order")
		}
		if order.UserID != uid {
			return returns.Errorf(returns.ErrForbidden, "order does not belong to the caller")
		}

		policy, elig, err := s.evaluate(txCtx, order, item)
		if err != nil {
			return err
		}
		if err := elig.Err(); err != nil {
			return err
		}

		trusted, err := s.repos.Users.IsTrusted(txCtx, uid)
		if err != nil {
			return fmt.Errorf("failed to load customer trust flag: %w", err)
		}

		now := s.now().UTC()
		r, err := returns.NewReturnRequest(returns.BuildParams{
			Order:       order,
			Item:        item,
			UserID:      uid,
			Trusted:     trusted,
			Policy:      policy,
			Eligibility: elig,
			Draft:       draft,
			Now:         now,
		})
		if err != nil {
			return err
		}

		number, err := s.repos.Returns.NextReturnNumber(txCtx, now)
		if err != nil {
			return fmt.Errorf("failed to allocate return number: %w", err)
		}
		r.ReturnNumber = number

		if err := s.repos.Returns.Create(txCtx, r); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return returns.ErrDuplicateActiveReturn
			}
			return fmt.Errorf("failed to create return request: %w", err)
		}

		steps = append(steps, returns.Step{To: model.ReturnStatusPending})
		if r.Status == model.ReturnStatusApproved {
			steps = append(steps, returns.Step{From: model.ReturnStatusPending, To: model.ReturnStatusApproved})
		}
		actor := &uid
		if err := s.recorder.Record(txCtx, r, steps[0], actor, "return requested", now); err != nil {
			return err
		}
		if len(steps) > 1 {
			if err := s.recorder.Record(txCtx, r, steps[1], nil, r.AdminNotes, now); err != nil {
				return err
			}
		}

		if err := writeAudit(txCtx, s.repos.Audit, userID, model.ActionCreateReturn, r.ID.String(), r.ReturnNumber, req); err != nil {
			return err
		}
		if r.Status == model.ReturnStatusApproved {
			details := map[string]interface{}{"policy_id": policy.ID.String(), "approved_amount": r.ApprovedAmount.Decimal.StringFixed(2)}
			if err := writeAudit(txCtx, s.repos.Audit, "", model.ActionAutoApproveReturn, r.ID.String(), r.ReturnNumber, details); err != nil {
				return err
			}
		}

		if err := s.aggregates.Recompute(txCtx, order.ID); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		if code, ok := returns.CodeOf(err); !ok || code != returns.CodeDuplicateActiveReturn {
			metrics.OperationErrorsTotal.WithLabelValues("create_return").Inc()
		}
		return nil, err
	}

	observeTransitions(steps...)
	metrics.ReturnsCreatedTotal.WithLabelValues(string(created.Status)).Inc()
	s.logger.Info("return request created",
		zap.String("return_id", created.ID.String()),
		zap.String("return_number", created.ReturnNumber),
		zap.String("status", string(created.Status)))
	return created, nil
}

func (s *returnService) ListMyReturns(ctx context.Context, userID string, q ReturnQuery) ([]model.ReturnRequest, int64, error) {
	if _, err := parseID(userID, "user"); err != nil {
		return nil, 0, err
	}
	q.UserID = userID
	q.OrderID = ""
	return s.ListReturns(ctx, q)
}

func (s *returnService) CancelReturn(ctx context.Context, userID, id string, req CancelReturnRequest) (*model.ReturnRequest, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	returnID, err := parseID(id, "return")
	if err != nil {
		return nil, err
	}

	var updated *model.ReturnRequest
	var step returns.Step
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.repos.Returns.FindByIDForUpdate(txCtx, returnID)
		if err != nil {
			return lookupErr(err, "return request")
		}
		if r.UserID != uid {
			return returns.Errorf(returns.ErrForbidden, "return does not belong to the caller")
		}

		now := s.now().UTC()
		step, err = returns.Cancel(r, req.Notes, now)
		if err != nil {
			return err
		}
		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to cancel return: %w", err)
		}
		if err := s.recorder.Record(txCtx, r, step, &uid, req.Notes, now); err != nil {
			return err
		}
		if err := writeAudit(txCtx, s.repos.Audit, userID, model.ActionCancelReturn, r.ID.String(), r.ReturnNumber, req); err != nil {
			return err
		}
		if err := s.aggregates.Recompute(txCtx, r.OrderID); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	observeTransitions(step)
	return updated, nil
}

// --- Admin operations ---

func (s *returnService) ListReturns(ctx context.Context, q ReturnQuery) ([]model.ReturnRequest, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	filter, err := q.filter()
	if err != nil {
		return nil, 0, err
	}

	reqs, total, err := s.repos.Returns.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch return requests: %w", err)
	}
	return reqs, total, nil
}

func (s *returnService) GetReturn(ctx context.Context, id string) (*model.ReturnRequest, error) {
	returnID, err := parseID(id, "return")
	if err != nil {
		return nil, err
	}
	r, err := s.repos.Returns.FindByIDWithHistory(ctx, returnID)
	if err != nil {
		return nil, lookupErr(err, "return request")
	}
	return r, nil
}

// ProcessReturn approves or rejects a pending request.
func (s *returnService) ProcessReturn(ctx context.Context, userID, id string, req ProcessReturnRequest) (*model.ReturnRequest, error) {
	actor, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	returnID, err := parseID(id, "return")
	if err != nil {
		return nil, err
	}
	switch req.Action {
	case "approve":
		if req.ApprovedAmount != nil && req.ApprovedAmount.IsNegative() {
			return nil, returns.Errorf(returns.ErrInvalidAmount, "approved amount must not be negative")
		}
	case "reject":
		if strings.TrimSpace(req.RejectionReason) == "" {
			return nil, returns.Errorf(returns.ErrValidation, "rejection_reason is required when rejecting")
		}
	default:
		return nil, returns.Errorf(returns.ErrValidation, "action must be approve or reject, got %q", req.Action)
	}

	var updated *model.ReturnRequest
	var step returns.Step
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.repos.Returns.FindByIDForUpdate(txCtx, returnID)
		if err != nil {
			return lookupErr(err, "return request")
		}

		now := s.now().UTC()
		action := model.ActionApproveReturn
		if req.Action == "approve" {
			step, err = returns.Approve(r, actor, req.ApprovedAmount, req.AdminNotes, now)
		} else {
			action = model.ActionRejectReturn
			step, err = returns.Reject(r, actor, req.RejectionReason, req.AdminNotes, now)
		}
		if err != nil {
			return err
		}

		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to update return: %w", err)
		}
		if err := s.recorder.Record(txCtx, r, step, &actor, req.AdminNotes, now); err != nil {
			return err
		}
		if err := writeAudit(txCtx, s.repos.Audit, userID, action, r.ID.String(), r.ReturnNumber, req); err != nil {
			return err
		}
		if err := s.aggregates.Recompute(txCtx, r.OrderID); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	observeTransitions(step)
	s.logger.Info("return processed",
		zap.String("return_id", updated.ID.String()),
		zap.String("action", req.Action),
		zap.String("actor", userID))
	return updated, nil
}

// MarkReceived books the parcel in and opens its quality check. Under a
// policy without inspection the check is completed on the spot as fully
// sellable and the request moves straight on to processing.
func (s *returnService) MarkReceived(ctx context.Context, userID, id string, req ReceiveReturnRequest) (*model.ReturnRequest, error) {
	actor, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	returnID, err := parseID(id, "return")
	if err != nil {
		return nil, err
	}

	var updated *model.ReturnRequest
	var steps []returns.Step
	var skippedInspection bool
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.repos.Returns.FindByIDForUpdate(txCtx, returnID)
		if err != nil {
			return lookupErr(err, "return request")
		}

		now := s.now().UTC()
		step, err := returns.MarkReceived(r, actor, req.Courier, req.TrackingNumber, now)
		if err != nil {
			return err
		}
		steps = append(steps, step)

		policy, err := s.repos.Policies.FindByID(txCtx, r.PolicyID)
		if err != nil {
			return lookupErr(err, "return policy")
		}

		qc := &model.QualityCheck{
			ReturnRequestID:  r.ID,
			ProductID:        r.ProductID,
			VariationID:      r.VariationID,
			QuantityExpected: r.Quantity,
			ConditionStatus:  model.ConditionPendingInspection,
		}
		if !policy.QualityCheckRequired {
			skippedInspection = true
			qc.QuantityReceived = r.Quantity
			qc.SellableQuantity = r.Quantity
			qc.OverallCondition = model.ConditionGood
			qc.Disposition = model.DispositionRestock
			qc.ConditionStatus = model.ConditionCompleted
			qc.RefundAdjustment = decimal.Zero
			qc.InspectorID = &actor
			qc.InspectorNotes = "inspection not required by policy"
			qc.StartedAt = &now
			qc.InspectedAt = &now
		}
		if err := s.repos.QualityChecks.Create(txCtx, qc); err != nil {
			return fmt.Errorf("failed to open quality check: %w", err)
		}

		if skippedInspection {
			applyInspectionToReturn(r, qc)
			for _, to := range []model.ReturnStatus{model.ReturnStatusQualityCheck, model.ReturnStatusProcessing} {
				step, err := returns.Advance(r, to)
				if err != nil {
					return err
				}
				steps = append(steps, step)
			}
		}

		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to update return: %w", err)
		}
		if err := s.recorder.Record(txCtx, r, steps[0], &actor, req.Notes, now); err != nil {
			return err
		}
		if err := s.recorder.RecordAll(txCtx, r, steps[1:], &actor, "inspection not required by policy", now); err != nil {
			return err
		}

		if skippedInspection {
			if _, err := s.disposition.Apply(txCtx, userID, r.ID); err != nil {
				return err
			}
		}

		if err := writeAudit(txCtx, s.repos.Audit, userID, model.ActionReceiveReturn, r.ID.String(), r.ReturnNumber, req); err != nil {
			return err
		}
		if err := s.aggregates.Recompute(txCtx, r.OrderID); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	observeTransitions(steps...)
	if skippedInspection {
		metrics.QualityChecksTotal.WithLabelValues(string(model.DispositionRestock)).Inc()
	}
	return updated, nil
}

// ExpireStalePending cancels pending requests whose return deadline has
// passed and closes lapsed order return windows. Each request commits on its
// own so one failure does not block the rest of the batch; rerunning is safe.
func (s *returnService) ExpireStalePending(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	now := s.now().UTC()

	stale, err := s.repos.Returns.ListExpiredPending(ctx, now, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired returns: %w", err)
	}

	var errs []error
	expired := 0
	for i := range stale {
		ok, err := s.expireOne(ctx, stale[i].ID, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("return %s: %w", stale[i].ReturnNumber, err))
			continue
		}
		if ok {
			expired++
		}
	}

	closed, err := s.repos.Orders.CloseExpiredReturnWindows(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to close order return windows: %w", err))
	}

	if expired > 0 {
		metrics.ReturnsExpiredTotal.Add(float64(expired))
	}
	if expired > 0 || closed > 0 {
		s.logger.Info("expiry sweep finished",
			zap.Int("expired_returns", expired),
			zap.Int64("closed_order_windows", closed))
	}
	return expired, errors.Join(errs...)
}

func (s *returnService) expireOne(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var step returns.Step
	applied := false
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.repos.Returns.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "return request")
		}
		if r.Status != model.ReturnStatusPending || !now.After(r.ReturnDeadline) {
			return nil
		}

		step, err = returns.Expire(r, now)
		if err != nil {
			return err
		}
		r.UpdatedAt = now
		if err := s.repos.Returns.Update(txCtx, r); err != nil {
			return fmt.Errorf("failed to expire return: %w", err)
		}
		if err := s.recorder.Record(txCtx, r, step, nil, "return window lapsed before approval", now); err != nil {
			return err
		}
		details := map[string]interface{}{"return_deadline": r.ReturnDeadline}
		if err := writeAudit(txCtx, s.repos.Audit, "", model.ActionExpireReturn, r.ID.String(), r.ReturnNumber, details); err != nil {
			return err
		}
		if err := s.aggregates.Recompute(txCtx, r.OrderID); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if applied {
		observeTransitions(step)
	}
	return applied, nil
}

var exportHeaders = []string{
	"Return Number", "Status", "Order ID", "Order Item ID", "Customer ID", "Reason", "Return Type",
	"Quantity", "Requested Amount", "Approved Amount", "Restocking Fee", "Adjustment",
	"Refunded Amount", "Refund Method", "Refund Status", "Return Deadline", "Created At",
}

// ExportReturns writes every return matching q (ignoring paging) as an xlsx
// workbook and reports how many rows were written.
func (s *returnService) ExportReturns(ctx context.Context, q ReturnQuery, w io.Writer) (int, error) {
	filter, err := q.filter()
	if err != nil {
		return 0, err
	}
	filter.Page, filter.Limit = 0, 0

	reqs, _, err := s.repos.Returns.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch return requests: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close export workbook", zap.Error(err))
		}
	}()

	const sheet = "Returns"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return 0, fmt.Errorf("failed to prepare export sheet: %w", err)
	}
	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, fmt.Errorf("failed to write export header: %w", err)
	}

	for i := range reqs {
		r := &reqs[i]
		approved, refunded := "", ""
		if r.ApprovedAmount.Valid {
			approved = r.ApprovedAmount.Decimal.StringFixed(2)
		}
		if r.RefundedAmount.Valid {
			refunded = r.RefundedAmount.Decimal.StringFixed(2)
		}
		row := []interface{}{
			r.ReturnNumber, string(r.Status), r.OrderID.String(), r.OrderItemID.String(), r.UserID.String(),
			string(r.ReasonCode), string(r.ReturnType), r.Quantity,
			r.RequestedAmount.StringFixed(2), approved, r.RestockingFee.StringFixed(2), r.RefundAdjustment.StringFixed(2),
			refunded, string(r.RefundMethod), string(r.RefundStatus),
			r.ReturnDeadline.Format(time.RFC3339), r.CreatedAt.Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return 0, fmt.Errorf("failed to write export row: %w", err)
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return 0, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return 0, fmt.Errorf("failed to size export columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write export workbook: %w", err)
	}
	return len(reqs), nil
}

// --- helpers ---

// evaluate resolves the governing policy and runs the eligibility checks.
// A closed order-level return window fails an otherwise eligible item.
func (s *returnService) evaluate(ctx context.Context, order *model.Order, item *model.OrderItem) (*model.ReturnPolicy, returns.Eligibility, error) {
	categoryID := item.Product.CategoryID
	candidates, err := s.repos.Policies.ListCandidates(ctx, item.ProductID, categoryID)
	if err != nil {
		return nil, returns.Eligibility{}, fmt.Errorf("failed to load candidate policies: %w", err)
	}
	policy, err := policyOrNil(returns.ResolvePolicy(candidates, item.ProductID, categoryID))
	if err != nil {
		return nil, returns.Eligibility{}, err
	}

	active, err := s.repos.Returns.HasActiveForItem(ctx, item.ID)
	if err != nil {
		return nil, returns.Eligibility{}, fmt.Errorf("failed to check active returns: %w", err)
	}

	elig := returns.EvaluateEligibility(returns.EligibilityInput{
		OrderStatus:     order.Status,
		DeliveredAt:     order.DeliveredAt,
		Policy:          policy,
		HasActiveReturn: active,
		Now:             s.now().UTC(),
	})
	if elig.Eligible && !order.IsReturnable {
		elig = returns.Eligibility{
			Reason:   returns.CodeWindowExpired,
			Message:  "return window for this order has closed",
			Deadline: elig.Deadline,
		}
	}
	return policy, elig, nil
}

// applyInspectionToReturn copies the inspection summary onto the request.
func applyInspectionToReturn(r *model.ReturnRequest, qc *model.QualityCheck) {
	r.QCOverallCondition = qc.OverallCondition
	r.QCDisposition = qc.Disposition
	r.QCSellableQuantity = qc.SellableQuantity
	r.QCDamagedQuantity = qc.DamagedQuantity
	r.QCMissingQuantity = qc.MissingQuantity
	r.RefundAdjustment = qc.RefundAdjustment
}

func parseItemRef(userID, orderID, itemID string) (uuid.UUID, uuid.UUID, uuid.UUID, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	oid, err := parseID(orderID, "order")
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	iid, err := parseID(itemID, "order item")
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	return uid, oid, iid, nil
}

func (req CreateReturnRequest) draft() (returns.Draft, error) {
	reason, err := model.ParseReasonCode(req.ReasonCode)
	if err != nil {
		return returns.Draft{}, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	returnType, err := model.ParseReturnType(req.ReturnType)
	if err != nil {
		return returns.Draft{}, returns.Errorf(returns.ErrValidation, "%s", err.Error())
	}
	var method model.RefundMethod
	if req.RefundMethod != "" {
		if method, err = model.ParseRefundMethod(req.RefundMethod); err != nil {
			return returns.Draft{}, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
	}
	photos := make([]string, 0, len(req.PhotoRefs))
	for _, p := range req.PhotoRefs {
		if p = strings.TrimSpace(p); p != "" {
			photos = append(photos, p)
		}
	}
	return returns.Draft{
		ReasonCode:    reason,
		Description:   strings.TrimSpace(req.Description),
		ReturnType:    returnType,
		RefundMethod:  method,
		CustomerNotes: strings.TrimSpace(req.Notes),
		PhotoRefs:     photos,
	}, nil
}

func (q ReturnQuery) filter() (repository.ReturnFilter, error) {
	filter := repository.ReturnFilter{Search: strings.TrimSpace(q.Search), Page: q.Page, Limit: q.Limit}
	if q.Status != "" {
		status, err := model.ParseReturnStatus(q.Status)
		if err != nil {
			return filter, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
		filter.Status = status
	}
	if q.UserID != "" {
		id, err := parseID(q.UserID, "user")
		if err != nil {
			return filter, err
		}
		filter.UserID = &id
	}
	if q.OrderID != "" {
		id, err := parseID(q.OrderID, "order")
		if err != nil {
			return filter, err
		}
		filter.OrderID = &id
	}
	return filter, nil
}

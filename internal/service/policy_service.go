package service

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// --- DTOs ---

type PolicyRequest struct {
	Name                      string                  `json:"name" binding:"required,max=255"`
	ProductID                 *string                 `json:"product_id" binding:"omitempty,uuid"`
	CategoryID                *string                 `json:"category_id" binding:"omitempty,uuid"`
	IsReturnable              *bool                   `json:"is_returnable"`
	ReturnWindowDays          int                     `json:"return_window_days" binding:"required,min=1,max=365"`
	ExchangeWindowDays        int                     `json:"exchange_window_days" binding:"omitempty,min=1,max=365"`
	RestockingFeePercentage   decimal.Decimal         `json:"restocking_fee_percentage" swaggertype:"string"`
	ReturnShippingPaidBy      string                  `json:"return_shipping_paid_by" binding:"omitempty,oneof=customer store"`
	ReplacementShippingPaidBy string                  `json:"replacement_shipping_paid_by" binding:"omitempty,oneof=customer store"`
	AllowedReasons            []string                `json:"allowed_reasons" binding:"omitempty,dive,reason_code"`
	ExcludedReasons           []string                `json:"excluded_reasons" binding:"omitempty,dive,reason_code"`
	RefundMethods             []string                `json:"refund_methods" binding:"omitempty,dive,refund_method"`
	AutoApproval              *model.AutoApprovalRule `json:"auto_approval"`
	RequiresApproval          *bool                   `json:"requires_approval"`
	QualityCheckRequired      *bool                   `json:"quality_check_required"`
	Priority                  int                     `json:"priority"`
	IsActive                  *bool                   `json:"is_active"`
}

type PolicyQuery struct {
	ProductID  string
	CategoryID string
	ActiveOnly bool
	Page       int
	Limit      int
}

// --- Interface ---

type PolicyService interface {
	CreatePolicy(ctx context.Context, userID string, req PolicyRequest) (*model.ReturnPolicy, error)
	UpdatePolicy(ctx context.Context, userID, id string, req PolicyRequest) (*model.ReturnPolicy, error)
	GetPolicy(ctx context.Context, id string) (*model.ReturnPolicy, error)
	ListPolicies(ctx context.Context, q PolicyQuery) ([]model.ReturnPolicy, int64, error)
	ResolveForProduct(ctx context.Context, productID string) (*model.ReturnPolicy, error)
}

type policyService struct {
	policyRepo  repository.PolicyRepository
	returnRepo  repository.ReturnRepository
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	logger      *zap.Logger
}

func NewPolicyService(
	policyRepo repository.PolicyRepository,
	returnRepo repository.ReturnRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	logger *zap.Logger,
) PolicyService {
	return &policyService{
		policyRepo:  policyRepo,
		returnRepo:  returnRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// --- Implementation ---

func (s *policyService) CreatePolicy(ctx context.Context, userID string, req PolicyRequest) (*model.ReturnPolicy, error) {
	policy := &model.ReturnPolicy{
		IsReturnable:              true,
		ReturnShippingPaidBy:      model.ShippingPayerCustomer,
		ReplacementShippingPaidBy: model.ShippingPayerStore,
		RequiresApproval:          true,
		QualityCheckRequired:      true,
		IsActive:                  true,
	}
	if err := applyPolicyRequest(policy, req); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.policyRepo.Create(txCtx, policy); err != nil {
			return fmt.Errorf("failed to create return policy: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateReturnPolicy, policy.ID.String(), policy.Name, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("return policy created",
		zap.String("policy_id", policy.ID.String()),
		zap.String("scope", policy.Scope().String()))
	return policy, nil
}

// UpdatePolicy replaces a policy's terms. Policies governing any open return
// are frozen so in-flight requests keep the terms they were created under.
func (s *policyService) UpdatePolicy(ctx context.Context, userID, id string, req PolicyRequest) (*model.ReturnPolicy, error) {
	policyID, err := parseID(id, "policy")
	if err != nil {
		return nil, err
	}

	var policy *model.ReturnPolicy
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.policyRepo.FindByIDForUpdate(txCtx, policyID)
		if err != nil {
			return lookupErr(err, "return policy")
		}

		inUse, err := s.returnRepo.CountActiveByPolicy(txCtx, policyID)
		if err != nil {
			return fmt.Errorf("failed to check policy usage: %w", err)
		}
		if inUse > 0 {
			return returns.Errorf(returns.ErrPolicyInUse, "policy is referenced by %d open return(s)", inUse)
		}

		if err := applyPolicyRequest(p, req); err != nil {
			return err
		}
		if err := s.policyRepo.Update(txCtx, p); err != nil {
			return fmt.Errorf("failed to update return policy: %w", err)
		}
		policy = p
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateReturnPolicy, p.ID.String(), p.Name, req)
	})
	if err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *policyService) GetPolicy(ctx context.Context, id string) (*model.ReturnPolicy, error) {
	policyID, err := parseID(id, "policy")
	if err != nil {
		return nil, err
	}
	p, err := s.policyRepo.FindByID(ctx, policyID)
	if err != nil {
		return nil, lookupErr(err, "return policy")
	}
	return p, nil
}

func (s *policyService) ListPolicies(ctx context.Context, q PolicyQuery) ([]model.ReturnPolicy, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	filter := repository.PolicyFilter{ActiveOnly: q.ActiveOnly, Page: q.Page, Limit: q.Limit}
	if q.ProductID != "" {
		id, err := parseID(q.ProductID, "product")
		if err != nil {
			return nil, 0, err
		}
		filter.ProductID = &id
	}
	if q.CategoryID != "" {
		id, err := parseID(q.CategoryID, "category")
		if err != nil {
			return nil, 0, err
		}
		filter.CategoryID = &id
	}

	policies, total, err := s.policyRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch return policies: %w", err)
	}
	return policies, total, nil
}

// ResolveForProduct previews which policy would govern a product today.
func (s *policyService) ResolveForProduct(ctx context.Context, productID string) (*model.ReturnPolicy, error) {
	pid, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, lookupErr(err, "product")
	}
	candidates, err := s.policyRepo.ListCandidates(ctx, product.ID, product.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate policies: %w", err)
	}
	return returns.ResolvePolicy(candidates, product.ID, product.CategoryID)
}

// applyPolicyRequest validates req and copies it onto p. Unset optional
// flags leave the current value untouched.
func applyPolicyRequest(p *model.ReturnPolicy, req PolicyRequest) error {
	if req.ProductID != nil && req.CategoryID != nil {
		return returns.Errorf(returns.ErrValidation, "a policy targets a product or a category, not both")
	}
	if req.RestockingFeePercentage.IsNegative() || req.RestockingFeePercentage.GreaterThan(decimal.NewFromInt(100)) {
		return returns.Errorf(returns.ErrValidation, "restocking_fee_percentage must be between 0 and 100")
	}
	if req.ReturnWindowDays <= 0 {
		return returns.Errorf(returns.ErrValidation, "return_window_days must be positive")
	}

	productID, err := optionalID(req.ProductID, "product")
	if err != nil {
		return err
	}
	categoryID, err := optionalID(req.CategoryID, "category")
	if err != nil {
		return err
	}

	allowed, err := parseReasons(req.AllowedReasons)
	if err != nil {
		return err
	}
	excluded, err := parseReasons(req.ExcludedReasons)
	if err != nil {
		return err
	}
	methods := make([]model.RefundMethod, 0, len(req.RefundMethods))
	for _, raw := range req.RefundMethods {
		m, err := model.ParseRefundMethod(raw)
		if err != nil {
			return returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
		methods = append(methods, m)
	}

	rule := model.AutoApprovalRule{}
	if req.AutoApproval != nil {
		rule = *req.AutoApproval
		if rule.MaxAmount.IsNegative() {
			return returns.Errorf(returns.ErrValidation, "auto_approval.max_amount must not be negative")
		}
	}

	p.Name = req.Name
	p.ProductID = productID
	p.CategoryID = categoryID
	p.ReturnWindowDays = req.ReturnWindowDays
	p.ExchangeWindowDays = req.ExchangeWindowDays
	if p.ExchangeWindowDays == 0 {
		p.ExchangeWindowDays = req.ReturnWindowDays
	}
	p.RestockingFeePercentage = req.RestockingFeePercentage.Round(2)
	if req.ReturnShippingPaidBy != "" {
		p.ReturnShippingPaidBy = model.ShippingPayer(req.ReturnShippingPaidBy)
	}
	if req.ReplacementShippingPaidBy != "" {
		p.ReplacementShippingPaidBy = model.ShippingPayer(req.ReplacementShippingPaidBy)
	}
	p.AllowedReasons = allowed
	p.ExcludedReasons = excluded
	p.RefundMethods = methods
	p.AutoApproval = datatypes.NewJSONType(rule)
	p.Priority = req.Priority
	if req.IsReturnable != nil {
		p.IsReturnable = *req.IsReturnable
	}
	if req.RequiresApproval != nil {
		p.RequiresApproval = *req.RequiresApproval
	}
	if req.QualityCheckRequired != nil {
		p.QualityCheckRequired = *req.QualityCheckRequired
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return nil
}

func optionalID(raw *string, what string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(*raw, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseReasons(raw []string) ([]model.ReasonCode, error) {
	out := make([]model.ReasonCode, 0, len(raw))
	for _, r := range raw {
		code, err := model.ParseReasonCode(r)
		if err != nil {
			return nil, returns.Errorf(returns.ErrValidation, "%s", err.Error())
		}
		out = append(out, code)
	}
	return out, nil
}

// policyOrNil maps PolicyNotFound to a nil policy so eligibility reports the
// item as excluded from returns.
func policyOrNil(p *model.ReturnPolicy, err error) (*model.ReturnPolicy, error) {
	if errors.Is(err, returns.ErrPolicyNotFound) {
		return nil, nil
	}
	return p, err
}

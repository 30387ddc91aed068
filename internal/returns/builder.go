package returns

import (
	"time"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Draft is a customer's return submission after binding and parsing.
type Draft struct {
	ReasonCode    model.ReasonCode
	Description   string
	ReturnType    model.ReturnType
	RefundMethod  model.RefundMethod // empty selects the policy default
	CustomerNotes string
	PhotoRefs     []string
}

// BuildParams carries the resolved context a new request is built from.
type BuildParams struct {
	Order       *model.Order
	Item        *model.OrderItem
	UserID      uuid.UUID
	Trusted     bool
	Policy      *model.ReturnPolicy
	Eligibility Eligibility
	Draft       Draft
	Now         time.Time
}

// NewReturnRequest builds a fully initialised request in its starting state:
// approved when the policy's auto-approval rule admits it and no manual
// approval is required, pending otherwise. The return number is assigned by
// the caller.
func NewReturnRequest(p BuildParams) (*model.ReturnRequest, error) {
	if err := p.Eligibility.Err(); err != nil {
		return nil, err
	}
	d := p.Draft
	if !d.ReasonCode.Valid() {
		return nil, Errorf(ErrValidation, "invalid reason_code %q", d.ReasonCode)
	}
	if !d.ReturnType.Valid() {
		return nil, Errorf(ErrValidation, "invalid return_type %q", d.ReturnType)
	}
	if !p.Policy.AllowsReason(d.ReasonCode) {
		return nil, Errorf(ErrReasonNotAllowed, "reason %s is not accepted for this item", d.ReasonCode)
	}
	method, ok := p.Policy.ResolveRefundMethod(d.RefundMethod)
	if !ok {
		return nil, Errorf(ErrRefundMethodNotAllowed, "refund method %s is not permitted for this item", d.RefundMethod)
	}
	if d.ReturnType == model.ReturnTypeExchange {
		deadline := ReturnDeadline(*p.Order.DeliveredAt, p.Policy.ExchangeWindowDays)
		if p.Now.After(deadline) {
			return nil, ErrExchangeWindowExpired
		}
	}

	requested := p.Item.Subtotal()
	r := &model.ReturnRequest{
		OrderID:                 p.Order.ID,
		OrderItemID:             p.Item.ID,
		UserID:                  p.UserID,
		ProductID:               p.Item.ProductID,
		VariationID:             p.Item.VariationID,
		PolicyID:                p.Policy.ID,
		Quantity:                p.Item.Quantity,
		ReasonCode:              d.ReasonCode,
		Description:             d.Description,
		ReturnType:              d.ReturnType,
		RequestedAmount:         requested,
		RestockingFeePercentage: p.Policy.RestockingFeePercentage,
		RestockingFee:           RestockingFee(p.Policy.RestockingFeePercentage, requested),
		RefundAdjustment:        decimal.Zero,
		PhotoRefs:               d.PhotoRefs,
		Status:                  model.ReturnStatusPending,
		CustomerNotes:           d.CustomerNotes,
		ReturnDeadline:          *p.Eligibility.Deadline,
		ReturnShippingPaidBy:    p.Policy.ReturnShippingPaidBy,
		RefundMethod:            method,
		RefundStatus:            model.RefundStatusPending,
		CreatedAt:               p.Now,
		UpdatedAt:               p.Now,
	}

	if ShouldAutoApprove(p.Policy, requested, p.Trusted) {
		now := p.Now
		r.Status = model.ReturnStatusApproved
		r.ApprovedAmount = decimal.NewNullDecimal(requested)
		r.ApprovedAt = &now
		r.AdminNotes = "approved automatically by policy"
	}
	return r, nil
}

// ShouldAutoApprove evaluates the policy's auto-approval rule for a request.
func ShouldAutoApprove(policy *model.ReturnPolicy, amount decimal.Decimal, trusted bool) bool {
	if policy.RequiresApproval {
		return false
	}
	return policy.AutoApproval.Data().Permits(amount, trusted)
}

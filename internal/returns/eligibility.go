package returns

import (
	"time"

	"fulfillment/internal/model"
)

const day = 24 * time.Hour

// EligibilityInput is everything the evaluator needs about one order item.
// Policy is nil when no policy resolved for the item.
type EligibilityInput struct {
	OrderStatus     model.OrderStatus
	DeliveredAt     *time.Time
	Policy          *model.ReturnPolicy
	HasActiveReturn bool
	Now             time.Time
}

type Eligibility struct {
	Eligible         bool       `json:"eligible"`
	Reason           Code       `json:"reason,omitempty"`
	Message          string     `json:"message,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ExchangeDeadline *time.Time `json:"exchange_deadline,omitempty"`
}

// Err returns the failing check as a domain error, or nil when eligible.
func (e Eligibility) Err() error {
	if e.Eligible {
		return nil
	}
	return &Error{Code: e.Reason, Message: e.Message}
}

// EvaluateEligibility runs the checks in order and reports the first failure:
// delivered, returnable, no active return, inside the window.
func EvaluateEligibility(in EligibilityInput) Eligibility {
	if in.OrderStatus != model.OrderStatusDelivered || in.DeliveredAt == nil {
		return fail(ErrNotDelivered)
	}
	if in.Policy == nil || !in.Policy.IsReturnable {
		return fail(ErrPolicyExcludesReturns)
	}

	deadline := ReturnDeadline(*in.DeliveredAt, in.Policy.ReturnWindowDays)
	exchangeDeadline := ReturnDeadline(*in.DeliveredAt, in.Policy.ExchangeWindowDays)

	if in.HasActiveReturn {
		res := fail(ErrDuplicateActiveReturn)
		res.Deadline = &deadline
		return res
	}
	if in.Now.After(deadline) {
		res := fail(ErrWindowExpired)
		res.Deadline = &deadline
		return res
	}

	return Eligibility{
		Eligible:         true,
		Deadline:         &deadline,
		ExchangeDeadline: &exchangeDeadline,
	}
}

// ReturnDeadline is the last instant a return may be opened.
func ReturnDeadline(deliveredAt time.Time, windowDays int) time.Time {
	return deliveredAt.Add(time.Duration(windowDays) * day)
}

func fail(kind *Error) Eligibility {
	return Eligibility{Reason: kind.Code, Message: kind.Message}
}

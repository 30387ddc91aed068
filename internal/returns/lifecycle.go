package returns

import (
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var transitions = map[model.ReturnStatus][]model.ReturnStatus{
	model.ReturnStatusPending:      {model.ReturnStatusApproved, model.ReturnStatusRejected, model.ReturnStatusCancelled},
	model.ReturnStatusApproved:     {model.ReturnStatusItemReceived, model.ReturnStatusCancelled},
	model.ReturnStatusItemReceived: {model.ReturnStatusQualityCheck},
	model.ReturnStatusQualityCheck: {model.ReturnStatusProcessing},
	model.ReturnStatusProcessing:   {model.ReturnStatusCompleted},
}

// Action is an actor-driven lifecycle operation.
type Action string

const (
	ActionApprove         Action = "approve"
	ActionReject          Action = "reject"
	ActionCancel          Action = "cancel"
	ActionMarkReceived    Action = "receive"
	ActionStartInspection Action = "start inspection for"
	ActionSubmitQC        Action = "inspect"
	ActionProcessRefund   Action = "refund"
	ActionExpire          Action = "expire"
)

var guards = map[Action][]model.ReturnStatus{
	ActionApprove:         {model.ReturnStatusPending},
	ActionReject:          {model.ReturnStatusPending},
	ActionCancel:          {model.ReturnStatusPending, model.ReturnStatusApproved},
	ActionMarkReceived:    {model.ReturnStatusApproved},
	ActionStartInspection: {model.ReturnStatusItemReceived},
	ActionSubmitQC:        {model.ReturnStatusItemReceived},
	ActionProcessRefund:   {model.ReturnStatusQualityCheck, model.ReturnStatusProcessing},
	ActionExpire:          {model.ReturnStatusPending},
}

// Step is one applied edge, recorded in the status history.
type Step struct {
	From model.ReturnStatus
	To   model.ReturnStatus
}

// CanTransition reports whether to directly follows from in the graph.
func CanTransition(from, to model.ReturnStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsActive reports whether a request in status still blocks a new return.
func IsActive(status model.ReturnStatus) bool {
	return status.Valid() && !status.IsTerminal()
}

// CheckGuard fails with InvalidStateTransition when action is not permitted from status.
func CheckGuard(action Action, status model.ReturnStatus) error {
	for _, s := range guards[action] {
		if s == status {
			return nil
		}
	}
	return Errorf(ErrInvalidStateTransition, "cannot %s a return in status %s", action, status)
}

// Advance moves r along one edge of the graph.
func Advance(r *model.ReturnRequest, to model.ReturnStatus) (Step, error) {
	from := r.Status
	if !CanTransition(from, to) {
		return Step{}, Errorf(ErrInvalidStateTransition, "cannot move return from %s to %s", from, to)
	}
	r.Status = to
	return Step{From: from, To: to}, nil
}

// RestockingFee is pct percent of amount, rounded to cents.
func RestockingFee(pct, amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
}

// Approve accepts a pending request. A nil amount approves the full
// requested amount. The restocking fee stays as computed at creation.
func Approve(r *model.ReturnRequest, actor uuid.UUID, amount *decimal.Decimal, notes string, now time.Time) (Step, error) {
	if err := CheckGuard(ActionApprove, r.Status); err != nil {
		return Step{}, err
	}
	approved := r.RequestedAmount
	if amount != nil {
		approved = *amount
	}
	if approved.IsNegative() {
		return Step{}, Errorf(ErrInvalidAmount, "approved amount must not be negative")
	}
	if approved.GreaterThan(r.RequestedAmount) {
		return Step{}, Errorf(ErrInvalidAmount, "approved amount %s exceeds requested amount %s", approved.StringFixed(2), r.RequestedAmount.StringFixed(2))
	}

	step, err := Advance(r, model.ReturnStatusApproved)
	if err != nil {
		return Step{}, err
	}
	r.ApprovedAmount = decimal.NewNullDecimal(approved)
	r.ApprovedBy = &actor
	r.ApprovedAt = &now
	r.AdminNotes = AppendNote(r.AdminNotes, notes)
	return step, nil
}

// Reject closes a pending request with no inventory or refund effects.
func Reject(r *model.ReturnRequest, actor uuid.UUID, reason, notes string, now time.Time) (Step, error) {
	if err := CheckGuard(ActionReject, r.Status); err != nil {
		return Step{}, err
	}
	step, err := Advance(r, model.ReturnStatusRejected)
	if err != nil {
		return Step{}, err
	}
	r.RejectionReason = reason
	r.RejectedBy = &actor
	r.RejectedAt = &now
	r.AdminNotes = AppendNote(r.AdminNotes, notes)
	return step, nil
}

// Cancel is customer-initiated and only possible before the goods arrive.
func Cancel(r *model.ReturnRequest, notes string, now time.Time) (Step, error) {
	if err := CheckGuard(ActionCancel, r.Status); err != nil {
		return Step{}, err
	}
	step, err := Advance(r, model.ReturnStatusCancelled)
	if err != nil {
		return Step{}, err
	}
	r.CancelledAt = &now
	r.CustomerNotes = AppendNote(r.CustomerNotes, notes)
	return step, nil
}

// Expire cancels a pending request whose return deadline has passed.
func Expire(r *model.ReturnRequest, now time.Time) (Step, error) {
	if err := CheckGuard(ActionExpire, r.Status); err != nil {
		return Step{}, err
	}
	if !now.After(r.ReturnDeadline) {
		return Step{}, Errorf(ErrInvalidStateTransition, "return %s is still inside its window", r.ReturnNumber)
	}
	step, err := Advance(r, model.ReturnStatusCancelled)
	if err != nil {
		return Step{}, err
	}
	r.CancelledAt = &now
	r.AdminNotes = AppendNote(r.AdminNotes, "cancelled automatically: return window lapsed before approval")
	return step, nil
}

// MarkReceived records physical receipt of an approved return.
func MarkReceived(r *model.ReturnRequest, actor uuid.UUID, courier, tracking string, now time.Time) (Step, error) {
	if err := CheckGuard(ActionMarkReceived, r.Status); err != nil {
		return Step{}, err
	}
	step, err := Advance(r, model.ReturnStatusItemReceived)
	if err != nil {
		return Step{}, err
	}
	r.ReceivedBy = &actor
	r.ReceivedAt = &now
	if courier != "" {
		r.Courier = courier
	}
	if tracking != "" {
		r.TrackingNumber = tracking
	}
	return step, nil
}

// AppendNote adds a line to a notes trail.
func AppendNote(existing, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return existing
	}
	if existing == "" {
		return note
	}
	return fmt.Sprintf("%s\n%s", existing, note)
}

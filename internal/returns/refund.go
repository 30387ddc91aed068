package returns

import (
	"fulfillment/internal/model"

	"github.com/shopspring/decimal"
)

// RefundAmount is the payable outcome for a return.
type RefundAmount struct {
	Amount    decimal.Decimal
	BelowZero bool // raw figure was negative and was floored
}

// Warning returns RefundBelowZero when the amount was floored, nil otherwise.
func (a RefundAmount) Warning() error {
	if a.BelowZero {
		return ErrRefundBelowZero
	}
	return nil
}

// ComputeRefund is approved - fee + adjustment, kept within [0, approved].
func ComputeRefund(approved, fee, adjustment decimal.Decimal) RefundAmount {
	raw := approved.Sub(fee).Add(adjustment)
	switch {
	case raw.IsNegative():
		return RefundAmount{Amount: decimal.Zero, BelowZero: true}
	case raw.GreaterThan(approved):
		return RefundAmount{Amount: approved}
	default:
		return RefundAmount{Amount: raw.Round(2)}
	}
}

// RefundFor computes the refund for a request from its stored figures.
func RefundFor(r *model.ReturnRequest) RefundAmount {
	return ComputeRefund(r.EffectiveApprovedAmount(), r.RestockingFee, r.RefundAdjustment)
}

// OrderAggregates are the derived return fields cached on an order.
type OrderAggregates struct {
	HasActiveReturns    bool
	TotalReturnedAmount decimal.Decimal
}

// ComputeOrderAggregates derives the order's cached fields from all of its
// return requests: any non-terminal request marks the order active, and the
// total is the sum of final refunded amounts over completed requests.
func ComputeOrderAggregates(reqs []model.ReturnRequest) OrderAggregates {
	agg := OrderAggregates{TotalReturnedAmount: decimal.Zero}
	for i := range reqs {
		r := &reqs[i]
		if IsActive(r.Status) {
			agg.HasActiveReturns = true
		}
		if r.Status != model.ReturnStatusCompleted {
			continue
		}
		if r.RefundedAmount.Valid {
			agg.TotalReturnedAmount = agg.TotalReturnedAmount.Add(r.RefundedAmount.Decimal)
		} else {
			agg.TotalReturnedAmount = agg.TotalReturnedAmount.Add(r.EffectiveApprovedAmount())
		}
	}
	return agg
}

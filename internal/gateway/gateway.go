//go:generate mockgen -source ./gateway.go -destination=./mocks/gateway.go -package=mock_gateway
package gateway

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrRefundDeclined is returned when the payment provider answers but refuses.
var ErrRefundDeclined = errors.New("refund declined by payment provider")

// RefundRequest asks the payment provider to reverse part of an order payment.
// IdempotencyKey is stable per return request so retries never pay twice.
type RefundRequest struct {
	IdempotencyKey string          `json:"idempotency_key"`
	OrderID        uuid.UUID       `json:"order_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
}

type RefundResult struct {
	Reference string `json:"reference"`
}

// PaymentGateway executes refunds against the payment provider.
type PaymentGateway interface {
	ExecuteRefund(ctx context.Context, req RefundRequest) (RefundResult, error)
}

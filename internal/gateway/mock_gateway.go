package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MockGateway approves every refund with a reference derived from the
// idempotency key, so repeated calls return the same reference.
type MockGateway struct {
	logger  *zap.Logger
	latency time.Duration

	mu   sync.Mutex
	seen map[string]RefundResult
}

func NewMockGateway(logger *zap.Logger, latency time.Duration) *MockGateway {
	return &MockGateway{
		logger:  logger,
		latency: latency,
		seen:    make(map[string]RefundResult),
	}
}

func (g *MockGateway) ExecuteRefund(ctx context.Context, req RefundRequest) (RefundResult, error) {
	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
		return RefundResult{}, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if res, ok := g.seen[req.IdempotencyKey]; ok {
		return res, nil
	}

	res := RefundResult{Reference: fmt.Sprintf("MOCK-%s", req.IdempotencyKey)}
	g.seen[req.IdempotencyKey] = res

	g.logger.Info("mock refund executed",
		zap.String("idempotency_key", req.IdempotencyKey),
		zap.String("order_id", req.OrderID.String()),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("method", req.Method))

	return res, nil
}

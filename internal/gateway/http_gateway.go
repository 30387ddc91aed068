package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPGateway calls the payment service's refund endpoint.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type refundResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

func (g *HTTPGateway) ExecuteRefund(ctx context.Context, req RefundRequest) (RefundResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"order_id": req.OrderID.String(),
		"amount":   req.Amount.StringFixed(2),
		"method":   req.Method,
	})
	if err != nil {
		return RefundResult{}, fmt.Errorf("failed to encode refund request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/refunds", bytes.NewReader(body))
	if err != nil {
		return RefundResult{}, fmt.Errorf("failed to build refund request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return RefundResult{}, fmt.Errorf("refund request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return RefundResult{}, fmt.Errorf("failed to read refund response: %w", err)
	}

	var out refundResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return RefundResult{}, fmt.Errorf("failed to decode refund response: %w", err)
		}
	}

	if resp.StatusCode >= 300 {
		reason := out.Reason
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusPaymentRequired {
			return RefundResult{}, fmt.Errorf("%w: %s", ErrRefundDeclined, reason)
		}
		return RefundResult{}, fmt.Errorf("payment service returned %d: %s", resp.StatusCode, reason)
	}

	if out.Reference == "" {
		return RefundResult{}, fmt.Errorf("payment service returned no reference")
	}
	return RefundResult{Reference: out.Reference}, nil
}

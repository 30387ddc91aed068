package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPGateway_ExecuteRefund(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name         string
		status       int
		body         string
		wantRef      string
		wantErr      bool
		wantDeclined bool
	}{
		{"success", http.StatusOK, `{"reference":"PAY-1","status":"succeeded"}`, "PAY-1", false, false},
		{"declined", http.StatusUnprocessableEntity, `{"reason":"card closed"}`, "", true, true},
		{"server error", http.StatusBadGateway, ``, "", true, false},
		{"missing reference", http.StatusOK, `{"status":"succeeded"}`, "", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/refunds", r.URL.Path)
				assert.Equal(t, "ret-123", r.Header.Get("Idempotency-Key"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, orderID.String(), body["order_id"])
				assert.Equal(t, "90000.00", body["amount"])
				assert.Equal(t, "original_payment", body["method"])

				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			g := NewHTTPGateway(srv.URL+"/", time.Second)
			res, err := g.ExecuteRefund(context.Background(), RefundRequest{
				IdempotencyKey: "ret-123",
				OrderID:        orderID,
				Amount:         decimal.NewFromInt(90000),
				Method:         "original_payment",
			})

			if tc.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tc.wantDeclined, errors.Is(err, ErrRefundDeclined))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRef, res.Reference)
		})
	}
}

func TestMockGateway_IsIdempotent(t *testing.T) {
	g := NewMockGateway(zap.NewNop(), 0)
	req := RefundRequest{IdempotencyKey: "abc", OrderID: uuid.New(), Amount: decimal.NewFromInt(10)}

	first, err := g.ExecuteRefund(context.Background(), req)
	require.NoError(t, err)
	second, err := g.ExecuteRefund(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "MOCK-abc", first.Reference)
	assert.Equal(t, first, second)
}

func TestMockGateway_RespectsContext(t *testing.T) {
	g := NewMockGateway(zap.NewNop(), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.ExecuteRefund(ctx, RefundRequest{IdempotencyKey: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/metrics"
	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusChangedEvent is the outbox payload announcing one lifecycle edge.
type StatusChangedEvent struct {
	Event        string             `json:"event"`
	ReturnID     string             `json:"return_id"`
	ReturnNumber string             `json:"return_number"`
	OrderID      string             `json:"order_id"`
	UserID       string             `json:"user_id"`
	FromStatus   model.ReturnStatus `json:"from_status,omitempty"`
	ToStatus     model.ReturnStatus `json:"to_status"`
	RefundStatus model.RefundStatus `json:"refund_status"`
	Note         string             `json:"note,omitempty"`
	OccurredAt   time.Time          `json:"occurred_at"`
}

// lifecycleRecorder writes the history row and the outbox event for every
// applied transition. It must run inside the transition's transaction.
type lifecycleRecorder struct {
	returnRepo repository.ReturnRepository
	outboxRepo repository.OutboxRepository
	topic      string
}

func newLifecycleRecorder(returnRepo repository.ReturnRepository, outboxRepo repository.OutboxRepository, topic string) *lifecycleRecorder {
	if topic == "" {
		topic = model.TopicReturnStatusChanged
	}
	return &lifecycleRecorder{returnRepo: returnRepo, outboxRepo: outboxRepo, topic: topic}
}

func (l *lifecycleRecorder) Record(ctx context.Context, r *model.ReturnRequest, step returns.Step, actor *uuid.UUID, note string, at time.Time) error {
	history := &model.ReturnStatusHistory{
		ReturnRequestID: r.ID,
		FromStatus:      step.From,
		ToStatus:        step.To,
		ActorID:         actor,
		Note:            note,
		CreatedAt:       at,
	}
	if err := l.returnRepo.AddHistory(ctx, history); err != nil {
		return fmt.Errorf("failed to write status history: %w", err)
	}

	payload, err := json.Marshal(StatusChangedEvent{
		Event:        model.TopicReturnStatusChanged,
		ReturnID:     r.ID.String(),
		ReturnNumber: r.ReturnNumber,
		OrderID:      r.OrderID.String(),
		UserID:       r.UserID.String(),
		FromStatus:   step.From,
		ToStatus:     step.To,
		RefundStatus: r.RefundStatus,
		Note:         note,
		OccurredAt:   at,
	})
	if err != nil {
		return fmt.Errorf("failed to encode status event: %w", err)
	}

	event := &model.OutboxEvent{
		Topic:     l.topic,
		EventKey:  r.ID.String(),
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: at,
	}
	if err := l.outboxRepo.Enqueue(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue status event: %w", err)
	}
	return nil
}

// RecordAll records steps in order with a shared actor and note.
func (l *lifecycleRecorder) RecordAll(ctx context.Context, r *model.ReturnRequest, steps []returns.Step, actor *uuid.UUID, note string, at time.Time) error {
	for _, step := range steps {
		if err := l.Record(ctx, r, step, actor, note, at); err != nil {
			return err
		}
	}
	return nil
}

// observeTransitions counts committed transitions.
func observeTransitions(steps ...returns.Step) {
	for _, s := range steps {
		from := string(s.From)
		if from == "" {
			from = "none"
		}
		metrics.ReturnTransitionsTotal.WithLabelValues(from, string(s.To)).Inc()
	}
}

// orderAggregates is the only writer of an order's cached return fields.
type orderAggregates struct {
	returnRepo repository.ReturnRepository
	orderRepo  repository.OrderRepository
}

func newOrderAggregates(returnRepo repository.ReturnRepository, orderRepo repository.OrderRepository) *orderAggregates {
	return &orderAggregates{returnRepo: returnRepo, orderRepo: orderRepo}
}

// Recompute derives has_active_returns and total_returned_amount from the
// order's requests. The order row is locked first so concurrent
// recomputations for one order serialise.
func (a *orderAggregates) Recompute(ctx context.Context, orderID uuid.UUID) error {
	if _, err := a.orderRepo.FindByIDForUpdate(ctx, orderID); err != nil {
		return fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}
	reqs, err := a.returnRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load returns for order %s: %w", orderID, err)
	}
	agg := returns.ComputeOrderAggregates(reqs)
	if err := a.orderRepo.UpdateReturnAggregates(ctx, orderID, agg.HasActiveReturns, agg.TotalReturnedAmount); err != nil {
		return fmt.Errorf("failed to update order aggregates: %w", err)
	}
	return nil
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, returns.Errorf(returns.ErrValidation, "invalid %s id %q", what, raw)
	}
	return id, nil
}

// actorPtr returns nil for system actions.
func actorPtr(userID string) *uuid.UUID {
	if parsed, err := uuid.Parse(userID); err == nil {
		return &parsed
	}
	return nil
}

// lookupErr turns a missing row into NotFound and wraps anything else.
func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return returns.Errorf(returns.ErrNotFound, "%s not found", what)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

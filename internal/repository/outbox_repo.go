package repository

import (
	"context"
	"time"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutboxRepository interface {
	Enqueue(ctx context.Context, event *model.OutboxEvent) error
	// ClaimBatch marks up to limit deliverable events PROCESSING and returns them.
	// PROCESSING events claimed more than lease before now are claimed again.
	ClaimBatch(ctx context.Context, limit, maxAttempts int, now time.Time, lease time.Duration) ([]model.OutboxEvent, error)
	MarkDone(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, errMsg string) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Enqueue(ctx context.Context, event *model.OutboxEvent) error {
	return GetDB(ctx, r.db).Create(event).Error
}

// claimable selects new events, failed events with attempts left, and
// PROCESSING events whose claimer stopped before finishing.
func claimable(maxAttempts int, staleBefore time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ? OR (status = ? AND attempts < ?) OR (status = ? AND (claimed_at IS NULL OR claimed_at < ?))",
			model.OutboxStatusPending,
			model.OutboxStatusFailed, maxAttempts,
			model.OutboxStatusProcessing, staleBefore)
	}
}

func (r *outboxRepository) ClaimBatch(ctx context.Context, limit, maxAttempts int, now time.Time, lease time.Duration) ([]model.OutboxEvent, error) {
	var events []model.OutboxEvent

	err := GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Scopes(claimable(maxAttempts, now.Add(-lease))).
			Order("created_at ASC").
			Limit(limit).
			Find(&events).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(events))
		for i := range events {
			ids[i] = events[i].ID
			events[i].Status = model.OutboxStatusProcessing
			events[i].ClaimedAt = &now
		}
		return tx.Model(&model.OutboxEvent{}).Where("id IN ?", ids).Updates(map[string]interface{}{
			"status":     model.OutboxStatusProcessing,
			"claimed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) MarkDone(ctx context.Context, id uuid.UUID, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.OutboxEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       model.OutboxStatusDone,
		"completed_at": at,
		"claimed_at":   nil,
		"last_error":   nil,
	}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, errMsg string) error {
	return GetDB(ctx, r.db).Model(&model.OutboxEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.OutboxStatusFailed,
		"attempts":   attempts,
		"claimed_at": nil,
		"last_error": errMsg,
	}).Error
}

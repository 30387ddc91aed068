package repository

import (
	"testing"
	"time"

	"fulfillment/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClaimable_ReclaimsStaleProcessingEvents(t *testing.T) {
	db := dryRunDB(t)
	staleBefore := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	var events []model.OutboxEvent
	stmt := db.Session(&gorm.Session{DryRun: true}).
		Scopes(claimable(5, staleBefore)).
		Find(&events).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "outbox_events"`)
	assert.Contains(t, sql, "(claimed_at IS NULL OR claimed_at <")
	assert.Equal(t, []interface{}{
		model.OutboxStatusPending,
		model.OutboxStatusFailed, 5,
		model.OutboxStatusProcessing, staleBefore,
	}, stmt.Vars)
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusDone       OutboxStatus = "DONE"
	OutboxStatusFailed     OutboxStatus = "FAILED"
)

const TopicReturnStatusChanged = "returns.status_changed"

// OutboxEvent is written in the same transaction as the change it announces.
type OutboxEvent struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Topic       string         `gorm:"type:varchar(100);not null" json:"topic"`
	EventKey    string         `gorm:"type:varchar(100);not null" json:"event_key"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	Status      OutboxStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Attempts    int            `gorm:"type:int;not null;default:0" json:"attempts"`
	LastError   *string        `gorm:"type:text" json:"last_error"`
	ClaimedAt   *time.Time     `json:"claimed_at"` // set while PROCESSING
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at"`
}

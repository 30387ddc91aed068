package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateReturnPolicy = "CREATE_RETURN_POLICY"
	ActionUpdateReturnPolicy = "UPDATE_RETURN_POLICY"

	// Return lifecycle actions
	ActionCreateReturn        = "CREATE_RETURN"
	ActionAutoApproveReturn   = "AUTO_APPROVE_RETURN"
	ActionApproveReturn       = "APPROVE_RETURN"
	ActionRejectReturn        = "REJECT_RETURN"
	ActionCancelReturn        = "CANCEL_RETURN"
	ActionExpireReturn        = "EXPIRE_RETURN"
	ActionReceiveReturn       = "RECEIVE_RETURN"
	ActionStartInspection     = "START_INSPECTION"
	ActionSubmitQualityCheck  = "SUBMIT_QUALITY_CHECK"
	ActionApplyDisposition    = "APPLY_DISPOSITION"
	ActionRefundAttempt       = "REFUND_ATTEMPT"
	ActionRefundCompleted     = "REFUND_COMPLETED"
	ActionRefundFailed        = "REFUND_FAILED"
	ActionCreateDamagedRecord = "CREATE_DAMAGED_INVENTORY"
	ActionUpdateDamagedRecord = "UPDATE_DAMAGED_INVENTORY"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil for the expiry sweep
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names carried in access tokens.
const (
	RoleCustomer  = "customer"
	RoleAdmin     = "admin"
	RoleWarehouse = "warehouse"
)

// User is the identity record referenced by audit and ownership fields.
// Credentials live with the identity service.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	Role      string         `gorm:"type:varchar(50);not null" json:"role"`
	IsTrusted bool           `gorm:"not null;default:false" json:"is_trusted"` // eligible for trusted-only auto-approval
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

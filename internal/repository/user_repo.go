package repository

import (
	"context"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository reads the identity records referenced by returns.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	IsTrusted(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsTrusted treats unknown users as untrusted.
func (r *userRepository) IsTrusted(ctx context.Context, id uuid.UUID) (bool, error) {
	var trusted []bool
	if err := GetDB(ctx, r.db).Model(&model.User{}).Where("id = ?", id).Limit(1).Pluck("is_trusted", &trusted).Error; err != nil {
		return false, err
	}
	return len(trusted) > 0 && trusted[0], nil
}

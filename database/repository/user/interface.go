package userRepo

import (
	"context"

	"campuscare/models"
)

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

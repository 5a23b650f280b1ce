// Package users persists registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/google/uuid"
)

// Repository stores users keyed by id with a unique email.
//
// Create returns common.ErrorAlreadyExists when the email is taken. Lookups
// return common.ErrorNotFound when nothing matches. Any other error is a
// storage failure.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// Package users stores backend accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/nutrisync/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its id. A taken username yields
	// common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

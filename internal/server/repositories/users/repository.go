package users

import (
	"context"

	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, loginID string) (*models.User, error)
	UpdateName(ctx context.Context, userID int64, name string) error
}

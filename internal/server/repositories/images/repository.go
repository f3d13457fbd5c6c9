package images

import (
	"context"

	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, image *models.Image) (*models.Image, error)
}

package reforms

import (
	"context"

	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, reform *models.Reform) (*models.Reform, error)
}

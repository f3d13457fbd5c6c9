package logs

import (
	"context"

	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, log *models.Log) (*models.Log, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.LogEntry, error)
}

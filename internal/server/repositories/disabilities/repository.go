package disabilities

import "context"

type Repository interface {
	Create(ctx context.Context, userID int64, obstacle string) error
	DeleteByUser(ctx context.Context, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]string, error)
}

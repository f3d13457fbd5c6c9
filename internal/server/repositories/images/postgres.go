package images

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

// PostgresRepository implements image metadata storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	query := `
		INSERT INTO images (user_id, file_name, content_type, path)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		image.UserID, image.FileName, image.ContentType, image.Path).Scan(&image.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return image, nil
}

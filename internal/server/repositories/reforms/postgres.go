package reforms

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, reform *models.Reform) (*models.Reform, error) {
	query := `
		INSERT INTO reform_guides (reform_type, cloth, target, trim, description, file_name, content_type, path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		reform.ReformType, reform.Cloth, reform.Target, reform.Trim, reform.Description,
		reform.FileName, reform.ContentType, reform.Path).Scan(&reform.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reform, nil
}

// Package logs stores the activity log: which image a user uploaded and
// which reform guide was produced for it.
package logs

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

func (r *PostgresRepository) Create(ctx context.Context, log *models.Log) (*models.Log, error) {
	query := `
		INSERT INTO logs (user_id, image_id, guide_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, log.UserID, log.ImageID, log.GuideID).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return log, nil
}

// ListByUser returns the user's log, oldest first, with the image path and
// the detected garment of each entry.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.LogEntry, error) {
	query := `
		SELECT i.path, g.cloth FROM logs l
		JOIN images i ON i.id = l.image_id
		JOIN reform_guides g ON g.id = l.guide_id
		WHERE l.user_id = $1
		ORDER BY l.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select logs: %w", err)
	}
	defer rows.Close()

	result := []*models.LogEntry{}
	for rows.Next() {
		var item models.LogEntry
		if err := rows.Scan(&item.ImagePath, &item.ImageCloth); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Package disabilities stores the disability tags of a user, one row per tag.
package disabilities

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, obstacle string) error {
	query := `INSERT INTO disabilities (user_id, obstacle) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, userID, obstacle); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteByUser removes every tag of userID. Deleting nothing is not an error.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM disabilities WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT obstacle FROM disabilities WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var obstacle string
		if err := rows.Scan(&obstacle); err != nil {
			return nil, err
		}
		result = append(result, obstacle)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

// usernameConstraint is the unique constraint on users.username.
const usernameConstraint = "users_username_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user and fills in its ID and CreatedAt. A taken login id
// yields common.ErrorAlreadyExists, a taken username common.ErrorNameTaken.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (login_id, password, username)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.LoginID, user.Password, user.UserName).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if constraint, ok := dbx.UniqueConstraint(err); ok {
			if constraint == usernameConstraint {
				return nil, common.ErrorNameTaken
			}
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetUserByLogin returns the user row without disabilities.
func (r *PostgresRepository) GetUserByLogin(ctx context.Context, loginID string) (*models.User, error) {
	query :=
		`SELECT id, login_id, password, username, created_at FROM users
		 WHERE login_id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, loginID).Scan(&user.ID, &user.LoginID, &user.Password, &user.UserName, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, userID int64, name string) error {
	query := `UPDATE users SET username = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, name, userID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

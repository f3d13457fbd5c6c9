// Package services contains server-side business logic. UserService covers
// accounts: registration, sign-in, profile reads and updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/repomanager"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type TokenIssuer interface {
	IssuePair(subject string) (*auth.TokenPair, error)
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      TokenIssuer
	hasher      PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer TokenIssuer, hasher PasswordHasher) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		hasher:      hasher,
	}
}

// Register creates a user together with its disability tags. A taken login
// id yields common.ErrorAlreadyExists, a taken username common.ErrorNameTaken.
func (s *UserService) Register(ctx context.Context, loginID, password, name string, disabilities []string) (*models.User, error) {
	available, err := s.IsLoginIDAvailable(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{LoginID: loginID, Password: hash, UserName: name}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.insertDisabilities(ctx, tx, user.ID, disabilities)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) || errors.Is(err, common.ErrorNameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	user.Disabilities = append([]string{}, disabilities...)
	return user, nil
}

// Login verifies credentials and mints a token pair. Unknown users and wrong
// passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, loginID, password string) (*auth.TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, loginID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.issuer.IssuePair(user.LoginID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return pair, nil
}

func (s *UserService) IsLoginIDAvailable(ctx context.Context, loginID string) (bool, error) {
	_, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, loginID)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return true, nil
	}
	return false, fmt.Errorf("error searching user: %w", err)
}

// GetUserByLogin loads a user with its disability tags. It is the principal
// lookup behind session resolution.
func (s *UserService) GetUserByLogin(ctx context.Context, loginID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, loginID)
	if err != nil {
		return nil, err
	}

	tags, err := s.repomanager.Disabilities(s.db).ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading disabilities: %w", err)
	}
	user.Disabilities = tags

	return user, nil
}

func (s *UserService) UpdateName(ctx context.Context, userID int64, name string) error {
	return s.repomanager.Users(s.db).UpdateName(ctx, userID, name)
}

// UpdateDisabilities replaces the user's whole tag set.
func (s *UserService) UpdateDisabilities(ctx context.Context, userID int64, disabilities []string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Disabilities(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return s.insertDisabilities(ctx, tx, userID, disabilities)
	})
}

func (s *UserService) ListLogs(ctx context.Context, userID int64) ([]*models.LogEntry, error) {
	return s.repomanager.Logs(s.db).ListByUser(ctx, userID)
}

func (s *UserService) insertDisabilities(ctx context.Context, tx dbx.DBTX, userID int64, disabilities []string) error {
	repo := s.repomanager.Disabilities(tx)
	for _, d := range disabilities {
		if err := repo.Create(ctx, userID, d); err != nil {
			return err
		}
	}
	return nil
}

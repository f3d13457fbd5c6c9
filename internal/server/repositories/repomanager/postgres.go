// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// binding repository constructors to a DBTX and running goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/server/migrations"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/disabilities"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/images"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/logs"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/reforms"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories. The same
// DBTX may be a *sql.DB or a *sql.Tx, so callers decide the transaction scope.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Disabilities(db dbx.DBTX) disabilities.Repository {
	return disabilities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Images(db dbx.DBTX) images.Repository {
	return images.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reforms(db dbx.DBTX) reforms.Repository {
	return reforms.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Logs(db dbx.DBTX) logs.Repository {
	return logs.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

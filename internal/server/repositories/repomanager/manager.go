package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/disabilities"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/images"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/logs"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/reforms"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Disabilities(db dbx.DBTX) disabilities.Repository
	Images(db dbx.DBTX) images.Repository
	Reforms(db dbx.DBTX) reforms.Repository
	Logs(db dbx.DBTX) logs.Repository
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/logging"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/disabilities"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/images"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/logs"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/reforms"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func discardLogger() logging.Logger {
	return logging.NewJSONLogger(io.Discard, slog.LevelError)
}

// memUsers is an in-memory users.Repository keyed by login id.
type memUsers struct {
	byLogin map[string]*models.User
	nextID  int64

	getErr    error
	createErr error
	updateErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byLogin: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, ok := m.byLogin[u.LoginID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	cp := *u
	m.byLogin[u.LoginID] = &cp
	return u, nil
}

func (m *memUsers) GetUserByLogin(ctx context.Context, loginID string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byLogin[loginID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateName(ctx context.Context, userID int64, name string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for _, u := range m.byLogin {
		if u.ID != userID && u.UserName == name {
			return common.ErrorAlreadyExists
		}
	}
	for _, u := range m.byLogin {
		if u.ID == userID {
			u.UserName = name
			return nil
		}
	}
	return common.ErrorNotFound
}

// memDisabilities is an in-memory disabilities.Repository.
type memDisabilities struct {
	byUser map[int64][]string

	createErr error
	deleteErr error
	listErr   error
}

func newMemDisabilities() *memDisabilities {
	return &memDisabilities{byUser: map[int64][]string{}}
}

func (m *memDisabilities) Create(ctx context.Context, userID int64, obstacle string) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byUser[userID] = append(m.byUser[userID], obstacle)
	return nil
}

func (m *memDisabilities) DeleteByUser(ctx context.Context, userID int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.byUser, userID)
	return nil
}

func (m *memDisabilities) ListByUser(ctx context.Context, userID int64) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := append([]string{}, m.byUser[userID]...)
	sort.Strings(out)
	return out, nil
}

type memImages struct {
	created []*models.Image
	err     error
}

func (m *memImages) Create(ctx context.Context, img *models.Image) (*models.Image, error) {
	if m.err != nil {
		return nil, m.err
	}
	img.ID = int64(len(m.created) + 1)
	m.created = append(m.created, img)
	return img, nil
}

type memReforms struct {
	created []*models.Reform
	err     error
}

func (m *memReforms) Create(ctx context.Context, r *models.Reform) (*models.Reform, error) {
	if m.err != nil {
		return nil, m.err
	}
	r.ID = int64(len(m.created) + 100)
	m.created = append(m.created, r)
	return r, nil
}

type memLogs struct {
	created []*models.Log
	entries []*models.LogEntry
	err     error
	listErr error
}

func (m *memLogs) Create(ctx context.Context, l *models.Log) (*models.Log, error) {
	if m.err != nil {
		return nil, m.err
	}
	l.ID = int64(len(m.created) + 1)
	m.created = append(m.created, l)
	return l, nil
}

func (m *memLogs) ListByUser(ctx context.Context, userID int64) ([]*models.LogEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

type fakeRepoManager struct {
	users        *memUsers
	disabilities *memDisabilities
	images       *memImages
	reforms      *memReforms
	logs         *memLogs
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:        newMemUsers(),
		disabilities: newMemDisabilities(),
		images:       &memImages{},
		reforms:      &memReforms{},
		logs:         &memLogs{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository               { return m.users }
func (m *fakeRepoManager) Disabilities(db dbx.DBTX) disabilities.Repository { return m.disabilities }
func (m *fakeRepoManager) Images(db dbx.DBTX) images.Repository             { return m.images }
func (m *fakeRepoManager) Reforms(db dbx.DBTX) reforms.Repository           { return m.reforms }
func (m *fakeRepoManager) Logs(db dbx.DBTX) logs.Repository                 { return m.logs }

package disabilities

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`^INSERT INTO disabilities \(user_id, obstacle\) VALUES \(\$1, \$2\)$`).
		WithArgs(int64(1), "visual").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`^INSERT INTO disabilities`).
		WithArgs(int64(1), "motor").
		WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Create(context.Background(), 1, "visual"))
	assert.ErrorContains(t, repo.Create(context.Background(), 1, "motor"), "db error: db down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByUser(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE FROM disabilities WHERE user_id = \$1$`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^DELETE FROM disabilities`).
		WithArgs(int64(3)).
		WillReturnError(errors.New("locked"))

	require.NoError(t, repo.DeleteByUser(context.Background(), 3), "deleting zero rows is fine")
	assert.ErrorContains(t, repo.DeleteByUser(context.Background(), 3), "db error: locked")
}

func TestListByUser(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT obstacle FROM disabilities WHERE user_id = \$1 ORDER BY id$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"obstacle"}).AddRow("visual").AddRow("hearing"))

	got, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"visual", "hearing"}, got)
}

func TestListByUser_EmptyIsNotNil(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT obstacle FROM disabilities`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"obstacle"}))

	got, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_Errors(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT obstacle FROM disabilities`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db down"))
	_, err := repo.ListByUser(context.Background(), 1)
	assert.ErrorContains(t, err, "db error: db down")

	mock.ExpectQuery(`^SELECT obstacle FROM disabilities`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"obstacle"}).AddRow("visual").RowError(0, errors.New("row-broken")))
	_, err = repo.ListByUser(context.Background(), 1)
	assert.ErrorContains(t, err, "row-broken")
}

package content

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowColumns = []string{"id", "section", "content_key", "value", "updated_by", "created_at", "updated_at"}

func newMockStore(t *testing.T, driver string) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(sqlx.NewDb(db, driver)), mock
}

func TestSQLStore_ListAll(t *testing.T) {
	store, mock := newMockStore(t, "mysql")
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM landing_page_content")).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(1, "hero", "title_main", "Stored", nil, now, now).
			AddRow(2, "footer", "tagline", "Tag", int64(7), now, now))

	rows, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, SectionHero, rows[0].Section)
	assert.Equal(t, "title_main", rows[0].Key)
	assert.Nil(t, rows[0].UpdatedBy)
	require.NotNil(t, rows[1].UpdatedBy)
	assert.Equal(t, int64(7), *rows[1].UpdatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ListAllError(t *testing.T) {
	store, mock := newMockStore(t, "mysql")
	mock.ExpectQuery(regexp.QuoteMeta("FROM landing_page_content")).
		WillReturnError(errors.New("connection refused"))

	_, err := store.ListAll(context.Background())
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "list", storageErr.Op)
}

func TestSQLStore_UpdateExistingRow(t *testing.T) {
	store, mock := newMockStore(t, "mysql")
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE landing_page_content")).
		WithArgs("New Title", int64(3), "hero", "title_main").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE section = ? AND content_key = ?")).
		WithArgs("hero", "title_main").
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(1, "hero", "title_main", "New Title", int64(3), now, now))
	mock.ExpectCommit()

	res, err := store.Update(context.Background(), SectionHero, "title_main", "New Title", 3)
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, res.Status)
	assert.Equal(t, "New Title", res.Row.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_UpdateUnchangedValueStillFound(t *testing.T) {
	store, mock := newMockStore(t, "mysql")
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE landing_page_content")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE section = ? AND content_key = ?")).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(1, "hero", "title_main", "Same", int64(3), now, now))
	mock.ExpectCommit()

	res, err := store.Update(context.Background(), SectionHero, "title_main", "Same", 3)
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_UpdateMissingRow(t *testing.T) {
	store, mock := newMockStore(t, "mysql")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE landing_page_content")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE section = ? AND content_key = ?")).
		WillReturnRows(sqlmock.NewRows(rowColumns))
	mock.ExpectRollback()

	res, err := store.Update(context.Background(), "nonexistent", "bogus", "B", 3)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_UpdateExecError(t *testing.T) {
	store, mock := newMockStore(t, "mysql")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE landing_page_content")).
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	_, err := store.Update(context.Background(), SectionHero, "title_main", "X", 3)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "update", storageErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_UpsertMySQL(t *testing.T) {
	store, mock := newMockStore(t, "mysql")
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE")).
		WithArgs("hero", "title_main", "AI Boss Brainz", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE section = ? AND content_key = ?")).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(1, "hero", "title_main", "AI Boss Brainz", nil, now, now))

	row, err := store.Upsert(context.Background(), SectionHero, "title_main", "AI Boss Brainz", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_UpsertPostgres(t *testing.T) {
	store, mock := newMockStore(t, "postgres")
	now := time.Now()

	mock.ExpectExec("(?s)" + regexp.QuoteMeta("VALUES ($1, $2, $3, $4)") + ".*" + regexp.QuoteMeta("ON CONFLICT (section, content_key) DO UPDATE")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE section = $1 AND content_key = $2")).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(1, "hero", "title_main", "v", nil, now, now))

	_, err := store.Upsert(context.Background(), SectionHero, "title_main", "v", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

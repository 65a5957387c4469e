package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store persists landing page rows.
type Store interface {
	// ListAll returns every stored row in no particular order.
	ListAll(ctx context.Context) ([]ContentRow, error)
	// Update overwrites an existing row. It never inserts: a pair that was
	// never seeded yields StatusNotFound.
	Update(ctx context.Context, section Section, key, value string, updatedBy int64) (UpdateResult, error)
	// Upsert inserts the row or overwrites the existing one.
	Upsert(ctx context.Context, section Section, key, value string, updatedBy *int64) (ContentRow, error)
}

// StorageError wraps a failure of the backing database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("landing content %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

const selectColumns = `id, section, content_key, value, updated_by, created_at, updated_at`

// SQLStore implements Store on MySQL or Postgres through sqlx.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListAll(ctx context.Context) ([]ContentRow, error) {
	var rows []ContentRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+selectColumns+`
		FROM landing_page_content
	`)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return rows, nil
}

func (s *SQLStore) Update(ctx context.Context, section Section, key, value string, updatedBy int64) (UpdateResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return UpdateResult{}, &StorageError{Op: "update", Err: err}
	}
	defer tx.Rollback()

	// MySQL reports zero affected rows when the value is unchanged, so
	// existence is decided by reading the row back, not by RowsAffected.
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		UPDATE landing_page_content
		SET value = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP
		WHERE section = ? AND content_key = ?
	`), value, updatedBy, section, key)
	if err != nil {
		return UpdateResult{}, &StorageError{Op: "update", Err: err}
	}

	var row ContentRow
	err = tx.GetContext(ctx, &row, tx.Rebind(`
		SELECT `+selectColumns+`
		FROM landing_page_content
		WHERE section = ? AND content_key = ?
	`), section, key)
	if errors.Is(err, sql.ErrNoRows) {
		return UpdateResult{Status: StatusNotFound}, nil
	}
	if err != nil {
		return UpdateResult{}, &StorageError{Op: "update", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return UpdateResult{}, &StorageError{Op: "update", Err: err}
	}
	return UpdateResult{Status: StatusUpdated, Row: row}, nil
}

func (s *SQLStore) Upsert(ctx context.Context, section Section, key, value string, updatedBy *int64) (ContentRow, error) {
	var query string
	switch s.db.DriverName() {
	case "postgres":
		query = `
		INSERT INTO landing_page_content (section, content_key, value, updated_by)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (section, content_key) DO UPDATE
		SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = CURRENT_TIMESTAMP`
	default:
		query = `
		INSERT INTO landing_page_content (section, content_key, value, updated_by)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		value = VALUES(value), updated_by = VALUES(updated_by), updated_at = CURRENT_TIMESTAMP`
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), section, key, value, updatedBy); err != nil {
		return ContentRow{}, &StorageError{Op: "upsert", Err: err}
	}

	var row ContentRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT `+selectColumns+`
		FROM landing_page_content
		WHERE section = ? AND content_key = ?
	`), section, key)
	if err != nil {
		return ContentRow{}, &StorageError{Op: "upsert", Err: err}
	}
	return row, nil
}

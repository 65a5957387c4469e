// Package migrations carries the schema for each supported database dialect.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed mysql/*.sql postgres/*.sql
var files embed.FS

// Dir returns the embedded migration directory for a sqlx driver name.
func Dir(driver string) (string, error) {
	switch driver {
	case "mysql", "postgres":
		return driver, nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Up applies every pending migration for driver.
func Up(db *sql.DB, driver string) error {
	dir, err := Dir(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

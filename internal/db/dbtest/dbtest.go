// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"flight-tracker/flightboard/internal/config"
	"flight-tracker/flightboard/internal/db"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Open returns a fresh database shared by an sqlx handle and a GORM handle.
func Open(t *testing.T) (*sqlx.DB, *gorm.DB) {
	t.Helper()

	conn, err := sqlx.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.Configure(conn, db.DriverSQLite, config.DatabaseConfig{})
	t.Cleanup(func() { _ = conn.Close() })

	orm, err := db.InitORM(conn.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("Failed to open gorm: %v", err)
	}
	if err := db.Migrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return conn, orm
}

package db

import (
	"database/sql"
	"fmt"
	"time"

	gormModels "flight-tracker/flightboard/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitORM wraps an already configured pool so GORM and sqlx share connections.
func InitORM(conn *sql.DB, driver string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{Conn: conn})
	case DriverSQLite:
		dialector = sqlite.Dialector{DriverName: DriverSQLite, Conn: conn}
	default:
		return nil, fmt.Errorf("unsupported driver for gorm: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: Now,
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the flights table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&gormModels.Flight{}); err != nil {
		return fmt.Errorf("migrate flights: %w", err)
	}
	return nil
}

// Now is the storage clock: UTC at microsecond precision, the resolution of
// a Postgres timestamptz, so written and re-read values compare equal.
func Now() time.Time {
	return Normalize(time.Now())
}

func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

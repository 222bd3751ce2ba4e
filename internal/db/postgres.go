package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flight-tracker/flightboard/internal/config"
	"flight-tracker/flightboard/internal/constants"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// ParseURL maps DATABASE_URL onto a database/sql driver name and DSN.
// postgres:// and postgresql:// go to lib/pq; sqlite:// and file: go to go-sqlite3.
func ParseURL(databaseURL string) (driver string, dsn string, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite url has no path: %q", databaseURL)
		}
		return DriverSQLite, sqliteDSN(path), nil
	case strings.HasPrefix(databaseURL, "file:"):
		return DriverSQLite, sqliteDSN(databaseURL), nil
	default:
		return "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", databaseURL)
	}
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// Open connects with the pool sizing from cfg and verifies connectivity
// before returning. Callers treat an error as fatal.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	Configure(conn, driver, cfg)

	if err := Ping(ctx, conn, cfg.ConnectTimeout); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// Configure applies pool limits. SQLite is pinned to a single connection
// because each connection to an in-memory database is a separate database.
func Configure(conn *sqlx.DB, driver string, cfg config.DatabaseConfig) {
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
		return
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxOpenConns)
	conn.SetConnMaxIdleTime(cfg.IdleTimeout)
}

// Ping runs the connectivity check used at startup and by the readiness probe.
func Ping(ctx context.Context, conn *sqlx.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var one int
	if err := conn.QueryRowxContext(ctx, constants.PingQuery).Scan(&one); err != nil {
		return fmt.Errorf("database connectivity check failed: %w", err)
	}
	return nil
}

package config

import "time"

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	StoreBackendSQLX = "sqlx"
	StoreBackendGORM = "gorm"
)

const (
	DefaultPort             = "5000"
	DefaultAppEnv           = EnvironmentDevelopment
	DefaultStaticDir        = "dist/client"
	DefaultStoreBackend     = StoreBackendSQLX
	DefaultDBMaxOpenConns   = 10
	DefaultDBIdleTimeout    = 20 * time.Second
	DefaultDBConnectTimeout = 10 * time.Second
	DefaultCacheTTL         = 15 * time.Second
	DefaultKafkaFlightTopic = "flight-events"
	DefaultRateLimitRPS     = 20.0
	DefaultRateLimitBurst   = 40
	DefaultShutdownTimeout  = 10 * time.Second
)

// DevelopmentOrigins are always allowed by CORS outside production.
var DevelopmentOrigins = []string{"http://localhost:5173", "http://localhost:5000"}

package config

const (
	EnvConfigPath = "CONFIG_PATH"

	EnvDatabaseURL      = "DATABASE_URL"
	EnvStoreBackend     = "STORE_BACKEND"
	EnvDBMaxOpenConns   = "DB_MAX_OPEN_CONNS"
	EnvDBIdleTimeout    = "DB_IDLE_TIMEOUT"
	EnvDBConnectTimeout = "DB_CONNECT_TIMEOUT"

	EnvPort      = "PORT"
	EnvClientURL = "CLIENT_URL"
	EnvAppEnv    = "APP_ENV"
	EnvNodeEnv   = "NODE_ENV"
	EnvStaticDir = "STATIC_DIR"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvCacheTTL      = "CACHE_TTL"

	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvKafkaFlightTopic = "KAFKA_FLIGHT_TOPIC"

	EnvRateLimitRPS   = "RATE_LIMIT_RPS"
	EnvRateLimitBurst = "RATE_LIMIT_BURST"

	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	// read by flightctl
	EnvFlightAPIURL = "FLIGHT_API_URL"
)

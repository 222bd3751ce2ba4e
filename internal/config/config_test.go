package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigPath, EnvDatabaseURL, EnvStoreBackend, EnvDBMaxOpenConns, EnvDBIdleTimeout,
		EnvDBConnectTimeout, EnvPort, EnvClientURL, EnvAppEnv, EnvNodeEnv, EnvStaticDir,
		EnvRedisAddr, EnvRedisPassword, EnvRedisDB, EnvCacheTTL, EnvKafkaBrokers,
		EnvKafkaFlightTopic, EnvRateLimitRPS, EnvRateLimitBurst, EnvShutdownTimeout,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDatabaseURL, "postgres://u:p@localhost:5432/flights")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("Expected port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Server.Environment != EnvironmentDevelopment {
		t.Errorf("Expected development environment, got %s", cfg.Server.Environment)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("Expected 10 max open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.IdleTimeout != 20*time.Second {
		t.Errorf("Expected 20s idle timeout, got %s", cfg.Database.IdleTimeout)
	}
	if cfg.Database.ConnectTimeout != 10*time.Second {
		t.Errorf("Expected 10s connect timeout, got %s", cfg.Database.ConnectTimeout)
	}
	if cfg.Database.Backend != StoreBackendSQLX {
		t.Errorf("Expected sqlx backend, got %s", cfg.Database.Backend)
	}
	if cfg.IsProduction() {
		t.Error("Expected non-production config")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for missing DATABASE_URL")
	}
	if !strings.Contains(err.Error(), EnvDatabaseURL) {
		t.Errorf("Expected error to mention %s, got %v", EnvDatabaseURL, err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDatabaseURL, "sqlite://flights.db")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvNodeEnv, "production")
	t.Setenv(EnvStoreBackend, "gorm")
	t.Setenv(EnvKafkaBrokers, "k1:9092, k2:9092")
	t.Setenv(EnvCacheTTL, "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Addr() != ":8081" {
		t.Errorf("Expected :8081, got %s", cfg.Addr())
	}
	if !cfg.IsProduction() {
		t.Error("Expected NODE_ENV=production to select production")
	}
	if cfg.Database.Backend != StoreBackendGORM {
		t.Errorf("Expected gorm backend, got %s", cfg.Database.Backend)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Cache.TTL != time.Minute {
		t.Errorf("Expected 1m cache ttl, got %s", cfg.Cache.TTL)
	}
}

func TestLoad_AppEnvWinsOverNodeEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDatabaseURL, "sqlite://flights.db")
	t.Setenv(EnvNodeEnv, "production")
	t.Setenv(EnvAppEnv, "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.IsProduction() {
		t.Error("Expected APP_ENV to take precedence")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDatabaseURL, "sqlite://flights.db")
	t.Setenv(EnvDBIdleTimeout, "soon")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for unparseable duration")
	}

	clearEnv(t)
	t.Setenv(EnvDatabaseURL, "sqlite://flights.db")
	t.Setenv(EnvPort, "99999")
	if _, err := Load(); err == nil {
		t.Fatal("Expected error for out of range port")
	}
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "7000"
  client_url: "https://flights.example.com"
database:
  url: "postgres://file/flights"
  idle_timeout: 45s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvPort, "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Server.Port != "7001" {
		t.Errorf("Expected env to override file port, got %s", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://file/flights" {
		t.Errorf("Expected database url from file, got %s", cfg.Database.URL)
	}
	if cfg.Database.IdleTimeout != 45*time.Second {
		t.Errorf("Expected 45s idle timeout from file, got %s", cfg.Database.IdleTimeout)
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.ClientURL = "https://a.example.com, https://b.example.com"
	cfg.Server.Environment = EnvironmentProduction

	origins := cfg.AllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("Expected 2 origins, got %v", origins)
	}

	cfg.Server.ClientURL = ""
	if got := cfg.AllowedOrigins(); len(got) != 1 || got[0] != "*" {
		t.Errorf("Expected wildcard origin in production without CLIENT_URL, got %v", got)
	}

	cfg.Server.Environment = EnvironmentDevelopment
	if got := cfg.AllowedOrigins(); len(got) != len(DevelopmentOrigins) {
		t.Errorf("Expected development origins, got %v", got)
	}
}

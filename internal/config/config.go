package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Limits   LimitsConfig   `yaml:"limits"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Environment     string        `yaml:"environment"`
	ClientURL       string        `yaml:"client_url"`
	StaticDir       string        `yaml:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	Backend        string        `yaml:"backend"`
	MaxOpenConns   int           `yaml:"max_open_conns"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	FlightTopic string   `yaml:"flight_topic"`
}

type LimitsConfig struct {
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// IsProduction reports whether error details and static assets follow production rules.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvironmentProduction
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// AllowedOrigins returns the CORS origins derived from CLIENT_URL.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.ClientURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if !c.IsProduction() {
		origins = append(origins, DevelopmentOrigins...)
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			Environment:     DefaultAppEnv,
			StaticDir:       DefaultStaticDir,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Database: DatabaseConfig{
			Backend:        DefaultStoreBackend,
			MaxOpenConns:   DefaultDBMaxOpenConns,
			IdleTimeout:    DefaultDBIdleTimeout,
			ConnectTimeout: DefaultDBConnectTimeout,
		},
		Cache: CacheConfig{
			TTL: DefaultCacheTTL,
		},
		Kafka: KafkaConfig{
			FlightTopic: DefaultKafkaFlightTopic,
		},
		Limits: LimitsConfig{
			RateLimitRPS:   DefaultRateLimitRPS,
			RateLimitBurst: DefaultRateLimitBurst,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_PATH, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error

	c.Database.URL = getEnvStr(EnvDatabaseURL, c.Database.URL)
	c.Database.Backend = getEnvStr(EnvStoreBackend, c.Database.Backend)
	c.Database.MaxOpenConns = getEnvNum(EnvDBMaxOpenConns, c.Database.MaxOpenConns, &errs)
	c.Database.IdleTimeout = getEnvDuration(EnvDBIdleTimeout, c.Database.IdleTimeout, &errs)
	c.Database.ConnectTimeout = getEnvDuration(EnvDBConnectTimeout, c.Database.ConnectTimeout, &errs)

	c.Server.Port = getEnvStr(EnvPort, c.Server.Port)
	c.Server.ClientURL = getEnvStr(EnvClientURL, c.Server.ClientURL)
	c.Server.Environment = getEnvStr(EnvNodeEnv, c.Server.Environment)
	c.Server.Environment = getEnvStr(EnvAppEnv, c.Server.Environment)
	c.Server.StaticDir = getEnvStr(EnvStaticDir, c.Server.StaticDir)
	c.Server.ShutdownTimeout = getEnvDuration(EnvShutdownTimeout, c.Server.ShutdownTimeout, &errs)

	c.Cache.RedisAddr = getEnvStr(EnvRedisAddr, c.Cache.RedisAddr)
	c.Cache.RedisPassword = getEnvStr(EnvRedisPassword, c.Cache.RedisPassword)
	c.Cache.RedisDB = getEnvNum(EnvRedisDB, c.Cache.RedisDB, &errs)
	c.Cache.TTL = getEnvDuration(EnvCacheTTL, c.Cache.TTL, &errs)

	if brokers := getEnvStr(EnvKafkaBrokers, ""); brokers != "" {
		c.Kafka.Brokers = nil
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.Kafka.Brokers = append(c.Kafka.Brokers, b)
			}
		}
	}
	c.Kafka.FlightTopic = getEnvStr(EnvKafkaFlightTopic, c.Kafka.FlightTopic)

	if v := getEnvStr(EnvRateLimitRPS, ""); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvRateLimitRPS, err))
		} else {
			c.Limits.RateLimitRPS = rps
		}
	}
	c.Limits.RateLimitBurst = getEnvNum(EnvRateLimitBurst, c.Limits.RateLimitBurst, &errs)

	return errors.Join(errs...)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, EnvDatabaseURL+" environment variable is not set")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("port must be between 1 and 65535, got: %s", c.Server.Port))
	}
	if c.Server.Environment != EnvironmentDevelopment && c.Server.Environment != EnvironmentProduction {
		problems = append(problems, fmt.Sprintf("environment must be %q or %q, got: %q", EnvironmentDevelopment, EnvironmentProduction, c.Server.Environment))
	}
	if c.Database.Backend != StoreBackendSQLX && c.Database.Backend != StoreBackendGORM {
		problems = append(problems, fmt.Sprintf("store backend must be %q or %q, got: %q", StoreBackendSQLX, StoreBackendGORM, c.Database.Backend))
	}
	if c.Database.MaxOpenConns <= 0 {
		problems = append(problems, fmt.Sprintf("max open connections must be positive, got: %d", c.Database.MaxOpenConns))
	}
	if c.Database.ConnectTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("connect timeout must be positive, got: %s", c.Database.ConnectTimeout))
	}
	if c.Cache.TTL < 0 {
		problems = append(problems, fmt.Sprintf("cache ttl must not be negative, got: %s", c.Cache.TTL))
	}
	if c.Limits.RateLimitRPS <= 0 || c.Limits.RateLimitBurst <= 0 {
		problems = append(problems, "rate limit rps and burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnvStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int, errs *[]error) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

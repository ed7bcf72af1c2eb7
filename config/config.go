// Package config handles loading and validation of application configuration
// from environment variables and potentially configuration files.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MileWise/milewise-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// Validation constants
	minJWTLength = 32
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	JwtSecretKey   string      `mapstructure:"JWT_SECRET_KEY" yaml:"jwt_secret_key"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely (safe default).
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"MAX_IDLE_CONNS" yaml:"max_idle_conns"`
	ConnMaxLife  string `mapstructure:"CONN_MAX_LIFE" yaml:"conn_max_life"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and other
// URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS" yaml:"address"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	DB           int    `mapstructure:"DB" yaml:"db"`
	UseTLS       bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	PoolSize     int    `mapstructure:"POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
}

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// Maximum optimize requests per window per user
	OptimizeRequestsPerMinute int `mapstructure:"OPTIMIZE_REQUESTS_PER_MINUTE" yaml:"optimize_requests_per_minute"`
	// Window duration in seconds for rate limiting
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// OptimizerConfig holds limits for the booking optimizer endpoints.
type OptimizerConfig struct {
	// MaxFlights caps the number of candidate flights accepted per request.
	MaxFlights int `mapstructure:"MAX_FLIGHTS" yaml:"max_flights"`
	// MaxTravelers caps the traveler multiplier accepted per request.
	MaxTravelers int `mapstructure:"MAX_TRAVELERS" yaml:"max_travelers"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"DATABASE" yaml:"database"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	Optimizer OptimizerConfig `mapstructure:"OPTIMIZER" yaml:"optimizer"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{}) // Empty = trust no one (safe default)
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "milewise_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("DATABASE.MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT.OPTIMIZE_REQUESTS_PER_MINUTE", 30)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("OPTIMIZER.MAX_FLIGHTS", 100)
	v.SetDefault("OPTIMIZER.MAX_TRAVELERS", 9)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables
	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.JWT_SECRET_KEY", "JWT_SECRET_KEY"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		// Database config
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Rate limit config
		{"RATE_LIMIT.OPTIMIZE_REQUESTS_PER_MINUTE", "RATE_LIMIT_OPTIMIZE_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		// Optimizer config
		{"OPTIMIZER.MAX_FLIGHTS", "OPTIMIZER_MAX_FLIGHTS"},
		{"OPTIMIZER.MAX_TRAVELERS", "OPTIMIZER_MAX_TRAVELERS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"db_host", v.GetString("DATABASE.HOST"),
		"allowed_origins", v.GetString("SERVER.ALLOWED_ORIGINS"),
		"trusted_proxies", v.GetStringSlice("SERVER.TRUSTED_PROXIES"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	// Validate Server Config
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if len(cfg.Server.JwtSecretKey) < minJWTLength {
		return fmt.Errorf("JWT secret key must be at least %d characters long", minJWTLength)
	}
	// Validate AllowedOrigins format if not wildcard
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	// Validate Database Config
	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Password == "" {
		log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	// Validate Redis Config
	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}
	if cfg.Redis.Password == "" && cfg.Redis.UseTLS {
		log.Warn("Redis password is not set, but TLS is enabled. Ensure this is correct for your Redis provider.")
	}

	// Validate RateLimit config
	if cfg.RateLimit.OptimizeRequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit optimize requests per minute must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	// Validate Optimizer config
	if cfg.Optimizer.MaxFlights <= 0 {
		return fmt.Errorf("optimizer max flights must be positive")
	}
	if cfg.Optimizer.MaxTravelers <= 0 {
		return fmt.Errorf("optimizer max travelers must be positive")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DevJWTSecret is the signing secret used when none is configured.
// Production mode refuses to start with it.
const DevJWTSecret = "dev-secret"

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port       string `yaml:"port" env:"PORT"`
		Mode       string `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigin string `yaml:"cors_origin" env:"CORS_ORIGIN"`

		ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string        `yaml:"driver" env:"DB_DRIVER"`
		Path            string        `yaml:"path" env:"DB_PATH"`
		Host            string        `yaml:"host" env:"DB_HOST"`
		Port            string        `yaml:"port" env:"DB_PORT"`
		User            string        `yaml:"user" env:"DB_USER"`
		Password        string        `yaml:"password" env:"DB_PASSWORD"`
		DBName          string        `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret     string        `yaml:"secret" env:"JWT_SECRET"`
		Expiration time.Duration `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string        `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost   int  `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST"`
		RequireToken bool `yaml:"require_token" env:"AUTH_REQUIRE_TOKEN"`
	} `yaml:"auth"`

	Seed struct {
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
		AdminName     string `yaml:"admin_name" env:"SEED_ADMIN_NAME"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from .env, a YAML file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "4000"
	config.Server.Mode = "development"
	config.Server.CORSOrigin = "http://localhost:3000"
	config.Server.ReadTimeout = 10 * time.Second
	config.Server.WriteTimeout = 10 * time.Second
	config.Server.IdleTimeout = 2 * time.Minute
	config.Server.ShutdownTimeout = 10 * time.Second

	config.Database.Driver = DriverSQLite
	config.Database.Path = filepath.Join("data", "mind-ease.db")
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "mindease"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = time.Hour

	config.JWT.Secret = DevJWTSecret
	config.JWT.Expiration = 7 * 24 * time.Hour
	config.JWT.Issuer = "mind-ease"

	config.Auth.BcryptCost = 10

	config.Seed.AdminEmail = "admin@local"
	config.Seed.AdminPassword = "admin123"
	config.Seed.AdminName = "Administrator"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("database path is required for the sqlite driver")
		}
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Database.ConnMaxLifetime < 0 {
		return fmt.Errorf("database connection max lifetime must not be negative")
	}

	if config.Server.ReadTimeout <= 0 || config.Server.WriteTimeout <= 0 ||
		config.Server.IdleTimeout <= 0 || config.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if config.IsProduction() && config.JWT.Secret == DevJWTSecret {
		return fmt.Errorf("JWT secret must be set in production mode")
	}
	if config.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT expiration must be positive")
	}

	if config.Auth.BcryptCost < bcrypt.MinCost || config.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetSQLiteDSN returns the modernc sqlite DSN for the configured file.
// Foreign keys are enforced and writers wait for the lock instead of failing.
func (c *Config) GetSQLiteDSN() string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.Database.Path)
}

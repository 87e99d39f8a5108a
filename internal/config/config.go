package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DebugModeEnv is the environment variable for debug mode.
	DebugModeEnv = "DEBUG_MODE"

	// LogLevelEnv is the environment variable for the log level.
	LogLevelEnv = "LOG_LEVEL"

	// DBDriverEnv is the environment variable selecting the backing store.
	DBDriverEnv = "DB_DRIVER"

	// DBHostEnv is the environment variable for database host.
	DBHostEnv = "DB_HOST"

	// DBPortEnv is the environment variable for database port.
	DBPortEnv = "DB_PORT"

	// DBUserEnv is the environment variable for database user.
	DBUserEnv = "DB_USER"

	// DBPassEnv is the environment variable for database password.
	DBPassEnv = "DB_PASS"

	// DBNameEnv is the environment variable for database name.
	DBNameEnv = "DB_NAME"

	// SQLitePathEnv is the environment variable for the SQLite database file.
	SQLitePathEnv = "SQLITE_PATH"

	// MigrationsPathEnv is the environment variable for the migrations source URL.
	MigrationsPathEnv = "MIGRATIONS_PATH"

	// HTTPServerPortEnv is the environment variable for HTTP server port.
	HTTPServerPortEnv = "HTTP_SERVER_PORT"

	// MetricsServerPortEnv is the environment variable for metrics server port.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// ShutdownTimeoutEnv is the environment variable for the graceful shutdown timeout in seconds.
	ShutdownTimeoutEnv = "SHUTDOWN_TIMEOUT_SECONDS"

	// CORSAllowedOriginsEnv is the environment variable for the comma separated CORS origins.
	CORSAllowedOriginsEnv = "CORS_ALLOWED_ORIGINS"

	// EnvFilePath is the environment variable for .env file path (only for local/test environment).
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is the default path to the .env file.
	DefaultEnvFilePath = ".env"

	// AWSRegionEnv is the environment variable for AWS region.
	AWSRegionEnv = "AWS_REGION"

	// AWSEndpointEnv is the environment variable for AWS endpoint.
	AWSEndpointEnv = "AWS_ENDPOINT"

	// SQSQueueURLEnv is the environment variable for SQS queue URL.
	SQSQueueURLEnv = "SQS_QUEUE_URL"
)

const (
	// DriverPostgres stores products in PostgreSQL through database/sql and pgx.
	DriverPostgres = "postgres"
	// DriverSQLite stores products in a SQLite file through gorm.
	DriverSQLite = "sqlite"
	// DriverMemory keeps products in process memory.
	DriverMemory = "memory"

	defaultSQLitePath      = "antiquestore.db"
	defaultMigrationsPath  = "file://migrations"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")

	// ErrInvalidConfig is returned when a configuration value is not one of the accepted values.
	ErrInvalidConfig = errors.New("invalid config data")
)

// Config represents the application configuration.
type Config struct {
	DebugMode       bool
	LogLevel        string
	Database        DB
	HTTPServer      Server
	MetricsServer   Server
	CORS            CORSConfig
	AWS             AWSConfig
	ShutdownTimeout time.Duration
}

// AWSConfig represents AWS-specific configuration settings.
type AWSConfig struct {
	Region      string
	Endpoint    string
	SQSQueueURL string
}

// NotificationsEnabled reports whether product change notifications should be published.
func (a AWSConfig) NotificationsEnabled() bool {
	return a.SQSQueueURL != ""
}

// DB represents database configuration settings.
type DB struct {
	Driver         string
	Host           string
	User           string
	Password       string
	Name           string
	Port           string
	SQLitePath     string
	MigrationsPath string
}

// Server represents server configuration settings.
type Server struct {
	Port string
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		_, err := strconv.Atoi(value)
		if err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.String("error", err.Error()))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value))
	return fmt.Errorf("%w for key %s: %q not in %v", ErrInvalidConfig, key, value, allowed)
}

func (c *Config) validate() error {
	if err := oneOf(DBDriverEnv, c.Database.Driver, DriverPostgres, DriverSQLite, DriverMemory); err != nil {
		return fmt.Errorf("database configuration invalid: %w", err)
	}

	if err := oneOf(LogLevelEnv, c.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return fmt.Errorf("logging configuration invalid: %w", err)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if err := allNonEmpty(map[string]string{
			DBHostEnv: c.Database.Host,
			DBUserEnv: c.Database.User,
			DBNameEnv: c.Database.Name,
		}); err != nil {
			return fmt.Errorf("database configuration incomplete: %w", err)
		}
		if err := allNumbers(map[string]string{
			DBPortEnv: c.Database.Port,
		}); err != nil {
			return fmt.Errorf("invalid port number: %w", err)
		}
	case DriverSQLite:
		if err := allNonEmpty(map[string]string{
			SQLitePathEnv: c.Database.SQLitePath,
		}); err != nil {
			return fmt.Errorf("database configuration incomplete: %w", err)
		}
	}

	// Validate server ports
	if err := allNonEmpty(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("server port configuration incomplete: %w", err)
	}

	if err := allNumbers(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	return nil
}

func getEnv(name, defaultValue string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if val, err := strconv.Atoi(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsSlice(name string, defaultValue []string) []string {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// ApplyEnvFile loads environment variables from the specified .env files.
func ApplyEnvFile(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	err := ApplyEnvFile(envPath)
	if err != nil {
		// just log the error, maybe all envs are set in another way
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	conf := &Config{
		DebugMode: getEnvAsBool(DebugModeEnv, false),
		LogLevel:  strings.ToLower(getEnv(LogLevelEnv, defaultLogLevel)),
		Database: DB{
			Driver:         strings.ToLower(getEnv(DBDriverEnv, DriverPostgres)),
			Host:           os.Getenv(DBHostEnv),
			User:           os.Getenv(DBUserEnv),
			Password:       os.Getenv(DBPassEnv),
			Name:           os.Getenv(DBNameEnv),
			Port:           os.Getenv(DBPortEnv),
			SQLitePath:     getEnv(SQLitePathEnv, defaultSQLitePath),
			MigrationsPath: getEnv(MigrationsPathEnv, defaultMigrationsPath),
		},
		HTTPServer: Server{
			Port: os.Getenv(HTTPServerPortEnv),
		},
		MetricsServer: Server{
			Port: os.Getenv(MetricsServerPortEnv),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice(CORSAllowedOriginsEnv, []string{"*"}),
		},
		AWS: AWSConfig{
			Region:      os.Getenv(AWSRegionEnv),
			Endpoint:    os.Getenv(AWSEndpointEnv),
			SQSQueueURL: os.Getenv(SQSQueueURLEnv),
		},
		ShutdownTimeout: time.Duration(getEnvAsInt(ShutdownTimeoutEnv, defaultShutdownTimeout)) * time.Second,
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}

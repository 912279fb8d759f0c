// Package db opens the GORM connection used by every store adapter.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values for Config.Driver.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds the database connection settings.
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	Path         string // SQLite file path
	InstanceName string // Cloud SQL instance connection name; takes precedence over Host/Port
}

// LoadConfigFromEnv reads the database settings from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:       strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		User:         getEnv("DB_USER", "notes"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         getEnv("DB_NAME", "notes"),
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
		Path:         getEnv("DB_PATH", "notes.db"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
	if cfg.Port == "" {
		switch cfg.Driver {
		case DriverMySQL:
			cfg.Port = "3306"
		case DriverPostgres:
			cfg.Port = "5432"
		}
	}
	return cfg
}

// BuildDSN returns the driver specific connection string for cfg.
func BuildDSN(cfg Config) string {
	switch cfg.Driver {
	case DriverSQLite:
		return cfg.Path
	case DriverMySQL:
		// clientFoundRows makes UPDATE report matched rows, which ownership checks rely on.
		const params = "charset=utf8mb4&parseTime=true&loc=Local&clientFoundRows=true"
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?%s",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name, params)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, params)
	default:
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	}
}

// Opener opens a GORM connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the Opener matching the configured driver.
func OpenerFor(driver string) (Opener, error) {
	var dialect func(string) gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialect = postgres.Open
	case DriverMySQL:
		dialect = gmysql.Open
	case DriverSQLite:
		dialect = sqlite.Open
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialect(dsn), gormConfig())
	}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// ConnectWithRetry keeps calling opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the database described by cfg, retrying for up to 60 seconds.
func Open(cfg Config) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, opener)
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// OpenSQLiteMemory opens a private in-memory SQLite database.
// The pool is limited to one connection because every new :memory: connection is a fresh database.
func OpenSQLiteMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate creates or updates the tables for the given models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err comes from a unique index violation on any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// MySQL error 1062: duplicate entry for unique key
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

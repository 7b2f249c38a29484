package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	ServiceName string
	HTTPAddr    string
	ImportDir   string
	ExportDir   string
	Workers     int64

	LogLevel  string
	LogFormat string

	DB DBConfig
}

// DBConfig describes the database connection pool.
type DBConfig struct {
	Type            string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVICE_NAME", "product-catalog")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("IMPORT_DIR", "imports")
	v.SetDefault("EXPORT_DIR", "exported")
	v.SetDefault("WORKERS", 4)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DATABASE_TYPE", DBTypePostgres)
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	cfg := Config{
		ServiceName: v.GetString("SERVICE_NAME"),
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		ImportDir:   v.GetString("IMPORT_DIR"),
		ExportDir:   v.GetString("EXPORT_DIR"),
		Workers:     v.GetInt64("WORKERS"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
		DB: DBConfig{
			Type:            strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_TYPE"))),
			URL:             strings.TrimSpace(v.GetString("DATABASE_URL")),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DB.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	switch c.DB.Type {
	case DBTypePostgres, DBTypeSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.DB.Type)
	}
	if strings.TrimSpace(c.ImportDir) == "" {
		return errors.New("IMPORT_DIR is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be positive, got %d", c.Workers)
	}
	return nil
}

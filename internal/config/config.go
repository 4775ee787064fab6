package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/garnizeh/worklog/internal/db"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	Env          string        `yaml:"env"`
	LogLevel     string        `yaml:"log_level"`
	APITimeout   time.Duration `yaml:"timeout"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
	// RedactPasswordHash drops the stored hash from employee payloads
	// (listing, login, monthly aggregate). Off by default so the payload
	// shape matches what existing clients receive.
	RedactPasswordHash bool           `yaml:"redact_password_hash"`
	Database           DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Path            string        `yaml:"path"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// LoadConfig builds the configuration from environment variables (after
// loading a .env file from the working directory, if any) and then overlays
// the YAML file at path when path is not empty.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Addr:               getEnv("WORKLOG_ADDR", ":5000"),
		Env:                getEnv("WORKLOG_ENV", "development"),
		LogLevel:           getEnv("WORKLOG_LOG_LEVEL", "info"),
		APITimeout:         getEnvDuration("WORKLOG_TIMEOUT", 15*time.Second),
		QueryTimeout:       getEnvDuration("WORKLOG_QUERY_TIMEOUT", 5*time.Second),
		RedactPasswordHash: getEnvBool("WORKLOG_REDACT_PASSWORD_HASH", false),
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Path:            getEnv("DB_PATH", "worklog.db"),
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnvInt("DB_PORT", 0),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.APITimeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query_timeout must be positive")
	}

	d := &c.Database
	if d.MaxOpenConns < 0 || d.MaxIdleConns < 0 {
		return errors.New("database pool sizes must not be negative")
	}

	dialect, err := d.Dialect()
	if err != nil {
		return err
	}
	switch dialect {
	case db.SQLite:
		if d.Path == "" {
			return errors.New("database.path is required for sqlite")
		}
	case db.MySQL, db.Postgres:
		if d.Host == "" || d.User == "" || d.Name == "" {
			return fmt.Errorf("database host, user and name are required for %s", dialect)
		}
	}

	return nil
}

// Dialect resolves the configured driver name, aliases included.
func (d DatabaseConfig) Dialect() (db.Dialect, error) {
	return db.ParseDialect(d.Driver)
}

// DSN renders the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	dialect, _ := d.Dialect()
	switch dialect {
	case db.MySQL:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.portOr(3306)))
		mc.DBName = d.Name
		return mc.FormatDSN()
	case db.Postgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.portOr(5432))),
			Path:     "/" + d.Name,
			RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
		}
		return u.String()
	default:
		return d.Path
	}
}

func (d DatabaseConfig) portOr(def int) int {
	if d.Port > 0 {
		return d.Port
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}

	return def
}

// getEnvDuration accepts Go durations ("30s") or bare seconds ("30").
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if i, err := strconv.Atoi(v); err == nil {
			return time.Duration(i) * time.Second
		}
	}

	return def
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // DASHBOARD_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
)

// Source kinds accepted by SOURCE_KIND.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	SOURCE_KIND=file
//	SOURCE_PATH=./data/p2p-data.json
//	SOURCE_KEY=operaciones
//	REFRESH_INTERVAL=10m
//	DASHBOARD_TOP_DAYS=5
//	DASHBOARD_TIMEZONE=America/Argentina/Buenos_Aires
//	LOG_LEVEL=info
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Source    SourceConfig    // Where trade records come from
	Refresh   RefreshConfig   // Periodic reload of the trade snapshot
	Dashboard DashboardConfig // Aggregation parameters
	Log       LogConfig       // Logger settings
	Postgres  PostgresConfig  // Only used when Source.Kind == "postgres"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port      string  // TCP port the HTTP server listens on (e.g., "8080")
	RateLimit float64 // Requests per second allowed per client IP
	RateBurst int     // Burst size per client IP
}

// SourceConfig selects and tunes the trade feed.
//
// Fields:
//   - Kind: file | http | postgres.
//   - Path: JSON document on disk (file).
//   - URL: JSON document served over HTTP (http).
//   - Key: top-level key holding the operations array.
//   - Timeout: per-request timeout (http).
//   - RateLimit / RateBurst: client-side request budget (http).
type SourceConfig struct {
	Kind      string
	Path      string
	URL       string
	Key       string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

// RefreshConfig holds the single reload period of the dashboard snapshot.
type RefreshConfig struct {
	Interval time.Duration
}

// DashboardConfig tunes what the summary shows.
type DashboardConfig struct {
	TopDays   int    // Length of the best-days list
	ChartDays int    // Length of the daily profit series
	TimeZone  string // IANA zone used to decide what "today" is
}

// LogConfig mirrors LOG_LEVEL / LOG_PRETTY.
type LogConfig struct {
	Level  string
	Pretty bool
}

// PostgresConfig defines connection details for the read-only operations table.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read by the wiring code in cmd and internal/app.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("API_RATE_LIMIT", 1.0)
	viper.SetDefault("API_RATE_BURST", 60)

	viper.SetDefault("SOURCE_KIND", SourceFile)
	viper.SetDefault("SOURCE_PATH", "./data/p2p-data.json")
	viper.SetDefault("SOURCE_URL", "")
	viper.SetDefault("SOURCE_KEY", "operaciones")
	viper.SetDefault("SOURCE_TIMEOUT", "30s")
	viper.SetDefault("SOURCE_RATE_LIMIT", 5.0)
	viper.SetDefault("SOURCE_RATE_BURST", 1)

	viper.SetDefault("REFRESH_INTERVAL", "10m")

	viper.SetDefault("DASHBOARD_TOP_DAYS", 5)
	viper.SetDefault("DASHBOARD_CHART_DAYS", 7)
	viper.SetDefault("DASHBOARD_TIMEZONE", "UTC")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "p2pulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:      viper.GetString("SERVER_PORT"),
			RateLimit: viper.GetFloat64("API_RATE_LIMIT"),
			RateBurst: viper.GetInt("API_RATE_BURST"),
		},
		Source: SourceConfig{
			Kind:      strings.ToLower(strings.TrimSpace(viper.GetString("SOURCE_KIND"))),
			Path:      viper.GetString("SOURCE_PATH"),
			URL:       viper.GetString("SOURCE_URL"),
			Key:       viper.GetString("SOURCE_KEY"),
			Timeout:   viper.GetDuration("SOURCE_TIMEOUT"),
			RateLimit: viper.GetFloat64("SOURCE_RATE_LIMIT"),
			RateBurst: viper.GetInt("SOURCE_RATE_BURST"),
		},
		Refresh: RefreshConfig{
			Interval: viper.GetDuration("REFRESH_INTERVAL"),
		},
		Dashboard: DashboardConfig{
			TopDays:   viper.GetInt("DASHBOARD_TOP_DAYS"),
			ChartDays: viper.GetInt("DASHBOARD_CHART_DAYS"),
			TimeZone:  viper.GetString("DASHBOARD_TIMEZONE"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Location resolves Dashboard.TimeZone; an empty zone means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Dashboard.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Dashboard.TimeZone)
}

// Validate returns the names of settings that are missing or invalid.
//
// Behavior:
//   - Always checks the server port, refresh interval, dashboard sizes and time zone.
//   - Checks only the settings of the selected source kind.
func (c Config) Validate() []string {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		problems = append(problems, "API_RATE_LIMIT/API_RATE_BURST")
	}
	if c.Refresh.Interval <= 0 {
		problems = append(problems, "REFRESH_INTERVAL")
	}
	if c.Dashboard.TopDays <= 0 {
		problems = append(problems, "DASHBOARD_TOP_DAYS")
	}
	if c.Dashboard.ChartDays <= 0 {
		problems = append(problems, "DASHBOARD_CHART_DAYS")
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, "DASHBOARD_TIMEZONE")
	}
	if c.Source.Key == "" {
		problems = append(problems, "SOURCE_KEY")
	}

	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Path == "" {
			problems = append(problems, "SOURCE_PATH")
		}
	case SourceHTTP:
		if c.Source.URL == "" {
			problems = append(problems, "SOURCE_URL")
		}
		if c.Source.Timeout <= 0 {
			problems = append(problems, "SOURCE_TIMEOUT")
		}
		if c.Source.RateLimit <= 0 || c.Source.RateBurst <= 0 {
			problems = append(problems, "SOURCE_RATE_LIMIT/SOURCE_RATE_BURST")
		}
	case SourcePostgres:
		if c.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER")
		}
		if c.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB")
		}
	default:
		problems = append(problems, "SOURCE_KIND")
	}

	return problems
}

// validateConfig terminates the application when AppConfig is unusable.
func validateConfig() {
	if problems := AppConfig.Validate(); len(problems) > 0 {
		log.Fatalf("❌ invalid configuration: %v\n", problems)
	}
}

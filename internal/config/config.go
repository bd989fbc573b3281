package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Data sources the snapshot can be loaded from.
const (
	SourceCSV      = "csv"
	SourceDatabase = "database"
)

// Database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"AAC Insights"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		Source           string `envconfig:"DATA_SOURCE" default:"csv"`
		CustomersPath    string `envconfig:"CUSTOMERS_CSV" default:"data/s1_users_csv.csv"`
		TransactionsPath string `envconfig:"TRANSACTIONS_CSV" default:"data/s1_final_csv.csv"`
		RawPath          string `envconfig:"RAW_CSV" default:"cc_dirty.csv"`
		Years            []int  `envconfig:"REPORT_YEARS" default:"2020,2021"`
		TopCities        int    `envconfig:"TOP_CITIES" default:"5"`
	}

	DB struct {
		Driver     string `envconfig:"DB_DRIVER" default:"pgx"`
		Host       string `envconfig:"DB_HOST" default:"localhost"`
		Port       int    `envconfig:"DB_PORT" default:"5432"`
		User       string `envconfig:"DB_USER" default:"postgres"`
		Password   string `envconfig:"DB_PASSWORD" default:""`
		Name       string `envconfig:"DB_NAME" default:"aacdash"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"data/aacdash.db"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		// File receives the TUI's logs; the terminal is taken by the UI.
		File   string `envconfig:"LOG_FILE"`
	}
}

// ConnectionString returns the DSN for the configured driver.
func (c *Config) ConnectionString() string {
	if c.DB.Driver == DriverSQLite {
		return c.DB.SQLitePath
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.DB.User), url.QueryEscape(c.DB.Password), c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Data.Source {
	case SourceCSV, SourceDatabase:
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q: want %s or %s", c.Data.Source, SourceCSV, SourceDatabase)
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want %s or %s", c.DB.Driver, DriverPostgres, DriverSQLite)
	}

	for _, y := range c.Data.Years {
		if y < 1900 || y > 9999 {
			return fmt.Errorf("invalid REPORT_YEARS entry %d", y)
		}
	}

	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/plsync/internal/database"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"plsync"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		// Driver is "pgx" for Postgres or "sqlite3" for a local file.
		Driver   string `envconfig:"DB_DRIVER" default:"pgx"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"plsync"`
		Path     string `envconfig:"DB_PATH" default:"plsync.db"`
	}

	Server struct {
		Timeout       time.Duration `envconfig:"SERVER_TIMEOUT" default:"60s"`
		MaxUploadSize int64         `envconfig:"SERVER_MAX_UPLOAD_BYTES" default:"10485760"`
	}

	Sheets struct {
		SpreadsheetID   string        `envconfig:"SHEETS_SPREADSHEET_ID"`
		Range           string        `envconfig:"SHEETS_RANGE" default:"P&L!A1:ZZ400"`
		CredentialsFile string        `envconfig:"SHEETS_CREDENTIALS_FILE"`
		CredentialsJSON string        `envconfig:"SHEETS_CREDENTIALS_JSON"`
		CSVURL          string        `envconfig:"SHEETS_CSV_URL"`
		// CSVAllowedHosts are the https hosts an API caller may name in a
		// csv_url sync besides CSVURL.
		CSVAllowedHosts []string      `envconfig:"SHEETS_CSV_ALLOWED_HOSTS" default:"docs.google.com"`
		FetchTimeout    time.Duration `envconfig:"SHEETS_FETCH_TIMEOUT" default:"30s"`
	}

	Sync struct {
		YearOverride int    `envconfig:"SYNC_YEAR_OVERRIDE" default:"0"`
		HeaderRow    int    `envconfig:"SYNC_HEADER_ROW" default:"-1"`
		PinsFile     string `envconfig:"SYNC_PINS_FILE"`
	}

	Auth struct {
		// JWTSecret enables bearer token checks on the API when set.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DB.Driver == database.DriverSQLite {
		return c.DB.Path
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// HeaderRow returns the pinned header row, nil when detection is on.
func (c *Config) HeaderRow() *int {
	if c.Sync.HeaderRow < 0 {
		return nil
	}

	return new(c.Sync.HeaderRow)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

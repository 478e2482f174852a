package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Alerts    AlertConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StoreConfig selects and parameterizes the state backend.
type StoreConfig struct {
	Backend     string
	FilePath    string
	DocumentKey string
	Mongo       MongoDBConfig
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule         string
	SnapshotCronSchedule string
	Timezone             string
}

// SheetsConfig contains configuration required to interact with Google
// Sheets. Leaving the spreadsheet id empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SummaryRange    string
}

// AlertConfig holds the outbound alert webhook settings. An empty URL
// disables alert delivery.
type AlertConfig struct {
	WebhookURL string
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:     getenvWithDefault("STORE_BACKEND", BackendFile),
			FilePath:    getenvWithDefault("STORE_FILE_PATH", "data/chemstock.json"),
			DocumentKey: getenvWithDefault("STORE_DOCUMENT_KEY", "chemstock-state"),
			Mongo: MongoDBConfig{
				URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
				DBName: getenvWithDefault("MONGODB_DB_NAME", "chemstock"),
			},
		},
		Reporting: ReportingConfig{
			CronSchedule:         getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			SnapshotCronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 0 * * *"),
			Timezone:             getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			SummaryRange:    getenvWithDefault("SHEETS_SUMMARY_RANGE", "Summary!A:H"),
		},
		Alerts: AlertConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.FilePath == "" {
			return errors.New("STORE_FILE_PATH must be provided")
		}
	case BackendMongo:
		switch {
		case c.Store.Mongo.URI == "":
			return errors.New("MONGODB_URI must be provided")
		case c.Store.Mongo.DBName == "":
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendFile, BackendMongo)
	}

	if c.Store.DocumentKey == "" {
		return errors.New("STORE_DOCUMENT_KEY must not be empty")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.SnapshotCronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_DATABASE_ID is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

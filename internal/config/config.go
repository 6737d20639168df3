package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Reporting ReportingConfig
	SMTP      SMTPConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port               string
	LogLevel           string
	CORSAllowedOrigins []string
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ReportingConfig holds the daily report job settings.
type ReportingConfig struct {
	Enabled      bool
	CronSchedule string
	Timezone     string
	MailFrom     string
	MailTo       []string
}

// SMTPConfig holds the credentials used to mail the daily report.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SheetsConfig points at the spreadsheet that archives daily summaries.
// Archiving is skipped when either field is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the Sheets archive is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API used to
// push the daily summary. The message is skipped when any credential is empty.
type WhatsAppConfig struct {
	AccessToken     string
	PhoneNumberID   string
	BaseURL         string
	APIVersion      string
	ReportRecipient string
}

// Enabled reports whether the WhatsApp summary is configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != "" && c.ReportRecipient != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
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

	smtpPort, err := strconv.Atoi(getenvWithDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT must be a number: %w", err)
	}
	reportEnabled, err := strconv.ParseBool(getenvWithDefault("REPORT_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_ENABLED must be a boolean: %w", err)
	}

	username := os.Getenv("SMTP_USERNAME")
	cfg := &Config{
		Server: ServerConfig{
			Port:               getenvWithDefault("APP_PORT", "5000"),
			LogLevel:           getenvWithDefault("LOG_LEVEL", "info"),
			CORSAllowedOrigins: splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getenvWithDefault("STORAGE_DRIVER", StorageMongoDB)),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "autotrade"),
		},
		Reporting: ReportingConfig{
			Enabled:      reportEnabled,
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "59 23 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Cairo"),
			MailFrom:     getenvWithDefault("REPORT_MAIL_FROM", username),
			MailTo:       splitList(os.Getenv("REPORT_MAIL_TO")),
		},
		SMTP: SMTPConfig{
			Host:     getenvWithDefault("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			Username: username,
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:     os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID:   os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:         getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:      getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ReportRecipient: os.Getenv("WHATSAPP_REPORT_RECIPIENT"),
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

	switch c.Storage.Driver {
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORAGE_DRIVER=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.Storage.Driver)
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Reporting.Timezone, err)
	}

	if !c.Reporting.Enabled {
		return nil
	}

	switch {
	case c.Reporting.CronSchedule == "":
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	case c.SMTP.Host == "":
		return errors.New("SMTP_HOST must be provided")
	case c.SMTP.Username == "":
		return errors.New("SMTP_USERNAME must be provided when REPORT_ENABLED=true")
	case c.SMTP.Password == "":
		return errors.New("SMTP_PASSWORD must be provided when REPORT_ENABLED=true")
	case len(c.Reporting.MailTo) == 0:
		return errors.New("REPORT_MAIL_TO must be provided when REPORT_ENABLED=true")
	}

	return nil
}

// Location returns the configured report time zone. Validate has already
// checked that it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cesargomez89/praiseteam/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	Env       string

	StoreBackend string
	DBPath       string

	SheetID             string
	SheetName           string
	SheetGID            int64
	ServiceAccountEmail string
	PrivateKey          string

	YouTubeAPIKey string
	YouTubeAPIURL string

	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	gid, _ := strconv.ParseInt(getEnv("GOOGLE_SHEET_GID", "0"), 10, 64)

	return &Config{
		Port:      getEnv("PORT", constants.DefaultPort),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Env:       strings.ToLower(getEnv("ENV", "development")),

		StoreBackend: getEnv("STORE_BACKEND", constants.DefaultStoreBackend),
		DBPath:       getEnv("DB_PATH", constants.DefaultDBPath),

		SheetID:             getEnv("GOOGLE_SHEET_ID", os.Getenv("GOOGLE_SHEETS_ID")),
		SheetName:           getEnv("GOOGLE_SHEET_NAME", ""),
		SheetGID:            gid,
		ServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		PrivateKey:          strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),

		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		YouTubeAPIURL: getEnv("YOUTUBE_API_URL", constants.DefaultYouTubeAPIURL),

		AdminUsername:     getEnv("ADMIN_USERNAME", constants.DefaultAdminUsername),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
	}
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	// Validate store backend
	switch c.StoreBackend {
	case constants.StoreBackendSheets:
		if c.SheetID == "" {
			errors = append(errors, "GOOGLE_SHEET_ID cannot be empty when STORE_BACKEND=sheets")
		}
		if c.ServiceAccountEmail == "" {
			errors = append(errors, "GOOGLE_SERVICE_ACCOUNT_EMAIL cannot be empty when STORE_BACKEND=sheets")
		}
		if c.PrivateKey == "" {
			errors = append(errors, "GOOGLE_PRIVATE_KEY cannot be empty when STORE_BACKEND=sheets")
		}
		if c.SheetGID < 0 {
			errors = append(errors, fmt.Sprintf("GOOGLE_SHEET_GID must not be negative, got: %d", c.SheetGID))
		}
	case constants.StoreBackendSQLite:
		if c.DBPath == "" {
			errors = append(errors, "DB_PATH cannot be empty when STORE_BACKEND=sqlite")
		}
	default:
		errors = append(errors, fmt.Sprintf("STORE_BACKEND must be one of: sheets, sqlite, got: %s", c.StoreBackend))
	}

	// Validate YouTubeAPIURL; the key itself is optional
	if c.YouTubeAPIURL == "" {
		errors = append(errors, "YOUTUBE_API_URL cannot be empty")
	} else if u, err := url.ParseRequestURI(c.YouTubeAPIURL); err != nil || u.Host == "" {
		errors = append(errors, fmt.Sprintf("YOUTUBE_API_URL is not a valid URL: %s", c.YouTubeAPIURL))
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	// Validate admin credentials
	if c.AdminUsername == "" {
		errors = append(errors, "ADMIN_USERNAME cannot be empty")
	}
	if c.AdminPasswordHash == "" {
		errors = append(errors, "ADMIN_PASSWORD_HASH cannot be empty")
	}
	if len(c.JWTSecret) < constants.MinJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWT_SECRET must be at least %d characters", constants.MinJWTSecretLength))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

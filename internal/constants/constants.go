// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort            = "8080"
	DefaultDBPath          = "praiseteam.db"
	DefaultStoreBackend    = StoreBackendSheets
	DefaultYouTubeAPIURL   = "https://www.googleapis.com/youtube/v3"
	DefaultAdminUsername   = "admin"
	DefaultHTTPTimeout     = 10 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	MetadataCacheTTL       = 5 * time.Minute
	YouTubeRequestInterval = 100 * time.Millisecond
	DefaultRetryCount      = 3
	DefaultRetryBase       = 500 * time.Millisecond
	MinJWTSecretLength     = 16
)

// TimestampLayout is the millisecond UTC form stored in schedule rows and
// reported for video metadata.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Store backends
const (
	StoreBackendSheets = "sheets"
	StoreBackendSQLite = "sqlite"
)

// Admin session
const (
	AdminCookieName   = "fmc_admin_token"
	AdminTokenTTL     = 7 * 24 * time.Hour
	AdminUserID       = "admin-1"
	JWTIssuer         = "praiseteam"
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// YouTube
const (
	EmbedBaseURL     = "https://www.youtube.com/embed/"
	ThumbnailBaseURL = "https://img.youtube.com/vi/"
	FallbackTitle    = "YouTube Video"
	FallbackChannel  = "Unknown"
)

// Schedule listing
const (
	DefaultPage          = 1
	DefaultPageSize      = 10
	MaxPageSize          = 100
	DefaultUpcomingWeeks = 4
	MaxUpcomingWeeks     = 52
	RehearsalLeadDays    = 3
)

package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitharbor"
	DisplayName        = "Habit Harbor"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitharbor/habitharbor.db"
	Version            = "v0.1.0"

	// StorageKey identifies the single persisted blob in every adapter
	StorageKey = "habit-harbor-data"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment variables
	EnvConnectionString = "HABITHARBOR_DB_CONNECTION"
	EnvTestPostgres     = "HABITHARBOR_TEST_POSTGRES"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitharbor-"
	BackupFileSuffix = ".json"

	// Notify constants
	NotifierLockfileName   = "habitharbor-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitharbor"
	TrayExecutablePrefix   = "habitharbor-tray"
	NotifierSecretHeader   = "X-Habitharbor-Secret"

	// Settings keys stored in the blob
	SettingTheme     = "theme"
	SettingWeekStart = "weekStart"
	SettingTimezone  = "timezone"

	ThemeLight = "light"
	ThemeDark  = "dark"

	// QuoteInterval is how often the TUI rotates the motivational quote
	QuoteInterval = 10 * time.Second
)

// Session States
const (
	StateWeek SessionState = iota
	StateStats
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
)

// Quotes shown in rotation above the habit grid.
var Quotes = []string{
	"Success is the sum of small efforts repeated day in and day out.",
	"We are what we repeatedly do. Excellence, then, is not an act, but a habit.",
	"The secret of getting ahead is getting started.",
	"Motivation is what gets you started. Habit is what keeps you going.",
	"Small changes, big impact.",
	"Every day is a new opportunity to build positive habits.",
	"Consistency is the key to achieving your goals.",
	"The journey of a thousand miles begins with one step.",
}

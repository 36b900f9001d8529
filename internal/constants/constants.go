package constants

const (
	AppName = "exocortex"
	Version = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard clock-time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is the format accepted when a user types a full timestamp
	DateTimeFormat = "2006-01-02 15:04"

	DefaultDBPath      = "~/.config/exocortex/exocortex.db"
	DefaultProfilePath = "~/.config/exocortex/user_profile.json"

	// Keyring entries
	KeyringConnectionUser = "database-connection"
	KeyringOpenAIUser     = "openai-api-key"

	// Environment variables
	EnvDBConnection      = "EXOCORTEX_DB"
	EnvProfilePath       = "EXOCORTEX_PROFILE"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvOpenAIBaseURL     = "OPENAI_BASE_URL"
	EnvTelegramBotToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID    = "TELEGRAM_TARGET_CHAT_ID"
	EnvGoogleCalendarID  = "GOOGLE_CALENDAR_ID"
	EnvGoogleOAuthToken  = "GOOGLE_OAUTH_TOKEN"
)

// Planning preference defaults applied when the user profile omits a field.
const (
	DefaultTimezone            = "Europe/Riga"
	DefaultWorkStart           = "10:00"
	DefaultWorkEnd             = "19:00"
	DefaultMaxFocusBlocks      = 3
	DefaultTaskDurationMinutes = 60
)

// DefaultWorkDays is the work-day set assumed when the profile does not
// configure one.
var DefaultWorkDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

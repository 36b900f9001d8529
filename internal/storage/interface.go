package storage

import (
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

// Provider is the persistence surface shared by the SQLite and PostgreSQL
// backends. Timestamps are stored as RFC3339 text in UTC so both backends
// stay row-compatible and range scans order lexically.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Telegram imports
	AddTelegramMessage(models.TelegramMessage) (int64, error)
	HasTelegramMessage(chatID string, messageID int64) (bool, error)

	// Calendar imports. Upsert is keyed on (calendar_id, event_id) and
	// returns the row id whether inserted or updated.
	UpsertCalendarEvent(models.CalendarEvent) (int64, error)

	// Timeline
	AddTimelineItem(models.TimelineItem) (int64, error)
	UpdateTimelineItem(models.TimelineItem) error
	// TimelineItemForEvent finds the timeline item backed by the given
	// calendar event row, if any.
	TimelineItemForEvent(calendarEventID int64) (*models.TimelineItem, error)
	// UnprocessedTimelineItems returns items that have no mind item yet,
	// oldest first. A limit <= 0 means no limit.
	UnprocessedTimelineItems(limit int) ([]models.TimelineItem, error)
	RecentTimelineItems(limit int) ([]models.TimelineItem, error)

	// Mind items
	AddMindItem(models.MindItem) (int64, error)
	UpdateMindItem(models.MindItem) error
	GetMindItem(id int64) (models.MindItem, error)
	// UnplannedTasks returns task-type items awaiting a planning decision.
	UnplannedTasks() ([]models.MindItem, error)
	// TasksForReview returns planned or in-progress tasks whose planned
	// start is before the cutoff, oldest first.
	TasksForReview(cutoff time.Time) ([]models.MindItem, error)
	// TasksForDay returns committed tasks planned to start within the
	// calendar day containing the given time.
	TasksForDay(day time.Time) ([]models.MindItem, error)
	RecentMindItems(itemType models.ItemType, limit int) ([]models.MindItem, error)

	// Busy-time queries used by the slot suggestion engine. Both return
	// records whose start falls in [from, to).
	EventsStartingBetween(from, to time.Time) ([]models.CalendarEvent, error)
	CommittedTasksBetween(from, to time.Time) ([]models.MindItem, error)

	// Utils
	GetConfigPath() string
}

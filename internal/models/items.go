package models

import "time"

// SourceType identifies where a timeline item originated
type SourceType string

const (
	SourceTelegram SourceType = "telegram"
	SourceCalendar SourceType = "calendar"
)

// ItemType is the classification assigned to a timeline item
type ItemType string

const (
	ItemTask  ItemType = "task"
	ItemIdea  ItemType = "idea"
	ItemNote  ItemType = "note"
	ItemNoise ItemType = "noise"
)

// TaskStatus tracks the lifecycle of a task-type mind item
type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusPlanned    TaskStatus = "planned"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// TelegramMessage is a raw imported Telegram message
type TelegramMessage struct {
	ID        int64
	ChatID    string
	MessageID int64
	Sender    string
	Text      string
	Timestamp time.Time
	RawJSON   string
}

// CalendarEvent is an imported calendar event. EndTime is nil when the
// source recorded no end; downstream consumers synthesize a one-hour span.
type CalendarEvent struct {
	ID          int64
	CalendarID  string
	EventID     string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	RawJSON     string
}

// TimelineItem is a normalized entry in the unified timeline, sourced from
// a Telegram message or a calendar event.
type TimelineItem struct {
	ID                int64
	SourceType        SourceType
	TelegramMessageID *int64
	CalendarEventID   *int64
	Timestamp         time.Time
	Title             string
	Content           string
	Meta              string
}

// MindItem is the classified counterpart of a timeline item. Task-type
// items carry planning state; other types only a summary.
type MindItem struct {
	ID                int64
	TimelineItemID    int64
	ItemType          ItemType
	Summary           string
	Status            TaskStatus
	PlannedStart      *time.Time
	PlannedEnd        *time.Time
	DoneAt            *time.Time
	CompletionComment string
	CreatedAt         time.Time
}

// Committed reports whether the item occupies time on the calendar:
// a planned or in-progress task with a planned start.
func (m MindItem) Committed() bool {
	if m.ItemType != ItemTask || m.PlannedStart == nil {
		return false
	}
	return m.Status == StatusPlanned || m.Status == StatusInProgress
}

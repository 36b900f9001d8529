package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

func (s *Store) AddTelegramMessage(msg models.TelegramMessage) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO telegram_messages (chat_id, message_id, sender, text, timestamp, raw_json)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		msg.ChatID, msg.MessageID, msg.Sender, msg.Text, encodeTime(msg.Timestamp), msg.RawJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to add telegram message: %w", err)
	}
	return id, nil
}

func (s *Store) HasTelegramMessage(chatID string, messageID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count(*) FROM telegram_messages WHERE chat_id = $1 AND message_id = $2`,
		chatID, messageID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UpsertCalendarEvent(ev models.CalendarEvent) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO calendar_events (calendar_id, event_id, title, description, start_time, end_time, raw_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (calendar_id, event_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			raw_json = EXCLUDED.raw_json
		RETURNING id`,
		ev.CalendarID, ev.EventID, ev.Title, ev.Description,
		encodeTime(ev.StartTime), encodeTimePtr(ev.EndTime), ev.RawJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert calendar event: %w", err)
	}
	return id, nil
}

func (s *Store) EventsStartingBetween(from, to time.Time) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, calendar_id, event_id, title, description, start_time, end_time, raw_json
		FROM calendar_events
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time`,
		encodeTime(from), encodeTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		ev, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanCalendarEvent(rows *sql.Rows) (models.CalendarEvent, error) {
	var ev models.CalendarEvent
	var start string
	var end sql.NullString

	if err := rows.Scan(&ev.ID, &ev.CalendarID, &ev.EventID, &ev.Title, &ev.Description, &start, &end, &ev.RawJSON); err != nil {
		return models.CalendarEvent{}, err
	}

	startTime, err := decodeTime(start)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("invalid start_time for event %d: %w", ev.ID, err)
	}
	ev.StartTime = startTime

	endTime, err := decodeTimePtr(end)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("invalid end_time for event %d: %w", ev.ID, err)
	}
	ev.EndTime = endTime

	return ev, nil
}

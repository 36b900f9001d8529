package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/MolchanovArt/exocortex/internal/models"
)

const timelineColumns = "id, source_type, telegram_message_id, calendar_event_id, timestamp, title, content, meta"

func (s *Store) AddTimelineItem(item models.TimelineItem) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO timeline_items (source_type, telegram_message_id, calendar_event_id, timestamp, title, content, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		string(item.SourceType), nullableID(item.TelegramMessageID), nullableID(item.CalendarEventID),
		encodeTime(item.Timestamp), item.Title, item.Content, item.Meta).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to add timeline item: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateTimelineItem(item models.TimelineItem) error {
	res, err := s.db.Exec(`
		UPDATE timeline_items
		SET timestamp = $1, title = $2, content = $3, meta = $4
		WHERE id = $5`,
		encodeTime(item.Timestamp), item.Title, item.Content, item.Meta, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update timeline item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("timeline item %d not found", item.ID)
	}
	return nil
}

func (s *Store) TimelineItemForEvent(calendarEventID int64) (*models.TimelineItem, error) {
	row := s.db.QueryRow(`
		SELECT `+timelineColumns+` FROM timeline_items WHERE calendar_event_id = $1`,
		calendarEventID)

	item, err := scanTimelineItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) UnprocessedTimelineItems(limit int) ([]models.TimelineItem, error) {
	query := `
		SELECT ` + prefixedTimelineColumns("t") + `
		FROM timeline_items t
		LEFT JOIN mind_items m ON m.timeline_item_id = t.id
		WHERE m.id IS NULL
		ORDER BY t.timestamp`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimelineItems(rows)
}

func (s *Store) RecentTimelineItems(limit int) ([]models.TimelineItem, error) {
	query := `SELECT ` + timelineColumns + ` FROM timeline_items ORDER BY timestamp DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimelineItems(rows)
}

func prefixedTimelineColumns(alias string) string {
	return alias + ".id, " + alias + ".source_type, " + alias + ".telegram_message_id, " +
		alias + ".calendar_event_id, " + alias + ".timestamp, " + alias + ".title, " +
		alias + ".content, " + alias + ".meta"
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimelineItem(row rowScanner) (models.TimelineItem, error) {
	var item models.TimelineItem
	var sourceType, timestamp string
	var tgID, evID sql.NullInt64

	if err := row.Scan(&item.ID, &sourceType, &tgID, &evID, &timestamp, &item.Title, &item.Content, &item.Meta); err != nil {
		return models.TimelineItem{}, err
	}

	item.SourceType = models.SourceType(sourceType)
	if tgID.Valid {
		item.TelegramMessageID = &tgID.Int64
	}
	if evID.Valid {
		item.CalendarEventID = &evID.Int64
	}

	ts, err := decodeTime(timestamp)
	if err != nil {
		return models.TimelineItem{}, fmt.Errorf("invalid timestamp for timeline item %d: %w", item.ID, err)
	}
	item.Timestamp = ts

	return item, nil
}

func collectTimelineItems(rows *sql.Rows) ([]models.TimelineItem, error) {
	var items []models.TimelineItem
	for rows.Next() {
		item, err := scanTimelineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

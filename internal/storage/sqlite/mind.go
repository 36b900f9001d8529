package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

const mindColumns = "id, timeline_item_id, item_type, summary, status, planned_start, planned_end, done_at, completion_comment, created_at"

func (s *Store) AddMindItem(item models.MindItem) (int64, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`
		INSERT INTO mind_items (timeline_item_id, item_type, summary, status, planned_start, planned_end, done_at, completion_comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.TimelineItemID, string(item.ItemType), item.Summary, string(item.Status),
		encodeTimePtr(item.PlannedStart), encodeTimePtr(item.PlannedEnd), encodeTimePtr(item.DoneAt),
		item.CompletionComment, encodeTime(item.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("failed to add mind item: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) UpdateMindItem(item models.MindItem) error {
	res, err := s.db.Exec(`
		UPDATE mind_items
		SET item_type = ?, summary = ?, status = ?, planned_start = ?, planned_end = ?, done_at = ?, completion_comment = ?
		WHERE id = ?`,
		string(item.ItemType), item.Summary, string(item.Status),
		encodeTimePtr(item.PlannedStart), encodeTimePtr(item.PlannedEnd), encodeTimePtr(item.DoneAt),
		item.CompletionComment, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update mind item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("mind item %d not found", item.ID)
	}
	return nil
}

func (s *Store) GetMindItem(id int64) (models.MindItem, error) {
	row := s.db.QueryRow(`SELECT `+mindColumns+` FROM mind_items WHERE id = ?`, id)
	return scanMindItem(row)
}

func (s *Store) UnplannedTasks() ([]models.MindItem, error) {
	rows, err := s.db.Query(`
		SELECT `+mindColumns+` FROM mind_items
		WHERE item_type = ? AND status = ?
		ORDER BY created_at`,
		string(models.ItemTask), string(models.StatusNew))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMindItems(rows)
}

func (s *Store) TasksForReview(cutoff time.Time) ([]models.MindItem, error) {
	rows, err := s.db.Query(`
		SELECT `+mindColumns+` FROM mind_items
		WHERE item_type = ? AND status IN (?, ?)
		  AND planned_start IS NOT NULL AND planned_start < ?
		ORDER BY planned_start`,
		string(models.ItemTask), string(models.StatusPlanned), string(models.StatusInProgress),
		encodeTime(cutoff))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMindItems(rows)
}

func (s *Store) TasksForDay(day time.Time) ([]models.MindItem, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.CommittedTasksBetween(start, start.AddDate(0, 0, 1))
}

func (s *Store) RecentMindItems(itemType models.ItemType, limit int) ([]models.MindItem, error) {
	query := `SELECT ` + mindColumns + ` FROM mind_items WHERE item_type = ? ORDER BY created_at DESC`
	args := []any{string(itemType)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMindItems(rows)
}

func (s *Store) CommittedTasksBetween(from, to time.Time) ([]models.MindItem, error) {
	rows, err := s.db.Query(`
		SELECT `+mindColumns+` FROM mind_items
		WHERE item_type = ? AND status IN (?, ?)
		  AND planned_start >= ? AND planned_start < ?
		ORDER BY planned_start`,
		string(models.ItemTask), string(models.StatusPlanned), string(models.StatusInProgress),
		encodeTime(from), encodeTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMindItems(rows)
}

func scanMindItem(row rowScanner) (models.MindItem, error) {
	var item models.MindItem
	var itemType, status, createdAt string
	var plannedStart, plannedEnd, doneAt sql.NullString

	if err := row.Scan(&item.ID, &item.TimelineItemID, &itemType, &item.Summary, &status,
		&plannedStart, &plannedEnd, &doneAt, &item.CompletionComment, &createdAt); err != nil {
		return models.MindItem{}, err
	}

	item.ItemType = models.ItemType(itemType)
	item.Status = models.TaskStatus(status)

	var err error
	if item.PlannedStart, err = decodeTimePtr(plannedStart); err != nil {
		return models.MindItem{}, fmt.Errorf("invalid planned_start for mind item %d: %w", item.ID, err)
	}
	if item.PlannedEnd, err = decodeTimePtr(plannedEnd); err != nil {
		return models.MindItem{}, fmt.Errorf("invalid planned_end for mind item %d: %w", item.ID, err)
	}
	if item.DoneAt, err = decodeTimePtr(doneAt); err != nil {
		return models.MindItem{}, fmt.Errorf("invalid done_at for mind item %d: %w", item.ID, err)
	}
	if item.CreatedAt, err = decodeTime(createdAt); err != nil {
		return models.MindItem{}, fmt.Errorf("invalid created_at for mind item %d: %w", item.ID, err)
	}

	return item, nil
}

func collectMindItems(rows *sql.Rows) ([]models.MindItem, error) {
	var items []models.MindItem
	for rows.Next() {
		item, err := scanMindItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

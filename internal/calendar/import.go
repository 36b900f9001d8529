package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/MolchanovArt/exocortex/internal/logger"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// Store is the persistence slice the importer needs.
type Store interface {
	UpsertCalendarEvent(models.CalendarEvent) (int64, error)
	TimelineItemForEvent(calendarEventID int64) (*models.TimelineItem, error)
	AddTimelineItem(models.TimelineItem) (int64, error)
	UpdateTimelineItem(models.TimelineItem) error
}

// ImportStats counts what one import run produced.
type ImportStats struct {
	Fetched int
	Created int
	Updated int
	Skipped int
}

// Importer syncs a calendar's events into the event archive and the
// timeline.
type Importer struct {
	client     *Client
	store      Store
	calendarID string
	loc        *time.Location
}

func NewImporter(client *Client, store Store, calendarID string, loc *time.Location) *Importer {
	if loc == nil {
		loc = time.Local
	}
	return &Importer{client: client, store: store, calendarID: calendarID, loc: loc}
}

// Run imports the calendar's events in [from, to). Cancelled events and
// ones without a start are skipped. Events are upserted, so a moved
// meeting updates in place; its timeline item follows the new time.
func (i *Importer) Run(ctx context.Context, from, to time.Time) (ImportStats, error) {
	var stats ImportStats

	events, err := i.client.ListEvents(ctx, i.calendarID, from, to)
	if err != nil {
		return stats, fmt.Errorf("failed to list calendar events: %w", err)
	}
	stats.Fetched = len(events)

	for _, ev := range events {
		if ev.Status == "cancelled" {
			stats.Skipped++
			continue
		}

		start, err := ev.Start.Resolve(i.loc)
		if err != nil {
			return stats, fmt.Errorf("invalid start time for event %s: %w", ev.ID, err)
		}
		if start.IsZero() {
			stats.Skipped++
			continue
		}

		var endPtr *time.Time
		end, err := ev.End.Resolve(i.loc)
		if err != nil {
			return stats, fmt.Errorf("invalid end time for event %s: %w", ev.ID, err)
		}
		if !end.IsZero() {
			endPtr = &end
		}

		rowID, err := i.store.UpsertCalendarEvent(models.CalendarEvent{
			CalendarID:  i.calendarID,
			EventID:     ev.ID,
			Title:       ev.Summary,
			Description: ev.Description,
			StartTime:   start,
			EndTime:     endPtr,
			RawJSON:     string(ev.Raw),
		})
		if err != nil {
			return stats, fmt.Errorf("failed to upsert event %s: %w", ev.ID, err)
		}

		existing, err := i.store.TimelineItemForEvent(rowID)
		if err != nil {
			return stats, fmt.Errorf("failed to look up timeline item for event %s: %w", ev.ID, err)
		}

		if existing == nil {
			_, err := i.store.AddTimelineItem(models.TimelineItem{
				SourceType:      models.SourceCalendar,
				CalendarEventID: &rowID,
				Timestamp:       start,
				Title:           ev.Summary,
				Content:         ev.Description,
			})
			if err != nil {
				return stats, fmt.Errorf("failed to add timeline item for event %s: %w", ev.ID, err)
			}
			stats.Created++
		} else {
			existing.Timestamp = start
			existing.Title = ev.Summary
			existing.Content = ev.Description
			if err := i.store.UpdateTimelineItem(*existing); err != nil {
				return stats, fmt.Errorf("failed to update timeline item for event %s: %w", ev.ID, err)
			}
			stats.Updated++
		}
	}

	logger.Debug("Calendar import finished", "fetched", stats.Fetched, "created", stats.Created, "updated", stats.Updated, "skipped", stats.Skipped)
	return stats, nil
}

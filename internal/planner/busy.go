package planner

import (
	"fmt"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

// defaultBusyDuration is the span assumed for an event or committed task
// that has no recorded end time. Such records are never skipped: an
// unbounded commitment still blocks its start hour.
const defaultBusyDuration = time.Hour

// BusySource supplies committed time inside a date range. The engine
// treats it as a read-only snapshot and never mutates source records.
type BusySource interface {
	// EventsStartingBetween returns calendar events whose start falls in
	// [from, to).
	EventsStartingBetween(from, to time.Time) ([]models.CalendarEvent, error)
	// CommittedTasksBetween returns planned or in-progress tasks whose
	// planned start falls in [from, to).
	CommittedTasksBetween(from, to time.Time) ([]models.MindItem, error)
}

// collectBusyIntervals gathers all committed time in [from, to) as a flat
// unsorted interval list; Subtract sorts as needed.
func collectBusyIntervals(source BusySource, from, to time.Time) ([]TimeRange, error) {
	events, err := source.EventsStartingBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar events: %w", err)
	}
	tasks, err := source.CommittedTasksBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching committed tasks: %w", err)
	}

	busy := make([]TimeRange, 0, len(events)+len(tasks))
	for _, ev := range events {
		end := ev.StartTime.Add(defaultBusyDuration)
		if ev.EndTime != nil {
			end = *ev.EndTime
		}
		busy = append(busy, TimeRange{Start: ev.StartTime, End: end})
	}
	for _, task := range tasks {
		if task.PlannedStart == nil {
			continue
		}
		end := task.PlannedStart.Add(defaultBusyDuration)
		if task.PlannedEnd != nil {
			end = *task.PlannedEnd
		}
		busy = append(busy, TimeRange{Start: *task.PlannedStart, End: end})
	}
	return busy, nil
}

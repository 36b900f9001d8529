package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "exocortex.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInitAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "exocortex.db")

	store := New(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := New(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	_ = reopened.Close()
}

func TestLoad_Uninitialized(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("expected error loading uninitialized storage")
	}
}

func TestTelegramMessageDedup(t *testing.T) {
	store := newTestStore(t)

	msg := models.TelegramMessage{
		ChatID:    "42",
		MessageID: 1001,
		Sender:    "artem",
		Text:      "buy milk",
		Timestamp: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
	}

	has, err := store.HasTelegramMessage(msg.ChatID, msg.MessageID)
	if err != nil {
		t.Fatalf("HasTelegramMessage failed: %v", err)
	}
	if has {
		t.Fatal("message reported present before insert")
	}

	id, err := store.AddTelegramMessage(msg)
	if err != nil {
		t.Fatalf("AddTelegramMessage failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero row id")
	}

	has, err = store.HasTelegramMessage(msg.ChatID, msg.MessageID)
	if err != nil {
		t.Fatalf("HasTelegramMessage failed: %v", err)
	}
	if !has {
		t.Fatal("message not found after insert")
	}

	// Same (chat_id, message_id) must violate the unique constraint.
	if _, err := store.AddTelegramMessage(msg); err == nil {
		t.Fatal("expected unique constraint violation on duplicate message")
	}
}

func TestCalendarEventUpsert(t *testing.T) {
	store := newTestStore(t)

	start := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	ev := models.CalendarEvent{
		CalendarID: "primary",
		EventID:    "abc123",
		Title:      "Standup",
		StartTime:  start,
		EndTime:    &end,
	}

	id1, err := store.UpsertCalendarEvent(ev)
	if err != nil {
		t.Fatalf("UpsertCalendarEvent failed: %v", err)
	}

	ev.Title = "Standup (moved)"
	newStart := start.Add(30 * time.Minute)
	ev.StartTime = newStart
	ev.EndTime = nil

	id2, err := store.UpsertCalendarEvent(ev)
	if err != nil {
		t.Fatalf("UpsertCalendarEvent (update) failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert created a new row: id %d then %d", id1, id2)
	}

	events, err := store.EventsStartingBetween(start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("EventsStartingBetween failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.Title != "Standup (moved)" {
		t.Errorf("title = %q, want updated title", got.Title)
	}
	if !got.StartTime.Equal(newStart) {
		t.Errorf("start = %v, want %v", got.StartTime, newStart)
	}
	if got.EndTime != nil {
		t.Errorf("end = %v, want nil after update", got.EndTime)
	}
}

func TestEventsStartingBetween_RangeIsHalfOpen(t *testing.T) {
	store := newTestStore(t)

	from := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	for i, start := range []time.Time{from.Add(-time.Hour), from, to.Add(-time.Minute), to} {
		_, err := store.UpsertCalendarEvent(models.CalendarEvent{
			CalendarID: "primary",
			EventID:    string(rune('a' + i)),
			StartTime:  start,
		})
		if err != nil {
			t.Fatalf("UpsertCalendarEvent failed: %v", err)
		}
	}

	events, err := store.EventsStartingBetween(from, to)
	if err != nil {
		t.Fatalf("EventsStartingBetween failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (inclusive from, exclusive to)", len(events))
	}
}

func TestTimelineProcessingFlow(t *testing.T) {
	store := newTestStore(t)

	msgID, err := store.AddTelegramMessage(models.TelegramMessage{
		ChatID:    "42",
		MessageID: 1,
		Text:      "remember to call the bank",
		Timestamp: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("AddTelegramMessage failed: %v", err)
	}

	itemID, err := store.AddTimelineItem(models.TimelineItem{
		SourceType:        models.SourceTelegram,
		TelegramMessageID: &msgID,
		Timestamp:         time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		Content:           "remember to call the bank",
	})
	if err != nil {
		t.Fatalf("AddTimelineItem failed: %v", err)
	}

	pending, err := store.UnprocessedTimelineItems(0)
	if err != nil {
		t.Fatalf("UnprocessedTimelineItems failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != itemID {
		t.Fatalf("pending = %+v, want single item %d", pending, itemID)
	}
	if pending[0].TelegramMessageID == nil || *pending[0].TelegramMessageID != msgID {
		t.Errorf("telegram link = %v, want %d", pending[0].TelegramMessageID, msgID)
	}

	_, err = store.AddMindItem(models.MindItem{
		TimelineItemID: itemID,
		ItemType:       models.ItemTask,
		Summary:        "Call the bank",
		Status:         models.StatusNew,
	})
	if err != nil {
		t.Fatalf("AddMindItem failed: %v", err)
	}

	pending, err = store.UnprocessedTimelineItems(0)
	if err != nil {
		t.Fatalf("UnprocessedTimelineItems failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("got %d pending items after classification, want 0", len(pending))
	}
}

func TestTimelineItemForEvent(t *testing.T) {
	store := newTestStore(t)

	evID, err := store.UpsertCalendarEvent(models.CalendarEvent{
		CalendarID: "primary",
		EventID:    "meet",
		Title:      "Meeting",
		StartTime:  time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("UpsertCalendarEvent failed: %v", err)
	}

	found, err := store.TimelineItemForEvent(evID)
	if err != nil {
		t.Fatalf("TimelineItemForEvent failed: %v", err)
	}
	if found != nil {
		t.Fatal("expected no timeline item before insert")
	}

	itemID, err := store.AddTimelineItem(models.TimelineItem{
		SourceType:      models.SourceCalendar,
		CalendarEventID: &evID,
		Timestamp:       time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
		Title:           "Meeting",
	})
	if err != nil {
		t.Fatalf("AddTimelineItem failed: %v", err)
	}

	found, err = store.TimelineItemForEvent(evID)
	if err != nil {
		t.Fatalf("TimelineItemForEvent failed: %v", err)
	}
	if found == nil || found.ID != itemID {
		t.Fatalf("found = %+v, want item %d", found, itemID)
	}
}

func TestTaskLifecycleQueries(t *testing.T) {
	store := newTestStore(t)

	itemID, err := store.AddTimelineItem(models.TimelineItem{
		SourceType: models.SourceTelegram,
		Timestamp:  time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		Content:    "write report",
	})
	if err != nil {
		t.Fatalf("AddTimelineItem failed: %v", err)
	}

	mindID, err := store.AddMindItem(models.MindItem{
		TimelineItemID: itemID,
		ItemType:       models.ItemTask,
		Summary:        "Write report",
		Status:         models.StatusNew,
	})
	if err != nil {
		t.Fatalf("AddMindItem failed: %v", err)
	}

	unplanned, err := store.UnplannedTasks()
	if err != nil {
		t.Fatalf("UnplannedTasks failed: %v", err)
	}
	if len(unplanned) != 1 || unplanned[0].ID != mindID {
		t.Fatalf("unplanned = %+v, want task %d", unplanned, mindID)
	}

	// Plan it.
	task := unplanned[0]
	start := time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	task.Status = models.StatusPlanned
	task.PlannedStart = &start
	task.PlannedEnd = &end
	if err := store.UpdateMindItem(task); err != nil {
		t.Fatalf("UpdateMindItem failed: %v", err)
	}

	unplanned, err = store.UnplannedTasks()
	if err != nil {
		t.Fatalf("UnplannedTasks failed: %v", err)
	}
	if len(unplanned) != 0 {
		t.Fatalf("got %d unplanned tasks after planning, want 0", len(unplanned))
	}

	committed, err := store.CommittedTasksBetween(start.Add(-time.Hour), end.Add(time.Hour))
	if err != nil {
		t.Fatalf("CommittedTasksBetween failed: %v", err)
	}
	if len(committed) != 1 {
		t.Fatalf("got %d committed tasks, want 1", len(committed))
	}
	if committed[0].PlannedStart == nil || !committed[0].PlannedStart.Equal(start) {
		t.Errorf("planned start = %v, want %v", committed[0].PlannedStart, start)
	}

	forDay, err := store.TasksForDay(start)
	if err != nil {
		t.Fatalf("TasksForDay failed: %v", err)
	}
	if len(forDay) != 1 {
		t.Fatalf("got %d tasks for day, want 1", len(forDay))
	}

	review, err := store.TasksForReview(end.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("TasksForReview failed: %v", err)
	}
	if len(review) != 1 {
		t.Fatalf("got %d tasks for review, want 1", len(review))
	}

	// Complete it.
	done := end.Add(10 * time.Minute)
	task.Status = models.StatusDone
	task.DoneAt = &done
	task.CompletionComment = "sent to the team"
	if err := store.UpdateMindItem(task); err != nil {
		t.Fatalf("UpdateMindItem (done) failed: %v", err)
	}

	committed, err = store.CommittedTasksBetween(start.Add(-time.Hour), end.Add(time.Hour))
	if err != nil {
		t.Fatalf("CommittedTasksBetween failed: %v", err)
	}
	if len(committed) != 0 {
		t.Fatalf("done task still reported committed: %+v", committed)
	}

	got, err := store.GetMindItem(mindID)
	if err != nil {
		t.Fatalf("GetMindItem failed: %v", err)
	}
	if got.Status != models.StatusDone || got.DoneAt == nil || got.CompletionComment != "sent to the team" {
		t.Errorf("completed task = %+v, want done with comment", got)
	}
}

func TestRecentMindItemsFiltersByType(t *testing.T) {
	store := newTestStore(t)

	for i, itemType := range []models.ItemType{models.ItemIdea, models.ItemNote, models.ItemIdea} {
		itemID, err := store.AddTimelineItem(models.TimelineItem{
			SourceType: models.SourceTelegram,
			Timestamp:  time.Date(2024, 1, 3, 9+i, 0, 0, 0, time.UTC),
			Content:    "entry",
		})
		if err != nil {
			t.Fatalf("AddTimelineItem failed: %v", err)
		}
		_, err = store.AddMindItem(models.MindItem{
			TimelineItemID: itemID,
			ItemType:       itemType,
			Summary:        "entry",
			Status:         models.StatusNew,
			CreatedAt:      time.Date(2024, 1, 3, 9+i, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("AddMindItem failed: %v", err)
		}
	}

	ideas, err := store.RecentMindItems(models.ItemIdea, 10)
	if err != nil {
		t.Fatalf("RecentMindItems failed: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("got %d ideas, want 2", len(ideas))
	}
	if !ideas[0].CreatedAt.After(ideas[1].CreatedAt) {
		t.Error("ideas not ordered newest first")
	}
}

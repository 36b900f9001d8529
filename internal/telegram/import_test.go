package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MolchanovArt/exocortex/internal/models"
)

type memStore struct {
	messages []models.TelegramMessage
	items    []models.TimelineItem
}

func (m *memStore) HasTelegramMessage(chatID string, messageID int64) (bool, error) {
	for _, msg := range m.messages {
		if msg.ChatID == chatID && msg.MessageID == messageID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) AddTelegramMessage(msg models.TelegramMessage) (int64, error) {
	m.messages = append(m.messages, msg)
	return int64(len(m.messages)), nil
}

func (m *memStore) AddTimelineItem(item models.TimelineItem) (int64, error) {
	m.items = append(m.items, item)
	return int64(len(m.items)), nil
}

const updatesFixture = `{
	"ok": true,
	"result": [
		{"update_id": 1, "message": {"message_id": 10, "from": {"username": "artem"}, "chat": {"id": 42}, "date": 1704272400, "text": "buy milk"}},
		{"update_id": 2, "message": {"message_id": 11, "from": {"first_name": "Spam"}, "chat": {"id": 99}, "date": 1704272460, "text": "other chat"}},
		{"update_id": 3, "message": {"message_id": 12, "from": {"username": "artem"}, "chat": {"id": 42}, "date": 1704272520, "text": ""}},
		{"update_id": 4},
		{"update_id": 5, "message": {"message_id": 13, "from": {"username": "artem"}, "chat": {"id": 42}, "date": 1704272580, "text": "call the bank"}}
	]
}`

func newFixtureServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottoken123/getUpdates" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, body)
	}))
}

func TestImport_FiltersAndDedups(t *testing.T) {
	srv := newFixtureServer(t, updatesFixture)
	defer srv.Close()

	store := &memStore{}
	client := New("token123", WithAPIBase(srv.URL))
	importer := NewImporter(client, store, "42")

	stats, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Imported != 2 {
		t.Errorf("imported %d messages, want 2", stats.Imported)
	}
	if stats.Skipped != 2 {
		t.Errorf("skipped %d messages, want 2 (wrong chat + empty text)", stats.Skipped)
	}
	if len(store.messages) != 2 || len(store.items) != 2 {
		t.Fatalf("stored %d messages and %d timeline items, want 2 each", len(store.messages), len(store.items))
	}

	first := store.messages[0]
	if first.ChatID != "42" || first.MessageID != 10 || first.Sender != "artem" || first.Text != "buy milk" {
		t.Errorf("first message = %+v", first)
	}
	if first.RawJSON == "" {
		t.Error("raw message JSON not archived")
	}

	item := store.items[0]
	if item.SourceType != models.SourceTelegram || item.TelegramMessageID == nil || item.Content != "buy milk" {
		t.Errorf("first timeline item = %+v", item)
	}

	// Second run over the same updates imports nothing new.
	stats, err = importer.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if stats.Imported != 0 {
		t.Errorf("second run imported %d messages, want 0", stats.Imported)
	}
	if len(store.messages) != 2 {
		t.Errorf("duplicate rows after second run: %d messages", len(store.messages))
	}
}

func TestImport_APIErrorIsFatal(t *testing.T) {
	srv := newFixtureServer(t, `{"ok": false, "description": "Unauthorized"}`)
	defer srv.Close()

	client := New("token123", WithAPIBase(srv.URL))
	importer := NewImporter(client, &memStore{}, "42")

	if _, err := importer.Run(context.Background()); err == nil {
		t.Fatal("expected error for failed API response")
	}
}

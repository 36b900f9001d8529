package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MolchanovArt/exocortex/internal/logger"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// Store is the persistence slice the importer needs.
type Store interface {
	HasTelegramMessage(chatID string, messageID int64) (bool, error)
	AddTelegramMessage(models.TelegramMessage) (int64, error)
	AddTimelineItem(models.TimelineItem) (int64, error)
}

// ImportStats counts what one import run produced.
type ImportStats struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer pulls messages from a single target chat into the raw archive
// and the timeline.
type Importer struct {
	client *Client
	store  Store
	chatID string
}

func NewImporter(client *Client, store Store, targetChatID string) *Importer {
	return &Importer{client: client, store: store, chatID: targetChatID}
}

// Run fetches pending updates and imports messages from the target chat.
// Messages from other chats and ones already imported are skipped;
// re-running after a partial failure is safe because dedup is keyed on
// (chat_id, message_id).
func (i *Importer) Run(ctx context.Context) (ImportStats, error) {
	var stats ImportStats

	updates, err := i.client.GetUpdates(ctx, 0)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch telegram updates: %w", err)
	}

	for _, update := range updates {
		if update.Message == nil {
			continue
		}
		msg := update.Message
		stats.Fetched++

		chatID := strconv.FormatInt(msg.Chat.ID, 10)
		if i.chatID != "" && chatID != i.chatID {
			stats.Skipped++
			continue
		}
		if msg.Text == "" {
			stats.Skipped++
			continue
		}

		exists, err := i.store.HasTelegramMessage(chatID, msg.MessageID)
		if err != nil {
			return stats, fmt.Errorf("failed to check for existing message: %w", err)
		}
		if exists {
			stats.Skipped++
			continue
		}

		rowID, err := i.store.AddTelegramMessage(models.TelegramMessage{
			ChatID:    chatID,
			MessageID: msg.MessageID,
			Sender:    msg.Sender(),
			Text:      msg.Text,
			Timestamp: msg.SentAt(),
			RawJSON:   string(msg.Raw),
		})
		if err != nil {
			return stats, fmt.Errorf("failed to store telegram message: %w", err)
		}

		if _, err := i.store.AddTimelineItem(models.TimelineItem{
			SourceType:        models.SourceTelegram,
			TelegramMessageID: &rowID,
			Timestamp:         msg.SentAt(),
			Content:           msg.Text,
		}); err != nil {
			return stats, fmt.Errorf("failed to add timeline item for message %d: %w", msg.MessageID, err)
		}

		stats.Imported++
	}

	logger.Debug("Telegram import finished", "fetched", stats.Fetched, "imported", stats.Imported, "skipped", stats.Skipped)
	return stats, nil
}

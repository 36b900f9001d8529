package imports

import (
	"context"
	"fmt"
	"os"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/telegram"
)

// TelegramCmd pulls new messages from the configured capture chat.
type TelegramCmd struct {
	Chat string `help:"Target chat id to import from (defaults to TELEGRAM_TARGET_CHAT_ID)."`
}

func (c *TelegramCmd) Run(ctx *cli.Context) error {
	token := os.Getenv(constants.EnvTelegramBotToken)
	if token == "" {
		return fmt.Errorf("%s is not set", constants.EnvTelegramBotToken)
	}

	chatID := c.Chat
	if chatID == "" {
		chatID = os.Getenv(constants.EnvTelegramChatID)
	}
	if chatID == "" {
		return fmt.Errorf("no target chat: pass --chat or set %s", constants.EnvTelegramChatID)
	}

	importer := telegram.NewImporter(telegram.New(token), ctx.Store, chatID)
	stats, err := importer.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d message(s) from chat %s (%d fetched, %d skipped).\n",
		stats.Imported, chatID, stats.Fetched, stats.Skipped)
	return nil
}

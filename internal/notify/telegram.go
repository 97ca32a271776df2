package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kavehz/realmstats/internal/ingest"
	"github.com/kavehz/realmstats/pkg/logger"
)

// TelegramNotifier posts an ingest digest to an admin chat. It is
// optional and strictly best-effort: a send failure is logged and never
// affects the upload.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier returns nil (no notifier) when the token or chat
// id is unset.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// IngestCompleted implements ingest.Notifier.
func (n *TelegramNotifier) IngestCompleted(result *ingest.Result) {
	text := fmt.Sprintf(
		"📊 Kingdom %s snapshot ingested\n"+
			"Captured: %s\n"+
			"Players: %d\n"+
			"Name changes: %d\n"+
			"Alliance changes: %d\n"+
			"Departures: %d",
		result.Kingdom,
		result.Timestamp.Format("2006-01-02 15:04 UTC"),
		result.RowCount,
		result.NameChanges,
		result.AllianceChanges,
		result.Departures,
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		logger.Warn("Failed to send ingest digest", "error", err)
	}
}

package telegram

import (
	"context"

	"remindme/internal/model"
	pkgTelegram "remindme/pkg/telegram"
)

// Transport adapts the Bot API client to the sender and fetcher contracts
// used by the pipeline and the scheduler.
type Transport struct {
	bot *pkgTelegram.Bot
}

// NewTransport wraps a Bot client.
func NewTransport(bot *pkgTelegram.Bot) *Transport {
	return &Transport{bot: bot}
}

// SendText delivers a plain text message.
func (t *Transport) SendText(ctx context.Context, userID, text string) error {
	return t.bot.SendMessage(ctx, userID, text)
}

// SendPrompt delivers a confirmation prompt with its choice controls.
func (t *Transport) SendPrompt(ctx context.Context, userID, text string, keyboard [][]model.KeyboardButton) error {
	rows := make([][]pkgTelegram.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]pkgTelegram.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, pkgTelegram.InlineKeyboardButton{
				Text:         b.Label,
				CallbackData: b.Payload,
			})
		}
		rows = append(rows, buttons)
	}
	return t.bot.SendMessageWithKeyboard(ctx, userID, text, rows)
}

// FetchVoice resolves a voice-file reference and downloads its bytes.
func (t *Transport) FetchVoice(ctx context.Context, fileID string) ([]byte, error) {
	file, err := t.bot.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return t.bot.DownloadFile(ctx, file.FilePath)
}

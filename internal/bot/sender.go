package bot

import (
	"context"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"gopkg.in/telebot.v4"
)

// Sender delivers dispatcher messages through the Telegram Bot API.
type Sender struct {
	telebot *telebot.Bot
}

func NewSender(tb *telebot.Bot) *Sender {
	return &Sender{telebot: tb}
}

// SendMessage sends text to chatID. telebot has no per-request context, so ctx
// is only checked before the request is made.
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string, format domain.Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opts := &telebot.SendOptions{}
	if format == domain.FormatHTML {
		opts.ParseMode = telebot.ModeHTML
	}

	_, err := s.telebot.Send(telebot.ChatID(chatID), text, opts)

	return err
}

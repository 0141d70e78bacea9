package bot

import (
	"context"

	"gopkg.in/telebot.v4"
)

// requestContext returns the context set by timeoutMiddleware.
func (b *Bot) requestContext(c telebot.Context) context.Context {
	if ctx, ok := c.Get(ctxContext).(context.Context); ok {
		return ctx
	}

	return b.ctx
}

// languageTag is the IETF tag of the sender's Telegram client, or "".
func languageTag(c telebot.Context) string {
	if sender := c.Sender(); sender != nil {
		return sender.LanguageCode
	}

	return ""
}

func chatID(c telebot.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}

	if sender := c.Sender(); sender != nil {
		return sender.ID
	}

	return 0
}

package bot

import (
	"context"
	"fmt"

	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

func (b *Bot) recoveryMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("recovered from panic",
					zap.Int64("chat_id", chatID(c)),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)

				err = b.defaultErrorHandler(c)
			}
		}()

		return next(c)
	}
}

func (b *Bot) defaultErrorMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if err := next(c); err != nil {
			log.Error("unknown error", zap.Int64("chat_id", chatID(c)), zap.Error(err))
			return b.defaultErrorHandler(c)
		}

		return nil
	}
}

func (b *Bot) timeoutMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		ctx := b.ctx
		if b.cfg.HandlerTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.cfg.HandlerTimeout)
			defer cancel()
		}

		c.Set(ctxContext, ctx)

		return next(c)
	}
}

func (b *Bot) defaultErrorHandler(c telebot.Context) error {
	text := b.service.UnknownError(languageTag(c))

	if err := c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}

	return nil
}

package bot

import (
	"fmt"
	"strings"

	"github.com/leonid6372/lifery-bot/pkg/errs"
	"gopkg.in/telebot.v4"
)

func (b *Bot) startHandler(c telebot.Context) error {
	return b.reply(c, b.service.Start(languageTag(c)))
}

func (b *Bot) aboutHandler(c telebot.Context) error {
	return b.reply(c, b.service.About(languageTag(c)))
}

// birthDateHandler treats every non-command text as a birth date submission.
func (b *Bot) birthDateHandler(c telebot.Context) error {
	text := c.Text()
	if strings.HasPrefix(text, "/") {
		return nil
	}

	reply, err := b.service.SubmitBirthDate(b.requestContext(c), chatID(c), languageTag(c), text)
	if err != nil {
		return fmt.Errorf("failed to submit birth date: %w", err)
	}

	return b.reply(c, reply)
}

func (b *Bot) profileHandler(c telebot.Context) error {
	reply, err := b.service.Profile(b.requestContext(c), chatID(c), languageTag(c))
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	return b.reply(c, reply)
}

func (b *Bot) resetHandler(c telebot.Context) error {
	reply, err := b.service.Reset(b.requestContext(c), chatID(c), languageTag(c))
	if err != nil {
		return fmt.Errorf("failed to reset user: %w", err)
	}

	return b.reply(c, reply)
}

func (b *Bot) reply(c telebot.Context, text string) error {
	if err := c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}

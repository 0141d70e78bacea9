package bot

import (
	"context"
	"fmt"

	"github.com/leonid6372/lifery-bot/internal/common/config"
	"github.com/leonid6372/lifery-bot/internal/service"
	"github.com/leonid6372/lifery-bot/pkg/errs"
	"gopkg.in/telebot.v4"
)

type Bot struct {
	Telebot *telebot.Bot
	ctx     context.Context
	cfg     *config.Bot

	service *service.Service
}

func New(ctx context.Context, cfg *config.Bot, service *service.Service) (*Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.APIKey,
		Poller: &telebot.LongPoller{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}

	bot := &Bot{
		Telebot: b,
		ctx:     ctx,
		cfg:     cfg,
		service: service,
	}

	if err := bot.setCommands(); err != nil {
		return nil, fmt.Errorf("bot.setCommands: %w", err)
	}

	bot.setupMiddlewares()
	bot.setupMessageRoutes()

	return bot, nil
}

func (b *Bot) setCommands() error {
	commands := []telebot.Command{
		{Text: "start", Description: "Start / Set date"},
		{Text: "profile", Description: "My Profile"},
		{Text: "about", Description: "About the project"},
		{Text: "reset", Description: "Delete data"},
	}

	if err := b.Telebot.SetCommands(commands); err != nil {
		return errs.NewStack(err)
	}

	return nil
}

func (b *Bot) setupMiddlewares() {
	b.Telebot.Use(
		b.recoveryMiddleware,
		b.defaultErrorMiddleware,
		b.timeoutMiddleware,
	)
}

func (b *Bot) setupMessageRoutes() {
	message := b.Telebot.Group()

	message.Handle(cmdStart, b.startHandler)
	message.Handle(cmdProfile, b.profileHandler)
	message.Handle(cmdAbout, b.aboutHandler)
	message.Handle(cmdReset, b.resetHandler)
	message.Handle(telebot.OnText, b.birthDateHandler)
}

func (b *Bot) Start() {
	b.Telebot.Start()
}

func (b *Bot) Stop() {
	b.Telebot.Stop()
}

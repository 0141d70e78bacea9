package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonid6372/lifery-bot/internal/bot"
	"github.com/leonid6372/lifery-bot/internal/common/composer"
	"github.com/leonid6372/lifery-bot/internal/common/config"
	"github.com/leonid6372/lifery-bot/internal/common/phrases"
	"github.com/leonid6372/lifery-bot/internal/common/repositories"
	"github.com/leonid6372/lifery-bot/internal/weekly"
	"github.com/leonid6372/lifery-bot/pkg/dictionary"
	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// dispatch runs one weekly pass immediately and exits, e.g. to make up for a
// trigger missed while the bot was down.
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "prod.yaml", "bot config path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.GetConfig(configPath)

	if err := log.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		log.Fatal("log init failed", zap.Error(err))
	}

	log.Info("dispatch starting...")

	dictionary, err := dictionary.New()
	if err != nil {
		log.Fatal("dictionary init failed", zap.Error(err))
	}

	usersRepository, closeStorage, err := repositories.OpenUsers(ctx, cfg)
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}
	defer closeStorage()

	trigger, err := cfg.Schedule.GetTrigger()
	if err != nil {
		log.Fatal("schedule parsing failed", zap.Error(err))
	}

	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Bot.APIKey,
		Poller: &telebot.LongPoller{Timeout: cfg.Bot.Timeout},
	})
	if err != nil {
		log.Fatal("telebot.NewBot", zap.Error(err))
	}

	dispatcher := weekly.NewDispatcher(
		usersRepository,
		composer.New(dictionary, phrases.NewRandom(dictionary), composer.Schedule(trigger)),
		bot.NewSender(b),
		&cfg.Dispatch,
	)

	if err := dispatcher.Run(ctx); err != nil {
		log.Error("weekly pass failed", zap.Error(err))
	}

	log.Info("finish")

	_ = log.Sync()
}

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
	"github.com/leonid6372/lifery-bot/internal/service"
	"github.com/leonid6372/lifery-bot/internal/weekly"
	"github.com/leonid6372/lifery-bot/pkg/dictionary"
	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "prod.yaml", "bot config path")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())

	cfg := config.GetConfig(configPath)

	if err := log.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		log.Fatal("log init failed", zap.Error(err))
	}

	log.Info("bot starting...", zap.String("env", cfg.Env))

	log.Info("init dictionary...")
	dictionary, err := dictionary.New()
	if err != nil {
		log.Fatal("dictionary init failed", zap.Error(err))
	}

	usersRepository, closeStorage, err := repositories.OpenUsers(ctx, cfg)
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}

	trigger, err := cfg.Schedule.GetTrigger()
	if err != nil {
		log.Fatal("schedule parsing failed", zap.Error(err))
	}

	composer := composer.New(dictionary, phrases.NewRandom(dictionary), composer.Schedule(trigger))

	log.Info("init telebot...")
	b, err := bot.New(ctx, &cfg.Bot, service.New(usersRepository, composer))
	if err != nil {
		log.Fatal("bot starting failed", zap.Error(err))
	}

	go func() {
		b.Start()
	}()

	dispatcher := weekly.NewDispatcher(usersRepository, composer, bot.NewSender(b.Telebot), &cfg.Dispatch)
	scheduler := weekly.NewScheduler(dispatcher,
		trigger.Weekday, trigger.Hour, trigger.Minute, trigger.Location,
	)

	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		scheduler.Start(ctx)
	}()

	log.Info("bot starting complete")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done
	log.Info("bot shutting down...")

	cancel()
	b.Stop()
	<-schedulerDone

	closeStorage()

	log.Info("bot shut down complete")

	if err := log.Sync(); err != nil {
		log.Error("log sync failed", zap.Error(err))
	}
}

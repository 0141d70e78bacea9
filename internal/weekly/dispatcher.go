// Package weekly sends the weekly reminder to every registered user.
package weekly

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/leonid6372/lifery-bot/internal/common/config"
	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=../../mocks/sender.go -package=mocks . Sender

// Sender delivers one message to one chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, format domain.Format) error
}

// MessageComposer builds the weekly text for a user.
type MessageComposer interface {
	Quote(lang domain.Language) string
	Weekly(user *domain.User, quote string) string
}

type Dispatcher struct {
	users    domain.UsersRepository
	composer MessageComposer
	sender   Sender

	concurrency int
	sendTimeout time.Duration
}

func NewDispatcher(
	users domain.UsersRepository,
	composer MessageComposer,
	sender Sender,
	cfg *config.Dispatch,
) *Dispatcher {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Dispatcher{
		users:       users,
		composer:    composer,
		sender:      sender,
		concurrency: concurrency,
		sendTimeout: cfg.SendTimeout,
	}
}

// Run performs one pass: it takes a snapshot of the registry and sends the
// weekly text to every user in it. A failed delivery is logged and does not
// stop the pass. Only a failed snapshot is returned, in which case nothing
// was sent.
func (d *Dispatcher) Run(ctx context.Context) error {
	users, err := d.users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all users: %w", err)
	}

	log.Info("weekly pass started", zap.Int("users", len(users)))

	var sent, failed atomic.Int64

	g := &errgroup.Group{}
	g.SetLimit(d.concurrency)

	for _, user := range users {
		g.Go(func() error {
			if err := d.send(ctx, user); err != nil {
				failed.Add(1)
				log.Error("failed to send weekly message",
					zap.Int64("chat_id", user.ID),
					zap.Error(err),
				)

				return nil
			}

			sent.Add(1)

			return nil
		})
	}

	_ = g.Wait()

	log.Info("weekly pass finished",
		zap.Int("total", len(users)),
		zap.Int64("sent", sent.Load()),
		zap.Int64("failed", failed.Load()),
	)

	return nil
}

func (d *Dispatcher) send(ctx context.Context, user *domain.User) error {
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	text := d.composer.Weekly(user, d.composer.Quote(user.LanguageCode))

	return d.sender.SendMessage(ctx, user.ID, text, domain.FormatHTML)
}

// Package service maps the bot commands to registry and composer calls.
// Every returned text is HTML.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/leonid6372/lifery-bot/internal/common/composer"
	"github.com/leonid6372/lifery-bot/internal/common/domain"
)

type Service struct {
	users    domain.UsersRepository
	composer *composer.Composer
}

func New(users domain.UsersRepository, composer *composer.Composer) *Service {
	return &Service{
		users:    users,
		composer: composer,
	}
}

// Start greets the user and asks for the birth date.
func (s *Service) Start(langTag string) string {
	return s.composer.Welcome(domain.ResolveLanguage(langTag))
}

func (s *Service) About(langTag string) string {
	return s.composer.About(domain.ResolveLanguage(langTag))
}

// UnknownError is shown when a command failed for an internal reason.
func (s *Service) UnknownError(langTag string) string {
	return s.composer.UnknownError(domain.ResolveLanguage(langTag))
}

// SubmitBirthDate registers or updates chatID with the date in text. An
// unparsable date is answered with the "invalid format" text and leaves the
// registry untouched.
func (s *Service) SubmitBirthDate(ctx context.Context, chatID int64, langTag, text string) (string, error) {
	lang := domain.ResolveLanguage(langTag)

	birthDate, err := domain.ParseBirthDate(text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateFormat) {
			return s.composer.InvalidFormat(lang), nil
		}

		return "", err
	}

	user, err := s.users.UpsertUser(ctx, chatID, birthDate, lang)
	if err != nil {
		return "", fmt.Errorf("failed to upsert user: %w", err)
	}

	return s.composer.Instant(user, s.composer.Quote(user.LanguageCode)), nil
}

func (s *Service) Profile(ctx context.Context, chatID int64, langTag string) (string, error) {
	user, err := s.users.GetUserByID(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return s.composer.NotRegistered(domain.ResolveLanguage(langTag)), nil
	}

	return s.composer.Profile(user), nil
}

// Reset permanently deletes the user.
func (s *Service) Reset(ctx context.Context, chatID int64, langTag string) (string, error) {
	lang := domain.ResolveLanguage(langTag)

	deleted, err := s.users.DeleteUser(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("failed to delete user: %w", err)
	}

	if !deleted {
		return s.composer.NotRegistered(lang), nil
	}

	return s.composer.Reset(lang), nil
}

// Package composer builds the localized texts the bot sends.
//
// Every text is HTML (the <b>, <i> and <code> subset) and must be sent with
// domain.FormatHTML.
package composer

import (
	"time"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/dictionary"
	"github.com/leonid6372/lifery-bot/pkg/format"
)

// PhrasePicker returns a motivational quote in lang.
type PhrasePicker interface {
	Pick(lang domain.Language) string
}

// Schedule describes the weekly reminder instant announced to users.
type Schedule struct {
	Weekday  time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

type Composer struct {
	dictionary *dictionary.Dictionary
	phrases    PhrasePicker
	schedule   Schedule
	now        func() time.Time
}

type Option func(*Composer)

// WithClock replaces time.Now, e.g. to pin "today" in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

func New(dictionary *dictionary.Dictionary, phrases PhrasePicker, schedule Schedule, opts ...Option) *Composer {
	if schedule.Location == nil {
		schedule.Location = time.UTC
	}

	c := &Composer{
		dictionary: dictionary,
		phrases:    phrases,
		schedule:   schedule,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Composer) Quote(lang domain.Language) string {
	return c.phrases.Pick(lang)
}

// Instant is the reply to a saved birth date.
func (c *Composer) Instant(user *domain.User, quote string) string {
	m := c.dictionary.For(user.LanguageCode)

	return dictionary.Render(m.Instant, map[string]any{
		"Weeks":        format.PrettyNumber(c.weeksLived(user), m.DigitSeparator),
		"Total":        format.PrettyNumber(domain.TotalWeeks, m.DigitSeparator),
		"Quote":        quote,
		"NextReminder": c.nextReminder(m),
	})
}

// Weekly is the scheduled reminder.
func (c *Composer) Weekly(user *domain.User, quote string) string {
	m := c.dictionary.For(user.LanguageCode)

	return dictionary.Render(m.Weekly, map[string]any{
		"Weeks": format.PrettyNumber(c.weeksLived(user), m.DigitSeparator),
		"Total": format.PrettyNumber(domain.TotalWeeks, m.DigitSeparator),
		"Quote": quote,
	})
}

func (c *Composer) Profile(user *domain.User) string {
	m := c.dictionary.For(user.LanguageCode)

	weeksLived := c.weeksLived(user)
	percent := domain.CompletionPercent(weeksLived, domain.TotalWeeks)

	return dictionary.Render(m.Profile, map[string]any{
		"BirthDate":   domain.FormatBirthDate(user.BirthDate),
		"WeeksLived":  format.PrettyNumber(weeksLived, m.DigitSeparator),
		"WeeksLeft":   format.PrettyNumber(domain.WeeksLeft(weeksLived), m.DigitSeparator),
		"Total":       format.PrettyNumber(domain.TotalWeeks, m.DigitSeparator),
		"ProgressBar": domain.ProgressBar(percent, domain.ProgressBarLength),
		"Percent":     percent,
	})
}

func (c *Composer) Welcome(lang domain.Language) string {
	return dictionary.Render(c.dictionary.For(lang).Welcome, nil)
}

func (c *Composer) InvalidFormat(lang domain.Language) string {
	return dictionary.Render(c.dictionary.For(lang).InvalidFormat, nil)
}

func (c *Composer) NotRegistered(lang domain.Language) string {
	return dictionary.Render(c.dictionary.For(lang).NotRegistered, nil)
}

func (c *Composer) UnknownError(lang domain.Language) string {
	return dictionary.Render(c.dictionary.For(lang).UnknownError, nil)
}

func (c *Composer) About(lang domain.Language) string {
	return dictionary.Render(c.dictionary.For(lang).About, nil)
}

func (c *Composer) Reset(lang domain.Language) string {
	return dictionary.Render(c.dictionary.For(lang).Reset, nil)
}

// weeksLived is the only place the composer computes elapsed weeks, so the
// instant, weekly and profile texts always agree.
func (c *Composer) weeksLived(user *domain.User) int {
	return domain.ElapsedWeeks(user.BirthDate, c.now().In(c.schedule.Location))
}

func (c *Composer) nextReminder(m *dictionary.Messages) string {
	next := domain.NextWeekly(c.now(), c.schedule.Weekday, c.schedule.Hour, c.schedule.Minute, c.schedule.Location)

	return dictionary.Render(m.NextReminder, map[string]any{
		"Weekday": m.Weekdays[next.Weekday()],
		"Time":    next.Format("15:04"),
		"Zone":    c.schedule.Location.String(),
	})
}

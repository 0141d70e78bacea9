package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/leonid6372/lifery-bot/internal/common/composer"
	"github.com/leonid6372/lifery-bot/internal/common/config"
	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/internal/service"
	"github.com/leonid6372/lifery-bot/mocks"
	"github.com/leonid6372/lifery-bot/pkg/dictionary"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

// fakeContext implements the parts of telebot.Context the handlers use.
type fakeContext struct {
	telebot.Context

	sender *telebot.User
	text   string

	values map[string]any
	sent   []string
	opts   [][]any
}

func newFakeContext(id int64, lang, text string) *fakeContext {
	return &fakeContext{
		sender: &telebot.User{ID: id, LanguageCode: lang},
		text:   text,
		values: map[string]any{},
	}
}

func (c *fakeContext) Sender() *telebot.User { return c.sender }
func (c *fakeContext) Chat() *telebot.Chat   { return &telebot.Chat{ID: c.sender.ID} }
func (c *fakeContext) Text() string          { return c.text }
func (c *fakeContext) Get(key string) any    { return c.values[key] }
func (c *fakeContext) Set(key string, v any) { c.values[key] = v }

func (c *fakeContext) Send(what any, opts ...any) error {
	c.sent = append(c.sent, what.(string))
	c.opts = append(c.opts, opts)
	return nil
}

type stubPicker string

func (s stubPicker) Pick(domain.Language) string { return string(s) }

var birth1990 = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestBot(t *testing.T) (*Bot, *mocks.MockUsersRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepository(ctrl)

	d, err := dictionary.New()
	require.NoError(t, err)

	c := composer.New(d, stubPicker("Live now."), composer.Schedule{
		Weekday:  time.Monday,
		Hour:     12,
		Location: time.UTC,
	}, composer.WithClock(func() time.Time {
		return time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	}))

	return &Bot{
		ctx:     context.Background(),
		cfg:     &config.Bot{HandlerTimeout: time.Second},
		service: service.New(users, c),
	}, users
}

// chain wraps h with the same middlewares New installs.
func (b *Bot) chain(h telebot.HandlerFunc) telebot.HandlerFunc {
	return b.recoveryMiddleware(b.defaultErrorMiddleware(b.timeoutMiddleware(h)))
}

func TestBirthDateHandler_Saves(t *testing.T) {
	b, users := newTestBot(t)
	c := newFakeContext(42, "en", "01.01.1990")

	users.EXPECT().
		UpsertUser(gomock.Any(), int64(42), birth1990, domain.English).
		DoAndReturn(func(ctx context.Context, id int64, birthDate time.Time, lang domain.Language) (*domain.User, error) {
			_, ok := ctx.Deadline()
			require.True(t, ok)

			return &domain.User{ID: id, BirthDate: birthDate, LanguageCode: lang}, nil
		})

	require.NoError(t, b.chain(b.birthDateHandler)(c))

	require.Len(t, c.sent, 1)
	require.Contains(t, c.sent[0], "This is week <b>1,774</b> of 4,680.")
	require.Equal(t, []any{&telebot.SendOptions{ParseMode: telebot.ModeHTML}}, c.opts[0])
}

func TestBirthDateHandler_InvalidFormat(t *testing.T) {
	b, _ := newTestBot(t)
	c := newFakeContext(42, "ru", "31-12-2024")

	require.NoError(t, b.chain(b.birthDateHandler)(c))

	require.Len(t, c.sent, 1)
	require.Contains(t, c.sent[0], "DD.MM.YYYY")
}

func TestBirthDateHandler_IgnoresUnknownCommands(t *testing.T) {
	b, _ := newTestBot(t)
	c := newFakeContext(42, "en", "/help")

	require.NoError(t, b.chain(b.birthDateHandler)(c))
	require.Empty(t, c.sent)
}

func TestProfileHandler_StorageErrorRepliesGenerically(t *testing.T) {
	b, users := newTestBot(t)
	c := newFakeContext(42, "en", "/profile")

	users.EXPECT().GetUserByID(gomock.Any(), int64(42)).Return(nil, errors.New("pq: relation does not exist"))

	require.NoError(t, b.chain(b.profileHandler)(c))

	require.Equal(t, []string{"⚠️ Something went wrong. Please try again later."}, c.sent)
}

func TestResetHandler_NotRegistered(t *testing.T) {
	b, users := newTestBot(t)
	c := newFakeContext(7, "en", "/reset")

	users.EXPECT().DeleteUser(gomock.Any(), int64(7)).Return(false, nil)

	require.NoError(t, b.chain(b.resetHandler)(c))

	require.Equal(t, []string{"⚠️ You haven't set your birth date yet. Send it in DD.MM.YYYY format."}, c.sent)
}

func TestRecoveryMiddleware(t *testing.T) {
	b, _ := newTestBot(t)
	c := newFakeContext(42, "en", "/start")

	err := b.chain(func(telebot.Context) error { panic("boom") })(c)
	require.NoError(t, err)

	require.Equal(t, []string{"⚠️ Something went wrong. Please try again later."}, c.sent)
}

func TestStartAndAboutHandlers(t *testing.T) {
	b, _ := newTestBot(t)

	c := newFakeContext(42, "en", "/start")
	require.NoError(t, b.chain(b.startHandler)(c))
	require.Contains(t, c.sent[0], "Welcome to Lifery!")

	c = newFakeContext(42, "en", "/about")
	require.NoError(t, b.chain(b.aboutHandler)(c))
	require.Contains(t, c.sent[0], "About Lifery")
}

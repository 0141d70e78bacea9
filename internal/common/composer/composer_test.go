package composer

import (
	"testing"
	"time"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/dictionary"
	"github.com/leonid6372/lifery-bot/pkg/format"
	"github.com/stretchr/testify/require"
)

type stubPicker string

func (s stubPicker) Pick(domain.Language) string { return string(s) }

var mondayMorning = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func newComposer(t *testing.T, now time.Time) *Composer {
	t.Helper()

	d, err := dictionary.New()
	require.NoError(t, err)

	return New(d, stubPicker("Memento mori & live"), Schedule{
		Weekday:  time.Monday,
		Hour:     12,
		Location: time.UTC,
	}, WithClock(func() time.Time { return now }))
}

func user(lang domain.Language, birth time.Time) *domain.User {
	return &domain.User{ID: 42, BirthDate: birth, LanguageCode: lang}
}

var birth1990 = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestComposer_Weekly(t *testing.T) {
	c := newComposer(t, mondayMorning)

	require.Equal(t,
		"⏳ Week <b>1,774</b> of 4,680.\n\n<i>Q</i>",
		c.Weekly(user(domain.English, birth1990), "Q"),
	)
	require.Equal(t,
		"⏳ Неделя <b>1 774</b> из 4 680.\n\n<i>Q</i>",
		c.Weekly(user(domain.Russian, birth1990), "Q"),
	)
}

func TestComposer_Instant(t *testing.T) {
	c := newComposer(t, mondayMorning)

	text := c.Instant(user(domain.English, birth1990), c.Quote(domain.English))

	require.Contains(t, text, "This is week <b>1,774</b> of 4,680.")
	require.Contains(t, text, "<i>Memento mori &amp; live</i>")
	require.Contains(t, text, "Next reminder: Monday 12:00 UTC.")

	text = c.Instant(user(domain.Russian, birth1990), "Q")
	require.Contains(t, text, "Это <b>1 774</b> неделя из 4 680.")
	require.Contains(t, text, "Следующее напоминание: Понедельник 12:00 UTC.")
}

func TestComposer_InstantAfterTriggerAnnouncesNextWeek(t *testing.T) {
	c := newComposer(t, mondayMorning.Add(4*time.Hour))

	require.Contains(t, c.Instant(user(domain.English, birth1990), "Q"), "Next reminder: Monday 12:00 UTC.")
}

func TestComposer_InstantAndWeeklyAgree(t *testing.T) {
	for _, now := range []time.Time{
		mondayMorning,
		mondayMorning.AddDate(0, 0, 3),
		mondayMorning.AddDate(0, 0, 6),
	} {
		c := newComposer(t, now)
		u := user(domain.English, time.Date(1995, time.June, 15, 0, 0, 0, 0, time.UTC))
		weeks := domain.ElapsedWeeks(u.BirthDate, now)

		want := "<b>" + format.PrettyNumber(weeks, ",") + "</b>"
		require.Contains(t, c.Instant(u, "Q"), want)
		require.Contains(t, c.Weekly(u, "Q"), want)
		require.Contains(t, c.Profile(u), want)
	}
}

func TestComposer_Profile(t *testing.T) {
	c := newComposer(t, mondayMorning)

	text := c.Profile(user(domain.English, birth1990))

	require.Contains(t, text, "Birth Date: 01.01.1990")
	require.Contains(t, text, "Weeks Lived: <b>1,774</b>")
	require.Contains(t, text, "Weeks Left: <b>2,906</b> (of 4,680)")
	require.Contains(t, text, "<code>[█████░░░░░░░░░░]</code> <b>38%</b>")
}

func TestComposer_ProfileBeyondTotal(t *testing.T) {
	c := newComposer(t, mondayMorning)

	text := c.Profile(user(domain.Russian, time.Date(1920, time.January, 1, 0, 0, 0, 0, time.UTC)))

	require.Contains(t, text, "Осталось недель: <b>-")
	require.Contains(t, text, "<code>[███████████████]</code> <b>100%</b>")
}

func TestComposer_StaticTexts(t *testing.T) {
	c := newComposer(t, mondayMorning)

	require.Contains(t, c.Welcome(domain.English), "Welcome to Lifery!")
	require.Contains(t, c.Welcome(domain.Russian), "Добро пожаловать в Lifery!")
	require.Contains(t, c.InvalidFormat(domain.English), "Invalid format")
	require.Contains(t, c.NotRegistered(domain.Russian), "Вы еще не указали дату рождения")
	require.Contains(t, c.About(domain.English), "About Lifery")
	require.Contains(t, c.Reset(domain.English), "Data deleted.")
	require.NotEmpty(t, c.UnknownError(domain.Russian))
}

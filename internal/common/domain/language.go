package domain

import "strings"

// Language is the closed set of languages the bot speaks.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"
)

const DefaultLanguage = English

// Languages lists every supported language, default first.
func Languages() []Language {
	return []Language{English, Russian}
}

// ResolveLanguage maps a Telegram language_code (or a stored code) to a
// supported language. Any tag starting with "ru" is Russian, everything else
// is English.
func ResolveLanguage(tag string) Language {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(tag)), string(Russian)) {
		return Russian
	}

	return English
}

func (l Language) String() string {
	return string(l)
}

package dictionary

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
)

//go:embed dictionary.json
var embedded []byte

// Messages is the parsed set of texts for one language.
type Messages struct {
	DigitSeparator string
	Weekdays       [7]string // indexed by time.Weekday

	Welcome       *template.Template
	InvalidFormat *template.Template
	NotRegistered *template.Template
	UnknownError  *template.Template
	Instant       *template.Template
	Weekly        *template.Template
	NextReminder  *template.Template
	Profile       *template.Template
	About         *template.Template
	Reset         *template.Template

	Phrases []string
}

type rawMessages struct {
	DigitSeparator string   `json:"digit_separator"`
	Weekdays       []string `json:"weekdays"`

	Welcome       string `json:"welcome"`
	InvalidFormat string `json:"invalid_format"`
	NotRegistered string `json:"not_registered"`
	UnknownError  string `json:"unknown_error"`
	Instant       string `json:"instant"`
	Weekly        string `json:"weekly"`
	NextReminder  string `json:"next_reminder"`
	Profile       string `json:"profile"`
	About         string `json:"about"`
	Reset         string `json:"reset"`

	Phrases []string `json:"phrases"`
}

type Dictionary struct {
	messages map[domain.Language]*Messages
}

// New loads the dictionary embedded into the binary.
func New() (*Dictionary, error) {
	return Load(embedded)
}

// Load parses a JSON dictionary of the form {"<language>": {"<key>": "<template>"}}.
// Every supported language must be present with every template.
func Load(data []byte) (*Dictionary, error) {
	var raw map[domain.Language]rawMessages
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}

	messages := make(map[domain.Language]*Messages, len(raw))

	for _, lang := range domain.Languages() {
		rm, ok := raw[lang]
		if !ok {
			return nil, fmt.Errorf("language %q not found in dictionary", lang)
		}

		m, err := rm.parse(lang)
		if err != nil {
			return nil, err
		}

		messages[lang] = m
	}

	if len(messages[domain.DefaultLanguage].Phrases) == 0 {
		return nil, fmt.Errorf("no phrases for default language %q", domain.DefaultLanguage)
	}

	return &Dictionary{messages: messages}, nil
}

func (rm rawMessages) parse(lang domain.Language) (*Messages, error) {
	if len(rm.Weekdays) != 7 {
		return nil, fmt.Errorf("%s: expected 7 weekdays, got %d", lang, len(rm.Weekdays))
	}

	m := &Messages{
		DigitSeparator: rm.DigitSeparator,
		Phrases:        rm.Phrases,
	}
	copy(m.Weekdays[:], rm.Weekdays)

	templates := []struct {
		key  string
		text string
		dst  **template.Template
	}{
		{"welcome", rm.Welcome, &m.Welcome},
		{"invalid_format", rm.InvalidFormat, &m.InvalidFormat},
		{"not_registered", rm.NotRegistered, &m.NotRegistered},
		{"unknown_error", rm.UnknownError, &m.UnknownError},
		{"instant", rm.Instant, &m.Instant},
		{"weekly", rm.Weekly, &m.Weekly},
		{"next_reminder", rm.NextReminder, &m.NextReminder},
		{"profile", rm.Profile, &m.Profile},
		{"about", rm.About, &m.About},
		{"reset", rm.Reset, &m.Reset},
	}

	for _, t := range templates {
		if t.text == "" {
			return nil, fmt.Errorf("%s: value not found for key %q", lang, t.key)
		}

		tmpl, err := template.New(t.key).Option("missingkey=error").Parse(t.text)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse %q: %w", lang, t.key, err)
		}

		*t.dst = tmpl
	}

	return m, nil
}

// For returns the messages of lang, falling back to the default language.
func (d *Dictionary) For(lang domain.Language) *Messages {
	if m, ok := d.messages[lang]; ok {
		return m
	}

	return d.messages[domain.DefaultLanguage]
}

// Render executes tmpl with data. Values are HTML-escaped, so the result is
// safe to send with HTML parse mode.
func Render(tmpl *template.Template, data any) string {
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		log.Error("Render: failed to execute template", zap.String("key", tmpl.Name()), zap.Error(err))
		return ""
	}

	return buf.String()
}

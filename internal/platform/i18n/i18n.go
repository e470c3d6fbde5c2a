// Package i18n resolves request locales and prints catalog messages.
package i18n

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "sl_lang"
)

var (
	supported = []language.Tag{language.BritishEnglish}
	matcher   = language.NewMatcher(supported)
)

// Localizer is the message-printer contract used by templates and renderers.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ParseTag matches raw against the supported tags.
func ParseTag(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Default(), false
	}
	parsed, err := language.Parse(raw)
	if err != nil {
		return Default(), false
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return Default(), false
	}
	return supported[index], true
}

// ResolveTag picks the request language from the query param, then the
// language cookie, then Accept-Language. The bool reports whether the query
// param selected it and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return supported[index], false
			}
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Text returns the localized copy for key, or fallback verbatim when the
// catalog has no entry and the printer echoes the key back.
func Text(loc Localizer, key string, fallback string) string {
	if value, ok := lookup(loc, key); ok {
		return value
	}
	return fallback
}

// Textf is Text for keys with arguments; the fallback is a format string.
func Textf(loc Localizer, key string, format string, args ...any) string {
	if value, ok := lookup(loc, key, args...); ok {
		return value
	}
	return fmt.Sprintf(format, args...)
}

func lookup(loc Localizer, key string, args ...any) (string, bool) {
	if loc == nil {
		return "", false
	}
	value := strings.TrimSpace(loc.Sprintf(key, args...))
	if value == "" || strings.HasPrefix(value, key) {
		return "", false
	}
	return value, true
}

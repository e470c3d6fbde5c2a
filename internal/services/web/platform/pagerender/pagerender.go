// Package pagerender writes full pages inside the shared layout.
package pagerender

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/httpx"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

// Page describes one full-page response.
type Page struct {
	Title  string
	Status int
	Body   templ.Component
	Notice string
	Error  string
}

// Localizer resolves the request language and returns its printer.
func Localizer(r *http.Request) (*message.Printer, language.Tag) {
	tag, _ := i18n.ResolveTag(r)
	return i18n.Printer(tag), tag
}

// NoticeText maps a ?notice= key onto its localized banner copy.
func NoticeText(loc i18n.Localizer, r *http.Request) string {
	if r == nil {
		return ""
	}
	key := r.URL.Query().Get("notice")
	if key == "" {
		return ""
	}
	return i18n.Text(loc, "notice."+key, "")
}

// Write renders page in the layout with the request principal and language.
func Write(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	loc := i18n.Printer(tag)
	principal, _ := requestctx.PrincipalFromContext(httpx.RequestContext(r))

	chrome := templates.Chrome{
		Title:     page.Title,
		Lang:      tag.String(),
		Principal: principal,
		Notice:    page.Notice,
		Error:     page.Error,
		Loc:       loc,
	}
	if chrome.Notice == "" {
		chrome.Notice = NoticeText(loc, r)
	}
	if deps.Settings != nil {
		settings, err := deps.Settings.GetSettings(httpx.RequestContext(r))
		if err != nil {
			log.Printf("load settings for layout: %v", err)
		} else {
			chrome.RestaurantName = settings.RestaurantName
		}
	}

	status := page.Status
	if status <= 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return templates.Layout(chrome, page.Body).Render(httpx.RequestContext(r), w)
}

// Render writes page and logs a failed render; headers are already sent by then.
func Render(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) {
	if err := Write(w, r, deps, page); err != nil {
		log.Printf("render %s: %v", r.URL.Path, err)
	}
}

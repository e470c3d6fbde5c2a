package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

// Chrome is the shared page frame around every body.
type Chrome struct {
	Title          string
	Lang           string
	RestaurantName string
	Principal      requestctx.Principal
	Notice         string
	Error          string
	Loc            i18n.Localizer
}

const stylesheet = `body{font-family:system-ui,sans-serif;margin:0;color:#2b1d0e;background:#fffaf3}
header,main,footer{max-width:960px;margin:0 auto;padding:1rem}
nav a,nav button{margin-right:.75rem}
nav form{display:inline}
.notice{background:#e7f6e7;padding:.5rem 1rem}
.error{background:#fde8e8;padding:.5rem 1rem}
.field{display:block;margin:.5rem 0}
.field span{display:block;font-weight:600}
table{border-collapse:collapse;width:100%}
td,th{border-bottom:1px solid #eadfce;padding:.35rem;text-align:left;vertical-align:top}
.inline{display:inline-block;margin-right:.5rem}`

// Layout renders body inside the site chrome.
func Layout(chrome Chrome, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		loc := chrome.Loc
		name := chrome.RestaurantName
		if name == "" {
			name = "Spice Loop"
		}
		title := name
		if chrome.Title != "" {
			title = chrome.Title + " | " + name
		}
		lang := chrome.Lang
		if lang == "" {
			lang = i18n.Default().String()
		}

		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", lang)
		h.raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.el("title", "", title)
		h.raw("<style>" + stylesheet + "</style></head><body><header>")
		h.open("a", "href", routepath.Root, "class", "brand")
		h.open("strong")
		h.text(name)
		h.close("strong")
		h.close("a")
		h.open("nav")
		h.link(routepath.Menu, tr(loc, "nav.menu", "Menu"))
		h.link(routepath.Order, tr(loc, "nav.order", "Order"))
		h.link(routepath.Subscribe, tr(loc, "nav.subscribe", "Meal plans"))
		h.link(routepath.Catering, tr(loc, "nav.catering", "Catering"))
		h.link(routepath.SpecialOrder, tr(loc, "nav.special_order", "Special orders"))
		if chrome.Principal.SignedIn() {
			h.link(routepath.Dashboard, tr(loc, "nav.dashboard", "My meals"))
			if chrome.Principal.Role == "admin" {
				h.link(routepath.AdminOrders, tr(loc, "nav.admin", "Admin"))
			}
			h.postForm(routepath.Logout, "", func() {
				h.submit(tr(loc, "nav.logout", "Sign out"))
			})
		} else {
			h.link(routepath.Login, tr(loc, "nav.login", "Sign in"))
			h.link(routepath.Register, tr(loc, "nav.register", "Create account"))
		}
		h.close("nav")
		h.raw("</header><main>")
		if chrome.Notice != "" {
			h.el("p", "notice", chrome.Notice)
		}
		if chrome.Error != "" {
			h.el("p", "error", chrome.Error)
		}
		if chrome.Title != "" {
			h.el("h1", "", chrome.Title)
		}
		h.render(ctx, body)
		h.raw("</main><footer>")
		h.el("small", "", name)
		h.raw("</footer></body></html>")
	})
}

// ErrorBody renders the body of an error page.
func ErrorBody(loc i18n.Localizer, message string) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.el("p", "", message)
		h.open("p")
		h.link(routepath.Root, tr(loc, "error.back_home", "Back to the home page"))
		h.close("p")
	})
}

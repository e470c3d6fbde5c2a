package admin

import (
	"net/http"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/pagerender"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

const recentMessageLimit = 50

func (h handlers) handleRequests(w http.ResponseWriter, r *http.Request) {
	h.requestsPage(w, r, pagerender.Page{})
}

func (h handlers) requestsPage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	rawKind := r.URL.Query().Get("kind")
	requests, err := h.deps.Requests.ListRequests(r.Context(), rawKind)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	kind, _ := kitchen.ParseRequestKind(rawKind)
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "admin.requests.heading", "Catering and special requests")
	page.Body = templates.AdminRequests(loc, requests, kind)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleRequestStatus(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	if _, err := h.deps.Requests.UpdateRequestStatus(r.Context(), r.PathValue("id"), r.PostForm.Get("status")); err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) { h.requestsPage(w, r, page) })
		return
	}
	h.saved(w, r, routepath.AdminRequests)
}

func (h handlers) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.deps.Settings.GetSettings(r.Context())
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	h.settingsPage(w, r, settings, pagerender.Page{})
}

func (h handlers) settingsPage(w http.ResponseWriter, r *http.Request, settings kitchen.Settings, page pagerender.Page) {
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "admin.settings.heading", "Settings")
	page.Body = templates.AdminSettings(loc, settings)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	settings := kitchen.Settings{
		RestaurantName: r.PostForm.Get("restaurant_name"),
		ContactPhone:   r.PostForm.Get("contact_phone"),
		ContactEmail:   r.PostForm.Get("contact_email"),
		SMSEnabled:     checked(r.PostForm.Get("sms_enabled")),
		EmailEnabled:   checked(r.PostForm.Get("email_enabled")),
	}
	rerender := func(page pagerender.Page) { h.settingsPage(w, r, settings, page) }
	fee, err := kitchen.ParsePounds(r.PostForm.Get("delivery_fee"))
	if err != nil {
		weberror.Reject(w, r, h.deps, apperrors.InvalidArgument("delivery_fee", "delivery fee must be an amount in pounds"), rerender)
		return
	}
	settings.DeliveryFeePence = fee
	if _, err := h.deps.Settings.UpdateSettings(r.Context(), settings); err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}
	h.saved(w, r, routepath.AdminSettings)
}

// handleNotifications shows the newest outbox rows and their delivery state.
func (h handlers) handleNotifications(w http.ResponseWriter, r *http.Request) {
	messages, err := h.deps.Outbox.RecentMessages(r.Context(), recentMessageLimit)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	loc, _ := pagerender.Localizer(r)
	pagerender.Render(w, r, h.deps, pagerender.Page{
		Title: i18n.Text(loc, "admin.notifications.heading", "Notifications"),
		Body:  templates.AdminNotifications(loc, messages),
	})
}

package dashboard

import (
	"errors"
	"net/http"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/httpx"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/pagerender"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

const upcomingDays = 14

type handlers struct {
	deps module.Dependencies
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r, h.deps)
}

func (h handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	h.dashboardPage(w, r, pagerender.Page{})
}

// dashboardPage renders the selection form, or sends visitors without an
// active plan to the subscribe page.
func (h handlers) dashboardPage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	ctx := r.Context()
	principal, _ := requestctx.PrincipalFromContext(ctx)
	subscription, err := h.deps.Subscriptions.ActiveSubscription(ctx, principal.UserID)
	if errors.Is(err, kitchen.ErrSubscriptionRequired) {
		httpx.WriteRedirect(w, r, routepath.WithNotice(routepath.Subscribe, "subscription_required"))
		return
	}
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}

	now := h.deps.Now()
	window := h.deps.Selections.EvaluateWindow(now)
	options, err := h.deps.Selections.SelectionOptions(ctx, window.TargetDate)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	items, err := h.deps.Catalog.ListMenuItems(ctx, false)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	view := templates.DashboardView{Plan: subscription.Plan, Window: window, Options: options}
	current, err := h.deps.Selections.SelectionFor(ctx, principal.UserID, window.TargetDate)
	switch {
	case err == nil:
		view.CurrentID = current.MenuItemID
		view.CurrentName = names[current.MenuItemID]
	case apperrors.CodeOf(err) != apperrors.CodeNotFound:
		weberror.Write(w, r, h.deps, err)
		return
	}
	upcoming, err := h.deps.Selections.UpcomingSelections(ctx, principal.UserID, h.deps.Calendar.Today(now), upcomingDays)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	for _, selection := range upcoming {
		view.Upcoming = append(view.Upcoming, templates.SelectionRow{
			Date:     selection.Date,
			ItemName: names[selection.MenuItemID],
			Status:   selection.Status,
		})
	}

	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "dashboard.heading", "Choose tomorrow's meal")
	page.Body = templates.Dashboard(loc, view)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		weberror.Write(w, r, h.deps, kitchen.ErrInvalidDate)
		return
	}
	rerender := func(page pagerender.Page) { h.dashboardPage(w, r, page) }
	principal, _ := requestctx.PrincipalFromContext(r.Context())
	date, err := kitchen.ParseDate(r.PostForm.Get("date"))
	if err != nil {
		weberror.Reject(w, r, h.deps, kitchen.ErrInvalidDate, rerender)
		return
	}
	if _, err := h.deps.Selections.SelectItem(r.Context(), principal.UserID, r.PostForm.Get("menu_item_id"), date, h.deps.Now()); err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}
	httpx.WriteRedirect(w, r, routepath.WithNotice(routepath.Dashboard, "selection_saved"))
}

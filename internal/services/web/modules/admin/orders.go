package admin

import (
	"net/http"
	"net/url"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/pagerender"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

const orderBoardLimit = 100

func (h handlers) handleOrders(w http.ResponseWriter, r *http.Request) {
	h.ordersPage(w, r, pagerender.Page{})
}

// ordersPage renders the board for the ?filter query. A bad filter shows
// the error over an unfiltered board.
func (h handlers) ordersPage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	ctx := r.Context()
	rawFilter := r.URL.Query().Get("filter")
	orders, err := h.deps.Ordering.ListOrders(ctx, rawFilter, orderBoardLimit)
	if err != nil {
		status := weberror.Status(err)
		if status >= http.StatusInternalServerError {
			weberror.Write(w, r, h.deps, err)
			return
		}
		loc, _ := pagerender.Localizer(r)
		page.Status = status
		page.Error = weberror.PublicMessage(loc, err)
		if orders, err = h.deps.Ordering.ListOrders(ctx, "", orderBoardLimit); err != nil {
			weberror.Write(w, r, h.deps, err)
			return
		}
	}
	riders, err := h.deps.Riders.ListRiders(ctx, true)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "admin.orders.heading", "Orders")
	page.Body = templates.AdminOrders(loc, templates.AdminOrdersView{Orders: orders, Riders: riders, Filter: rawFilter})
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	if _, err := h.deps.Ordering.UpdateOrderStatus(r.Context(), r.PathValue("id"), r.PostForm.Get("status")); err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) { h.ordersPage(w, r, page) })
		return
	}
	h.saved(w, r, routepath.AdminOrders)
}

func (h handlers) handleAssignRider(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	if _, err := h.deps.Ordering.AssignRider(r.Context(), r.PathValue("id"), r.PostForm.Get("rider_id")); err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) { h.ordersPage(w, r, page) })
		return
	}
	h.saved(w, r, routepath.AdminOrders)
}

func (h handlers) handleRiders(w http.ResponseWriter, r *http.Request) {
	h.ridersPage(w, r, url.Values{}, pagerender.Page{})
}

func (h handlers) ridersPage(w http.ResponseWriter, r *http.Request, values url.Values, page pagerender.Page) {
	riders, err := h.deps.Riders.ListRiders(r.Context(), false)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "admin.riders.heading", "Riders")
	page.Body = templates.AdminRiders(loc, riders, values)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleCreateRider(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	if _, err := h.deps.Riders.CreateRider(r.Context(), r.PostForm.Get("name"), r.PostForm.Get("phone")); err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) { h.ridersPage(w, r, r.PostForm, page) })
		return
	}
	h.saved(w, r, routepath.AdminRiders)
}

func (h handlers) handleRiderActive(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	if err := h.deps.Riders.SetRiderActive(r.Context(), r.PathValue("id"), checked(r.PostForm.Get("active"))); err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) { h.ridersPage(w, r, url.Values{}, page) })
		return
	}
	h.saved(w, r, routepath.AdminRiders)
}

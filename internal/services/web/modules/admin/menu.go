package admin

import (
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/pagerender"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

func (h handlers) handleMenu(w http.ResponseWriter, r *http.Request) {
	h.menuPage(w, r, url.Values{}, pagerender.Page{})
}

func (h handlers) menuPage(w http.ResponseWriter, r *http.Request, values url.Values, page pagerender.Page) {
	items, err := h.deps.Catalog.ListMenuItems(r.Context(), false)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "admin.menu.heading", "Menu items")
	page.Body = templates.AdminMenu(loc, items, values)
	pagerender.Render(w, r, h.deps, page)
}

// menuItemInput reads the shared create and update fields.
func menuItemInput(form url.Values) (kitchen.MenuItemInput, error) {
	price, err := kitchen.ParsePounds(form.Get("price"))
	if err != nil {
		return kitchen.MenuItemInput{}, apperrors.InvalidArgument("price", "price must be an amount in pounds")
	}
	return kitchen.MenuItemInput{
		Name:        form.Get("name"),
		Description: form.Get("description"),
		Category:    form.Get("category"),
		PricePence:  price,
		ImageURL:    strings.TrimSpace(form.Get("image_url")),
		Available:   checked(form.Get("available")),
	}, nil
}

func (h handlers) handleCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	rerender := func(page pagerender.Page) { h.menuPage(w, r, r.PostForm, page) }
	input, err := menuItemInput(r.PostForm)
	if err == nil {
		_, err = h.deps.Catalog.CreateMenuItem(r.Context(), input)
	}
	if err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}
	h.saved(w, r, routepath.AdminMenu)
}

func (h handlers) handleUpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	rerender := func(page pagerender.Page) { h.menuPage(w, r, url.Values{}, page) }
	input, err := menuItemInput(r.PostForm)
	if err == nil {
		_, err = h.deps.Catalog.UpdateMenuItem(r.Context(), r.PathValue("id"), input)
	}
	if err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}
	h.saved(w, r, routepath.AdminMenu)
}

func (h handlers) handleWeekly(w http.ResponseWriter, r *http.Request) {
	h.weeklyPage(w, r, pagerender.Page{})
}

func (h handlers) weeklyPage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	ctx := r.Context()
	days, err := h.deps.Catalog.WeeklyMenu(ctx)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	items, err := h.deps.Catalog.ListMenuItems(ctx, false)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "admin.weekly.heading", "Weekly subscription menu")
	page.Body = templates.AdminWeekly(loc, templates.AdminWeeklyView{
		Days:        days,
		Items:       items,
		ConfirmDate: h.deps.Calendar.Tomorrow(h.deps.Now()),
	})
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleWeeklyOption(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	itemID, day := r.PostForm.Get("menu_item_id"), r.PostForm.Get("day")
	var err error
	switch r.PostForm.Get("action") {
	case "set":
		_, err = h.deps.Catalog.SetWeeklyOption(r.Context(), itemID, day, checked(r.PostForm.Get("available")))
	case "remove":
		err = h.deps.Catalog.RemoveWeeklyOption(r.Context(), itemID, day)
	default:
		err = apperrors.InvalidArgument("action", "unknown weekly menu action")
	}
	if err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) { h.weeklyPage(w, r, page) })
		return
	}
	h.saved(w, r, routepath.AdminWeekly)
}

// handleConfirmSelections locks the pending choices for one delivery day.
func (h handlers) handleConfirmSelections(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	rerender := func(page pagerender.Page) { h.weeklyPage(w, r, page) }
	date, err := kitchen.ParseDate(r.PostForm.Get("date"))
	if err != nil {
		weberror.Reject(w, r, h.deps, apperrors.InvalidArgument("date", "date must be YYYY-MM-DD"), rerender)
		return
	}
	count, err := h.deps.Selections.ConfirmSelections(r.Context(), date, h.deps.Now())
	if err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}
	loc, _ := pagerender.Localizer(r)
	h.weeklyPage(w, r, pagerender.Page{
		Notice: i18n.Textf(loc, "admin.selections_confirmed", "%d selections confirmed for %s.", count, date.String()),
	})
}

package public

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/pagerender"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

const featuredCount = 3

type handlers struct {
	deps module.Dependencies
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r, h.deps)
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	loc, _ := pagerender.Localizer(r)
	settings, err := h.deps.Settings.GetSettings(ctx)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	items, err := h.deps.Catalog.ListMenuItems(ctx, true)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	if len(items) > featuredCount {
		items = items[:featuredCount]
	}
	pagerender.Render(w, r, h.deps, pagerender.Page{Body: templates.Home(loc, settings, items)})
}

func (h handlers) handleMenu(w http.ResponseWriter, r *http.Request) {
	loc, _ := pagerender.Localizer(r)
	items, err := h.deps.Catalog.ListMenuItems(r.Context(), true)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	pagerender.Render(w, r, h.deps, pagerender.Page{
		Title: i18n.Text(loc, "menu.heading", "Our menu"),
		Body:  templates.Menu(loc, items),
	})
}

func (h handlers) handleOrderForm(w http.ResponseWriter, r *http.Request) {
	h.orderPage(w, r, prefill(r), pagerender.Page{})
}

func (h handlers) orderPage(w http.ResponseWriter, r *http.Request, values url.Values, page pagerender.Page) {
	ctx := r.Context()
	loc, _ := pagerender.Localizer(r)
	items, err := h.deps.Catalog.ListMenuItems(ctx, true)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	settings, err := h.deps.Settings.GetSettings(ctx)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	page.Title = i18n.Text(loc, "order.heading", "Place an order")
	page.Body = templates.OrderForm(loc, items, settings.DeliveryFeePence, values)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		weberror.Write(w, r, h.deps, apperrors.InvalidArgument("form", "unreadable form"))
		return
	}
	rerender := func(page pagerender.Page) { h.orderPage(w, r, r.PostForm, page) }

	items, err := h.deps.Catalog.ListMenuItems(r.Context(), true)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	principal, _ := requestctx.PrincipalFromContext(r.Context())
	input := kitchen.PlaceOrderInput{
		UserID:       principal.UserID,
		CustomerName: r.PostForm.Get("name"),
		Email:        r.PostForm.Get("email"),
		Phone:        r.PostForm.Get("phone"),
		Address:      r.PostForm.Get("address"),
		Notes:        r.PostForm.Get("notes"),
		DeliveryDate: r.PostForm.Get("delivery_date"),
		DeliveryTime: r.PostForm.Get("delivery_time"),
	}
	for _, item := range items {
		raw := strings.TrimSpace(r.PostForm.Get(templates.QuantityField(item.ID)))
		if raw == "" {
			continue
		}
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			weberror.Reject(w, r, h.deps, apperrors.InvalidArgument("quantity", "quantity must be a number"), rerender)
			return
		}
		if quantity == 0 {
			continue
		}
		input.Lines = append(input.Lines, kitchen.OrderLineInput{MenuItemID: item.ID, Quantity: quantity})
	}

	order, err := h.deps.Ordering.PlaceOrder(r.Context(), input)
	if err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}
	loc, _ := pagerender.Localizer(r)
	pagerender.Render(w, r, h.deps, pagerender.Page{
		Title: i18n.Text(loc, "order.heading", "Place an order"),
		Body:  templates.OrderPlaced(loc, order),
	})
}

func (h handlers) handleCateringForm(w http.ResponseWriter, r *http.Request) {
	h.requestPage(w, r, kitchen.RequestCatering, prefill(r), pagerender.Page{})
}

func (h handlers) handleSpecialOrderForm(w http.ResponseWriter, r *http.Request) {
	h.requestPage(w, r, kitchen.RequestSpecialOrder, prefill(r), pagerender.Page{})
}

func (h handlers) requestPage(w http.ResponseWriter, r *http.Request, kind kitchen.RequestKind, values url.Values, page pagerender.Page) {
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "special_order.heading", "Special order request")
	if kind == kitchen.RequestCatering {
		page.Title = i18n.Text(loc, "catering.heading", "Catering enquiry")
	}
	page.Body = templates.RequestForm(loc, kind, values)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleSubmitCatering(w http.ResponseWriter, r *http.Request) {
	h.submitRequest(w, r, kitchen.RequestCatering)
}

func (h handlers) handleSubmitSpecialOrder(w http.ResponseWriter, r *http.Request) {
	h.submitRequest(w, r, kitchen.RequestSpecialOrder)
}

func (h handlers) submitRequest(w http.ResponseWriter, r *http.Request, kind kitchen.RequestKind) {
	if err := r.ParseForm(); err != nil {
		weberror.Write(w, r, h.deps, apperrors.InvalidArgument("form", "unreadable form"))
		return
	}
	rerender := func(page pagerender.Page) { h.requestPage(w, r, kind, r.PostForm, page) }
	input := kitchen.RequestInput{
		Name:      r.PostForm.Get("name"),
		Email:     r.PostForm.Get("email"),
		Phone:     r.PostForm.Get("phone"),
		EventDate: r.PostForm.Get("event_date"),
		Details:   r.PostForm.Get("details"),
	}
	if raw := strings.TrimSpace(r.PostForm.Get("guests")); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil {
			weberror.Reject(w, r, h.deps, apperrors.InvalidArgument("guests", "guests must be a number"), rerender)
			return
		}
		input.Guests = guests
	}

	var err error
	if kind == kitchen.RequestCatering {
		_, err = h.deps.Requests.SubmitCatering(r.Context(), input)
	} else {
		_, err = h.deps.Requests.SubmitSpecialOrder(r.Context(), input)
	}
	if err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}
	loc, _ := pagerender.Localizer(r)
	pagerender.Render(w, r, h.deps, pagerender.Page{Body: templates.RequestReceived(loc)})
}

// prefill seeds form values from the signed-in principal.
func prefill(r *http.Request) url.Values {
	values := url.Values{}
	if principal, ok := requestctx.PrincipalFromContext(r.Context()); ok {
		values.Set("name", principal.Name)
	}
	return values
}

package templates

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

// QuantityField is the order form input name for one menu item.
func QuantityField(itemID string) string {
	return "qty_" + itemID
}

// Home renders the landing page.
func Home(loc i18n.Localizer, settings kitchen.Settings, featured []kitchen.MenuItem) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.el("p", "lead", tr(loc, "home.tagline", "Home-style curries, delivered across town."))
		if len(featured) > 0 {
			h.open("ul")
			for _, item := range featured {
				h.open("li")
				h.text(item.Name + " " + kitchen.FormatPence(item.PricePence))
				h.close("li")
			}
			h.close("ul")
		}
		h.open("p")
		h.link(routepath.Order, tr(loc, "home.order_cta", "Order for delivery"))
		h.text(" ")
		h.link(routepath.Subscribe, tr(loc, "home.subscribe_cta", "Start a weekly meal plan"))
		h.close("p")
		if settings.ContactPhone != "" {
			h.el("p", "", trf(loc, "home.contact", "Call us on %s", settings.ContactPhone))
		}
	})
}

// Menu renders the available items grouped by category.
func Menu(loc i18n.Localizer, items []kitchen.MenuItem) templ.Component {
	return component(func(_ context.Context, h *writer) {
		if len(items) == 0 {
			h.el("p", "", tr(loc, "menu.empty", "The menu is being prepared. Check back soon."))
			return
		}
		for _, category := range kitchen.Categories {
			var group []kitchen.MenuItem
			for _, item := range items {
				if item.Category == category {
					group = append(group, item)
				}
			}
			if len(group) == 0 {
				continue
			}
			h.el("h2", "", tr(loc, "category."+string(category), titleCase(string(category))))
			h.open("ul", "class", "menu")
			for _, item := range group {
				h.open("li")
				h.el("strong", "", item.Name)
				h.text(" " + kitchen.FormatPence(item.PricePence))
				if item.Description != "" {
					h.el("p", "", item.Description)
				}
				h.close("li")
			}
			h.close("ul")
		}
	})
}

// OrderForm renders the one-off order form.
func OrderForm(loc i18n.Localizer, items []kitchen.MenuItem, deliveryFee int64, values url.Values) templ.Component {
	return component(func(_ context.Context, h *writer) {
		if len(items) == 0 {
			h.el("p", "", tr(loc, "menu.empty", "The menu is being prepared. Check back soon."))
			return
		}
		h.postForm(routepath.Order, "order", func() {
			h.raw("<table><thead><tr>")
			h.el("th", "", tr(loc, "order.item", "Dish"))
			h.el("th", "", tr(loc, "order.price", "Price"))
			h.el("th", "", tr(loc, "order.quantity", "Quantity"))
			h.raw("</tr></thead><tbody>")
			for _, item := range items {
				name := QuantityField(item.ID)
				h.raw("<tr>")
				h.el("td", "", item.Name)
				h.el("td", "", kitchen.FormatPence(item.PricePence))
				h.raw("<td>")
				h.open("input", "type", "number", "name", name, "min", "0", "max", "50", "value", values.Get(name))
				h.raw("</td></tr>")
			}
			h.raw("</tbody></table>")
			h.el("p", "", trf(loc, "order.delivery_fee", "Delivery fee: %s", kitchen.FormatPence(deliveryFee)))
			h.field(field{Label: tr(loc, "form.name", "Name"), Name: "name", Value: values.Get("name"), Required: true})
			h.field(field{Label: tr(loc, "form.phone", "Phone"), Name: "phone", Type: "tel", Value: values.Get("phone"), Required: true})
			h.field(field{Label: tr(loc, "form.email", "Email (optional)"), Name: "email", Type: "email", Value: values.Get("email")})
			h.field(field{Label: tr(loc, "form.address", "Delivery address"), Name: "address", Value: values.Get("address"), Rows: 3, Required: true})
			h.field(field{Label: tr(loc, "form.delivery_date", "Delivery date (optional)"), Name: "delivery_date", Type: "date", Value: values.Get("delivery_date")})
			h.field(field{Label: tr(loc, "form.delivery_time", "Delivery time (optional)"), Name: "delivery_time", Type: "time", Value: values.Get("delivery_time")})
			h.field(field{Label: tr(loc, "form.notes", "Notes"), Name: "notes", Value: values.Get("notes"), Rows: 2})
			h.submit(tr(loc, "order.submit", "Place order"))
		})
	})
}

// OrderPlaced renders the order confirmation.
func OrderPlaced(loc i18n.Localizer, order kitchen.Order) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.el("p", "notice", trf(loc, "order.placed", "Thanks %s, your order %s has been received.", order.CustomerName, kitchen.ShortRef(order.ID)))
		h.open("ul")
		for _, line := range order.Lines {
			h.open("li")
			h.text(strconv.Itoa(line.Quantity) + " x " + line.Name + " " + kitchen.FormatPence(line.Subtotal()))
			h.close("li")
		}
		h.close("ul")
		if order.DeliveryFeePence > 0 {
			h.el("p", "", trf(loc, "order.delivery_fee", "Delivery fee: %s", kitchen.FormatPence(order.DeliveryFeePence)))
		}
		h.el("p", "", trf(loc, "order.total", "Total: %s", kitchen.FormatPence(order.TotalPence)))
	})
}

// RequestForm renders the catering or special-order enquiry form.
func RequestForm(loc i18n.Localizer, kind kitchen.RequestKind, values url.Values) templ.Component {
	return component(func(_ context.Context, h *writer) {
		action := routepath.SpecialOrder
		if kind == kitchen.RequestCatering {
			action = routepath.Catering
		}
		h.postForm(action, "request", func() {
			h.field(field{Label: tr(loc, "form.name", "Name"), Name: "name", Value: values.Get("name"), Required: true})
			h.field(field{Label: tr(loc, "form.phone", "Phone"), Name: "phone", Type: "tel", Value: values.Get("phone"), Required: true})
			h.field(field{Label: tr(loc, "form.email", "Email (optional)"), Name: "email", Type: "email", Value: values.Get("email")})
			if kind == kitchen.RequestCatering {
				h.field(field{Label: tr(loc, "form.event_date", "Event date"), Name: "event_date", Type: "date", Value: values.Get("event_date"), Required: true})
				h.field(field{Label: tr(loc, "form.guests", "Guests"), Name: "guests", Type: "number", Min: "10", Value: values.Get("guests"), Required: true})
			} else {
				h.field(field{Label: tr(loc, "form.event_date", "Needed by (optional)"), Name: "event_date", Type: "date", Value: values.Get("event_date")})
			}
			h.field(field{Label: tr(loc, "form.details", "Details"), Name: "details", Value: values.Get("details"), Rows: 5, Required: kind == kitchen.RequestSpecialOrder})
			h.submit(tr(loc, "request.submit", "Send request"))
		})
	})
}

// RequestReceived renders the enquiry acknowledgement.
func RequestReceived(loc i18n.Localizer) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.el("p", "notice", tr(loc, "request.received", "Thanks, we have your request and will be in touch."))
	})
}

func titleCase(raw string) string {
	raw = strings.ReplaceAll(raw, "_", " ")
	if raw == "" {
		return raw
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}

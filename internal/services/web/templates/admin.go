package templates

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	notifications "github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

// AdminTabs renders the back-office section links.
func AdminTabs(loc i18n.Localizer) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.open("nav", "class", "admin")
		h.link(routepath.AdminOrders, tr(loc, "admin.orders.heading", "Orders"))
		h.link(routepath.AdminMenu, tr(loc, "admin.menu.heading", "Menu items"))
		h.link(routepath.AdminWeekly, tr(loc, "admin.weekly.heading", "Weekly subscription menu"))
		h.link(routepath.AdminRiders, tr(loc, "admin.riders.heading", "Riders"))
		h.link(routepath.AdminRequests, tr(loc, "admin.requests.heading", "Catering and special requests"))
		h.link(routepath.AdminNotifications, tr(loc, "admin.notifications.heading", "Notifications"))
		h.link(routepath.AdminSettings, tr(loc, "admin.settings.heading", "Settings"))
		h.close("nav")
	})
}

// PoundsValue renders pence as a form value such as "12.50".
func PoundsValue(pence int64) string {
	if pence < 0 {
		return "-" + PoundsValue(-pence)
	}
	return fmt.Sprintf("%d.%02d", pence/100, pence%100)
}

func categoryOptions(loc i18n.Localizer, selected kitchen.Category) []option {
	options := make([]option, 0, len(kitchen.Categories))
	for _, category := range kitchen.Categories {
		options = append(options, option{Value: string(category), Label: tr(loc, "category."+string(category), titleCase(string(category))), Selected: category == selected})
	}
	return options
}

// AdminMenu renders the menu item editor.
func AdminMenu(loc i18n.Localizer, items []kitchen.MenuItem, values url.Values) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.render(ctx, AdminTabs(loc))
		h.el("h2", "", tr(loc, "admin.menu.new", "Add a dish"))
		h.postForm(routepath.AdminMenu, "menu-new", func() {
			h.field(field{Label: tr(loc, "form.name", "Name"), Name: "name", Value: values.Get("name"), Required: true})
			h.field(field{Label: tr(loc, "form.description", "Description"), Name: "description", Value: values.Get("description"), Rows: 2})
			h.field(field{Label: tr(loc, "form.category", "Category"), Name: "category", Options: categoryOptions(loc, kitchen.Category(values.Get("category"))), Required: true})
			h.field(field{Label: tr(loc, "form.price", "Price (£)"), Name: "price", Value: values.Get("price"), Required: true})
			h.field(field{Label: tr(loc, "form.image_url", "Image URL"), Name: "image_url", Type: "url", Value: values.Get("image_url")})
			h.checkbox(tr(loc, "form.available", "Available"), "available", values.Get("available") != "" || len(values) == 0)
			h.submit(tr(loc, "admin.menu.create", "Add dish"))
		})

		h.el("h2", "", tr(loc, "admin.menu.existing", "Current dishes"))
		for _, item := range items {
			h.postForm(routepath.AdminMenuItem(item.ID), "menu-item", func() {
				h.field(field{Label: tr(loc, "form.name", "Name"), Name: "name", Value: item.Name, Required: true})
				h.field(field{Label: tr(loc, "form.description", "Description"), Name: "description", Value: item.Description, Rows: 2})
				h.field(field{Label: tr(loc, "form.category", "Category"), Name: "category", Options: categoryOptions(loc, item.Category)})
				h.field(field{Label: tr(loc, "form.price", "Price (£)"), Name: "price", Value: PoundsValue(item.PricePence), Required: true})
				h.field(field{Label: tr(loc, "form.image_url", "Image URL"), Name: "image_url", Type: "url", Value: item.ImageURL})
				h.checkbox(tr(loc, "form.available", "Available"), "available", item.Available)
				h.submit(tr(loc, "admin.save", "Save"))
			})
		}
	})
}

// AdminWeeklyView is the weekly menu editor model.
type AdminWeeklyView struct {
	Days        []kitchen.WeeklyMenuDay
	Items       []kitchen.MenuItem
	ConfirmDate kitchen.Date
}

// AdminWeekly renders the weekly subscription menu editor.
func AdminWeekly(loc i18n.Localizer, view AdminWeeklyView) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.render(ctx, AdminTabs(loc))
		itemOptions := make([]option, 0, len(view.Items))
		for _, item := range view.Items {
			itemOptions = append(itemOptions, option{Value: item.ID, Label: item.Name})
		}
		dayOptions := make([]option, 0, len(kitchen.MenuDays))
		for _, day := range kitchen.MenuDays {
			dayOptions = append(dayOptions, option{Value: string(day), Label: titleCase(string(day))})
		}
		if len(itemOptions) > 0 {
			h.postForm(routepath.AdminWeekly, "weekly-add", func() {
				h.hidden("action", "set")
				h.field(field{Label: tr(loc, "form.dish", "Dish"), Name: "menu_item_id", Options: itemOptions, Required: true})
				h.field(field{Label: tr(loc, "form.day", "Day"), Name: "day", Options: dayOptions, Required: true})
				h.checkbox(tr(loc, "form.available", "Available"), "available", true)
				h.submit(tr(loc, "admin.weekly.add", "Offer on this day"))
			})
		}

		for _, day := range view.Days {
			h.el("h2", "", titleCase(string(day.Day)))
			if len(day.Entries) == 0 {
				h.el("p", "", tr(loc, "admin.weekly.empty", "Nothing offered yet."))
				continue
			}
			h.raw("<table><tbody>")
			for _, entry := range day.Entries {
				h.raw("<tr>")
				h.el("td", "", entry.Item.Name)
				state := tr(loc, "admin.weekly.offered", "Offered")
				toggleLabel := tr(loc, "admin.weekly.pause", "Pause")
				next := ""
				if !entry.Option.Available {
					state = tr(loc, "admin.weekly.paused", "Paused")
					toggleLabel = tr(loc, "admin.weekly.resume", "Resume")
					next = "on"
				}
				h.el("td", "", state)
				h.raw("<td>")
				h.postForm(routepath.AdminWeekly, "inline", func() {
					h.hidden("action", "set")
					h.hidden("menu_item_id", entry.Item.ID)
					h.hidden("day", string(day.Day))
					h.hidden("available", next)
					h.submit(toggleLabel)
				})
				h.postForm(routepath.AdminWeekly, "inline", func() {
					h.hidden("action", "remove")
					h.hidden("menu_item_id", entry.Item.ID)
					h.hidden("day", string(day.Day))
					h.submit(tr(loc, "admin.weekly.remove", "Remove"))
				})
				h.raw("</td></tr>")
			}
			h.raw("</tbody></table>")
		}

		h.el("h2", "", tr(loc, "admin.selections.heading", "Subscriber selections"))
		h.postForm(routepath.AdminConfirm, "confirm", func() {
			h.field(field{Label: tr(loc, "form.date", "Date"), Name: "date", Type: "date", Value: view.ConfirmDate.String(), Required: true})
			h.submit(tr(loc, "admin.selections.confirm", "Confirm selections for prep"))
		})
	})
}

// AdminOrdersView is the order board model.
type AdminOrdersView struct {
	Orders []kitchen.Order
	Riders []kitchen.Rider
	Filter string
}

// AdminOrders renders the order board.
func AdminOrders(loc i18n.Localizer, view AdminOrdersView) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.render(ctx, AdminTabs(loc))
		h.open("form", "method", "get", "action", routepath.AdminOrders)
		h.field(field{Label: tr(loc, "admin.orders.filter", `Filter (for example status = "pending")`), Name: "filter", Value: view.Filter})
		h.submit(tr(loc, "admin.orders.apply", "Apply"))
		h.close("form")

		if len(view.Orders) == 0 {
			h.el("p", "", tr(loc, "admin.orders.empty", "No orders match."))
			return
		}
		riderNames := make(map[string]string, len(view.Riders))
		for _, rider := range view.Riders {
			riderNames[rider.ID] = rider.Name
		}
		h.raw("<table><thead><tr>")
		for _, heading := range []string{
			tr(loc, "admin.orders.ref", "Ref"),
			tr(loc, "admin.orders.customer", "Customer"),
			tr(loc, "admin.orders.items", "Items"),
			tr(loc, "admin.orders.total", "Total"),
			tr(loc, "admin.orders.delivery", "Delivery"),
			tr(loc, "admin.orders.status", "Status"),
			tr(loc, "admin.orders.rider", "Rider"),
		} {
			h.el("th", "", heading)
		}
		h.raw("</tr></thead><tbody>")
		for _, order := range view.Orders {
			h.raw("<tr>")
			h.el("td", "", kitchen.ShortRef(order.ID))
			h.raw("<td>")
			h.el("div", "", order.CustomerName)
			h.el("small", "", order.Phone+" · "+order.Address)
			h.raw("</td><td>")
			for _, line := range order.Lines {
				h.el("div", "", strconv.Itoa(line.Quantity)+" x "+line.Name)
			}
			h.raw("</td>")
			h.el("td", "", kitchen.FormatPence(order.TotalPence))
			delivery := tr(loc, "admin.orders.asap", "As soon as possible")
			if order.DeliveryDate != nil && order.DeliveryTime != nil {
				delivery = order.DeliveryDate.String() + " " + order.DeliveryTime.String()
			}
			h.el("td", "", delivery)
			h.raw("<td>")
			h.el("div", "", OrderStatusLabel(loc, order.Status))
			if !order.Status.Terminal() {
				statuses := make([]option, 0, len(kitchen.OrderStatuses))
				for _, status := range kitchen.OrderStatuses {
					if kitchen.CanTransition(order.Status, status) {
						statuses = append(statuses, option{Value: string(status), Label: OrderStatusLabel(loc, status)})
					}
				}
				if len(statuses) > 0 {
					h.postForm(routepath.AdminOrderStatus(order.ID), "inline", func() {
						h.field(field{Label: tr(loc, "admin.orders.move", "Move to"), Name: "status", Options: statuses})
						h.submit(tr(loc, "admin.save", "Save"))
					})
				}
			}
			h.raw("</td><td>")
			if name := riderNames[order.RiderID]; name != "" {
				h.el("div", "", name)
			}
			if !order.Status.Terminal() && len(view.Riders) > 0 {
				riders := make([]option, 0, len(view.Riders))
				for _, rider := range view.Riders {
					riders = append(riders, option{Value: rider.ID, Label: rider.Name, Selected: rider.ID == order.RiderID})
				}
				h.postForm(routepath.AdminOrderRider(order.ID), "inline", func() {
					h.field(field{Label: tr(loc, "admin.orders.assign", "Assign"), Name: "rider_id", Options: riders})
					h.submit(tr(loc, "admin.save", "Save"))
				})
			}
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table>")
	})
}

// OrderStatusLabel names an order status for display.
func OrderStatusLabel(loc i18n.Localizer, status kitchen.OrderStatus) string {
	return tr(loc, "order.status."+string(status), titleCase(string(status)))
}

// AdminRiders renders the rider roster.
func AdminRiders(loc i18n.Localizer, riders []kitchen.Rider, values url.Values) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.render(ctx, AdminTabs(loc))
		h.postForm(routepath.AdminRiders, "rider-new", func() {
			h.field(field{Label: tr(loc, "form.name", "Name"), Name: "name", Value: values.Get("name"), Required: true})
			h.field(field{Label: tr(loc, "form.phone", "Phone"), Name: "phone", Type: "tel", Value: values.Get("phone"), Required: true})
			h.submit(tr(loc, "admin.riders.add", "Add rider"))
		})
		if len(riders) == 0 {
			return
		}
		h.raw("<table><tbody>")
		for _, rider := range riders {
			h.raw("<tr>")
			h.el("td", "", rider.Name)
			h.el("td", "", rider.Phone)
			label := tr(loc, "admin.riders.deactivate", "Deactivate")
			next := ""
			if !rider.Active {
				label = tr(loc, "admin.riders.activate", "Activate")
				next = "on"
			}
			h.raw("<td>")
			h.postForm(routepath.AdminRiderActive(rider.ID), "inline", func() {
				h.hidden("active", next)
				h.submit(label)
			})
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table>")
	})
}

// AdminRequests renders catering and special-order enquiries.
func AdminRequests(loc i18n.Localizer, requests []kitchen.ServiceRequest, kind kitchen.RequestKind) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.render(ctx, AdminTabs(loc))
		h.open("p")
		h.link(routepath.AdminRequests, tr(loc, "admin.requests.all", "All"))
		h.text(" ")
		h.link(routepath.AdminRequests+"?kind="+string(kitchen.RequestCatering), tr(loc, "nav.catering", "Catering"))
		h.text(" ")
		h.link(routepath.AdminRequests+"?kind="+string(kitchen.RequestSpecialOrder), tr(loc, "nav.special_order", "Special orders"))
		h.close("p")
		if len(requests) == 0 {
			h.el("p", "", tr(loc, "admin.requests.empty", "No requests yet."))
			return
		}
		h.raw("<table><tbody>")
		for _, request := range requests {
			h.raw("<tr>")
			h.el("td", "", titleCase(string(request.Kind)))
			h.raw("<td>")
			h.el("div", "", request.Name)
			h.el("small", "", request.Phone+" "+request.Email)
			h.raw("</td>")
			event := "-"
			if request.EventDate != nil {
				event = request.EventDate.String()
			}
			if request.Guests > 0 {
				event += " (" + strconv.Itoa(request.Guests) + ")"
			}
			h.el("td", "", event)
			h.el("td", "", request.Details)
			h.raw("<td>")
			statuses := make([]option, 0, len(kitchen.RequestStatuses))
			for _, status := range kitchen.RequestStatuses {
				statuses = append(statuses, option{Value: string(status), Label: titleCase(string(status)), Selected: status == request.Status})
			}
			h.postForm(routepath.AdminRequestStatus(request.ID), "inline", func() {
				h.field(field{Label: tr(loc, "admin.orders.status", "Status"), Name: "status", Options: statuses})
				h.submit(tr(loc, "admin.save", "Save"))
			})
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table>")
	})
}

// AdminSettings renders the restaurant settings form.
func AdminSettings(loc i18n.Localizer, settings kitchen.Settings) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.render(ctx, AdminTabs(loc))
		h.postForm(routepath.AdminSettings, "settings", func() {
			h.field(field{Label: tr(loc, "form.restaurant_name", "Restaurant name"), Name: "restaurant_name", Value: settings.RestaurantName, Required: true})
			h.field(field{Label: tr(loc, "form.contact_phone", "Contact phone"), Name: "contact_phone", Type: "tel", Value: settings.ContactPhone})
			h.field(field{Label: tr(loc, "form.contact_email", "Contact email"), Name: "contact_email", Type: "email", Value: settings.ContactEmail})
			h.field(field{Label: tr(loc, "form.delivery_fee", "Delivery fee (£)"), Name: "delivery_fee", Value: PoundsValue(settings.DeliveryFeePence), Required: true})
			h.checkbox(tr(loc, "form.sms_enabled", "Send SMS notifications"), "sms_enabled", settings.SMSEnabled)
			h.checkbox(tr(loc, "form.email_enabled", "Send email notifications"), "email_enabled", settings.EmailEnabled)
			h.submit(tr(loc, "admin.save", "Save"))
		})
	})
}

// AdminNotifications renders the recent outbox messages.
func AdminNotifications(loc i18n.Localizer, messages []notifications.Message) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.render(ctx, AdminTabs(loc))
		if len(messages) == 0 {
			h.el("p", "", tr(loc, "admin.notifications.empty", "No notifications queued yet."))
			return
		}
		h.raw("<table><tbody>")
		for _, message := range messages {
			h.raw("<tr>")
			h.el("td", "", message.CreatedAt.Format("2 Jan 15:04"))
			h.el("td", "", string(message.Channel))
			h.el("td", "", message.Recipient)
			h.el("td", "", message.Body)
			status := string(message.Status)
			if message.LastError != "" {
				status += ": " + message.LastError
			}
			h.el("td", "", fmt.Sprintf("%s (%d)", status, message.AttemptCount))
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	})
}

// Package routepath owns the web route constants and path builders.
package routepath

import "net/url"

const (
	Root          = "/"
	Health        = "/healthz"
	Menu          = "/menu"
	Order         = "/order"
	Catering      = "/catering"
	SpecialOrder  = "/special-order"
	Login         = "/login"
	Register      = "/register"
	Logout        = "/logout"
	Subscribe     = "/subscribe"
	DashboardTree = "/dashboard/"
	Dashboard     = "/dashboard"
	Selection     = "/dashboard/selection"

	AdminPrefix        = "/admin/"
	Admin              = "/admin"
	AdminMenu          = "/admin/menu"
	AdminWeekly        = "/admin/weekly"
	AdminOrders        = "/admin/orders"
	AdminRiders        = "/admin/riders"
	AdminRequests      = "/admin/requests"
	AdminSettings      = "/admin/settings"
	AdminNotifications = "/admin/notifications"
	AdminConfirm       = "/admin/selections/confirm"
)

// Route patterns with path wildcards.
const (
	AdminMenuItemPattern      = "/admin/menu/{id}"
	AdminOrderStatusPattern   = "/admin/orders/{id}/status"
	AdminOrderRiderPattern    = "/admin/orders/{id}/rider"
	AdminRiderActivePattern   = "/admin/riders/{id}/active"
	AdminRequestStatusPattern = "/admin/requests/{id}/status"
)

// AdminMenuItem returns the update path for one menu item.
func AdminMenuItem(itemID string) string {
	return AdminMenu + "/" + url.PathEscape(itemID)
}

// AdminOrderStatus returns the status update path for one order.
func AdminOrderStatus(orderID string) string {
	return AdminOrders + "/" + url.PathEscape(orderID) + "/status"
}

// AdminOrderRider returns the rider assignment path for one order.
func AdminOrderRider(orderID string) string {
	return AdminOrders + "/" + url.PathEscape(orderID) + "/rider"
}

// AdminRiderActive returns the toggle path for one rider.
func AdminRiderActive(riderID string) string {
	return AdminRiders + "/" + url.PathEscape(riderID) + "/active"
}

// AdminRequestStatus returns the status update path for one request.
func AdminRequestStatus(requestID string) string {
	return AdminRequests + "/" + url.PathEscape(requestID) + "/status"
}

// WithNotice appends a notice key for the page banner.
func WithNotice(path string, notice string) string {
	if notice == "" {
		return path
	}
	return path + "?notice=" + url.QueryEscape(notice)
}

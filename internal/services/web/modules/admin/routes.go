package admin

import (
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Admin, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPrefix+"{$}", h.handleIndex)

	mux.HandleFunc(http.MethodGet+" "+routepath.AdminMenu, h.handleMenu)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminMenu, h.handleCreateMenuItem)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminMenuItemPattern, h.handleUpdateMenuItem)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminWeekly, h.handleWeekly)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminWeekly, h.handleWeeklyOption)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminConfirm, h.handleConfirmSelections)

	mux.HandleFunc(http.MethodGet+" "+routepath.AdminOrders, h.handleOrders)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminOrderStatusPattern, h.handleOrderStatus)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminOrderRiderPattern, h.handleAssignRider)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminRiders, h.handleRiders)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminRiders, h.handleCreateRider)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminRiderActivePattern, h.handleRiderActive)

	mux.HandleFunc(http.MethodGet+" "+routepath.AdminRequests, h.handleRequests)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminRequestStatusPattern, h.handleRequestStatus)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminSettings, h.handleSettings)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminSettings, h.handleUpdateSettings)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminNotifications, h.handleNotifications)

	mux.HandleFunc(routepath.AdminPrefix, h.handleNotFound)
}

package dashboard

import (
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard, h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardTree+"{$}", h.handleDashboard)
	mux.HandleFunc(http.MethodPost+" "+routepath.Selection, h.handleSelect)
	mux.HandleFunc(routepath.DashboardTree, h.handleNotFound)
}

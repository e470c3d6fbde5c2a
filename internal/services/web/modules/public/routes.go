package public

import (
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/services/web/platform/httpx"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.Menu, h.handleMenu)

	mux.HandleFunc(http.MethodGet+" "+routepath.Order, h.handleOrderForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Order, h.handlePlaceOrder)
	mux.HandleFunc(http.MethodGet+" "+routepath.Catering, h.handleCateringForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Catering, h.handleSubmitCatering)
	mux.HandleFunc(http.MethodGet+" "+routepath.SpecialOrder, h.handleSpecialOrderForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.SpecialOrder, h.handleSubmitSpecialOrder)

	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.Register, h.handleRegisterForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Register, h.handleRegister)
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.Subscribe, h.handleSubscribeForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Subscribe, h.handleSubscribe)

	mux.HandleFunc("/", h.handleNotFound)
}

// Package dashboard serves the subscriber's daily meal selection.
package dashboard

import (
	"errors"
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

// Module serves the subscriber dashboard.
type Module struct{}

// New returns the dashboard module.
func New() Module {
	return Module{}
}

// ID returns the module identifier.
func (Module) ID() string {
	return "dashboard"
}

// Mount wires the dashboard routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Selections == nil || deps.Subscriptions == nil || deps.Catalog == nil {
		return module.Mount{}, errors.New("dashboard module requires selections, subscriptions and catalog")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{deps: deps})
	return module.Mount{Prefix: routepath.DashboardTree, Handler: mux}, nil
}

// Package admin serves the restaurant back office.
package admin

import (
	"errors"
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

// Module serves the admin pages under /admin/.
type Module struct{}

// New returns the admin module.
func New() Module {
	return Module{}
}

// ID returns the module identifier.
func (Module) ID() string {
	return "admin"
}

// Mount wires the admin routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Catalog == nil || deps.Ordering == nil || deps.Selections == nil || deps.Riders == nil ||
		deps.Requests == nil || deps.Settings == nil || deps.Outbox == nil {
		return module.Mount{}, errors.New("admin module requires the kitchen services and the outbox")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{deps: deps})
	return module.Mount{Prefix: routepath.AdminPrefix, Handler: mux}, nil
}

// Package public serves the storefront, enquiry forms and account pages.
package public

import (
	"errors"
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/services/web/module"
)

// Module serves the public site at the root prefix.
type Module struct{}

// New returns the public module.
func New() Module {
	return Module{}
}

// ID returns the module identifier.
func (Module) ID() string {
	return "public"
}

// Mount wires the public routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Catalog == nil || deps.Ordering == nil || deps.Accounts == nil || deps.Sessions == nil {
		return module.Mount{}, errors.New("public module requires catalog, ordering, accounts and sessions")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{deps: deps})
	return module.Mount{Prefix: "/", Handler: mux}, nil
}

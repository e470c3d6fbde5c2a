// Package modules lists the feature modules the web server mounts.
package modules

import (
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/modules/admin"
	"github.com/wsaeed77/spice-loop/internal/services/web/modules/dashboard"
	"github.com/wsaeed77/spice-loop/internal/services/web/modules/public"
)

// Public returns the modules open to every visitor.
func Public() []module.Module {
	return []module.Module{public.New()}
}

// Member returns the modules that require a signed-in visitor.
func Member() []module.Module {
	return []module.Module{dashboard.New()}
}

// Admin returns the back-office modules.
func Admin() []module.Module {
	return []module.Module{admin.New()}
}

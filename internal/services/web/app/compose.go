// Package app composes feature modules into the root web handler.
package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/requestmeta"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/sessioncookie"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

var errAdminRequired = apperrors.New(apperrors.CodePermissionDenied, "admin role required")

// ComposeInput carries module groups and shared dependencies.
type ComposeInput struct {
	Dependencies  module.Dependencies
	PublicModules []module.Module
	// MemberModules require a signed-in visitor.
	MemberModules []module.Module
	// AdminModules require the admin role and mount under /admin/.
	AdminModules []module.Module
}

// Compose builds the root handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	deps := input.Dependencies

	for _, feature := range input.PublicModules {
		mount, prefix, err := resolveMount(feature, deps)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(prefix, routepath.AdminPrefix) {
			return nil, fmt.Errorf("module %q has admin prefix %q in public group", feature.ID(), prefix)
		}
		if err := mountModule(root, feature, mount.Handler, prefix, seen); err != nil {
			return nil, err
		}
	}
	for _, feature := range input.MemberModules {
		mount, prefix, err := resolveMount(feature, deps)
		if err != nil {
			return nil, err
		}
		if err := mountModule(root, feature, requireSignedIn(mount.Handler), prefix, seen); err != nil {
			return nil, err
		}
	}
	for _, feature := range input.AdminModules {
		mount, prefix, err := resolveMount(feature, deps)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(prefix, routepath.AdminPrefix) {
			return nil, fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AdminPrefix, prefix)
		}
		if err := mountModule(root, feature, requireSignedIn(requireAdmin(deps, mount.Handler)), prefix, seen); err != nil {
			return nil, err
		}
	}
	return requireCookieSessionSameOrigin(root), nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	if feature == nil {
		return module.Mount{}, "", fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := normalizePrefix(mount.Prefix)
	if prefix == "" {
		return module.Mount{}, "", fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

// mountModule serves handler for the prefix subtree and the bare prefix path.
func mountModule(root *http.ServeMux, feature module.Module, handler http.Handler, prefix string, seen map[string]string) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()
	root.Handle(prefix, handler)
	if bare := strings.TrimSuffix(prefix, "/"); bare != "" {
		root.Handle(bare, handler)
	}
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// LoginRedirect returns the login path that returns to r after sign-in.
func LoginRedirect(r *http.Request) string {
	next := r.URL.RequestURI()
	if r.Method != http.MethodGet {
		next = r.URL.Path
	}
	return routepath.Login + "?next=" + url.QueryEscape(next)
}

func requireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requestctx.PrincipalFromContext(r.Context()); !ok {
			http.Redirect(w, r, LoginRedirect(r), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAdmin(deps module.Dependencies, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := requestctx.PrincipalFromContext(r.Context())
		if principal.Role != string(kitchen.RoleAdmin) {
			weberror.Write(w, r, deps, errAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireCookieSessionSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutationMethod(r) || !hasSessionCookie(r) {
			next.ServeHTTP(w, r)
			return
		}
		if !requestmeta.HasSameOriginProof(r) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isMutationMethod(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}

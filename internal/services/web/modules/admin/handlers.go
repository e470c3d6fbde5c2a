package admin

import (
	"net/http"
	"strings"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/httpx"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

const noticeSaved = "saved"

type handlers struct {
	deps module.Dependencies
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.AdminOrders, http.StatusFound)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r, h.deps)
}

// parseForm reads the posted form, writing the error page on failure.
func (h handlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		weberror.Write(w, r, h.deps, apperrors.InvalidArgument("form", "unreadable form"))
		return false
	}
	return true
}

func (h handlers) saved(w http.ResponseWriter, r *http.Request, path string) {
	httpx.WriteRedirect(w, r, routepath.WithNotice(path, noticeSaved))
}

func checked(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

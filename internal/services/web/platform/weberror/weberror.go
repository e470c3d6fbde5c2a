// Package weberror maps coded errors onto localized copy and error pages.
package weberror

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/pagerender"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

// Status returns the response status for err. Codes that are not
// user-facing collapse to 500.
func Status(err error) int {
	code := apperrors.CodeOf(err)
	if !code.UserFacing() {
		return http.StatusInternalServerError
	}
	return code.HTTPStatus()
}

// PublicMessage resolves a user-safe localized message for err.
func PublicMessage(loc i18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	code := apperrors.CodeOf(err)
	if !code.UserFacing() {
		return i18n.Text(loc, apperrors.CodeUnknown.MessageKey(), "Something went wrong. Please try again.")
	}
	if code == apperrors.CodeInvalidArgument {
		field := strings.ReplaceAll(apperrors.MetadataOf(err)["Field"], "_", " ")
		if field == "" {
			field = "form"
		}
		return i18n.Textf(loc, code.MessageKey(), "Please check the %s field.", field)
	}
	return i18n.Text(loc, code.MessageKey(), http.StatusText(code.HTTPStatus()))
}

// Write renders an error page for err, logging failures users cannot fix.
func Write(w http.ResponseWriter, r *http.Request, deps module.Dependencies, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("web request %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	loc, _ := pagerender.Localizer(r)
	message := PublicMessage(loc, err)
	if renderErr := pagerender.Write(w, r, deps, pagerender.Page{
		Title:  http.StatusText(status),
		Status: status,
		Body:   templates.ErrorBody(loc, message),
	}); renderErr != nil {
		log.Printf("render error page: %v", renderErr)
	}
}

// NotFound renders the shared 404 page.
func NotFound(w http.ResponseWriter, r *http.Request, deps module.Dependencies) {
	Write(w, r, deps, apperrors.New(apperrors.CodeNotFound, "no route for "+r.URL.Path))
}

// Reject re-renders the current form through rerender when err is a
// user-facing failure, and falls back to the error page otherwise.
func Reject(w http.ResponseWriter, r *http.Request, deps module.Dependencies, err error, rerender func(pagerender.Page)) {
	status := Status(err)
	if status >= http.StatusInternalServerError || rerender == nil {
		Write(w, r, deps, err)
		return
	}
	loc, _ := pagerender.Localizer(r)
	rerender(pagerender.Page{Status: status, Error: PublicMessage(loc, err)})
}

package app

import (
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/httpx"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/sessioncookie"
)

// ResolvePrincipal attaches the session principal to each request. A token
// that fails verification is cleared and the request continues anonymously.
func ResolvePrincipal(codec *sessioncookie.Codec) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessioncookie.Read(r)
			if !ok || codec == nil {
				next.ServeHTTP(w, r)
				return
			}
			principal, err := codec.Parse(token)
			if err != nil {
				sessioncookie.Clear(w, r)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithPrincipal(r.Context(), principal)))
		})
	}
}

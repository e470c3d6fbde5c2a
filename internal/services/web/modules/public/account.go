package public

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/httpx"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/pagerender"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/sessioncookie"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/weberror"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
	"github.com/wsaeed77/spice-loop/internal/services/web/templates"
)

func (h handlers) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if principal, ok := requestctx.PrincipalFromContext(r.Context()); ok {
		http.Redirect(w, r, landingPath(principal.Role), http.StatusFound)
		return
	}
	h.loginPage(w, r, url.Values{"next": {r.URL.Query().Get("next")}}, pagerender.Page{})
}

func (h handlers) loginPage(w http.ResponseWriter, r *http.Request, values url.Values, page pagerender.Page) {
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "login.heading", "Sign in")
	page.Body = templates.Login(loc, values)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		weberror.Write(w, r, h.deps, apperrors.InvalidArgument("form", "unreadable form"))
		return
	}
	user, err := h.deps.Accounts.Authenticate(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) {
			h.loginPage(w, r, url.Values{"email": {r.PostForm.Get("email")}, "next": {r.PostForm.Get("next")}}, page)
		})
		return
	}
	if err := h.signIn(w, r, user); err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	next := safeNext(r.PostForm.Get("next"))
	if next == "" {
		next = landingPath(string(user.Role))
	}
	httpx.WriteRedirect(w, r, next)
}

func (h handlers) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.registerPage(w, r, url.Values{}, pagerender.Page{})
}

func (h handlers) registerPage(w http.ResponseWriter, r *http.Request, values url.Values, page pagerender.Page) {
	loc, _ := pagerender.Localizer(r)
	page.Title = i18n.Text(loc, "register.heading", "Create an account")
	page.Body = templates.Register(loc, values)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		weberror.Write(w, r, h.deps, apperrors.InvalidArgument("form", "unreadable form"))
		return
	}
	user, err := h.deps.Accounts.Register(r.Context(), kitchen.RegisterInput{
		Name:     r.PostForm.Get("name"),
		Email:    r.PostForm.Get("email"),
		Phone:    r.PostForm.Get("phone"),
		Password: r.PostForm.Get("password"),
	})
	if err != nil {
		weberror.Reject(w, r, h.deps, err, func(page pagerender.Page) {
			values := url.Values{}
			for _, key := range []string{"name", "email", "phone"} {
				values.Set(key, r.PostForm.Get(key))
			}
			h.registerPage(w, r, values, page)
		})
		return
	}
	if err := h.signIn(w, r, user); err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.WithNotice(routepath.Subscribe, "registered"))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessioncookie.Clear(w, r)
	httpx.WriteRedirect(w, r, routepath.WithNotice(routepath.Root, "signed_out"))
}

func (h handlers) handleSubscribeForm(w http.ResponseWriter, r *http.Request) {
	h.subscribePage(w, r, url.Values{}, pagerender.Page{})
}

func (h handlers) subscribePage(w http.ResponseWriter, r *http.Request, values url.Values, page pagerender.Page) {
	loc, _ := pagerender.Localizer(r)
	view := templates.SubscribeView{Values: values}
	if principal, ok := requestctx.PrincipalFromContext(r.Context()); ok {
		view.SignedIn = true
		subscription, err := h.deps.Subscriptions.ActiveSubscription(r.Context(), principal.UserID)
		switch {
		case err == nil:
			view.Active = &subscription
		case !errors.Is(err, kitchen.ErrSubscriptionRequired):
			weberror.Write(w, r, h.deps, err)
			return
		}
	}
	page.Title = i18n.Text(loc, "subscribe.heading", "Weekly meal plans")
	page.Body = templates.Subscribe(loc, view)
	pagerender.Render(w, r, h.deps, page)
}

func (h handlers) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	principal, ok := requestctx.PrincipalFromContext(r.Context())
	if !ok {
		httpx.WriteRedirect(w, r, routepath.Login+"?next="+url.QueryEscape(routepath.Subscribe))
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.Write(w, r, h.deps, apperrors.InvalidArgument("form", "unreadable form"))
		return
	}
	rerender := func(page pagerender.Page) { h.subscribePage(w, r, r.PostForm, page) }

	notice, next := "subscribed", routepath.Dashboard
	if r.PostForm.Get("action") == "cancel" {
		if err := h.deps.Subscriptions.CancelSubscription(r.Context(), principal.UserID); err != nil {
			weberror.Reject(w, r, h.deps, err, rerender)
			return
		}
		notice, next = "cancelled", routepath.Subscribe
	} else if _, err := h.deps.Subscriptions.Subscribe(r.Context(), principal.UserID, r.PostForm.Get("plan"), r.PostForm.Get("starts_on")); err != nil {
		weberror.Reject(w, r, h.deps, err, rerender)
		return
	}

	// The role claim changes with the plan, so the cookie is reissued.
	user, err := h.deps.Accounts.GetUser(r.Context(), principal.UserID)
	if err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	if err := h.signIn(w, r, user); err != nil {
		weberror.Write(w, r, h.deps, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.WithNotice(next, notice))
}

func (h handlers) signIn(w http.ResponseWriter, r *http.Request, user kitchen.User) error {
	return h.deps.Sessions.Write(w, r, requestctx.Principal{
		UserID: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
	})
}

func landingPath(role string) string {
	switch kitchen.Role(role) {
	case kitchen.RoleAdmin:
		return routepath.AdminOrders
	case kitchen.RoleSubscriber:
		return routepath.Dashboard
	default:
		return routepath.Root
	}
}

// safeNext accepts only same-site absolute paths.
func safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, `\`) {
		return ""
	}
	return raw
}

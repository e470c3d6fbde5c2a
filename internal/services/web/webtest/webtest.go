// Package webtest builds web dependencies over temporary sqlite stores for
// handler tests.
package webtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	kitchensqlite "github.com/wsaeed77/spice-loop/internal/services/kitchen/storage/sqlite"
	notifysqlite "github.com/wsaeed77/spice-loop/internal/services/notifications/storage/sqlite"
	"github.com/wsaeed77/spice-loop/internal/services/web/app"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/sessioncookie"
)

// Host is the request host used by NewRequest and PostForm.
const Host = "kitchen.example.test"

// Password is the password of every account the harness creates.
const Password = "correct horse"

// SessionTTL outlives a whole day, so a session minted at noon is still
// valid at the 23:59 cutoff.
const SessionTTL = 24 * time.Hour

// Harness holds dependencies over freshly opened stores.
type Harness struct {
	Deps    module.Dependencies
	Kitchen *kitchensqlite.Store
	Outbox  *notifysqlite.Store
	now     time.Time
}

// New opens temporary stores and fixes the clock at now.
func New(t testing.TB, now time.Time) *Harness {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()
	kitchenStore, err := kitchensqlite.Open(ctx, filepath.Join(dir, "kitchen.db"))
	if err != nil {
		t.Fatalf("open kitchen store: %v", err)
	}
	t.Cleanup(func() { _ = kitchenStore.Close() })
	outboxStore, err := notifysqlite.Open(ctx, filepath.Join(dir, "notifications.db"))
	if err != nil {
		t.Fatalf("open outbox store: %v", err)
	}
	t.Cleanup(func() { _ = outboxStore.Close() })

	h := &Harness{Kitchen: kitchenStore, Outbox: outboxStore, now: now}
	clock := func() time.Time { return h.now }
	codec, err := sessioncookie.NewCodec("webtest-session-secret", SessionTTL, clock)
	if err != nil {
		t.Fatalf("session codec: %v", err)
	}
	h.Deps = module.Build(module.BuildInput{
		Calendar: kitchen.Calendar{Location: time.UTC},
		Clock:    clock,
		Sessions: codec,
		Kitchen:  kitchenStore,
		Outbox:   outboxStore,
	})
	return h
}

// SetNow moves the harness clock.
func (h *Harness) SetNow(now time.Time) {
	h.now = now
}

// Handler mounts feature and resolves session cookies the way the server does.
func (h *Harness) Handler(t testing.TB, feature module.Module) http.Handler {
	t.Helper()

	mount, err := feature.Mount(h.Deps)
	if err != nil {
		t.Fatalf("mount %s: %v", feature.ID(), err)
	}
	return app.ResolvePrincipal(h.Deps.Sessions)(mount.Handler)
}

// Customer registers a customer account.
func (h *Harness) Customer(t testing.TB, name string, email string) kitchen.User {
	t.Helper()

	user, err := h.Deps.Accounts.Register(context.Background(), kitchen.RegisterInput{
		Name: name, Email: email, Phone: "07700 900123", Password: Password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

// Subscriber registers an account on the five-day plan.
func (h *Harness) Subscriber(t testing.TB, name string, email string) kitchen.User {
	t.Helper()

	user := h.Customer(t, name, email)
	if _, err := h.Deps.Subscriptions.Subscribe(context.Background(), user.ID, string(kitchen.PlanWeekly5), ""); err != nil {
		t.Fatalf("subscribe %s: %v", email, err)
	}
	user, err := h.Deps.Accounts.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("reload %s: %v", email, err)
	}
	return user
}

// Admin creates an admin account.
func (h *Harness) Admin(t testing.TB) kitchen.User {
	t.Helper()

	user, err := h.Deps.Accounts.EnsureAdmin(context.Background(), kitchen.RegisterInput{
		Name: "Kitchen Admin", Email: "admin@example.test", Password: Password,
	})
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	return user
}

// MenuItem creates an available item and offers it on days.
func (h *Harness) MenuItem(t testing.TB, name string, pence int64, days ...kitchen.Weekday) kitchen.MenuItem {
	t.Helper()

	ctx := context.Background()
	item, err := h.Deps.Catalog.CreateMenuItem(ctx, kitchen.MenuItemInput{
		Name: name, Category: string(kitchen.CategoryMain), PricePence: pence, Available: true,
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	for _, day := range days {
		if _, err := h.Deps.Catalog.SetWeeklyOption(ctx, item.ID, string(day), true); err != nil {
			t.Fatalf("offer %s on %s: %v", name, day, err)
		}
	}
	return item
}

// Session returns a signed session cookie for user.
func (h *Harness) Session(t testing.TB, user kitchen.User) *http.Cookie {
	t.Helper()

	token, err := h.Deps.Sessions.Issue(requestctx.Principal{UserID: user.ID, Name: user.Name, Role: string(user.Role)})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	return &http.Cookie{Name: sessioncookie.Name, Value: token}
}

// NewRequest builds a request against Host carrying cookie when set.
func NewRequest(method string, target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, "http://"+Host+target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// PostForm builds a same-origin form post.
func PostForm(target string, values url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "http://"+Host+target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://"+Host)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// Serve runs req through handler.
func Serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// SessionFrom returns the session cookie set on rec, if any.
func SessionFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessioncookie.Name && cookie.MaxAge >= 0 {
			return cookie
		}
	}
	return nil
}

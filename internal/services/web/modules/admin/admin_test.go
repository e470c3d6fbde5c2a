package admin

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/webtest"
)

var testNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	h       *webtest.Harness
	handler http.Handler
	session *http.Cookie
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	h := webtest.New(t, testNow)
	return fixture{h: h, handler: h.Handler(t, New()), session: h.Session(t, h.Admin(t))}
}

func (f fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()

	rec := webtest.Serve(f.handler, webtest.NewRequest(http.MethodGet, path, f.session))
	return rec.Code, rec.Body.String()
}

func (f fixture) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()

	rec := webtest.Serve(f.handler, webtest.PostForm(path, form, f.session))
	if rec.Code == http.StatusSeeOther {
		return rec.Code, rec.Header().Get("Location")
	}
	return rec.Code, rec.Body.String()
}

func (f fixture) placeOrder(t *testing.T, item kitchen.MenuItem) kitchen.Order {
	t.Helper()

	order, err := f.h.Deps.Ordering.PlaceOrder(context.Background(), kitchen.PlaceOrderInput{
		CustomerName: "Asha",
		Phone:        "07700 900123",
		Address:      "1 High St",
		Lines:        []kitchen.OrderLineInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}

func TestIndexRedirectsToOrders(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, path := range []string{"/admin", "/admin/"} {
		rec := webtest.Serve(f.handler, webtest.NewRequest(http.MethodGet, path, f.session))
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/orders" {
			t.Fatalf("%s = %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
	if code, _ := f.get(t, "/admin/unknown"); code != http.StatusNotFound {
		t.Fatalf("unknown admin page = %d, want 404", code)
	}
}

func TestCreateAndUpdateMenuItem(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	code, location := f.post(t, "/admin/menu", url.Values{
		"name": {"Chana masala"}, "category": {"main"}, "price": {"£7.25"}, "available": {"on"},
	})
	if code != http.StatusSeeOther || location != "/admin/menu?notice=saved" {
		t.Fatalf("create = %d %q", code, location)
	}
	items, err := f.h.Deps.Catalog.ListMenuItems(ctx, false)
	if err != nil || len(items) != 1 {
		t.Fatalf("items = %+v, %v", items, err)
	}
	item := items[0]
	if item.PricePence != 725 || !item.Available {
		t.Fatalf("item = %+v", item)
	}

	code, _ = f.post(t, "/admin/menu/"+item.ID, url.Values{"name": {"Chana masala"}, "category": {"main"}, "price": {"8"}})
	if code != http.StatusSeeOther {
		t.Fatalf("update status = %d", code)
	}
	updated, err := f.h.Deps.Catalog.GetMenuItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if updated.PricePence != 800 || updated.Available {
		t.Fatalf("updated = %+v, want 800 pence and hidden", updated)
	}

	code, body := f.post(t, "/admin/menu", url.Values{"name": {"Kulfi"}, "category": {"dessert"}, "price": {"cheap"}})
	if code != http.StatusUnprocessableEntity || !strings.Contains(body, `value="Kulfi"`) {
		t.Fatalf("bad price = %d", code)
	}
	if code, _ := f.post(t, "/admin/menu/missing", url.Values{"name": {"X"}, "category": {"main"}, "price": {"1"}}); code != http.StatusNotFound {
		t.Fatalf("missing item update = %d, want 404", code)
	}
}

func TestWeeklyOptions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	item := f.h.MenuItem(t, "Butter chicken", 950)

	code, _ := f.post(t, "/admin/weekly", url.Values{"action": {"set"}, "menu_item_id": {item.ID}, "day": {"thursday"}, "available": {"on"}})
	if code != http.StatusSeeOther {
		t.Fatalf("set = %d", code)
	}
	thursday := kitchen.Date{Year: 2026, Month: time.October, Day: 15}
	options, err := f.h.Deps.Selections.SelectionOptions(ctx, thursday)
	if err != nil || len(options) != 1 {
		t.Fatalf("options = %+v, %v", options, err)
	}
	if _, body := f.get(t, "/admin/weekly"); !strings.Contains(body, item.Name) {
		t.Fatal("weekly page should list the offered item")
	}

	if code, _ := f.post(t, "/admin/weekly", url.Values{"action": {"set"}, "menu_item_id": {item.ID}, "day": {"saturday"}}); code != http.StatusUnprocessableEntity {
		t.Fatalf("weekend day = %d, want 422", code)
	}
	if code, _ := f.post(t, "/admin/weekly", url.Values{"action": {"shuffle"}}); code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown action = %d, want 422", code)
	}

	if code, _ := f.post(t, "/admin/weekly", url.Values{"action": {"remove"}, "menu_item_id": {item.ID}, "day": {"thursday"}}); code != http.StatusSeeOther {
		t.Fatalf("remove = %d", code)
	}
	if options, _ := f.h.Deps.Selections.SelectionOptions(ctx, thursday); len(options) != 0 {
		t.Fatalf("options after remove = %+v", options)
	}
}

func TestConfirmSelections(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	item := f.h.MenuItem(t, "Butter chicken", 950, kitchen.Thursday)
	subscriber := f.h.Subscriber(t, "Asha", "asha@example.test")
	thursday := kitchen.Date{Year: 2026, Month: time.October, Day: 15}
	if _, err := f.h.Deps.Selections.SelectItem(ctx, subscriber.ID, item.ID, thursday, testNow); err != nil {
		t.Fatalf("select: %v", err)
	}

	code, body := f.post(t, "/admin/selections/confirm", url.Values{"date": {"2026-10-15"}})
	if code != http.StatusOK || !strings.Contains(body, "1 selections confirmed for 2026-10-15.") {
		t.Fatalf("confirm = %d body = %s", code, body)
	}
	selection, err := f.h.Deps.Selections.SelectionFor(ctx, subscriber.ID, thursday)
	if err != nil || selection.Status != kitchen.SelectionConfirmed {
		t.Fatalf("selection = %+v, %v", selection, err)
	}
	if code, _ := f.post(t, "/admin/selections/confirm", url.Values{"date": {"tomorrow"}}); code != http.StatusUnprocessableEntity {
		t.Fatalf("bad date = %d, want 422", code)
	}
}

func TestOrderBoard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	item := f.h.MenuItem(t, "Tarka dal", 850)
	order := f.placeOrder(t, item)
	rider, err := f.h.Deps.Riders.CreateRider(ctx, "Sam", "07700 900999")
	if err != nil {
		t.Fatalf("create rider: %v", err)
	}

	code, body := f.get(t, "/admin/orders")
	if code != http.StatusOK || !strings.Contains(body, kitchen.ShortRef(order.ID)) {
		t.Fatalf("board = %d", code)
	}

	if code, _ := f.post(t, "/admin/orders/"+order.ID+"/status", url.Values{"status": {"delivered"}}); code != http.StatusConflict {
		t.Fatalf("skip to delivered = %d, want 409", code)
	}
	if code, _ := f.post(t, "/admin/orders/"+order.ID+"/status", url.Values{"status": {"in_queue"}}); code != http.StatusSeeOther {
		t.Fatalf("queue = %d", code)
	}
	if code, _ := f.post(t, "/admin/orders/"+order.ID+"/rider", url.Values{"rider_id": {rider.ID}}); code != http.StatusSeeOther {
		t.Fatalf("assign = %d", code)
	}
	stored, err := f.h.Deps.Ordering.GetOrder(ctx, order.ID)
	if err != nil || stored.Status != kitchen.OrderInQueue || stored.RiderID != rider.ID {
		t.Fatalf("order = %+v, %v", stored, err)
	}

	if code, body := f.get(t, "/admin/orders?filter="+url.QueryEscape(`status = "pending"`)); code != http.StatusOK || strings.Contains(body, kitchen.ShortRef(order.ID)) {
		t.Fatalf("pending filter = %d, should hide queued order", code)
	}
	if code, body := f.get(t, "/admin/orders?filter="+url.QueryEscape("colour = 1")); code != http.StatusUnprocessableEntity || !strings.Contains(body, kitchen.ShortRef(order.ID)) {
		t.Fatalf("bad filter = %d, want 422 over the full board", code)
	}
}

func TestRiders(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	if code, _ := f.post(t, "/admin/riders", url.Values{"name": {"Sam"}, "phone": {"07700 900999"}}); code != http.StatusSeeOther {
		t.Fatalf("create = %d", code)
	}
	riders, err := f.h.Deps.Riders.ListRiders(ctx, false)
	if err != nil || len(riders) != 1 || !riders[0].Active {
		t.Fatalf("riders = %+v, %v", riders, err)
	}
	if code, _ := f.post(t, "/admin/riders/"+riders[0].ID+"/active", url.Values{"active": {""}}); code != http.StatusSeeOther {
		t.Fatalf("deactivate = %d", code)
	}
	if active, _ := f.h.Deps.Riders.ListRiders(ctx, true); len(active) != 0 {
		t.Fatalf("active riders = %+v, want none", active)
	}
	if code, _ := f.post(t, "/admin/riders", url.Values{"name": {""}, "phone": {"1"}}); code != http.StatusUnprocessableEntity {
		t.Fatalf("missing name = %d, want 422", code)
	}
}

func TestRequestStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	request, err := f.h.Deps.Requests.SubmitSpecialOrder(ctx, kitchen.RequestInput{Name: "Priya", Phone: "1", Details: "Birthday biryani for 6"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if code, body := f.get(t, "/admin/requests?kind=special_order"); code != http.StatusOK || !strings.Contains(body, "Birthday biryani") {
		t.Fatalf("requests page = %d", code)
	}
	if code, _ := f.get(t, "/admin/requests?kind=party"); code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown kind = %d, want 422", code)
	}
	if code, _ := f.post(t, "/admin/requests/"+request.ID+"/status", url.Values{"status": {"quoted"}}); code != http.StatusSeeOther {
		t.Fatalf("update = %d", code)
	}
	requests, err := f.h.Deps.Requests.ListRequests(ctx, "")
	if err != nil || len(requests) != 1 || requests[0].Status != kitchen.RequestQuoted {
		t.Fatalf("requests = %+v, %v", requests, err)
	}
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := url.Values{
		"restaurant_name": {"Spice Loop Leeds"},
		"contact_email":   {"Kitchen@Example.test"},
		"delivery_fee":    {"3.00"},
		"sms_enabled":     {"on"},
	}
	if code, location := f.post(t, "/admin/settings", form); code != http.StatusSeeOther || location != "/admin/settings?notice=saved" {
		t.Fatalf("update = %d %q", code, location)
	}
	settings, err := f.h.Deps.Settings.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.DeliveryFeePence != 300 || !settings.SMSEnabled || settings.EmailEnabled || settings.ContactEmail != "kitchen@example.test" {
		t.Fatalf("settings = %+v", settings)
	}

	form.Set("delivery_fee", "free")
	if code, _ := f.post(t, "/admin/settings", form); code != http.StatusUnprocessableEntity {
		t.Fatalf("bad fee = %d, want 422", code)
	}
}

func TestNotificationsPage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.placeOrder(t, f.h.MenuItem(t, "Tarka dal", 850))
	code, body := f.get(t, "/admin/notifications")
	if code != http.StatusOK || !strings.Contains(body, "07700 900123") {
		t.Fatalf("notifications = %d body = %s", code, body)
	}
}

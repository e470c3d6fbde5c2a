package templates

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestLayoutEscapesAndShowsRoleLinks(t *testing.T) {
	t.Parallel()

	loc := i18n.Printer(i18n.Default())
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<p>body</p>"))
		return err
	})
	html := renderString(t, Layout(Chrome{
		Title:     "<Menu>",
		Principal: requestctx.Principal{UserID: "u1", Role: "admin"},
		Notice:    "Saved.",
		Loc:       loc,
	}, body))

	for _, want := range []string{"&lt;Menu&gt; | Spice Loop", "<p>body</p>", `href="/admin/orders"`, `action="/logout"`, "Saved."} {
		if !strings.Contains(html, want) {
			t.Fatalf("layout missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<Menu>") {
		t.Fatal("title was not escaped")
	}
}

func TestLayoutAnonymousNav(t *testing.T) {
	t.Parallel()

	html := renderString(t, Layout(Chrome{}, nil))
	if !strings.Contains(html, `href="/login"`) || strings.Contains(html, `action="/logout"`) {
		t.Fatalf("anonymous nav wrong:\n%s", html)
	}
}

func TestMenuGroupsByCategory(t *testing.T) {
	t.Parallel()

	html := renderString(t, Menu(nil, []kitchen.MenuItem{
		{ID: "1", Name: "Lassi", Category: kitchen.CategoryDrink, PricePence: 350},
		{ID: "2", Name: "Samosa", Category: kitchen.CategoryStarter, PricePence: 450},
	}))
	starter := strings.Index(html, "Samosa")
	drink := strings.Index(html, "Lassi")
	if starter < 0 || drink < 0 || starter > drink {
		t.Fatalf("expected starters before drinks:\n%s", html)
	}
	if !strings.Contains(html, "£4.50") {
		t.Fatalf("missing price:\n%s", html)
	}
}

func TestOrderFormKeepsValues(t *testing.T) {
	t.Parallel()

	values := url.Values{"name": {`Asha "A"`}, QuantityField("dal"): {"2"}}
	html := renderString(t, OrderForm(nil, []kitchen.MenuItem{{ID: "dal", Name: "Tarka dal", PricePence: 850}}, 250, values))
	for _, want := range []string{`name="qty_dal"`, `value="2"`, `value="Asha &#34;A&#34;"`, "Delivery fee: £2.50"} {
		if !strings.Contains(html, want) {
			t.Fatalf("order form missing %q:\n%s", want, html)
		}
	}
}

func TestDashboardWindowStates(t *testing.T) {
	t.Parallel()

	target := kitchen.Date{Year: 2026, Month: time.October, Day: 15}
	open := renderString(t, Dashboard(nil, DashboardView{
		Plan:      kitchen.PlanWeekly5,
		Window:    kitchen.WindowState{IsOpen: true, TargetDate: target},
		Options:   []kitchen.MenuItem{{ID: "dal", Name: "Tarka dal"}},
		CurrentID: "dal", CurrentName: "Tarka dal",
	}))
	for _, want := range []string{"2026-10-15", `value="dal"`, "checked", `action="/dashboard/selection"`} {
		if !strings.Contains(open, want) {
			t.Fatalf("open dashboard missing %q:\n%s", want, open)
		}
	}

	closed := renderString(t, Dashboard(nil, DashboardView{Window: kitchen.WindowState{TargetDate: target}}))
	if strings.Contains(closed, "<form") {
		t.Fatalf("closed dashboard should not offer a form:\n%s", closed)
	}
}

func TestAdminOrdersOffersAllowedTransitions(t *testing.T) {
	t.Parallel()

	html := renderString(t, AdminOrders(nil, AdminOrdersView{
		Orders: []kitchen.Order{{ID: "abcdefghijk", CustomerName: "Asha", Status: kitchen.OrderInQueue, TotalPence: 1200}},
		Riders: []kitchen.Rider{{ID: "r1", Name: "Ravi", Active: true}},
	}))
	for _, want := range []string{"ABCDEFGH", `value="preparing"`, `value="cancelled"`, `action="/admin/orders/abcdefghijk/rider"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("orders missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, `value="delivered"`) {
		t.Fatal("in_queue order must not offer delivered")
	}
}

func TestPoundsValue(t *testing.T) {
	t.Parallel()

	for pence, want := range map[int64]string{0: "0.00", 5: "0.05", 1250: "12.50", -250: "-2.50"} {
		if got := PoundsValue(pence); got != want {
			t.Fatalf("PoundsValue(%d) = %q, want %q", pence, got, want)
		}
	}
}

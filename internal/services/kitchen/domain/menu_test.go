package domain

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
)

func TestCatalogCreateAndUpdate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	catalog := NewCatalog(store, fixedClock(wednesdayMorning), sequentialIDs("item"))
	ctx := context.Background()

	item, err := catalog.CreateMenuItem(ctx, MenuItemInput{Name: " Chana masala ", Category: "Main", PricePence: 950, Available: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Name != "Chana masala" || item.Category != CategoryMain {
		t.Fatalf("item = %+v", item)
	}

	updated, err := catalog.UpdateMenuItem(ctx, item.ID, MenuItemInput{Name: "Chana masala", Category: "main", PricePence: 1000})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PricePence != 1000 || updated.Available || !updated.CreatedAt.Equal(item.CreatedAt) {
		t.Fatalf("updated = %+v", updated)
	}

	invalid := []MenuItemInput{
		{Category: "main", PricePence: 100},
		{Name: "X", Category: "soup", PricePence: 100},
		{Name: "X", Category: "main", PricePence: 0},
	}
	for _, input := range invalid {
		if _, err := catalog.CreateMenuItem(ctx, input); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
			t.Fatalf("input %+v: err = %v", input, err)
		}
	}
	if _, err := catalog.UpdateMenuItem(ctx, "ghost", MenuItemInput{Name: "X", Category: "main", PricePence: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing item err = %v", err)
	}
}

func TestWeeklyMenuGrouping(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.items["dal"] = MenuItem{ID: "dal", Name: "Tarka dal", Category: CategoryMain, PricePence: 850, Available: true}
	catalog := NewCatalog(store, fixedClock(wednesdayMorning), sequentialIDs("opt"))
	ctx := context.Background()

	if _, err := catalog.SetWeeklyOption(ctx, "dal", "Monday", true); err != nil {
		t.Fatalf("set monday: %v", err)
	}
	first, err := catalog.SetWeeklyOption(ctx, "dal", "friday", true)
	if err != nil {
		t.Fatalf("set friday: %v", err)
	}
	second, err := catalog.SetWeeklyOption(ctx, "dal", "friday", false)
	if err != nil {
		t.Fatalf("reset friday: %v", err)
	}
	if second.ID != first.ID || second.Available {
		t.Fatalf("friday option = %+v, want same id unavailable", second)
	}
	if _, err := catalog.SetWeeklyOption(ctx, "dal", "saturday", true); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("weekend err = %v", err)
	}
	if _, err := catalog.SetWeeklyOption(ctx, "ghost", "monday", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing item err = %v", err)
	}

	days, err := catalog.WeeklyMenu(ctx)
	if err != nil {
		t.Fatalf("weekly menu: %v", err)
	}
	if len(days) != 5 || days[0].Day != Monday || days[4].Day != Friday {
		t.Fatalf("days = %+v", days)
	}
	if len(days[0].Entries) != 1 || len(days[1].Entries) != 0 || len(days[4].Entries) != 1 {
		t.Fatalf("entries = %+v", days)
	}

	if err := catalog.RemoveWeeklyOption(ctx, "dal", "monday"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := catalog.RemoveWeeklyOption(ctx, "dal", "monday"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove err = %v", err)
	}
}

func TestSettingsValidation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	service := NewSettingsService(store)
	ctx := context.Background()

	settings, err := service.GetSettings(ctx)
	if err != nil || settings != DefaultSettings() {
		t.Fatalf("defaults = %+v, %v", settings, err)
	}
	settings.DeliveryFeePence = -1
	if _, err := service.UpdateSettings(ctx, settings); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("negative fee err = %v", err)
	}
	settings.DeliveryFeePence = 0
	settings.ContactEmail = " Hello@SpiceLoop.test "
	saved, err := service.UpdateSettings(ctx, settings)
	if err != nil || saved.ContactEmail != "hello@spiceloop.test" {
		t.Fatalf("saved = %+v, %v", saved, err)
	}
}

func TestRiders(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	riders := NewRiders(store, fixedClock(wednesdayMorning), sequentialIDs("rider"))
	ctx := context.Background()

	rider, err := riders.CreateRider(ctx, "Sam", "0770")
	if err != nil || !rider.Active {
		t.Fatalf("create = %+v, %v", rider, err)
	}
	if _, err := riders.CreateRider(ctx, "", "0770"); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("missing name err = %v", err)
	}
	if err := riders.SetRiderActive(ctx, rider.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := riders.ListRiders(ctx, true)
	if err != nil || len(active) != 0 {
		t.Fatalf("active = %+v, %v", active, err)
	}
}

func TestFormatPenceAndShortRef(t *testing.T) {
	t.Parallel()

	tests := map[int64]string{0: "£0.00", 5: "£0.05", 1250: "£12.50", -250: "-£2.50"}
	for pence, want := range tests {
		if got := FormatPence(pence); got != want {
			t.Fatalf("FormatPence(%d) = %q, want %q", pence, got, want)
		}
	}
	if got := ShortRef("abcdefghijklmnop"); got != "ABCDEFGH" {
		t.Fatalf("ShortRef = %q", got)
	}
	if got := ShortRef("ord-1"); got != "ORD-1" {
		t.Fatalf("ShortRef short id = %q", got)
	}
}

func TestParsePounds(t *testing.T) {
	t.Parallel()

	valid := map[string]int64{"12.50": 1250, "£4": 400, "0.5": 50, ".99": 99, " 3.05 ": 305}
	for raw, want := range valid {
		got, err := ParsePounds(raw)
		if err != nil || got != want {
			t.Fatalf("ParsePounds(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}
	for _, raw := range []string{"", "abc", "1.234", "-2", "1.", "£"} {
		if _, err := ParsePounds(raw); err == nil {
			t.Fatalf("ParsePounds(%q) expected error", raw)
		}
	}
}

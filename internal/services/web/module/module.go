// Package module defines the contract every web feature module implements.
package module

import (
	"net/http"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	kitchensqlite "github.com/wsaeed77/spice-loop/internal/services/kitchen/storage/sqlite"
	notifyapp "github.com/wsaeed77/spice-loop/internal/services/notifications/app"
	notifications "github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
	notifysqlite "github.com/wsaeed77/spice-loop/internal/services/notifications/storage/sqlite"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/sessioncookie"
)

// Module mounts one feature area under a route prefix.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

// Mount is the handler a module serves under Prefix.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Dependencies are the shared services modules may use.
type Dependencies struct {
	Calendar      kitchen.Calendar
	Clock         func() time.Time
	Sessions      *sessioncookie.Codec
	Accounts      *kitchen.Accounts
	Catalog       *kitchen.Catalog
	Ordering      *kitchen.Ordering
	Selections    *kitchen.SelectionWindow
	Subscriptions *kitchen.Subscriptions
	Requests      *kitchen.Requests
	Riders        *kitchen.Riders
	Settings      *kitchen.SettingsService
	Outbox        *notifications.Service
}

// Now returns the current time from the dependency clock.
func (d Dependencies) Now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

// BuildInput carries the opened stores and shared runtime pieces.
type BuildInput struct {
	Calendar kitchen.Calendar
	Clock    func() time.Time
	Sessions *sessioncookie.Codec
	Kitchen  *kitchensqlite.Store
	Outbox   *notifysqlite.Store
	NewID    func() (string, error)
}

// Build wires the domain services over the kitchen and outbox stores.
func Build(input BuildInput) Dependencies {
	clock := input.Clock
	if clock == nil {
		clock = time.Now
	}
	outbox := notifications.NewService(input.Outbox, message.NewPrinter(language.English), clock, input.NewID)
	notifier := notifyapp.NewKitchenNotifier(outbox, input.Kitchen, input.Calendar)
	store := input.Kitchen
	return Dependencies{
		Calendar: input.Calendar,
		Clock:    clock,
		Sessions: input.Sessions,
		Accounts: kitchen.NewAccounts(store, clock, input.NewID),
		Catalog:  kitchen.NewCatalog(store, clock, input.NewID),
		Ordering: kitchen.NewOrdering(kitchen.OrderingDeps{
			Calendar: input.Calendar,
			Menu:     store,
			Orders:   store,
			Riders:   store,
			Settings: store,
			Notifier: notifier,
			Clock:    clock,
			NewID:    input.NewID,
		}),
		Selections:    kitchen.NewSelectionWindow(input.Calendar, store, store, store, input.NewID),
		Subscriptions: kitchen.NewSubscriptions(input.Calendar, store, store, clock, input.NewID),
		Requests:      kitchen.NewRequests(input.Calendar, store, notifier, clock, input.NewID),
		Riders:        kitchen.NewRiders(store, clock, input.NewID),
		Settings:      kitchen.NewSettingsService(store),
		Outbox:        outbox,
	}
}

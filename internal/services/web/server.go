// Package web hosts the browser-facing storefront, dashboard and back office.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/wsaeed77/spice-loop/internal/platform/discovery"
	"github.com/wsaeed77/spice-loop/internal/platform/timeouts"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	kitchensqlite "github.com/wsaeed77/spice-loop/internal/services/kitchen/storage/sqlite"
	notifysqlite "github.com/wsaeed77/spice-loop/internal/services/notifications/storage/sqlite"
	webapp "github.com/wsaeed77/spice-loop/internal/services/web/app"
	"github.com/wsaeed77/spice-loop/internal/services/web/module"
	"github.com/wsaeed77/spice-loop/internal/services/web/modules"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/httpx"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/sessioncookie"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr            string
	KitchenDBPath       string
	NotificationsDBPath string
	Timezone            string
	SessionSecret       string
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	kitchen    *kitchensqlite.Store
	outbox     *notifysqlite.Store
}

// NewHandler builds the root handler from the default module groups.
func NewHandler(deps module.Dependencies) (http.Handler, error) {
	h, err := webapp.Compose(webapp.ComposeInput{
		Dependencies:  deps,
		PublicModules: modules.Public(),
		MemberModules: modules.Member(),
		AdminModules:  modules.Admin(),
	})
	if err != nil {
		return nil, err
	}
	return httpx.Chain(h,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.Trace(),
		webapp.ResolvePrincipal(deps.Sessions),
		httpx.RequestLogger(log.Default()),
	), nil
}

// NewServer opens the stores and constructs a web server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	httpAddr := discovery.OrDefaultListenAddr(cfg.HTTPAddr, discovery.ServiceWeb)
	calendar, err := kitchen.LoadCalendar(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	sessions, err := sessioncookie.NewCodec(cfg.SessionSecret, sessioncookie.DefaultTTL, nil)
	if err != nil {
		return nil, err
	}

	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOperation)
	defer cancel()
	kitchenStore, err := kitchensqlite.Open(openCtx, cfg.KitchenDBPath)
	if err != nil {
		return nil, fmt.Errorf("open kitchen sqlite store: %w", err)
	}
	outboxStore, err := notifysqlite.Open(openCtx, cfg.NotificationsDBPath)
	if err != nil {
		_ = kitchenStore.Close()
		return nil, fmt.Errorf("open notifications sqlite store: %w", err)
	}

	handler, err := NewHandler(module.Build(module.BuildInput{
		Calendar: calendar,
		Sessions: sessions,
		Kitchen:  kitchenStore,
		Outbox:   outboxStore,
	}))
	if err != nil {
		_ = outboxStore.Close()
		_ = kitchenStore.Close()
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		kitchen: kitchenStore,
		outbox:  outboxStore,
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close stops the HTTP server and closes the stores.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.outbox != nil {
		if err := s.outbox.Close(); err != nil {
			log.Printf("close notifications sqlite store: %v", err)
		}
	}
	if s.kitchen != nil {
		if err := s.kitchen.Close(); err != nil {
			log.Printf("close kitchen sqlite store: %v", err)
		}
	}
}

// Package web parses web command flags and launches the web server.
package web

import (
	"context"
	"flag"
	"log"

	entrypoint "github.com/wsaeed77/spice-loop/internal/platform/cmd"
	webserver "github.com/wsaeed77/spice-loop/internal/services/web"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr            string `env:"SPICE_LOOP_WEB_HTTP_ADDR" envDefault:":8080"`
	KitchenDBPath       string `env:"SPICE_LOOP_KITCHEN_DB_PATH" envDefault:"data/kitchen.db"`
	NotificationsDBPath string `env:"SPICE_LOOP_NOTIFICATIONS_DB_PATH" envDefault:"data/notifications.db"`
	Timezone            string `env:"SPICE_LOOP_TIMEZONE" envDefault:"Europe/London"`
	SessionSecret       string `env:"SPICE_LOOP_SESSION_SECRET"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.KitchenDBPath, "kitchen-db-path", cfg.KitchenDBPath, "The kitchen SQLite database path")
	fs.StringVar(&cfg.NotificationsDBPath, "notifications-db-path", cfg.NotificationsDBPath, "The notifications SQLite database path")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Restaurant IANA time zone")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := webserver.NewServer(ctx, webserver.Config{
			HTTPAddr:            cfg.HTTPAddr,
			KitchenDBPath:       cfg.KitchenDBPath,
			NotificationsDBPath: cfg.NotificationsDBPath,
			Timezone:            cfg.Timezone,
			SessionSecret:       cfg.SessionSecret,
		})
		if err != nil {
			return err
		}
		defer server.Close()

		log.Printf("web server listening at %s", server.Addr())
		return server.ListenAndServe(ctx)
	})
}

// Package seed loads the demo menu, weekly plan, riders and an admin account
// into the kitchen database.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/wsaeed77/spice-loop/internal/platform/cmd"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	kitchensqlite "github.com/wsaeed77/spice-loop/internal/services/kitchen/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	KitchenDBPath string `env:"SPICE_LOOP_KITCHEN_DB_PATH" envDefault:"data/kitchen.db"`
	AdminName     string `env:"SPICE_LOOP_ADMIN_NAME" envDefault:"Kitchen Admin"`
	AdminEmail    string `env:"SPICE_LOOP_ADMIN_EMAIL" envDefault:"admin@spiceloop.local"`
	AdminPassword string `env:"SPICE_LOOP_ADMIN_PASSWORD"`
	SkipMenu      bool
	Verbose       bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.KitchenDBPath, "kitchen-db-path", cfg.KitchenDBPath, "The kitchen SQLite database path")
	fs.StringVar(&cfg.AdminName, "admin-name", cfg.AdminName, "Display name of the admin account")
	fs.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "Email of the admin account")
	fs.BoolVar(&cfg.SkipMenu, "skip-menu", false, "only ensure the admin account")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.AdminPassword) == "" {
		return Config{}, errors.New("SPICE_LOOP_ADMIN_PASSWORD is required")
	}
	return cfg, nil
}

// Run opens the kitchen store and seeds it.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		store, err := kitchensqlite.Open(ctx, cfg.KitchenDBPath)
		if err != nil {
			return fmt.Errorf("open kitchen sqlite store: %w", err)
		}
		defer store.Close()
		return Seed(ctx, store, cfg, out)
	})
}

// Seed ensures the admin account and, unless cfg.SkipMenu is set, loads the
// demo catalog into an empty menu. Running it twice changes nothing.
func Seed(ctx context.Context, store *kitchensqlite.Store, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	logf := func(format string, args ...any) {
		if cfg.Verbose {
			fmt.Fprintf(out, format+"\n", args...)
		}
	}

	accounts := kitchen.NewAccounts(store, nil, nil)
	admin, err := accounts.EnsureAdmin(ctx, kitchen.RegisterInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	fmt.Fprintf(out, "admin account: %s\n", admin.Email)
	if cfg.SkipMenu {
		return nil
	}

	catalog := kitchen.NewCatalog(store, nil, nil)
	existing, err := catalog.ListMenuItems(ctx, false)
	if err != nil {
		return fmt.Errorf("list menu items: %w", err)
	}
	if len(existing) > 0 {
		fmt.Fprintf(out, "menu already has %d items, skipping demo menu\n", len(existing))
		return nil
	}
	for _, dish := range demoMenu {
		item, err := catalog.CreateMenuItem(ctx, dish.input)
		if err != nil {
			return fmt.Errorf("create %s: %w", dish.input.Name, err)
		}
		logf("menu item %s (%s)", item.Name, kitchen.FormatPence(item.PricePence))
		for _, day := range dish.days {
			if _, err := catalog.SetWeeklyOption(ctx, item.ID, string(day), true); err != nil {
				return fmt.Errorf("offer %s on %s: %w", item.Name, day, err)
			}
		}
	}
	fmt.Fprintf(out, "seeded %d menu items\n", len(demoMenu))

	riders := kitchen.NewRiders(store, nil, nil)
	for _, rider := range demoRiders {
		if _, err := riders.CreateRider(ctx, rider.name, rider.phone); err != nil {
			return fmt.Errorf("create rider %s: %w", rider.name, err)
		}
		logf("rider %s", rider.name)
	}
	fmt.Fprintf(out, "seeded %d riders\n", len(demoRiders))
	return nil
}

// Package worker parses worker command flags and launches the worker runtime.
package worker

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/wsaeed77/spice-loop/internal/platform/cmd"
	platformgrpc "github.com/wsaeed77/spice-loop/internal/platform/grpc"
	"github.com/wsaeed77/spice-loop/internal/platform/timeouts"
	"github.com/wsaeed77/spice-loop/internal/services/notifications/sender"
	workerserver "github.com/wsaeed77/spice-loop/internal/services/worker/app"
)

// Config holds worker command configuration.
type Config struct {
	Port                int           `env:"SPICE_LOOP_WORKER_PORT" envDefault:"8089"`
	KitchenDBPath       string        `env:"SPICE_LOOP_KITCHEN_DB_PATH" envDefault:"data/kitchen.db"`
	NotificationsDBPath string        `env:"SPICE_LOOP_NOTIFICATIONS_DB_PATH" envDefault:"data/notifications.db"`
	Timezone            string        `env:"SPICE_LOOP_TIMEZONE" envDefault:"Europe/London"`
	Owner               string        `env:"SPICE_LOOP_WORKER_OWNER"`
	SweepInterval       time.Duration `env:"SPICE_LOOP_WORKER_SWEEP_INTERVAL" envDefault:"5m"`
	LeaseTTL            time.Duration `env:"SPICE_LOOP_WORKER_LEASE_TTL" envDefault:"4m"`
	PollInterval        time.Duration `env:"SPICE_LOOP_WORKER_POLL_INTERVAL" envDefault:"5s"`
	BatchSize           int           `env:"SPICE_LOOP_WORKER_BATCH_SIZE" envDefault:"20"`
	MaxAttempts         int           `env:"SPICE_LOOP_WORKER_MAX_ATTEMPTS" envDefault:"8"`
	RetryBackoff        time.Duration `env:"SPICE_LOOP_WORKER_RETRY_BACKOFF" envDefault:"30s"`
	RetryMaxDelay       time.Duration `env:"SPICE_LOOP_WORKER_RETRY_MAX_DELAY" envDefault:"1h"`
	SMTPAddr            string        `env:"SPICE_LOOP_SMTP_ADDR"`
	SMTPFrom            string        `env:"SPICE_LOOP_SMTP_FROM" envDefault:"orders@spiceloop.local"`
	SMTPUsername        string        `env:"SPICE_LOOP_SMTP_USERNAME"`
	SMTPPassword        string        `env:"SPICE_LOOP_SMTP_PASSWORD"`
	HealthCheck         bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The worker health gRPC server port")
	fs.StringVar(&cfg.KitchenDBPath, "kitchen-db-path", cfg.KitchenDBPath, "The kitchen SQLite database path")
	fs.StringVar(&cfg.NotificationsDBPath, "notifications-db-path", cfg.NotificationsDBPath, "The notifications SQLite database path")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Restaurant IANA time zone")
	fs.StringVar(&cfg.Owner, "owner", cfg.Owner, "Lease owner name (defaults to host-pid)")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "Order sweep interval")
	fs.DurationVar(&cfg.LeaseTTL, "lease-ttl", cfg.LeaseTTL, "Order sweep lease duration")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Outbox poll interval")
	fs.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Outbox messages leased per poll")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "Maximum delivery attempts before dead-letter")
	fs.DurationVar(&cfg.RetryBackoff, "retry-backoff", cfg.RetryBackoff, "Base retry backoff delay")
	fs.DurationVar(&cfg.RetryMaxDelay, "retry-max-delay", cfg.RetryMaxDelay, "Maximum retry delay")
	fs.StringVar(&cfg.SMTPAddr, "smtp-addr", cfg.SMTPAddr, "SMTP relay host:port (empty logs email instead)")
	fs.BoolVar(&cfg.HealthCheck, "healthcheck", false, "Probe the running worker health server and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the worker runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWorker, func(ctx context.Context) error {
		return workerserver.Run(ctx, workerserver.RuntimeConfig{
			Port:                cfg.Port,
			KitchenDBPath:       cfg.KitchenDBPath,
			NotificationsDBPath: cfg.NotificationsDBPath,
			Timezone:            cfg.Timezone,
			Owner:               cfg.Owner,
			SweepInterval:       cfg.SweepInterval,
			SweepLeaseTTL:       cfg.LeaseTTL,
			PollInterval:        cfg.PollInterval,
			BatchSize:           cfg.BatchSize,
			MaxAttempts:         cfg.MaxAttempts,
			RetryBackoff:        cfg.RetryBackoff,
			RetryMaxDelay:       cfg.RetryMaxDelay,
			SMTP: sender.SMTPConfig{
				Addr:     cfg.SMTPAddr,
				From:     cfg.SMTPFrom,
				Username: cfg.SMTPUsername,
				Password: cfg.SMTPPassword,
			},
		})
	})
}

// HealthCheck probes the worker health server on the configured port.
func HealthCheck(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf("localhost:%d", cfg.Port)
	return platformgrpc.Check(ctx, addr, workerserver.HealthService, timeouts.GRPCDial)
}

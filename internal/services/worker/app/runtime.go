// Package app runs the background worker: the order sweep, the outbox
// dispatcher, and a gRPC health server.
package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wsaeed77/spice-loop/internal/platform/discovery"
	platformgrpc "github.com/wsaeed77/spice-loop/internal/platform/grpc"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	kitchensqlite "github.com/wsaeed77/spice-loop/internal/services/kitchen/storage/sqlite"
	notifyapp "github.com/wsaeed77/spice-loop/internal/services/notifications/app"
	notifications "github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
	"github.com/wsaeed77/spice-loop/internal/services/notifications/sender"
	notifysqlite "github.com/wsaeed77/spice-loop/internal/services/notifications/storage/sqlite"
)

// HealthService is the named gRPC health service the worker reports.
const HealthService = "worker.runtime"

// RuntimeConfig controls worker startup, dependencies, and loop behavior.
type RuntimeConfig struct {
	Port                int
	KitchenDBPath       string
	NotificationsDBPath string
	Timezone            string
	Owner               string
	SweepInterval       time.Duration
	SweepLeaseTTL       time.Duration
	PollInterval        time.Duration
	BatchSize           int
	MaxAttempts         int
	RetryBackoff        time.Duration
	RetryMaxDelay       time.Duration
	SMTP                sender.SMTPConfig
}

const (
	defaultKitchenDB     = "data/kitchen.db"
	defaultNotifyDB      = "data/notifications.db"
	defaultSweepInterval = 5 * time.Minute
	defaultPollInterval  = 5 * time.Second
)

func (cfg RuntimeConfig) normalized() RuntimeConfig {
	if cfg.Port <= 0 {
		cfg.Port = discovery.DefaultPort(discovery.ServiceWorker)
	}
	if strings.TrimSpace(cfg.KitchenDBPath) == "" {
		cfg.KitchenDBPath = defaultKitchenDB
	}
	if strings.TrimSpace(cfg.NotificationsDBPath) == "" {
		cfg.NotificationsDBPath = defaultNotifyDB
	}
	if strings.TrimSpace(cfg.Owner) == "" {
		cfg.Owner = defaultOwner()
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return cfg
}

func defaultOwner() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

// Run opens the stores, starts the health server, and runs the sweep and
// dispatch loops until ctx ends.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = cfg.normalized()

	calendar, err := kitchen.LoadCalendar(cfg.Timezone)
	if err != nil {
		return err
	}

	kitchenStore, err := kitchensqlite.Open(ctx, cfg.KitchenDBPath)
	if err != nil {
		return fmt.Errorf("open kitchen sqlite store: %w", err)
	}
	defer func() {
		if closeErr := kitchenStore.Close(); closeErr != nil {
			log.Printf("close kitchen sqlite store: %v", closeErr)
		}
	}()

	outboxStore, err := notifysqlite.Open(ctx, cfg.NotificationsDBPath)
	if err != nil {
		return fmt.Errorf("open notifications sqlite store: %w", err)
	}
	defer func() {
		if closeErr := outboxStore.Close(); closeErr != nil {
			log.Printf("close notifications sqlite store: %v", closeErr)
		}
	}()

	senders, err := buildSenders(cfg.SMTP)
	if err != nil {
		return err
	}

	outbox := notifications.NewService(outboxStore, message.NewPrinter(language.English), nil, nil)
	notifier := notifyapp.NewKitchenNotifier(outbox, kitchenStore, calendar)
	lifecycle := kitchen.NewLifecycle(calendar, kitchenStore, kitchen.LifecycleOptions{
		Locker:   kitchenStore,
		Owner:    cfg.Owner,
		LeaseTTL: cfg.SweepLeaseTTL,
		Observer: notifier,
	})
	dispatcher := notifications.NewDispatcher(outboxStore, senders, notifications.DispatchConfig{
		Owner:         cfg.Owner,
		BatchSize:     cfg.BatchSize,
		MaxAttempts:   cfg.MaxAttempts,
		RetryBackoff:  cfg.RetryBackoff,
		RetryMaxDelay: cfg.RetryMaxDelay,
	})

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on worker port %d: %w", cfg.Port, err)
	}
	health := platformgrpc.ServeHealth(listener, HealthService)
	defer health.Stop()
	log.Printf("worker health server listening at %v", health.Addr())

	return runLoops(ctx, cfg, lifecycle, dispatcher)
}

func runLoops(ctx context.Context, cfg RuntimeConfig, sweeper Sweeper, dispatcher Dispatcher) error {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runEvery(ctx, "order sweep", cfg.SweepInterval, time.Now, sweepTask(sweeper))
	}()
	go func() {
		defer wg.Done()
		runEvery(ctx, "outbox dispatch", cfg.PollInterval, time.Now, dispatchTask(dispatcher))
	}()
	log.Printf("worker %s running: sweep every %s, outbox poll every %s", cfg.Owner, cfg.SweepInterval, cfg.PollInterval)
	wg.Wait()
	return nil
}

func buildSenders(smtpCfg sender.SMTPConfig) (map[notifications.Channel]notifications.Sender, error) {
	logSender := sender.NewLogSender(nil)
	senders := map[notifications.Channel]notifications.Sender{
		notifications.ChannelSMS:   logSender,
		notifications.ChannelEmail: logSender,
	}
	if strings.TrimSpace(smtpCfg.Addr) == "" {
		return senders, nil
	}
	smtpSender, err := sender.NewSMTPSender(smtpCfg)
	if err != nil {
		return nil, fmt.Errorf("configure smtp sender: %w", err)
	}
	senders[notifications.ChannelEmail] = smtpSender
	return senders, nil
}

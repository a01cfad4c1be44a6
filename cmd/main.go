package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-menu/internal/config"
	"restaurant-menu/internal/database"
	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/menu"
	"restaurant-menu/internal/messaging"
	menuservice "restaurant-menu/internal/services/menu"
	"restaurant-menu/internal/services/notification"
	"restaurant-menu/internal/session"
)

const (
	modeMenuService   = "menu-service"
	modeOrderNotifier = "order-notifier"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (menu-service, order-notifier)")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		migrations = flag.String("migrations", "migrations", "Directory of SQL migrations")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":           *mode,
		"port":           cfg.HTTP.Port,
		"catalog_source": cfg.Menu.CatalogSource,
		"order_sink":     cfg.Menu.OrderSink,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case modeMenuService:
		err = runMenuService(ctx, cfg, log, *migrations)
	case modeOrderNotifier:
		err = runOrderNotifier(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runMenuService serves one widget session over HTTP
func runMenuService(ctx context.Context, cfg *config.Config, log *logger.Logger, migrationsDir string) error {
	checks := map[string]menuservice.HealthCheck{}

	catalog := menu.DefaultCatalog()
	if cfg.Menu.CatalogSource == config.CatalogPostgres {
		db, err := database.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		if err := db.RunMigrations(ctx, os.DirFS(migrationsDir)); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		catalog, err = db.LoadCatalog(ctx)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		checks["postgres"] = db.Ping
	}

	var sink session.OrderSink = session.NopSink{}
	if cfg.Menu.OrderSink == config.SinkRabbitMQ {
		conn, err := messaging.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		sink = messaging.NewOrderSink(messaging.NewPublisher(conn, log), cfg.Menu.CurrencySymbol)
		checks["rabbitmq"] = func(context.Context) error {
			if conn.IsClosed() {
				return fmt.Errorf("connection closed")
			}
			return nil
		}
	}

	sess := session.New(catalog, session.Options{
		Logger:            log,
		Sink:              sink,
		CarouselInterval:  cfg.Menu.CarouselInterval,
		ConfirmationDelay: cfg.Menu.ConfirmationDelay,
	})
	defer sess.Close()

	handler := menuservice.NewHandler(sess, cfg.Menu.CurrencySymbol, log)
	for name, check := range checks {
		handler.AddHealthCheck(name, check)
	}

	return menuservice.NewServer(cfg.HTTP, handler, log).Run(ctx)
}

// runOrderNotifier prints a line for every order the menu service publishes
func runOrderNotifier(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	consumer := messaging.NewConsumer(conn, log, messaging.OrdersQueue, "order-notifier", prefetch)
	return notification.NewSubscriber(consumer, log, os.Stdout).Start(ctx)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resto/internal/config"
	"resto/internal/logger"
	"resto/internal/messaging"
	"resto/internal/services/kitchen"
	"resto/internal/services/reporting"
	"resto/internal/storage"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (kitchen-worker, revenue-report)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		workerName = flag.String("worker-name", "", "Worker name (required for kitchen-worker mode)")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
		interval   = flag.Int("report-interval", 60, "Revenue report interval in seconds")
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "kitchen-worker":
		if *workerName == "" {
			log.Error("validation_failed", "worker-name is required for kitchen-worker mode", requestID, nil, nil)
			os.Exit(1)
		}
		if err := runKitchenWorker(ctx, cfg, log, *workerName, *prefetch); err != nil && ctx.Err() == nil {
			log.Error("service_failed", "Kitchen worker failed", requestID, err, nil)
			os.Exit(1)
		}
	case "revenue-report":
		if err := runRevenueReport(ctx, cfg, log, time.Duration(*interval)*time.Second); err != nil && ctx.Err() == nil {
			log.Error("service_failed", "Revenue reporter failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func runKitchenWorker(ctx context.Context, cfg *config.Config, log *logger.Logger, workerName string, prefetch int) error {
	requestID := logger.GenerateRequestID()

	store, err := storage.NewPostgres(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()
	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := store.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()
	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	consumer := messaging.NewConsumer(conn, log, messaging.KitchenQueue, workerName, prefetch)

	service := kitchen.NewService(store, publisher, log, workerName)
	worker := kitchen.NewWorker(workerName, service, consumer, log)

	return worker.Start(ctx)
}

func runRevenueReport(ctx context.Context, cfg *config.Config, log *logger.Logger, interval time.Duration) error {
	requestID := logger.GenerateRequestID()

	store, err := storage.NewPostgres(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()
	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	service := reporting.NewService(store, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := service.Revenue(ctx); err != nil {
			log.Error("report_failed", "Failed to compute revenue report", requestID, err, nil)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/adapter/postgres"
	"github.com/teedup/courseside/internal/adapter/rabbitmq"
	"github.com/teedup/courseside/internal/app/kitchen"
	"github.com/teedup/courseside/internal/app/tracking"
	"github.com/teedup/courseside/internal/config"

	amqpAdapter "github.com/teedup/courseside/internal/adapter/amqp"
	httpAdapter "github.com/teedup/courseside/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: order-service, tracking-service, notification-subscriber")
	port := flag.Int("port", 3000, "HTTP port")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lgr := logger.New(*mode)

	switch *mode {
	case "order-service":
		runOrderService(ctx, cancel, cfg, lgr, *port)

	case "tracking-service":
		runTrackingService(ctx, cfg, lgr, *port)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cancel, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runOrderService(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, lgr logger.Logger, port int) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	archive := postgres.NewOrderArchive(db)
	publisher := rabbitmq.NewPublisher(mqConn)
	settings := kitchen.NewSettingsStore(cfg.Printer.Settings())

	kitchenService := kitchen.NewService(settings, publisher, archive, lgr)
	if err := kitchenService.Start(ctx); err != nil {
		log.Fatalf("Failed to start kitchen service: %v", err)
	}

	orderHandler := httpAdapter.NewOrderHandler(kitchenService, lgr)
	kitchenHandler := httpAdapter.NewKitchenHandler(kitchenService, lgr)
	settingsHandler := httpAdapter.NewSettingsHandler(settings, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/orders", orderHandler.CreateOrder)
	mux.HandleFunc("/kitchen/orders", kitchenHandler.HandleOrders)
	mux.HandleFunc("/kitchen/orders/", kitchenHandler.HandleOrders)
	mux.HandleFunc("/kitchen/settings", settingsHandler.HandleSettings)

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Order Service started on port %d", port), "", map[string]interface{}{
		"port": port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down Order Service", "", nil)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "", nil, err)
		}
		if err := kitchenService.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error draining kitchen service", "", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "", nil, err)
	}
}

func runTrackingService(ctx context.Context, cfg *config.Config, lgr logger.Logger, port int) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	archive := postgres.NewOrderArchive(db)
	trackingService := tracking.NewService(archive, lgr)
	trackingHandler := httpAdapter.NewTrackingHandler(trackingService, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/orders/", trackingHandler.HandleOrders)

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Tracking Service started on port %d", port), "", map[string]interface{}{
		"port": port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down Tracking Service", "", nil)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, lgr logger.Logger) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	consumer := rabbitmq.NewConsumer(mqConn, lgr)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "", nil)

	go func() {
		if err := consumer.ConsumeNotifications(ctx, notificationHandler.HandleNotification); err != nil && ctx.Err() == nil {
			lgr.Error("consumer_error", "Error consuming notifications", "", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "", nil)
	cancel()
}

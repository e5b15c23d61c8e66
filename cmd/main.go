package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"yacht-tracker/internal/config"
	domainAssignment "yacht-tracker/internal/domain/assignment"
	domainCabin "yacht-tracker/internal/domain/cabin"
	"yacht-tracker/internal/events"
	"yacht-tracker/internal/infrastructure/database/memory"
	"yacht-tracker/internal/infrastructure/database/postgres"
	"yacht-tracker/internal/infrastructure/telemetry"
	"yacht-tracker/internal/logger"
	"yacht-tracker/internal/middleware"
	"yacht-tracker/internal/observability/metrics"
	"yacht-tracker/internal/routes"
	"yacht-tracker/internal/tracking"
	"yacht-tracker/internal/usecase/assignment"
	"yacht-tracker/internal/usecase/cabin"
	pkgmqtt "yacht-tracker/pkg/mqtt"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("store", cfg.Database.Driver),
		zap.String("tracking_api", cfg.Tracking.APIURL),
	)

	metrics.Init(nil)

	repo, storeHealth, closeStore := openStore(cfg)
	defer closeStore()

	inventory := domainCabin.DefaultInventory()
	if cfg.Inventory.File != "" {
		inventory, err = domainCabin.LoadInventory(cfg.Inventory.File)
		if err != nil {
			logger.Fatal("Failed to load cabin inventory", zap.String("file", cfg.Inventory.File), zap.Error(err))
		}
	}
	logger.Info("Cabin inventory loaded", zap.Int("cabins", inventory.Len()))

	client, err := telemetry.NewClient(cfg.Tracking.APIURL, cfg.Tracking.FetchTimeout)
	if err != nil {
		logger.Fatal("Failed to create telemetry client", zap.Error(err))
	}

	poller := tracking.NewPoller(client, cfg.Tracking.PollInterval, cfg.Tracking.FetchTimeout)
	defer poller.Close()

	publisher := startPublisher(cfg)

	assignments := assignment.NewService(repo, inventory, publisher, poller, cfg.Assignment.RequireLink)
	cabins := cabin.NewService(repo, inventory, poller, client)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
	defer limiter.Stop()

	router := routes.SetupRoutes(cfg, routes.Dependencies{
		Poller:      poller,
		Assignments: assignments,
		Cabins:      cabins,
		RateLimiter: limiter,
		StoreHealth: storeHealth,
	})

	if cfg.Tracking.StartLive {
		poller.Start()
	}

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	poller.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}
	if p, ok := publisher.(*events.MQTTPublisher); ok {
		p.Stop()
	}

	logger.Info("Server exited properly")
}

// openStore picks the assignment store named by DB_DRIVER.
func openStore(cfg *config.Config) (domainAssignment.Repository, func() error, func()) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("Using in-memory assignment store; assignments are lost on restart")
		return memory.NewAssignmentRepository(), nil, func() {}
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	return postgres.NewAssignmentRepository(db), db.Health, closeFn
}

// startPublisher connects the MQTT event publisher when enabled. A broker
// that cannot be reached downgrades to dropping events.
func startPublisher(cfg *config.Config) events.Publisher {
	if !cfg.MQTT.Enabled {
		return events.NopPublisher{}
	}

	publisher, err := events.NewMQTTPublisher(&events.MQTTPublisherConfig{
		ClientConfig: &pkgmqtt.Config{
			Broker:               cfg.MQTT.BrokerURL,
			ClientID:             cfg.MQTT.ClientID,
			Username:             cfg.MQTT.Username,
			Password:             cfg.MQTT.Password,
			CleanSession:         true,
			KeepAlive:            60,
			ConnectTimeout:       10,
			AutoReconnect:        true,
			MaxReconnectInterval: time.Minute,
			PublishTimeout:       5 * time.Second,
		},
		TopicPrefix: cfg.MQTT.TopicPrefix,
		QoS:         cfg.MQTT.QoS,
	})
	if err != nil {
		logger.Error("Failed to create MQTT publisher", zap.Error(err))
		return events.NopPublisher{}
	}
	if err := publisher.Start(); err != nil {
		logger.Error("Failed to connect MQTT publisher, assignment events disabled",
			zap.String("broker", cfg.MQTT.BrokerURL),
			zap.Error(err),
		)
		return events.NopPublisher{}
	}
	return publisher
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"botfolio/configs"
	"botfolio/internal/database"
	delivery "botfolio/internal/delivery/http"
	"botfolio/internal/infra"
	"botfolio/internal/repository"
	"botfolio/internal/service"
	"botfolio/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Server.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(ctx, db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize store and services
	store := repository.NewStore(db)
	ledger := usecase.NewLedgerService(store)
	marketData := service.NewMarketDataService()
	performance := service.NewPerformanceService(store, ledger)

	// Seed reference data and the bootstrap admin
	seeder := service.NewSeedService(store)
	if err := seeder.Run(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}

	// Daily performance scheduler
	scheduler := infra.NewScheduler(performance)
	if err := scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:   delivery.NewAuthHandler(store.Users()),
		BotHandler:    delivery.NewBotHandler(store.Bots(), store.Performances()),
		WalletHandler: delivery.NewWalletHandler(ledger),
		MarketHandler: delivery.NewMarketHandler(store.Positions(), marketData),
		AdminHandler:  delivery.NewAdminHandler(ledger, store.Bots(), store.Performances(), store.Transactions(), store.Users()),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run server in goroutine
	go func() {
		logrus.Infof("botfolio API starting on %s (env: %s)", addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited gracefully")
}

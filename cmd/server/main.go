package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/damon-houk/account-order-service/internal/infrastructure/api"
	"github.com/damon-houk/account-order-service/internal/infrastructure/config"
	"github.com/damon-houk/account-order-service/internal/infrastructure/db"
	"github.com/damon-houk/account-order-service/internal/infrastructure/handler"
	"github.com/damon-houk/account-order-service/internal/infrastructure/logger"
	"github.com/damon-houk/account-order-service/internal/infrastructure/middleware"
	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting account-order service", map[string]interface{}{
		"listen_addr": cfg.ListenAddr,
		"db_path":     cfg.DBPath,
	})

	// Setup BadgerDB
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		appLogger.Fatal("Failed to create database directory", map[string]interface{}{"error": err.Error()})
	}

	badgerOpts := badger.DefaultOptions(cfg.DBPath)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		appLogger.Fatal("Failed to open database", map[string]interface{}{"error": err.Error()})
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			appLogger.Error("Error closing BadgerDB", map[string]interface{}{"error": err.Error()})
		}
	}()

	store, err := db.NewStore(badgerDB)
	if err != nil {
		appLogger.Fatal("Failed to initialize store", map[string]interface{}{"error": err.Error()})
	}
	defer store.Close()

	// Initialize gateway clients
	gatewayHTTP := &http.Client{Timeout: cfg.GatewayTimeout}
	notifier := api.NewNotificationClient(cfg.NotificationURL, gatewayHTTP)
	payments := api.NewPaymentClient(cfg.PaymentURL, gatewayHTTP)

	// Initialize repositories
	accountRepo := db.NewBadgerAccountRepository(store, notifier, appLogger)
	orderRepo := db.NewBadgerOrderRepository(store, payments, appLogger)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountRepo, appLogger)
	orderHandler := handler.NewOrderHandler(orderRepo, appLogger)

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(appLogger))
	accountHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	appLogger.Info("Server listening", map[string]interface{}{"addr": cfg.ListenAddr})
	if err := server.ListenAndServe(); err != nil {
		appLogger.Fatal("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}

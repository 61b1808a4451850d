package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/conference-checkout/internal/checkout"
	"github.com/Lixing-Zhang/conference-checkout/internal/config"
	"github.com/Lixing-Zhang/conference-checkout/internal/events"
	"github.com/Lixing-Zhang/conference-checkout/internal/handlers"
	"github.com/Lixing-Zhang/conference-checkout/internal/hooks"
	"github.com/Lixing-Zhang/conference-checkout/internal/middleware"
	"github.com/Lixing-Zhang/conference-checkout/internal/options"
	"github.com/Lixing-Zhang/conference-checkout/internal/repository"
	"github.com/Lixing-Zhang/conference-checkout/internal/service"
	"github.com/Lixing-Zhang/conference-checkout/internal/tickets"
	"github.com/Lixing-Zhang/conference-checkout/pkg/database"
	"github.com/Lixing-Zhang/conference-checkout/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting conference checkout server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.LogLevel,
	)

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()
	cartRepo := repository.NewInMemoryCartRepository()

	var (
		orderRepo   repository.OrderRepository
		optionsRepo options.Repository
	)
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := database.OpenMySQL(ctx, cfg.Storage.MySQL)
		cancel()
		if err != nil {
			log.Error("failed to connect to mysql", "error", err)
			os.Exit(1)
		}
		defer closeDB(db, log)
		orderRepo = repository.NewMySQLOrderRepository(db)
		optionsRepo = repository.NewMySQLOptionsRepository(db)
		log.Info("mysql storage ready", "host", cfg.Storage.MySQL.Host, "database", cfg.Storage.MySQL.Name)
	default:
		orderRepo = repository.NewInMemoryOrderRepository()
		optionsRepo = repository.NewInMemoryOptionsRepository()
	}

	// Order events
	var publisher service.OrderPublisher = events.NopPublisher{}
	if cfg.Events.RabbitMQURL != "" {
		rmq, err := events.NewRabbitMQPublisher(cfg.Events.RabbitMQURL, cfg.Events.OrderExchange, log)
		if err != nil {
			log.Error("failed to initialize rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rmq.Close()
		publisher = rmq
		log.Info("publishing order events", "exchange", cfg.Events.OrderExchange)
	}

	// Checkout events and the conference registration extension
	validate := validator.New()
	registry := hooks.NewEvents()
	checkout.NewExtension(tickets.NewInspector(log), checkout.NewValidator(validate), log).Register(registry)

	// Initialize services
	productService := service.NewProductService(productRepo)
	checkoutService := service.NewCheckoutService(
		cartRepo,
		productRepo,
		orderRepo,
		options.NewStore(optionsRepo, log),
		registry,
		publisher,
		log,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, cfg.Storage.Driver)
	productHandler := handlers.NewProductHandler(productService, log)
	cartHandler := handlers.NewCartHandler(checkoutService, validate, log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, log)
	adminHandler := handlers.NewAdminHandler(checkoutService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Administrator routes authenticate with a bearer token instead of the storefront key
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminJWT(cfg.Auth.JWTSecret))
			r.Get("/orders/{orderId}", adminHandler.OrderDetails)
			r.Get("/options", adminHandler.GetOptions)
			r.Put("/options", adminHandler.UpdateOptions)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))

			r.Get("/product", productHandler.ListProducts)
			r.Get("/product/{productId}", productHandler.GetProduct)

			r.Post("/cart", cartHandler.CreateCart)
			r.Get("/cart/{cartId}", cartHandler.GetCart)
			r.Post("/cart/{cartId}/items", cartHandler.AddItem)
			r.Put("/cart/{cartId}/payment-method", cartHandler.SetPaymentMethod)

			r.Get("/cart/{cartId}/checkout", checkoutHandler.Form)
			r.Post("/cart/{cartId}/checkout/validate", checkoutHandler.Validate)
			r.Post("/cart/{cartId}/checkout", checkoutHandler.PlaceOrder)

			r.Get("/orders/{orderId}/email-fields", checkoutHandler.EmailFields)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("server failed to start", "error", err)
		return
	}

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server stopped gracefully")
}

func closeDB(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("failed to close database", "error", err)
	}
}

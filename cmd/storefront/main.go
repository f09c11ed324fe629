package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/cart"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/checkout"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/history"
	h "github.com/Vishal0325/agri-dost-store-sub000/internal/http"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/store"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/wallet"
)

type Config struct {
	HTTPPort        string
	StorageBackend  string
	DataFilePath    string
	SQLitePath      string
	MigrationsPath  string
	RedisAddr       string
	RedisPassword   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "memory"),
		DataFilePath:    getEnv("DATA_FILE_PATH", "data/storefront.json"),
		SQLitePath:      getEnv("SQLITE_PATH", "data/storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "internal/store/migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func openStore(ctx context.Context, cfg *Config) (store.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.OpenFileStore(cfg.DataFilePath)
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := s.RunMigrations(cfg.MigrationsPath); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, err
		}
		return store.NewRedisStore(client), nil
	default:
		return nil, errors.New("unknown STORAGE_BACKEND: " + cfg.StorageBackend)
	}
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	kv, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer kv.Close()
	log.Printf("Using %s storage backend", cfg.StorageBackend)

	cartStore := cart.NewStore()
	walletStore := wallet.NewStore(ctx, kv)
	historyLog := history.NewLog(ctx, kv)
	coordinator := checkout.NewCoordinator(cartStore, walletStore, historyLog)

	cartHandler := h.NewCartHandler(cartStore)
	walletHandler := h.NewWalletHandler(walletStore)
	checkoutHandler := h.NewCheckoutHandler(coordinator)
	ordersHandler := h.NewOrdersHandler(historyLog)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Post("/items/{product_id}/toggle", cartHandler.ToggleSelection)
			r.Post("/selection", cartHandler.SelectAll)
		})
		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.GetWallet)
			r.Post("/topup", walletHandler.TopUp)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/orders", ordersHandler.ListOrders)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"mansaf-kitchen/internal/config"
	"mansaf-kitchen/internal/dispatch"
	"mansaf-kitchen/internal/logger"
	"mansaf-kitchen/internal/pricing"
	"mansaf-kitchen/internal/services/order"
	"mansaf-kitchen/internal/store"
)

const sessionMaxIdle = 2 * time.Hour

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	// .env is optional; environment overrides are applied by config.Load.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("order-service")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", requestID, "Starting order service", map[string]any{
		"addr":       cfg.Addr(),
		"static_dir": cfg.Server.StaticDir,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", requestID, "Received shutdown signal", nil)
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service_failed", requestID, "Order service failed", err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", requestID, "Service stopped gracefully", nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	sessions := store.New()
	wa := dispatch.NewWhatsApp(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Recipient)
	service := order.NewService(pricing.Default(), wa, log)
	handler := order.NewHandler(service, sessions, log)

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(handler.RequestLogger)
	handler.RegisterRoutes(router)

	// The promotional page itself is static; serve it alongside the API.
	if cfg.Server.StaticDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(cfg.Server.StaticDir)))
	}

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	// Abandoned drafts are discarded; there is nothing worth keeping in them.
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if purged := sessions.PurgeIdle(sessionMaxIdle); purged > 0 {
					log.Debug("sessions_purged", requestID, "idle order sessions discarded", map[string]any{
						"purged": purged,
					})
				}
			}
		}
	}()

	go func() {
		log.Info("server_listening", requestID, fmt.Sprintf("Order service listening on %s", cfg.Addr()), nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", requestID, "HTTP server failed", err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

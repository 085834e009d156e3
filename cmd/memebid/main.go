package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efreitasn/memebid/internal/config"
	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/engine"
	"github.com/efreitasn/memebid/internal/handler"
	"github.com/efreitasn/memebid/internal/pubsub"
	"github.com/efreitasn/memebid/internal/service"
	"github.com/efreitasn/memebid/internal/storage"
	"github.com/efreitasn/memebid/internal/storage/postgres"
	"github.com/efreitasn/memebid/internal/store"
	"github.com/efreitasn/memebid/internal/ws"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable storage: Postgres when DATABASE_URL is set, otherwise
	// process-local memory (state is lost on restart).
	var durable storage.Store
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		durable = pg
		logger.Info("durable storage ready", slog.String("backend", "postgres"))
	} else {
		durable = storage.NewMemory()
		logger.Info("durable storage ready", slog.String("backend", "memory"))
	}
	defer durable.Close()

	// Instantiate stores.
	userStore := store.NewUserStore()
	bidStore := store.NewBidStore()
	ledger := store.NewCreditLedger(userStore)

	// Domain.
	items := domain.NewItemRegistry()

	// Engine.
	auctions := engine.NewAuctionManager()
	leaderboard := engine.NewLeaderboard()

	// Reload persisted state before serving traffic.
	persistedUsers, err := durable.LoadUsers(ctx)
	if err != nil {
		logger.Error("failed to load users", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, u := range persistedUsers {
		if err := userStore.Create(u); err != nil {
			logger.Error("failed to restore user", slog.String("user_id", u.UserID), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	persistedBids, err := durable.LoadBids(ctx)
	if err != nil {
		logger.Error("failed to load bids", slog.String("error", err.Error()))
		os.Exit(1)
	}
	bidStore.Restore(persistedBids)
	for _, itemID := range bidStore.Items() {
		items.Register(itemID)
		if highest, ok := bidStore.CurrentHighest(itemID); ok {
			leaderboard.Update(highest)
		}
	}
	logger.Info("state restored",
		slog.Int("users", len(persistedUsers)),
		slog.Int("bids", len(persistedBids)),
		slog.Int("items", len(bidStore.Items())),
	)

	// Event broker for committed-bid fan-out.
	broker := pubsub.NewBroker(cfg.EventBuffer)

	coordinator := engine.NewCoordinator(auctions, bidStore, ledger, userStore, items, leaderboard, durable, broker)

	// Services.
	userSvc := service.NewUserService(userStore, ledger, durable)
	bidSvc := service.NewBidService(coordinator)
	itemSvc := service.NewItemService(items, bidStore, leaderboard)

	// Real-time channel.
	registry := ws.NewRegistry()
	hub := ws.NewHub(registry, broker, bidSvc, userStore, cfg.SessionBuffer, cfg.PingInterval, logger)
	go hub.Run(ctx)

	// Router.
	router := handler.NewRouter(userSvc, bidSvc, itemSvc, hub, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops the hub).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}

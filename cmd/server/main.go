package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vedran77/circle/internal/config"
	"github.com/vedran77/circle/internal/database"
	"github.com/vedran77/circle/internal/events"
	"github.com/vedran77/circle/internal/repository"
	"github.com/vedran77/circle/internal/repository/memory"
	postgresrepo "github.com/vedran77/circle/internal/repository/postgres"
	"github.com/vedran77/circle/internal/security"
	"github.com/vedran77/circle/internal/service"
	"github.com/vedran77/circle/internal/transport/http/handlers"
	"github.com/vedran77/circle/internal/transport/http/middleware"
	"github.com/vedran77/circle/internal/transport/ws"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Security
	hasher, err := security.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := security.NewTokenService(cfg.Token)
	if err != nil {
		return err
	}

	// Services
	gate := service.NewAccessGate(store.Friends())
	authService := service.NewAuthService(store, hasher, tokens)
	profileService := service.NewProfileService(store, gate)
	friendService := service.NewFriendService(store)
	postService := service.NewPostService(store, gate)
	ledger := service.NewReactionLedger(store, gate)
	countryService := service.NewCountryService(store.Countries())

	// Notifications
	hub := ws.NewHub(logger)
	notifiers := service.Notifiers{ws.NewHubNotifier(hub)}
	if cfg.NatsURL != "" {
		nc, err := events.NewClient(events.Config{
			URL:           cfg.NatsURL,
			Name:          "circle",
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
		}, logger)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer nc.Close()
		notifiers = append(notifiers, events.NewPublisher(nc, logger))
		logger.Info("publishing events to nats", "url", cfg.NatsURL)
	}
	friendService.SetNotifier(notifiers)
	postService.SetNotifier(notifiers)
	ledger.SetNotifier(notifiers)

	// Routes
	mux := handlers.NewRouter(handlers.Services{
		Auth:      authService,
		Profiles:  profileService,
		Friends:   friendService,
		Posts:     postService,
		Reactions: ledger,
		Countries: countryService,
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /ws", ws.ServeWS(hub, authService, postService))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           middleware.Logging(logger)(middleware.CORS(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.Store, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		store := memory.NewStore()
		store.SeedCountries(database.Countries...)
		logger.Warn("using in-memory storage, data is lost on exit")
		return store, func() {}, nil
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := database.SeedCountries(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)
	return postgresrepo.NewStore(pool), pool.Close, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

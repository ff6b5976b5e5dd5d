package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mathquest/internal/config"
	"github.com/gokatarajesh/mathquest/internal/game"
	"github.com/gokatarajesh/mathquest/internal/game/scoring"
	"github.com/gokatarajesh/mathquest/internal/logging"
	"github.com/gokatarajesh/mathquest/internal/metrics"
	"github.com/gokatarajesh/mathquest/internal/question"
	"github.com/gokatarajesh/mathquest/internal/server"
	ws "github.com/gokatarajesh/mathquest/pkg/http/ws"
)

// Application aggregates shared infrastructure (question bank, session
// store, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis *redis.Client
	http  *http.Server
	pacer *game.Pacer

	sweeper   *game.SweepWorker
	bgCancels []context.CancelFunc
}

// New builds the question bank, the session store and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	gameMetrics := metrics.New(registry)

	bank, err := question.Build(ctx, question.Options{
		Seed:     cfg.Bank.Seed,
		Target:   cfg.Bank.Target,
		Attempts: cfg.Bank.Attempts,
		Strict:   cfg.Bank.Strict,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build question bank: %w", err)
	}
	for _, r := range bank.Reports() {
		gameMetrics.Pool(string(r.Category), r.Generated, r.Rejected, r.Skipped)
	}

	var (
		store       game.Store
		redisClient *redis.Client
		pinger      server.Pinger
		sweeper     *game.SweepWorker
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		redisStore := game.NewRedisStore(redisClient, cfg.Game.SessionTTL, logger)
		if err := redisStore.Ping(ctx); err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store, pinger = redisStore, redisStore
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
	} else {
		memStore := game.NewMemoryStore(cfg.Game.SessionTTL)
		store = memStore
		sweeper = game.NewSweepWorker(memStore, cfg.Game.SweepInterval, logger)
		logger.Warn().Msg("REDIS_ADDR not set; sessions are kept in process memory")
	}

	thresholds := cfg.Game.StarThresholds
	svc := game.NewService(bank, store, game.ServiceOptions{
		QuestionsPerRound: cfg.Game.QuestionsPerRound,
		Scoring: scoring.Config{
			ThreeStars: thresholds[0],
			TwoStars:   thresholds[1],
			OneStar:    thresholds[2],
		},
		Metrics:     gameMetrics,
		LockTimeout: cfg.Game.LockTimeout,
	}, logger)

	pacer := game.NewPacer(cfg.Game.AutoAdvanceDelay)
	wsHub := ws.NewHub(logger)
	wsHandler := game.NewWSHandler(svc, wsHub, pacer, server.NewUpgrader(cfg.CORS.AllowedOrigins), logger)
	httpHandlers := game.NewHTTPHandlers(svc, bank, pacer, logger)

	apiServer := server.NewHTTPServer(cfg, logger, registry, pinger, wsHandler.HandleWebSocket, httpHandlers)

	return &Application{
		cfg:       cfg,
		logger:    logger,
		redis:     redisClient,
		http:      apiServer,
		pacer:     pacer,
		sweeper:   sweeper,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pacer.Stop()
	for _, cancel := range a.bgCancels {
		cancel()
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.sweeper != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.sweeper.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("session sweeper stopped")
			}
		}()
	}
}

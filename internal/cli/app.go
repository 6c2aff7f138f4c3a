package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/internal/config"
	"github.com/aretw0/guessr/pkg/adapters/redis"
	"github.com/aretw0/guessr/pkg/adapters/sqlite"
	"github.com/aretw0/guessr/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App bundles an engine with the infrastructure built from the configuration.
type App struct {
	Config   config.Config
	Engine   *guessr.Engine
	Logger   *slog.Logger
	Registry *prometheus.Registry
	// Recorder is nil when no results database is configured.
	Recorder *sqlite.Recorder

	closers []func() error
}

// NewApp wires the engine from cfg: the dataset provider, the seeded randomizer,
// metrics and debug hooks, the optional Redis game store and lock, and the SQLite ledger.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	provider, err := guessr.OpenDataset(cfg.Dataset, cfg.NameColumn)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	app.Registry.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(app.Registry)

	opts := []guessr.Option{
		guessr.WithProvider(provider),
		guessr.WithLogger(logger),
		guessr.WithMaxDepth(cfg.MaxDepth),
		guessr.WithQuestionBudget(cfg.QuestionBudget),
		guessr.WithRandomizer(guessr.NewSeededRandomizer(cfg.Seed)),
		guessr.WithLifecycleHooks(metrics.Hooks()),
		guessr.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}

	if cfg.Redis != "" {
		client, err := redis.Dial(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
		opts = append(opts,
			guessr.WithStore(redis.NewStore(client, redis.WithTTL(cfg.SessionTTL))),
			guessr.WithLocker(redis.NewLocker(client, "")),
		)
		logger.Info("Sharing games through redis", "redis", cfg.Redis, "session_ttl", cfg.SessionTTL)
	}

	if cfg.Results != "" {
		rec, err := sqlite.Open(cfg.Results)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("open results database: %w", err)
		}
		app.Recorder = rec
		app.closers = append(app.closers, rec.Close)
		opts = append(opts, guessr.WithRecorder(rec))
		logger.Info("Recording results", "path", cfg.Results)
	}

	eng, err := guessr.New(opts...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = eng
	return app, nil
}

// Close releases the infrastructure in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

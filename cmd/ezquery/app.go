package main

import (
	"fmt"
	"log/slog"

	"github.com/nhath/ezquery/internal/config"
	"github.com/nhath/ezquery/internal/executor"
	"github.com/nhath/ezquery/internal/history"
	"github.com/nhath/ezquery/internal/logger"
	"github.com/nhath/ezquery/internal/results"
	"github.com/nhath/ezquery/internal/source"
	"github.com/nhath/ezquery/internal/store"
)

// app is the wiring shared by the TUI and the one-shot commands
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *source.Registry
	history  *history.Store
	store    *store.Store
	exec     *executor.Executor
}

// newApp loads config, opens the log and history, and builds the store and
// executor. With delay false the simulated query delay is skipped.
func newApp(delay bool) (*app, error) {
	l, err := logger.Init("", debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Close()
		return nil, err
	}

	a := &app{cfg: cfg, logger: l, registry: cfg.Registry(l)}

	ledger := history.NewLedger(cfg.HistoryCapacity)
	if cfg.PersistHistory {
		if a.history, err = openHistory(cfg); err != nil {
			// the session still works without persistence
			l.Warn("history store unavailable", "error", err)
		} else if ledger, err = a.history.Load(); err != nil {
			l.Warn("load history", "error", err)
		}
	}

	a.store = store.New(
		store.WithCatalog(cfg.Catalog()),
		store.WithHistory(ledger),
		store.WithView(results.NewViewState(cfg.PageSize, results.ParseViewMode(cfg.ViewMode))),
		store.WithLogger(l),
	)

	opts := []executor.Option{executor.WithLogger(l)}
	if delay {
		opts = append(opts, executor.WithDelay(cfg.Query.Delay.Duration))
	}
	if a.history != nil {
		opts = append(opts, executor.WithPersist(a.history.Add))
	}
	a.exec = executor.New(a.registry, a.store, opts...)

	return a, nil
}

// Close releases the history database and the log file
func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("close history", "error", err)
		}
	}
	logger.Close()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	return history.NewStore(path, cfg.HistoryCapacity)
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/shelf/internal/bookmarks"
	"github.com/nikbrunner/shelf/internal/config"
	"github.com/nikbrunner/shelf/internal/logger"
	"github.com/nikbrunner/shelf/internal/resolver"
	"github.com/nikbrunner/shelf/internal/storage"
)

// env is everything a command needs: config, logger, storage and the
// initialized store.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	backend storage.Backend
	res     resolver.Resolver
	store   *bookmarks.Store
}

// openEnv loads the config and opens the store. Only serve logs to
// stderr; everything else logs to the configured file so command output
// stays clean.
func openEnv(ctx context.Context, logToStderr bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if ephemeral {
		cfg.Storage.Backend = "memory"
	}

	logOpts := logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}
	if !logToStderr {
		logOpts.OutputPath = cfg.Log.File
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	var res resolver.Resolver = resolver.Hostname{}
	if cfg.Resolver.FetchTitles {
		res = resolver.NewTitleResolver(cfg.Resolver.Timeout, log)
	}

	store := bookmarks.New(bookmarks.Params{
		Adapter:  backend,
		Resolver: res,
		Logger:   log,
	})
	if err := store.Initialize(ctx); err != nil {
		// The seeded collection stays usable in memory
		if !errors.Is(err, bookmarks.ErrPersistence) {
			_ = backend.Close()
			return nil, err
		}
		log.Warn("could not save starter bookmark", logger.Error(err))
	}

	return &env{cfg: cfg, log: log, backend: backend, res: res, store: store}, nil
}

func (e *env) Close() error {
	err := e.backend.Close()
	_ = e.log.Sync()
	if err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

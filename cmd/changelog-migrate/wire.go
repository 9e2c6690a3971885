package main

import (
	"fmt"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driven/config/file"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/cli"
	fswatch "github.com/custodia-labs/changelog-migrate/internal/connectors/filesystem"
	"github.com/custodia-labs/changelog-migrate/internal/connectors/rss"
	"github.com/custodia-labs/changelog-migrate/internal/connectors/web"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/changelog-migrate/internal/core/services"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
	"github.com/custodia-labs/changelog-migrate/internal/normalisers/markdown"
)

// buildConfigWriter returns a config service for path that never reads the
// existing file. config init uses it to replace broken configs.
func buildConfigWriter(path string) (driving.ConfigService, string) {
	store := file.NewBlankConfigStore(path)
	return services.NewConfigService(store), store.Path()
}

// buildServices wires adapters to services for the config file at path.
func buildServices(path string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	configService := services.NewConfigService(configStore)
	cfg, err := configService.Load()
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", configStore.Path(), err)
	}
	logger.Debug("config loaded from %s", configStore.Path())

	// History is optional; a broken database never blocks a migration.
	var (
		history driven.HistoryStore
		closer  *sqlite.Store
	)
	if cfg.HistoryDB != "" {
		store, err := sqlite.NewStore(cfg.HistoryDB)
		if err != nil {
			logger.Warn("run history disabled: %v", err)
		} else {
			history = store
			closer = store
		}
	}

	feed := services.NewFeedService(rss.New(), cfg.FeedPath)
	entries := filesystem.NewEntryStore(cfg.MarkdownDir)

	fetcher := web.New(web.Config{
		Timeout:   cfg.RequestTimeout,
		MaxBytes:  cfg.MaxBodyBytes,
		UserAgent: cfg.UserAgent,
	})
	pacer := web.NewPacer(cfg.InterRequestDelay)
	logger.Debug("pacing requests %s apart, concurrency %d", pacer.Delay(), cfg.Concurrency)

	svc := &cli.Services{
		Config:     cfg,
		ConfigPath: configStore.Path(),
		ConfigSvc:  configService,
		Feed:       feed,
		Fetch:      services.NewFetchService(feed, fetcher, entries, pacer, history, cfg.Concurrency),
		Combine: services.NewCombineService(feed, entries, entries, markdown.New(cfg.IndentWidth), history,
			services.CombineOptions{
				OutputPath:  cfg.OutputPath,
				Title:       cfg.Title,
				Description: cfg.Description,
			}),
		NewWatcher: func() cli.ChangeWatcher {
			return fswatch.NewWatcher(fswatch.WatchConfig{
				Dir:    cfg.MarkdownDir,
				Ext:    filesystem.EntryExt,
				Files:  []string{cfg.FeedPath},
				Ignore: []string{cfg.OutputPath},
			})
		},
	}

	svc.History = services.NewHistoryService(history)
	// A nil *sqlite.Store must not become a non-nil io.Closer.
	if closer != nil {
		svc.Closer = closer
	}

	return svc, nil
}

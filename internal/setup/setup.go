// Package setup wires configuration into concrete runtime components:
// logger, dataset source and the graph store with its snapshot fast path.
package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/cache"
	"github.com/drug-interaction-server/internal/database"
	"github.com/drug-interaction-server/internal/dataset"
	"github.com/drug-interaction-server/internal/domain"
	"github.com/drug-interaction-server/internal/graph"
)

// NewLogger builds the application logger from the logging config.
func NewLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	}

	var out io.Writer = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}
	logger.SetOutput(out)

	return logger
}

// Runtime holds the components main tears down on shutdown.
type Runtime struct {
	Provider *graph.Provider
	Snapshot domain.SnapshotStore

	db          *database.DB
	datasetSrc  io.Closer
	cacheCloser io.Closer
	log         *logrus.Logger
}

// Close releases the runtime's database and cache handles.
func (r *Runtime) Close() {
	r.closeDatasetHandles()
	if r.cacheCloser != nil {
		if err := r.cacheCloser.Close(); err != nil {
			r.log.WithError(err).Warn("Closing snapshot cache failed")
		}
	}
}

// closeDatasetHandles releases the current dataset source and database
// pool. Reload reopens the source, so the previous handles must go first
// or every reload of a sqlite or postgres source leaks a connection.
func (r *Runtime) closeDatasetHandles() {
	if r.datasetSrc != nil {
		if err := r.datasetSrc.Close(); err != nil {
			r.log.WithError(err).Warn("Closing dataset source failed")
		}
		r.datasetSrc = nil
	}
	if r.db != nil {
		r.db.Close()
		r.db = nil
	}
}

// BuildRuntime loads the dataset, builds the graph store and publishes it
// on a provider. When the snapshot cache holds a usable snapshot the
// dataset load is skipped entirely; otherwise the freshly built graph is
// snapshotted back into the cache.
func BuildRuntime(ctx context.Context, configManager domain.ConfigManager, logger *logrus.Logger) (*Runtime, error) {
	rt := &Runtime{log: logger}

	cacheCfg := configManager.GetCacheConfig()
	switch {
	case cacheCfg.Enabled:
		store, err := cache.NewRedisSnapshotStore(*cacheCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("creating snapshot cache: %w", err)
		}
		rt.Snapshot = store
		rt.cacheCloser = store
	case cacheCfg.SnapshotPath != "":
		store, err := cache.NewFileSnapshotStore(cacheCfg.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("creating snapshot store: %w", err)
		}
		rt.Snapshot = store
	}

	if rt.Snapshot != nil {
		if data, found, err := rt.Snapshot.Load(ctx); err != nil {
			logger.WithError(err).Warn("Snapshot cache load failed, rebuilding from dataset")
		} else if found {
			store, err := graph.Restore(logger, data)
			if err != nil {
				logger.WithError(err).Warn("Cached snapshot rejected, rebuilding from dataset")
			} else {
				logger.WithField("drugs", store.DrugCount()).Info("Graph restored from snapshot cache")
				rt.Provider = graph.NewProvider(store)
				return rt, nil
			}
		}
	}

	src, err := rt.openDatasetSource(ctx, configManager, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}

	store, err := buildStore(ctx, src, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Provider = graph.NewProvider(store)

	if rt.Snapshot != nil {
		data, err := store.Snapshot()
		if err != nil {
			logger.WithError(err).Warn("Serializing graph snapshot failed")
		} else if err := rt.Snapshot.Save(ctx, data); err != nil {
			logger.WithError(err).Warn("Saving graph snapshot failed")
		}
	}

	return rt, nil
}

// Reload rebuilds the graph from the dataset source and publishes the new
// store. The snapshot cache is refreshed on success.
func (r *Runtime) Reload(ctx context.Context, configManager domain.ConfigManager, logger *logrus.Logger) error {
	src, err := r.openDatasetSource(ctx, configManager, logger)
	if err != nil {
		return err
	}

	store, err := buildStore(ctx, src, logger)
	if err != nil {
		return err
	}
	r.Provider.Publish(store)

	if r.Snapshot != nil {
		if data, err := store.Snapshot(); err == nil {
			if err := r.Snapshot.Save(ctx, data); err != nil {
				logger.WithError(err).Warn("Saving graph snapshot failed")
			}
		}
	}
	return nil
}

func (r *Runtime) openDatasetSource(ctx context.Context, configManager domain.ConfigManager, logger *logrus.Logger) (domain.DatasetSource, error) {
	r.closeDatasetHandles()

	cfg := configManager.GetDatasetConfig()

	switch cfg.Source {
	case "", "embedded":
		return dataset.NewEmbeddedSource(), nil

	case "json":
		return dataset.NewJSONSource(cfg.DrugsPath, cfg.InteractionsPath), nil

	case "sqlite":
		src, err := dataset.NewSQLiteSource(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		r.datasetSrc = src
		return src, nil

	case "postgres":
		dbCfg := configManager.GetConfig().Database

		runner, err := database.NewMigrationRunner(database.ConnectionURL(dbCfg), cfg.MigrationsPath, logger)
		if err != nil {
			return nil, fmt.Errorf("creating migration runner: %w", err)
		}
		if err := runner.Up(ctx); err != nil {
			runner.Close()
			return nil, err
		}
		if err := runner.Close(); err != nil {
			logger.WithError(err).Warn("Closing migration runner failed")
		}

		db, err := database.NewConnection(ctx, dbCfg, logger)
		if err != nil {
			return nil, err
		}
		r.db = db
		return dataset.NewPostgresSource(db.Pool, logger), nil

	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

func buildStore(ctx context.Context, src domain.DatasetSource, logger *logrus.Logger) (*graph.Store, error) {
	drugs, err := src.LoadDrugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading drugs: %w", err)
	}
	interactions, err := src.LoadInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading interactions: %w", err)
	}
	return graph.Build(logger, drugs, interactions)
}

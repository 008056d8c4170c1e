// Package app wires storage shared by the bot and the command-line tools.
package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/aliskhannn/vocab-companion/internal/config"
	"github.com/aliskhannn/vocab-companion/internal/infra/postgres"
	"github.com/aliskhannn/vocab-companion/internal/repository"
)

// OpenStore opens the key-value store selected by cfg.Storage.Driver.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return repository.NewFileStore(afero.NewOsFs(), cfg.Storage.DataDir)

	case config.DriverSQLite:
		return repository.NewSQLiteStore(ctx, cfg.Storage.SQLitePath)

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		store, err := repository.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}

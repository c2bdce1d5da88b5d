// Package localstore implementa los backends del caché local: memoria, Redis y SQLite.
package localstore

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

// Drivers soportados en CACHE_DRIVER.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open construye el LocalStore configurado. El io.Closer libera la conexión al apagar.
func Open(ctx context.Context, cfg config.CacheConfig) (catalog.LocalStore, io.Closer, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return catalog.NewMemoryStore(), nopCloser{}, nil
	case DriverRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		store := NewRedisStore(client, cfg.Prefix)
		return store, store, nil
	case DriverSQLite:
		store, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("CACHE_DRIVER desconocido: %q", cfg.Driver)
	}
}

// Package app assembles the store from configuration for the binaries.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/shasthoai/store-backend/internal/cart"
	"github.com/shasthoai/store-backend/internal/catalog"
	"github.com/shasthoai/store-backend/internal/store"
	"github.com/shasthoai/store-backend/pkg/config"
	"github.com/shasthoai/store-backend/pkg/db"
	"github.com/shasthoai/store-backend/pkg/enums"
	"github.com/shasthoai/store-backend/pkg/kv"
	"github.com/shasthoai/store-backend/pkg/logger"
	"github.com/shasthoai/store-backend/pkg/metrics"
	"github.com/shasthoai/store-backend/pkg/migrate"
	"github.com/shasthoai/store-backend/pkg/redis"
)

// Backend is an opened key-value backend.
type Backend struct {
	Kind    enums.KVBackend
	Store   kv.Store
	Pingers map[string]kv.Pinger
	closers []func() error
}

// Close releases every resource the backend opened.
func (b *Backend) Close() error {
	var err error
	for i := len(b.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, b.closers[i]())
	}
	return err
}

// OpenBackend connects the configured key-value backend. The sql backend
// runs migrations when auto-migrate is enabled.
func OpenBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Backend, error) {
	kind, err := cfg.Store.Backend()
	if err != nil {
		return nil, err
	}

	switch kind {
	case enums.KVBackendMemory:
		mem := kv.NewMemory()
		return &Backend{
			Kind:    kind,
			Store:   mem,
			Pingers: map[string]kv.Pinger{"memory": mem},
			closers: []func() error{mem.Close},
		}, nil

	case enums.KVBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		return &Backend{
			Kind:    kind,
			Store:   client,
			Pingers: map[string]kv.Pinger{"redis": client},
			closers: []func() error{client.Close},
		}, nil

	case enums.KVBackendSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("migrate database: %w", err), client.Close())
		}
		return &Backend{
			Kind:    kind,
			Store:   db.NewKVStore(client),
			Pingers: map[string]kv.Pinger{"database": client},
			closers: []func() error{client.Close},
		}, nil
	}
	return nil, fmt.Errorf("unsupported kv backend %q", kind)
}

// CatalogSource picks the fixture file when configured, else the built-in catalog.
func CatalogSource(cfg *config.Config) catalog.Source {
	if path := strings.TrimSpace(cfg.Store.CatalogFile); path != "" {
		return catalog.FileSource{Path: path}
	}
	return catalog.StaticSource{}
}

// Pricing maps the store config onto cart pricing rules.
func Pricing(cfg *config.Config) cart.Pricing {
	return cart.Pricing{
		TaxRate:               cfg.Store.TaxRate,
		FreeShippingThreshold: cfg.Store.FreeShippingThreshold,
		FlatShipping:          cfg.Store.FlatShipping,
	}
}

// NewRegistry loads the catalog and builds the session registry over backend.
func NewRegistry(ctx context.Context, cfg *config.Config, logg *logger.Logger, backend *Backend, m *metrics.StoreMetrics) (*store.Registry, error) {
	c, err := catalog.Load(ctx, CatalogSource(cfg))
	if err != nil {
		return nil, err
	}
	logg.Info(logg.WithField(ctx, "products", c.Len()), "catalog loaded")

	return store.NewRegistry(store.Options{
		Catalog:      c,
		Store:        backend.Store,
		Namespace:    cfg.Store.Namespace,
		Pricing:      Pricing(cfg),
		RelatedLimit: cfg.Store.RelatedLimit,
		Logger:       logg,
		Metrics:      m,
	})
}

// Package app assembles the portal's data pipeline from a configuration.
package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/nconklindev/portail/internal/cache"
	"github.com/nconklindev/portail/internal/config"
	"github.com/nconklindev/portail/internal/demo"
	"github.com/nconklindev/portail/internal/portal"
	"github.com/nconklindev/portail/internal/sheets"
	"github.com/nconklindev/portail/internal/table"
)

// Fetcher returns the source of sheet rows for cfg's mode.
func Fetcher(cfg config.Config) cache.Fetcher {
	switch cfg.Mode() {
	case config.ModeDemo:
		tables := demo.Tables(time.Now())
		return cache.FetcherFunc(func(ctx context.Context, src cache.Source) (table.RawTable, error) {
			return tables[src.Name].Clone(), ctx.Err()
		})

	case config.ModeDir:
		dir := sheets.Dir{Path: cfg.DataDir}
		return cache.FetcherFunc(func(ctx context.Context, src cache.Source) (table.RawTable, error) {
			raw, err := dir.Load(ctx, src.Name)
			if errors.Is(err, sheets.ErrNotFound) {
				log.Printf("[app] %v, using an empty table", err)
				return table.RawTable{}, nil
			}
			return raw, err
		})
	}

	client := sheets.NewClient(cfg.APIKey,
		sheets.WithBaseURL(cfg.APIBaseURL),
		sheets.WithTimeout(cfg.HTTPTimeout),
	)
	return cache.FetcherFunc(func(ctx context.Context, src cache.Source) (table.RawTable, error) {
		return client.Values(ctx, src.SpreadsheetID, src.Range)
	})
}

// NewStore validates cfg and builds the refresh cache over its sources.
func NewStore(cfg config.Config) (*cache.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cache.New(Fetcher(cfg), portal.Sources(cfg), cfg.RefreshInterval), nil
}

// Load builds the store and runs a first refresh.
func Load(ctx context.Context, cfg config.Config) (*cache.Store, *portal.Service, error) {
	store, err := NewStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[app] loading %d sources (%s mode)", len(store.Sources()), cfg.Mode())
	if err := store.Refresh(ctx); err != nil {
		return nil, nil, err
	}
	return store, portal.NewService(store), nil
}

// Package cache keeps the latest fetched sheet ranges behind an explicit
// Refresh, so the views read one consistent snapshot between refreshes.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nconklindev/portail/internal/table"
)

var ErrUnknownSource = errors.New("cache: unknown source")

// Source names one sheet range.
type Source struct {
	Name          string
	SpreadsheetID string
	Range         string
}

// Fetcher loads the raw rows of a source.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) (table.RawTable, error)
}

type FetcherFunc func(ctx context.Context, src Source) (table.RawTable, error)

func (f FetcherFunc) Fetch(ctx context.Context, src Source) (table.RawTable, error) {
	return f(ctx, src)
}

// Store holds the last successful fetch of every source.
type Store struct {
	fetcher  Fetcher
	sources  map[string]Source
	order    []string
	interval time.Duration
	now      func() time.Time

	mu        sync.RWMutex
	tables    map[string]table.RawTable
	fetchedAt map[string]time.Time
	lastFetch time.Time
	lastErr   error
}

type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New builds a store. interval is how old the data may get before Stale
// reports true; zero means never stale.
func New(fetcher Fetcher, sources []Source, interval time.Duration, opts ...Option) *Store {
	s := &Store{
		fetcher:   fetcher,
		sources:   make(map[string]Source, len(sources)),
		interval:  interval,
		now:       time.Now,
		tables:    make(map[string]table.RawTable),
		fetchedAt: make(map[string]time.Time),
	}
	for _, src := range sources {
		if _, dup := s.sources[src.Name]; !dup {
			s.order = append(s.order, src.Name)
		}
		s.sources[src.Name] = src
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the named sources, or all of them, concurrently. Either
// every table is replaced or, on the first error, none is.
func (s *Store) Refresh(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		names = s.order
	}

	targets := make([]Source, 0, len(names))
	for _, name := range names {
		src, ok := s.sources[name]
		if !ok {
			return fmt.Errorf("%q: %w", name, ErrUnknownSource)
		}
		targets = append(targets, src)
	}

	results := make([]table.RawTable, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range targets {
		g.Go(func() error {
			raw, err := s.fetcher.Fetch(gctx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}
			results[i] = raw
			return nil
		})
	}

	err := g.Wait()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	if err != nil {
		log.Printf("[cache] refresh failed: %v", err)
		return err
	}

	for i, src := range targets {
		s.tables[src.Name] = results[i]
		s.fetchedAt[src.Name] = now
	}
	s.lastFetch = now

	log.Printf("[cache] refreshed %d source(s)", len(targets))
	return nil
}

// Table returns a copy of the last fetched rows of a source.
func (s *Store) Table(name string) (table.RawTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.tables[name]
	if !ok {
		return nil, false
	}
	return raw.Clone(), true
}

// Records maps the cached rows of a source with spec. A source never fetched
// maps to no records.
func (s *Store) Records(name string, spec table.ColumnSpec) ([]table.Record, error) {
	raw, _ := s.Table(name)
	return table.MapRows(raw, spec)
}

// LastFetch is the time of the last successful refresh, zero before any.
func (s *Store) LastFetch() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch
}

func (s *Store) FetchedAt(name string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.fetchedAt[name]
	return t, ok
}

// Err returns the error of the last refresh, nil if it succeeded.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Stale reports whether a refresh is due at now.
func (s *Store) Stale(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastFetch.IsZero() {
		return true
	}
	if s.interval <= 0 {
		return false
	}
	return now.Sub(s.lastFetch) >= s.interval
}

func (s *Store) Interval() time.Duration { return s.interval }

// Sources returns the configured sources in registration order.
func (s *Store) Sources() []Source {
	out := make([]Source, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.sources[name])
	}
	return out
}

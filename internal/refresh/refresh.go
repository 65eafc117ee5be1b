// Package refresh keeps the current trade snapshot up to date.
//
// A Refresher loads the trade set once on demand and then on a fixed
// interval; readers take whatever Snapshot the Store holds at the moment
// they ask and never block on a reload.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/guttosm/p2pulse/internal/domain/models"
	"github.com/guttosm/p2pulse/internal/logger"
)

// ErrInvalidInterval is returned by Run when the interval is not positive.
var ErrInvalidInterval = errors.New("refresh interval must be positive")

// Snapshot is an immutable view of one load.
//
// Fields:
//   - Set: the trade set; never nil.
//   - LoadedAt: when Set was loaded successfully (zero for the fallback).
//   - Source: name of the source Set came from.
//   - Err: the most recent load failure, nil when Set is fresh.
type Snapshot struct {
	Set      models.TradeSet
	LoadedAt time.Time
	Source   string
	Err      error
}

// Stale reports whether the most recent load failed.
func (s *Snapshot) Stale() bool { return s.Err != nil }

// Store holds the latest Snapshot. Safe for concurrent use.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty store; Current reports false until the first publish.
func NewStore() *Store { return &Store{} }

// Current returns the latest snapshot, or false when nothing was published yet.
func (s *Store) Current() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

func (s *Store) publish(snap *Snapshot) { s.current.Store(snap) }

// TradeLoader is what the refresher needs from a loader.Loader.
type TradeLoader interface {
	Load(ctx context.Context) (models.TradeSet, error)
	Source() string
}

// Refresher reloads trades into a Store.
type Refresher struct {
	loader   TradeLoader
	store    *Store
	interval time.Duration
	now      func() time.Time
}

// NewRefresher builds a refresher.
//
// Parameters:
//   - loader: produces the trade set; its Source() name is recorded on snapshots.
//   - store: where snapshots are published.
//   - interval: period used by Run; must be positive.
func NewRefresher(loader TradeLoader, store *Store, interval time.Duration) *Refresher {
	return &Refresher{loader: loader, store: store, interval: interval, now: time.Now}
}

// Store returns the store this refresher publishes to.
func (r *Refresher) Store() *Store { return r.store }

// RefreshNow loads once and publishes the result.
//
// Behavior:
//   - Success: publishes a fresh snapshot.
//   - Failure with a previous snapshot: republishes its data with Err set.
//   - Failure on the first load: publishes the empty fallback set with Err set.
//
// The load error is returned in both failure cases.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	set, err := r.loader.Load(ctx)
	if err == nil {
		r.store.publish(&Snapshot{Set: set, LoadedAt: r.now(), Source: r.loader.Source()})
		return nil
	}

	if prev, ok := r.store.Current(); ok {
		r.store.publish(&Snapshot{Set: prev.Set, LoadedAt: prev.LoadedAt, Source: prev.Source, Err: err})
		return err
	}
	if set == nil {
		set = models.TradeSet{}
	}
	r.store.publish(&Snapshot{Set: set, Source: r.loader.Source(), Err: err})
	return err
}

// Run reloads every interval until ctx is done, then waits for a running
// reload to finish. Overlapping reloads are skipped.
func (r *Refresher) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return ErrInvalidInterval
	}

	lg := logger.For("refresh")
	cl := cronLogger{lg: lg}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	spec := "@every " + r.interval.String()
	if _, err := c.AddFunc(spec, func() {
		if err := r.RefreshNow(ctx); err != nil {
			lg.Warn().Err(err).Msg("scheduled refresh failed, keeping previous snapshot")
		}
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}

	lg.Info().Dur("interval", r.interval).Msg("refresher started")
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	lg.Info().Msg("refresher stopped")
	return nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	lg zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.lg.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.lg.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// Package loader turns a trade feed (file, HTTP endpoint or Postgres table)
// into a validated models.TradeSet.
package loader

import (
	"context"
	"errors"

	"github.com/guttosm/p2pulse/internal/domain/models"
	"github.com/guttosm/p2pulse/internal/logger"
)

var (
	// ErrInvalidDate is returned when a record date is not a strict YYYY-MM-DD.
	ErrInvalidDate = models.ErrInvalidDate
	// ErrInvalidRecord is returned when a record fails field validation.
	ErrInvalidRecord = errors.New("invalid trade record")
	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("duplicate trade id")
	// ErrMalformedDocument is returned when the feed is not the expected JSON shape.
	ErrMalformedDocument = errors.New("malformed trade document")
	// ErrSourceUnavailable is returned when the feed cannot be read at all.
	ErrSourceUnavailable = errors.New("trade source unavailable")
)

// Source produces a full trade set on every call.
type Source interface {
	Name() string
	Load(ctx context.Context) (models.TradeSet, error)
}

// Loader wraps a Source with the fallback policy: callers always get a usable set.
type Loader struct {
	source Source
}

// New returns a Loader reading from source.
func New(source Source) *Loader {
	return &Loader{source: source}
}

// Fallback is the set handed out when a source fails: empty and non-nil.
func Fallback() models.TradeSet {
	return models.TradeSet{}
}

// Source returns the name of the underlying source.
func (l *Loader) Source() string {
	return l.source.Name()
}

// Load reads the source once.
//
// On failure the error is logged and returned together with Fallback(), so
// the caller can decide whether to keep an older snapshot.
func (l *Loader) Load(ctx context.Context) (models.TradeSet, error) {
	lg := logger.For("loader")

	set, err := l.source.Load(ctx)
	if err != nil {
		lg.Error().Err(err).Str("source", l.source.Name()).Msg("failed to load trades, using fallback")
		return Fallback(), err
	}
	if set == nil {
		set = models.TradeSet{}
	}

	lg.Info().Str("source", l.source.Name()).Int("records", len(set)).Msg("trades loaded")
	return set, nil
}

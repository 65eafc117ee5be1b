package loader

import (
	"context"
	"fmt"

	"github.com/guttosm/p2pulse/internal/domain/models"
	"github.com/guttosm/p2pulse/internal/storage"
)

// PostgresSource lists operations from the read-only operations table and
// runs them through the same checks as the JSON feed.
type PostgresSource struct {
	repo storage.OperationsRepository
}

// NewPostgresSource returns a source listing operations through repo.
//
// Parameters:
//   - repo: read-only operations repository backed by the Postgres connection.
func NewPostgresSource(repo storage.OperationsRepository) *PostgresSource {
	return &PostgresSource{repo: repo}
}

// Name identifies the source in logs and snapshots.
func (s *PostgresSource) Name() string { return "postgres:p2p_operations" }

// Load lists every operation and validates the result like a decoded feed.
// Repository failures wrap ErrSourceUnavailable.
func (s *PostgresSource) Load(ctx context.Context) (models.TradeSet, error) {
	ops, err := s.repo.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	set := models.TradeSet(ops)
	if err := Validate(set); err != nil {
		return nil, err
	}
	return set, nil
}

// Ping reports whether the database answers.
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

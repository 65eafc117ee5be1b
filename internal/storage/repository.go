package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/p2pulse/internal/domain/models"
)

// OperationsRepository defines the read contract over the P2P operations table.
type OperationsRepository interface {
	ListOperations(ctx context.Context) ([]models.TradeRecord, error)
	Ping(ctx context.Context) error
}

type operationsRepository struct {
	db *sql.DB
}

// NewOperationsRepository returns a read-only repository over db.
func NewOperationsRepository(db *sql.DB) OperationsRepository {
	return &operationsRepository{db: db}
}

const listOperationsQuery = `
	SELECT id, trade_date, asset, side, amount, profit, status
	FROM p2p_operations
	ORDER BY trade_date, id`

// ListOperations returns every operation ordered by trade date, then id.
//
// trade_date is a DATE column and is rendered back to YYYY-MM-DD so the
// records look exactly like the JSON feed ones. A NULL status becomes "".
func (r *operationsRepository) ListOperations(ctx context.Context) ([]models.TradeRecord, error) {
	rows, err := r.db.QueryContext(ctx, listOperationsQuery)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.TradeRecord, 0, 64)
	for rows.Next() {
		var (
			rec    models.TradeRecord
			day    time.Time
			side   string
			amount decimal.Decimal
			profit decimal.Decimal
			status sql.NullString
		)
		if err := rows.Scan(&rec.ID, &day, &rec.Asset, &side, &amount, &profit, &status); err != nil {
			return nil, err
		}
		rec.Date = day.Format(models.DateLayout)
		rec.Side = models.NormalizeSide(side)
		rec.Amount = amount
		rec.Profit = profit
		if status.Valid {
			rec.Status = status.String
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks database connectivity for the readiness probe.
func (r *operationsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

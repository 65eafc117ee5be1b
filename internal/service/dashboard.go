package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/p2pulse/internal/aggregator"
	"github.com/guttosm/p2pulse/internal/domain/models"
	"github.com/guttosm/p2pulse/internal/refresh"
)

// Rolling windows shown on the dashboard cards, in days before today.
const (
	TodayWindow = 0
	WeekWindow  = 7
	MonthWindow = 30
)

// ErrNoSnapshot is returned until the first load has been published.
var ErrNoSnapshot = errors.New("no trade snapshot loaded yet")

// SnapshotProvider gives access to the latest published snapshot.
type SnapshotProvider interface {
	Current() (*refresh.Snapshot, bool)
}

// ChangeCalculator derives relative profit changes for the summary.
// No default implementation exists; without one the summary has no changes.
type ChangeCalculator interface {
	Changes(set models.TradeSet, now time.Time) (*models.Changes, error)
}

// DashboardService defines the read operations behind the dashboard.
// Each call works on one snapshot taken at its start.
type DashboardService interface {
	Summary(ctx context.Context) (*models.Summary, error)
	Operations(ctx context.Context) (models.TradeSet, error)
	TopDays(ctx context.Context, n int, positiveOnly bool) ([]models.DayProfit, error)
	ProfitOn(ctx context.Context, date string) (models.DayProfit, error)
	Series(ctx context.Context, days int) ([]models.DayProfit, error)
	DailyVolumes(ctx context.Context) ([]models.DailyVolume, error)
}

// Options tunes a DashboardService. Zero values fall back to 5 top days,
// a 7 day chart, UTC and time.Now.
type Options struct {
	TopDays   int
	ChartDays int
	Location  *time.Location
	Clock     func() time.Time
	Changes   ChangeCalculator
}

type dashboardService struct {
	snapshots SnapshotProvider
	opts      Options
}

// NewDashboardService returns a DashboardService reading snapshots from
// snapshots, with zero Options fields replaced by their defaults.
func NewDashboardService(snapshots SnapshotProvider, opts Options) DashboardService {
	if opts.TopDays <= 0 {
		opts.TopDays = 5
	}
	if opts.ChartDays <= 0 {
		opts.ChartDays = 7
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &dashboardService{snapshots: snapshots, opts: opts}
}

func (s *dashboardService) snapshot() (*refresh.Snapshot, error) {
	snap, ok := s.snapshots.Current()
	if !ok {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

func (s *dashboardService) now() time.Time {
	return s.opts.Clock().In(s.opts.Location)
}

// Summary computes the dashboard cards, best days and chart series.
func (s *dashboardService) Summary(ctx context.Context) (*models.Summary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	now := s.now()
	set := snap.Set

	out := &models.Summary{
		TradeCount: len(set),
		AsOf:       now,
		LoadedAt:   snap.LoadedAt,
		Source:     snap.Source,
	}
	if snap.Err != nil {
		out.LoadError = snap.Err.Error()
	}

	windows := []struct {
		days int
		dst  *decimal.Decimal
	}{
		{TodayWindow, &out.Today},
		{WeekWindow, &out.Week},
		{MonthWindow, &out.Month},
	}
	for _, w := range windows {
		if *w.dst, err = aggregator.SumProfitInWindow(set, w.days, now); err != nil {
			return nil, err
		}
	}
	if out.Total, err = aggregator.SumProfitTotal(set); err != nil {
		return nil, err
	}
	if out.TopDays, err = aggregator.TopProfitableDays(set, s.opts.TopDays, true); err != nil {
		return nil, err
	}
	if out.Series, err = aggregator.ProfitSeries(set, s.opts.ChartDays, now); err != nil {
		return nil, err
	}
	if s.opts.Changes != nil {
		if out.Changes, err = s.opts.Changes.Changes(set, now); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Operations returns a copy of the current trade set.
func (s *dashboardService) Operations(ctx context.Context) (models.TradeSet, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Set.Clone(), nil
}

func (s *dashboardService) TopDays(ctx context.Context, n int, positiveOnly bool) ([]models.DayProfit, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return aggregator.TopProfitableDays(snap.Set, n, positiveOnly)
}

func (s *dashboardService) ProfitOn(ctx context.Context, date string) (models.DayProfit, error) {
	day, err := models.ParseDay(date)
	if err != nil {
		return models.DayProfit{}, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return models.DayProfit{}, err
	}
	profit, err := aggregator.SumProfitOnDate(snap.Set, date)
	if err != nil {
		return models.DayProfit{}, err
	}
	return models.DayProfit{Day: day, Profit: profit}, nil
}

func (s *dashboardService) Series(ctx context.Context, days int) ([]models.DayProfit, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return aggregator.ProfitSeries(snap.Set, days, s.now())
}

func (s *dashboardService) DailyVolumes(ctx context.Context) ([]models.DailyVolume, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return aggregator.DailyVolumes(snap.Set)
}

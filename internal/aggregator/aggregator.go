// Package aggregator reduces a trade snapshot into dashboard metrics.
//
// Every function is pure: it reads the records it is given, keeps no state
// between calls and is safe to call concurrently on the same or different
// snapshots. A record whose date cannot be parsed aborts the call with
// ErrInvalidDate; no partial result is returned.
package aggregator

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/p2pulse/internal/domain/models"
)

// Unbounded as windowDays makes SumProfitInWindow cover every record.
const Unbounded = -1

// ErrInvalidDate is the only error kind produced by this package.
var ErrInvalidDate = models.ErrInvalidDate

// SumProfitInWindow sums the profit of records dated within windowDays days
// before reference, both ends inclusive, at date granularity.
//
// With reference 2024-01-10 and windowDays 7, 2024-01-03 is included and
// 2024-01-02 is not. A negative windowDays (see Unbounded) drops both bounds.
func SumProfitInWindow(records models.TradeSet, windowDays int, reference time.Time) (decimal.Decimal, error) {
	upper := models.DayOf(reference)
	lower := upper.AddDays(-windowDays)
	bounded := windowDays >= 0

	sum := decimal.Zero
	for _, r := range records {
		d, err := recordDay(r)
		if err != nil {
			return decimal.Zero, err
		}
		if bounded && (d.Before(lower) || d.After(upper)) {
			continue
		}
		sum = sum.Add(r.Profit)
	}
	return sum, nil
}

// SumProfitTotal sums the profit of every record. Zero for an empty set.
func SumProfitTotal(records models.TradeSet) (decimal.Decimal, error) {
	return SumProfitInWindow(records, Unbounded, time.Time{})
}

// SumProfitOnDate sums the profit of records dated exactly date (YYYY-MM-DD).
func SumProfitOnDate(records models.TradeSet, date string) (decimal.Decimal, error) {
	target, err := models.ParseDay(date)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, r := range records {
		d, err := recordDay(r)
		if err != nil {
			return decimal.Zero, err
		}
		if d == target {
			sum = sum.Add(r.Profit)
		}
	}
	return sum, nil
}

// TopProfitableDays groups records by date and returns at most n days ordered
// by summed profit, highest first; equal profits are ordered by date, earliest
// first. When positiveOnly is set, days with profit <= 0 are dropped before
// truncating. The result is empty, never nil, when no day qualifies.
func TopProfitableDays(records models.TradeSet, n int, positiveOnly bool) ([]models.DayProfit, error) {
	daily, err := DailyProfits(records)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.DayProfit, 0, len(daily))
	for _, dp := range daily {
		if positiveOnly && !dp.Profit.IsPositive() {
			continue
		}
		ranked = append(ranked, dp)
	}

	slices.SortFunc(ranked, func(a, b models.DayProfit) int {
		if c := b.Profit.Cmp(a.Profit); c != 0 {
			return c
		}
		return a.Day.Compare(b.Day)
	})

	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// DailyProfits returns the summed profit per distinct date, oldest first.
func DailyProfits(records models.TradeSet) ([]models.DayProfit, error) {
	sums := make(map[models.Day]decimal.Decimal)
	for _, r := range records {
		d, err := recordDay(r)
		if err != nil {
			return nil, err
		}
		sums[d] = sums[d].Add(r.Profit)
	}

	out := make([]models.DayProfit, 0, len(sums))
	for d, p := range sums {
		out = append(out, models.DayProfit{Day: d, Profit: p})
	}
	slices.SortFunc(out, func(a, b models.DayProfit) int { return a.Day.Compare(b.Day) })
	return out, nil
}

// ProfitSeries returns one entry per calendar day for the days days ending at
// reference (inclusive), oldest first. Days without trades carry zero profit.
func ProfitSeries(records models.TradeSet, days int, reference time.Time) ([]models.DayProfit, error) {
	daily, err := DailyProfits(records)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		return []models.DayProfit{}, nil
	}

	byDay := make(map[models.Day]decimal.Decimal, len(daily))
	for _, dp := range daily {
		byDay[dp.Day] = dp.Profit
	}

	end := models.DayOf(reference)
	out := make([]models.DayProfit, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := end.AddDays(-i)
		out = append(out, models.DayProfit{Day: d, Profit: byDay[d]})
	}
	return out, nil
}

// DailyVolumes returns, per distinct date and oldest first, the summed amount
// bought and sold and how many trades of each side happened.
func DailyVolumes(records models.TradeSet) ([]models.DailyVolume, error) {
	byDay := make(map[models.Day]*models.DailyVolume)
	for _, r := range records {
		d, err := recordDay(r)
		if err != nil {
			return nil, err
		}
		v, ok := byDay[d]
		if !ok {
			v = &models.DailyVolume{Day: d}
			byDay[d] = v
		}
		if r.Side == models.SideBuy {
			v.Bought = v.Bought.Add(r.Amount)
			v.Buys++
		} else {
			v.Sold = v.Sold.Add(r.Amount)
			v.Sells++
		}
	}

	out := make([]models.DailyVolume, 0, len(byDay))
	for _, v := range byDay {
		out = append(out, *v)
	}
	slices.SortFunc(out, func(a, b models.DailyVolume) int { return a.Day.Compare(b.Day) })
	return out, nil
}

func recordDay(r models.TradeRecord) (models.Day, error) {
	d, err := models.ParseDay(r.Date)
	if err != nil {
		return models.Day{}, fmt.Errorf("record %d: %w", r.ID, err)
	}
	return d, nil
}

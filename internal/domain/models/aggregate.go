package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayProfit is the summed profit of every trade on one calendar day.
type DayProfit struct {
	Day    Day
	Profit decimal.Decimal
}

// DailyVolume summarizes the principal traded on one day, split by side.
//
// Fields:
//   - Bought / Sold: summed Amount of BUY / SELL records.
//   - Buys / Sells: number of BUY / SELL records.
type DailyVolume struct {
	Day    Day
	Bought decimal.Decimal
	Sold   decimal.Decimal
	Buys   int
	Sells  int
}

// Trades returns the number of records of the day.
func (v DailyVolume) Trades() int { return v.Buys + v.Sells }

// Changes holds relative profit changes. No derivation is defined for them yet;
// they are only populated when a calculator is plugged into the dashboard service.
type Changes struct {
	TodayVsYesterday decimal.Decimal
	WeekVsLastWeek   decimal.Decimal
}

// Summary is everything the dashboard cards, chart and best-days list show.
//
// Fields:
//   - Today, Week, Month: rolling-window profit (0, 7 and 30 days back, inclusive).
//   - Total: profit over the whole trade set.
//   - TradeCount: number of records in the snapshot.
//   - TopDays: most profitable days (positive only), best first.
//   - Series: one entry per day for the chart, oldest first, zero-filled.
//   - Changes: nil unless a change calculator is configured.
//   - AsOf: the reference instant used for the windows.
//   - LoadedAt, Source: provenance of the snapshot.
//   - LoadError: last reload failure, empty when the snapshot is fresh.
type Summary struct {
	Today      decimal.Decimal
	Week       decimal.Decimal
	Month      decimal.Decimal
	Total      decimal.Decimal
	TradeCount int
	TopDays    []DayProfit
	Series     []DayProfit
	Changes    *Changes
	AsOf       time.Time
	LoadedAt   time.Time
	Source     string
	LoadError  string
}

// Stale reports whether the last reload failed.
func (s *Summary) Stale() bool { return s.LoadError != "" }

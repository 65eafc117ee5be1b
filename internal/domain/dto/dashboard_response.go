package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/p2pulse/internal/domain/models"
)

// Money amounts are rendered as strings with two fraction digits so clients
// never see binary float rounding.
const moneyPlaces = 2

func money(d decimal.Decimal) string { return d.StringFixed(moneyPlaces) }

// DayProfitResponse is one day of summed profit.
type DayProfitResponse struct {
	Date   string `json:"date" example:"2024-01-01"`
	Profit string `json:"profit" example:"7.00"`
}

// ChangesResponse carries relative changes, when a calculator is configured.
type ChangesResponse struct {
	TodayVsYesterday string `json:"today_vs_yesterday" example:"12.50"`
	WeekVsLastWeek   string `json:"week_vs_last_week" example:"-3.10"`
}

// DashboardResponse represents the JSON structure returned by the
// GET /api/v1/dashboard endpoint.
//
// Fields match the API contract and may differ from internal domain models.
type DashboardResponse struct {
	TodayProfit string              `json:"today_profit" example:"12.00"`
	WeekProfit  string              `json:"week_profit" example:"80.50"`
	MonthProfit string              `json:"month_profit" example:"310.25"`
	TotalProfit string              `json:"total_profit" example:"1250.00"`
	TradeCount  int                 `json:"trade_count" example:"42"`
	TopDays     []DayProfitResponse `json:"top_days"`
	Series      []DayProfitResponse `json:"series"`
	Changes     *ChangesResponse    `json:"changes,omitempty"`
	AsOf        time.Time           `json:"as_of"`
	LoadedAt    *time.Time          `json:"loaded_at,omitempty"`
	Source      string              `json:"source" example:"file:./data/p2p-data.json"`
	Stale       bool                `json:"stale"`
	LoadError   string              `json:"load_error,omitempty"`
}

// OperationResponse is one row of the operations table. Side keeps the feed
// label (COMPRA/VENTA).
type OperationResponse struct {
	ID     int64  `json:"id" example:"1"`
	Date   string `json:"date" example:"2024-01-01"`
	Asset  string `json:"asset" example:"USDT"`
	Side   string `json:"side" example:"VENTA"`
	Amount string `json:"amount" example:"100.00"`
	Profit string `json:"profit" example:"5.50"`
	Status string `json:"status" example:"COMPLETADA"`
}

// DailyVolumeResponse is the per-day buy/sell summary.
type DailyVolumeResponse struct {
	Date   string `json:"date" example:"2024-01-01"`
	Bought string `json:"bought" example:"250.00"`
	Sold   string `json:"sold" example:"100.00"`
	Buys   int    `json:"buys" example:"2"`
	Sells  int    `json:"sells" example:"1"`
	Trades int    `json:"trades" example:"3"`
}

// NewDayProfitResponse maps one day to its response form.
func NewDayProfitResponse(dp models.DayProfit) DayProfitResponse {
	return DayProfitResponse{Date: dp.Day.String(), Profit: money(dp.Profit)}
}

// NewDayProfitResponses maps in order; the result is never nil.
func NewDayProfitResponses(in []models.DayProfit) []DayProfitResponse {
	out := make([]DayProfitResponse, 0, len(in))
	for _, dp := range in {
		out = append(out, NewDayProfitResponse(dp))
	}
	return out
}

// NewDashboardResponse maps a summary; LoadedAt is omitted when nothing was ever loaded.
func NewDashboardResponse(s *models.Summary) DashboardResponse {
	resp := DashboardResponse{
		TodayProfit: money(s.Today),
		WeekProfit:  money(s.Week),
		MonthProfit: money(s.Month),
		TotalProfit: money(s.Total),
		TradeCount:  s.TradeCount,
		TopDays:     NewDayProfitResponses(s.TopDays),
		Series:      NewDayProfitResponses(s.Series),
		AsOf:        s.AsOf,
		Source:      s.Source,
		Stale:       s.Stale(),
		LoadError:   s.LoadError,
	}
	if !s.LoadedAt.IsZero() {
		loaded := s.LoadedAt
		resp.LoadedAt = &loaded
	}
	if s.Changes != nil {
		resp.Changes = &ChangesResponse{
			TodayVsYesterday: money(s.Changes.TodayVsYesterday),
			WeekVsLastWeek:   money(s.Changes.WeekVsLastWeek),
		}
	}
	return resp
}

// NewOperationResponses maps the set keeping feed order and COMPRA/VENTA labels.
func NewOperationResponses(set models.TradeSet) []OperationResponse {
	out := make([]OperationResponse, 0, len(set))
	for _, r := range set {
		out = append(out, OperationResponse{
			ID:     r.ID,
			Date:   r.Date,
			Asset:  r.Asset,
			Side:   r.Side.Label(),
			Amount: money(r.Amount),
			Profit: money(r.Profit),
			Status: r.Status,
		})
	}
	return out
}

// NewDailyVolumeResponses maps in order; the result is never nil.
func NewDailyVolumeResponses(in []models.DailyVolume) []DailyVolumeResponse {
	out := make([]DailyVolumeResponse, 0, len(in))
	for _, v := range in {
		out = append(out, DailyVolumeResponse{
			Date:   v.Day.String(),
			Bought: money(v.Bought),
			Sold:   money(v.Sold),
			Buys:   v.Buys,
			Sells:  v.Sells,
			Trades: v.Trades(),
		})
	}
	return out
}

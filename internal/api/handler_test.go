package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/p2pulse/internal/domain/dto"
	"github.com/guttosm/p2pulse/internal/domain/models"
	"github.com/guttosm/p2pulse/internal/middleware"
	"github.com/guttosm/p2pulse/internal/service"
)

// mockDashboardService records the arguments it receives and returns canned results.
type mockDashboardService struct {
	err error

	gotN        int
	gotPositive bool
	gotDate     string
	gotDays     int
}

var _ service.DashboardService = (*mockDashboardService)(nil)

var day1 = models.NewDay(2024, time.January, 1)

func (m *mockDashboardService) Summary(context.Context) (*models.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Summary{
		Today:      decimal.NewFromInt(7),
		Total:      decimal.RequireFromString("12.5"),
		TradeCount: 3,
		TopDays:    []models.DayProfit{{Day: day1, Profit: decimal.NewFromInt(7)}},
	}, nil
}

func (m *mockDashboardService) Operations(context.Context) (models.TradeSet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return models.TradeSet{{ID: 1, Date: "2024-01-01", Asset: "USDT", Side: models.SideSell, Amount: decimal.NewFromInt(100), Profit: decimal.NewFromInt(7)}}, nil
}

func (m *mockDashboardService) TopDays(_ context.Context, n int, positiveOnly bool) ([]models.DayProfit, error) {
	m.gotN, m.gotPositive = n, positiveOnly
	if m.err != nil {
		return nil, m.err
	}
	return []models.DayProfit{{Day: day1, Profit: decimal.NewFromInt(7)}}, nil
}

func (m *mockDashboardService) ProfitOn(_ context.Context, date string) (models.DayProfit, error) {
	m.gotDate = date
	if m.err != nil {
		return models.DayProfit{}, m.err
	}
	d, _ := models.ParseDay(date)
	return models.DayProfit{Day: d, Profit: decimal.NewFromInt(7)}, nil
}

func (m *mockDashboardService) Series(_ context.Context, days int) ([]models.DayProfit, error) {
	m.gotDays = days
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.DayProfit, days)
	for i := range out {
		out[i] = models.DayProfit{Day: day1.AddDays(i), Profit: decimal.Zero}
	}
	return out, nil
}

func (m *mockDashboardService) DailyVolumes(context.Context) ([]models.DailyVolume, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.DailyVolume{{Day: day1, Sold: decimal.NewFromInt(100), Sells: 1}}, nil
}

func setupRouterWithMock(s service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, 5, 7)
	r := gin.New()
	r.Use(middleware.ErrorHandler)
	h.Register(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandlers_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		query  string
		status int
	}{
		{name: "dashboard ok", query: "/api/v1/dashboard", status: http.StatusOK},
		{name: "operations ok", query: "/api/v1/operations", status: http.StatusOK},
		{name: "top days ok", query: "/api/v1/top-days", status: http.StatusOK},
		{name: "profit ok", query: "/api/v1/profit?date=2024-01-01", status: http.StatusOK},
		{name: "series ok", query: "/api/v1/series", status: http.StatusOK},
		{name: "daily summary ok", query: "/api/v1/daily-summary", status: http.StatusOK},

		{name: "bad n", query: "/api/v1/top-days?n=abc", status: http.StatusBadRequest},
		{name: "negative n", query: "/api/v1/top-days?n=-1", status: http.StatusBadRequest},
		{name: "bad positive", query: "/api/v1/top-days?positive=maybe", status: http.StatusBadRequest},
		{name: "missing date", query: "/api/v1/profit", status: http.StatusBadRequest},
		{name: "bad date", query: "/api/v1/profit?date=2024/01/01", status: http.StatusBadRequest},
		{name: "zero days", query: "/api/v1/series?days=0", status: http.StatusBadRequest},
		{name: "too many days", query: "/api/v1/series?days=1000", status: http.StatusBadRequest},

		{name: "no snapshot", err: service.ErrNoSnapshot, query: "/api/v1/dashboard", status: http.StatusServiceUnavailable},
		{name: "invalid data", err: fmt.Errorf("record 9: %w", models.ErrInvalidDate), query: "/api/v1/daily-summary", status: http.StatusUnprocessableEntity},
		{name: "unexpected", err: errors.New("boom"), query: "/api/v1/operations", status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(setupRouterWithMock(&mockDashboardService{err: tc.err}), tc.query)
			if w.Code != tc.status {
				t.Fatalf("want %d got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				var body dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Message == "" {
					t.Fatalf("expected error body, got %q (%v)", w.Body.String(), err)
				}
			}
		})
	}
}

func TestGetDashboard_Body(t *testing.T) {
	w := do(setupRouterWithMock(&mockDashboardService{}), "/api/v1/dashboard")
	var out dto.DashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.TodayProfit != "7.00" || out.TotalProfit != "12.50" || out.TradeCount != 3 || len(out.TopDays) != 1 || out.TopDays[0].Date != "2024-01-01" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestGetOperations_Body(t *testing.T) {
	w := do(setupRouterWithMock(&mockDashboardService{}), "/api/v1/operations")
	var out []dto.OperationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 1 || out[0].Side != "VENTA" || out[0].Amount != "100.00" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestQueryDefaultsAndOverrides(t *testing.T) {
	m := &mockDashboardService{}
	r := setupRouterWithMock(m)

	do(r, "/api/v1/top-days")
	if m.gotN != 5 || !m.gotPositive {
		t.Fatalf("defaults not applied: n=%d positive=%v", m.gotN, m.gotPositive)
	}
	do(r, "/api/v1/top-days?n=0&positive=false")
	if m.gotN != 0 || m.gotPositive {
		t.Fatalf("overrides not applied: n=%d positive=%v", m.gotN, m.gotPositive)
	}

	do(r, "/api/v1/series")
	if m.gotDays != 7 {
		t.Fatalf("default days=%d", m.gotDays)
	}
	w := do(r, "/api/v1/series?days=3")
	var series []dto.DayProfitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &series); err != nil || len(series) != 3 {
		t.Fatalf("series=%v err=%v", series, err)
	}

	do(r, "/api/v1/profit?date=2024-01-01")
	if m.gotDate != "2024-01-01" {
		t.Fatalf("date=%q", m.gotDate)
	}
}

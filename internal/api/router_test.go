package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/p2pulse/internal/domain/dto"
	"github.com/guttosm/p2pulse/internal/domain/models"
)

// deadlineService reports whether the request context carried a deadline.
type deadlineService struct {
	mockDashboardService
	deadline time.Duration
}

func (d *deadlineService) Summary(ctx context.Context) (*models.Summary, error) {
	if dl, ok := ctx.Deadline(); ok {
		d.deadline = time.Until(dl)
	}
	return d.mockDashboardService.Summary(ctx)
}

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &deadlineService{}
	r := NewRouter(NewHandler(svc, 5, 7), rate.Inf, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if svc.deadline <= 0 || svc.deadline > RequestTimeout {
		t.Fatalf("request context deadline not applied: %v", svc.deadline)
	}

	var out dto.DashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.TodayProfit != "7.00" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockDashboardService{}, 5, 7), rate.Limit(0.0001), 1)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/operations", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockDashboardService{}, 5, 7), rate.Inf, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/dashboard", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Message != "route not found" {
		t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
	}
	if body.RequestID != w.Header().Get("X-Request-ID") {
		t.Fatalf("request id mismatch: %q", body.RequestID)
	}
}

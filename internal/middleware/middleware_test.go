package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/p2pulse/internal/domain/dto"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) { _ = c.Error(assertErr{}) })
	r.GET("/dto", func(c *gin.Context) {
		c.Status(http.StatusUnprocessableEntity)
		_ = c.Error(dto.NewErrorResponse("bad data", assertErr{}))
	})
	r.GET("/written", func(c *gin.Context) {
		c.String(http.StatusOK, "fine")
		_ = c.Error(assertErr{})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.ErrorDetails != "boom" {
		t.Fatalf("unexpected body %q err=%v", w.Body.String(), err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dto", nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code=%d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	if w.Code != http.StatusOK || w.Body.String() != "fine" {
		t.Fatalf("handler response overwritten: %d %q", w.Code, w.Body.String())
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.RequestID == "" || body.RequestID != w.Header().Get(RequestIDHeader) {
		t.Fatalf("request id missing from body: %+v", body)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("panic value leaked to client: %s", w.Body.String())
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		burst  int
		expect int
	}{
		{name: "within burst", reqs: 2, burst: 3, expect: http.StatusOK},
		{name: "exceed burst", reqs: 5, burst: 3, expect: http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			// Near-zero refill so only the burst counts.
			r.Use(RateLimiter(rate.Limit(0.0001), tc.burst))
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
			var last int
			for i := 0; i < tc.reqs; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				last = w.Code
			}
			if last != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last)
			}
		})
	}
}

func TestRateLimiter_PerClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(0.0001), 1))
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	if do("10.0.0.1") != 200 || do("10.0.0.2") != 200 {
		t.Fatalf("first request of each client must pass")
	}
	if do("10.0.0.1") != http.StatusTooManyRequests {
		t.Fatalf("second request of the same client must be limited")
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
}

func TestIPLimiters_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newIPLimiters(rate.Limit(1), 1)
	store.now = func() time.Time { return now }

	first := store.get("10.0.0.1")
	store.get("10.0.0.2")

	now = now.Add(limiterIdleTTL / 2)
	if store.get("10.0.0.1") != first {
		t.Fatalf("active client lost its bucket")
	}

	now = now.Add(limiterIdleTTL/2 + time.Second)
	store.get("10.0.0.3")

	if _, ok := store.limiters["10.0.0.2"]; ok {
		t.Fatalf("idle client not evicted")
	}
	if _, ok := store.limiters["10.0.0.1"]; !ok {
		t.Fatalf("recently seen client evicted")
	}
	if len(store.limiters) != 2 {
		t.Fatalf("limiters=%d, want 2", len(store.limiters))
	}
}

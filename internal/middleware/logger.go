package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/p2pulse/internal/logger"
)

// RequestLogger logs one line per request through the "http" component
// logger. 5xx responses log at error level, 4xx at warn, the rest at info.
//
// Example log output:
//
//	{"component":"http","request_id":"123e4567-...","method":"GET","route":"/api/v1/profit","path":"/api/v1/profit","query":"date=2024-01-01","status":200,"bytes":41,"latency_ms":3}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		lg := logger.For("http")
		ev := lg.Info()
		switch {
		case status >= 500:
			ev = lg.Error()
		case status >= 400:
			ev = lg.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

// requestID returns the id set by RequestID, or "" when that middleware did not run.
func requestID(c *gin.Context) string {
	if v, ok := c.Get(RequestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

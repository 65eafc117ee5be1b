package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/p2pulse/internal/logger"
)

var errPanic = errors.New("unexpected panic while handling the request")

// RecoveryMiddleware recovers from panics in later handlers.
//
// Behavior:
//   - Logs the panic value and stack trace with the request id.
//   - Answers 500 with a dto.ErrorResponse carrying the request id, so the
//     client can quote it; the panic value itself stays in the logs.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			lg := logger.For("http")
			lg.Error().
				Str("request_id", requestID(c)).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			AbortWithError(c, http.StatusInternalServerError, "Internal server error", errPanic)
		}()

		c.Next()
	}
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/p2pulse/internal/domain/dto"
	"github.com/guttosm/p2pulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON response
// when the handler did not write one itself. An attached dto.ErrorResponse
// is sent as is; anything else becomes a 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	rid := requestID(c)
	lg := logger.For("http")
	lg.Error().Err(err).Str("request_id", rid).Str("path", c.Request.URL.Path).Msg("request failed")

	var resp dto.ErrorResponse
	if errors.As(err, &resp) {
		c.JSON(statusOr(c, http.StatusInternalServerError), resp.WithRequestID(rid))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err).WithRequestID(rid))
}

// AbortWithError writes a standardized error body with status and stops the chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err).WithRequestID(requestID(c)))
}

func statusOr(c *gin.Context, fallback int) int {
	if s := c.Writer.Status(); s >= http.StatusBadRequest {
		return s
	}
	return fallback
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/p2pulse/internal/domain/dto"
	"github.com/guttosm/p2pulse/internal/domain/models"
	"github.com/guttosm/p2pulse/internal/middleware"
	"github.com/guttosm/p2pulse/internal/service"
)

// maxSeriesDays caps the chart length a client may ask for.
const maxSeriesDays = 366

// Handler provides HTTP handlers for the dashboard endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Call the dashboard service with the request context
//   - Translate domain results into response DTOs
//   - Map service errors to HTTP status codes
type Handler struct {
	svc       service.DashboardService
	topDays   int
	chartDays int
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc: the dashboard service.
//   - topDays, chartDays: defaults for the n and days query parameters.
func NewHandler(svc service.DashboardService, topDays, chartDays int) *Handler {
	return &Handler{svc: svc, topDays: topDays, chartDays: chartDays}
}

// Register mounts the v1 routes on the given group.
func (h *Handler) Register(v1 *gin.RouterGroup) {
	v1.GET("/dashboard", h.GetDashboard)
	v1.GET("/operations", h.GetOperations)
	v1.GET("/top-days", h.GetTopDays)
	v1.GET("/profit", h.GetProfit)
	v1.GET("/series", h.GetSeries)
	v1.GET("/daily-summary", h.GetDailySummary)
}

// GetDashboard godoc
// @Summary      Dashboard summary
// @Description  Profit for today, the last 7 and 30 days and overall, best days and the daily chart series
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse  "Success"
// @Failure      422  {object}  dto.ErrorResponse      "Invalid trade data"
// @Failure      503  {object}  dto.ErrorResponse      "No data loaded yet"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDashboardResponse(summary))
}

// GetOperations godoc
// @Summary      Trade operations
// @Description  Every operation of the current snapshot, in feed order
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   dto.OperationResponse  "Success"
// @Failure      503  {object}  dto.ErrorResponse      "No data loaded yet"
// @Router       /api/v1/operations [get]
func (h *Handler) GetOperations(c *gin.Context) {
	set, err := h.svc.Operations(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOperationResponses(set))
}

// GetTopDays godoc
// @Summary      Most profitable days
// @Description  Days ordered by summed profit, highest first; ties by earliest date
// @Tags         dashboard
// @Produce      json
// @Param        n         query     int   false  "Maximum number of days" example(5)
// @Param        positive  query     bool  false  "Only days with profit > 0 (default true)"
// @Success      200       {array}   dto.DayProfitResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse      "Bad Request"
// @Failure      422       {object}  dto.ErrorResponse      "Invalid trade data"
// @Failure      503       {object}  dto.ErrorResponse      "No data loaded yet"
// @Router       /api/v1/top-days [get]
func (h *Handler) GetTopDays(c *gin.Context) {
	n, err := intQuery(c, "n", h.topDays, 0, 0)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid n", err)
		return
	}
	positive := true
	if s := c.Query("positive"); s != "" {
		if positive, err = strconv.ParseBool(s); err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid positive, expected true or false", err)
			return
		}
	}

	days, err := h.svc.TopDays(c.Request.Context(), n, positive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDayProfitResponses(days))
}

// GetProfit godoc
// @Summary      Profit on a date
// @Description  Summed profit of the operations dated exactly on the given day
// @Tags         dashboard
// @Produce      json
// @Param        date  query     string  true  "Day in YYYY-MM-DD" example(2024-01-01)
// @Success      200   {object}  dto.DayProfitResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse      "Bad Request"
// @Failure      422   {object}  dto.ErrorResponse      "Invalid trade data"
// @Failure      503   {object}  dto.ErrorResponse      "No data loaded yet"
// @Router       /api/v1/profit [get]
func (h *Handler) GetProfit(c *gin.Context) {
	date := c.Query("date")
	if _, err := models.ParseDay(date); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
		return
	}

	dp, err := h.svc.ProfitOn(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDayProfitResponse(dp))
}

// GetSeries godoc
// @Summary      Daily profit series
// @Description  One entry per day ending today, oldest first; days without trades are zero
// @Tags         dashboard
// @Produce      json
// @Param        days  query     int  false  "Number of days (1-366)" example(7)
// @Success      200   {array}   dto.DayProfitResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse      "Bad Request"
// @Failure      422   {object}  dto.ErrorResponse      "Invalid trade data"
// @Failure      503   {object}  dto.ErrorResponse      "No data loaded yet"
// @Router       /api/v1/series [get]
func (h *Handler) GetSeries(c *gin.Context) {
	days, err := intQuery(c, "days", h.chartDays, 1, maxSeriesDays)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid days", err)
		return
	}

	series, err := h.svc.Series(c.Request.Context(), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDayProfitResponses(series))
}

// GetDailySummary godoc
// @Summary      Daily buy/sell summary
// @Description  Per day: amount bought, amount sold and number of operations
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   dto.DailyVolumeResponse  "Success"
// @Failure      422  {object}  dto.ErrorResponse        "Invalid trade data"
// @Failure      503  {object}  dto.ErrorResponse        "No data loaded yet"
// @Router       /api/v1/daily-summary [get]
func (h *Handler) GetDailySummary(c *gin.Context) {
	volumes, err := h.svc.DailyVolumes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDailyVolumeResponses(volumes))
}

// intQuery reads an optional integer parameter within [min, max]; max 0 means no upper bound.
func intQuery(c *gin.Context, name string, def, min, max int) (int, error) {
	s := c.Query(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < min || (max > 0 && v > max) {
		return 0, fmt.Errorf("%s=%d out of range", name, v)
	}
	return v, nil
}

// writeServiceError maps service errors to status codes.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSnapshot):
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "trade data not loaded yet", err)
	case errors.Is(err, models.ErrInvalidDate):
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, "trade data contains an invalid date", err)
	default:
		c.Status(http.StatusInternalServerError)
		_ = c.Error(err)
		c.Abort()
	}
}

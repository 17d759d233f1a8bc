package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

const queryDateLayout = "2006-01-02"

type StatsHandler struct {
	svc *services.StatsService
	loc *time.Location
	now func() time.Time
}

func NewStatsHandler(svc *services.StatsService, loc *time.Location) *StatsHandler {
	if loc == nil {
		loc = time.Local
	}
	return &StatsHandler{svc: svc, loc: loc, now: time.Now}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/weekly", h.GetWeeklyStats)
}

// GetWeeklyStats godoc
// @Summary      Completion statistics for a date range
// @Description  Defaults to the last seven days. Dates are YYYY-MM-DD.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "First day"
// @Param        end_date    query     string  false  "Last day"
// @Success      200         {object}  domain.WeeklyStats
// @Failure      400         {object}  errorResponse
// @Router       /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	startDate, endDate := services.DefaultStatsRange(h.now().In(h.loc))

	var err error
	if s := c.Query("end_date"); s != "" {
		endDate, err = time.ParseInLocation(queryDateLayout, s, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		startDate = endDate.AddDate(0, 0, -6)
	}
	if s := c.Query("start_date"); s != "" {
		startDate, err = time.ParseInLocation(queryDateLayout, s, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid start_date format, expected YYYY-MM-DD"})
			return
		}
	}

	input := domain.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	stats, err := h.svc.GetWeeklyStats(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

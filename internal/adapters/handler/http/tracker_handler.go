package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type TrackerHandler struct {
	svc *services.TrackerService
}

func NewTrackerHandler(svc *services.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		svc: svc,
	}
}

type changeDateRequest struct {
	Days *int `json:"days" binding:"required"`
}

type achievementsRequest struct {
	Achievements string `json:"achievements"`
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	tracker := router.Group("/tracker")
	{
		tracker.GET("", h.Get)
		tracker.POST("/reload", h.Reload)
		tracker.POST("/date", h.ChangeDate)
		tracker.PUT("/achievements", h.SaveAchievements)
		tracker.GET("/streaks", h.Streaks)
		tracker.DELETE("/warnings", h.ClearWarnings)
		tracker.DELETE("/warnings/:index", h.DismissWarning)
	}
}

// Get godoc
// @Summary      Current tracker view
// @Tags         tracker
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.TrackerView
// @Router       /tracker [get]
func (h *TrackerHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	c.JSON(http.StatusOK, h.svc.View(c.Request.Context(), userID))
}

// Reload godoc
// @Summary      Reload habits and history from storage
// @Tags         tracker
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.TrackerView
// @Router       /tracker/reload [post]
func (h *TrackerHandler) Reload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	c.JSON(http.StatusOK, h.svc.Reload(c.Request.Context(), userID))
}

// ChangeDate godoc
// @Summary      Move the viewed day
// @Tags         tracker
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeDateRequest  true  "Day offset"
// @Success      200   {object}  services.TrackerView
// @Failure      400   {object}  errorResponse
// @Router       /tracker/date [post]
func (h *TrackerHandler) ChangeDate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	var req changeDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	view, err := h.svc.ChangeDate(c.Request.Context(), userID, *req.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SaveAchievements godoc
// @Summary      Save the free-text achievements of the viewed day
// @Tags         tracker
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      achievementsRequest  true  "Achievements"
// @Success      200   {object}  services.TrackerView
// @Failure      400   {object}  errorResponse
// @Router       /tracker/achievements [put]
func (h *TrackerHandler) SaveAchievements(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	var req achievementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.SaveAchievements(c.Request.Context(), userID, req.Achievements)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.View)
}

// Streaks godoc
// @Summary      Exercise and learning streaks as of today
// @Tags         tracker
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Streaks
// @Router       /tracker/streaks [get]
func (h *TrackerHandler) Streaks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	c.JSON(http.StatusOK, h.svc.Streaks(c.Request.Context(), userID))
}

// DismissWarning godoc
// @Summary      Dismiss one warning
// @Tags         tracker
// @Produce      json
// @Security     BearerAuth
// @Param        index  path      int  true  "Warning index"
// @Success      200    {object}  services.TrackerView
// @Failure      404    {object}  errorResponse
// @Router       /tracker/warnings/{index} [delete]
func (h *TrackerHandler) DismissWarning(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	index, ok := intParam(c, "index", domain.ErrWarningNotFound)
	if !ok {
		return
	}

	view, err := h.svc.DismissWarning(c.Request.Context(), userID, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ClearWarnings godoc
// @Summary      Dismiss every warning
// @Tags         tracker
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.TrackerView
// @Router       /tracker/warnings [delete]
func (h *TrackerHandler) ClearWarnings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	c.JSON(http.StatusOK, h.svc.ClearWarnings(c.Request.Context(), userID))
}

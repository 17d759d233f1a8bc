package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type HabitHandler struct {
	svc *services.TrackerService
}

func NewHabitHandler(svc *services.TrackerService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type updateHabitRequest struct {
	Name     *string          `json:"name"`
	Category *domain.Category `json:"category"`
	Icon     *string          `json:"icon"`
}

type detailsRequest struct {
	Details string `json:"details"`
}

type habitResponse struct {
	Habit   *domain.Habit         `json:"habit"`
	Tracker *services.TrackerView `json:"tracker"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.PUT("/:id", h.Update)
		habits.PUT("/:id/details", h.UpdateDetails)
		habits.POST("/:id/toggle", h.Toggle)
		habits.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary      Append a new habit with default values
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  habitResponse
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	result, err := h.svc.AddHabit(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habitResponse{Habit: result.Habit, Tracker: result.View})
}

// Update godoc
// @Summary      Edit a habit's name, category or icon
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Habit ID"
// @Param        body  body      updateHabitRequest  true  "Fields to change"
// @Success      200   {object}  habitResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	id, ok := intParam(c, "id", domain.ErrInvalidHabitID)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	patch := domain.HabitPatch{
		Name:     req.Name,
		Category: req.Category,
		Icon:     req.Icon,
	}

	result, err := h.svc.UpdateHabit(c.Request.Context(), userID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habitResponse{Habit: result.Habit, Tracker: result.View})
}

// UpdateDetails godoc
// @Summary      Set the notes of a habit for the viewed day
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Habit ID"
// @Param        body  body      detailsRequest  true  "Notes"
// @Success      200   {object}  services.TrackerView
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id}/details [put]
func (h *HabitHandler) UpdateDetails(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	id, ok := intParam(c, "id", domain.ErrInvalidHabitID)
	if !ok {
		return
	}

	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.UpdateDetails(c.Request.Context(), userID, id, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.View)
}

// Toggle godoc
// @Summary      Flip a habit's completion for the viewed day
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Habit ID"
// @Success      200  {object}  services.TrackerView
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id}/toggle [post]
func (h *HabitHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	id, ok := intParam(c, "id", domain.ErrInvalidHabitID)
	if !ok {
		return
	}

	result, err := h.svc.ToggleHabit(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.View)
}

// Delete godoc
// @Summary      Remove a habit definition
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Habit ID"
// @Success      200  {object}  services.TrackerView
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	id, ok := intParam(c, "id", domain.ErrInvalidHabitID)
	if !ok {
		return
	}

	result, err := h.svc.DeleteHabit(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.View)
}

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitDetailsLong,
	domain.ErrInvalidCategory,
	domain.ErrInvalidHabitID,
	domain.ErrAchievementsLong,
	domain.ErrInvalidDayShift,
	domain.ErrInvalidStatsRange,
	domain.ErrStatsRangeTooLong,
}

var notFoundErrors = []error{
	domain.ErrHabitNotFound,
	domain.ErrWarningNotFound,
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func intParam(c *gin.Context, name string, invalid error) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: invalid.Error()})
		return 0, false
	}
	return n, true
}

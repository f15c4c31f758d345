package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GetStats accepts ?startDate= and ?endDate= as inclusive days.
func (sc *StatsController) GetStats(c *gin.Context) {
	stats, err := sc.Stats.Overview(c.Request.Context(), services.StatsInput{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}, middlewares.CurrentIdentity(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard statistics", stats)
}

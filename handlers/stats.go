package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/services"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	statsService *services.StatsService
	userRepo     *repository.UserRepository
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService, userRepo *repository.UserRepository) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		userRepo:     userRepo,
	}
}

// Overview returns the current user's overall statistics
// GET /api/v1/stats
func (h *StatsHandler) Overview(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	overview, err := h.statsService.GetOverview(user)
	if err != nil {
		log.Printf("Failed to build stats overview: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": overview,
	})
}

// PeriodOverview returns statistics for a single day, week or month
// GET /api/v1/stats/period?period=day|week|month
func (h *StatsHandler) PeriodOverview(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "day")
	if period != "day" && period != "week" && period != "month" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Period must be 'day', 'week' or 'month'",
		})
		return
	}

	overview, err := h.statsService.GetPeriodOverview(user, period)
	if err != nil {
		log.Printf("Failed to build period stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": overview,
	})
}

package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/services"
	"github.com/dota-journal/match-journal/backend/websocket"
)

// MMRHandler handles MMR tracking endpoints
type MMRHandler struct {
	userRepo           *repository.UserRepository
	mmrRepo            *repository.MMRRepository
	achievementService *services.AchievementService
	wsHub              *websocket.Hub
}

// NewMMRHandler creates a new MMR handler
func NewMMRHandler(userRepo *repository.UserRepository, mmrRepo *repository.MMRRepository, achievementService *services.AchievementService, wsHub *websocket.Hub) *MMRHandler {
	return &MMRHandler{
		userRepo:           userRepo,
		mmrRepo:            mmrRepo,
		achievementService: achievementService,
		wsHub:              wsHub,
	}
}

// Set updates the current user's MMR and records it in the history
// PUT /api/v1/mmr
func (h *MMRHandler) Set(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	var req models.SetMMRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "MMR must be a non-negative number",
		})
		return
	}

	change := req.MMR - user.MMR

	if err := h.userRepo.UpdateMMR(user.ID, req.MMR); err != nil {
		log.Printf("Failed to update MMR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update MMR",
		})
		return
	}

	if err := h.mmrRepo.Append(user.ID, req.MMR); err != nil {
		log.Printf("Failed to record MMR history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update MMR",
		})
		return
	}

	rank := models.GetRankInfo(req.MMR)

	if h.wsHub != nil {
		h.wsHub.NotifyMMRUpdated(user.ID, &websocket.MMRPayload{
			MMR:    req.MMR,
			Rank:   rank.Rank,
			Change: change,
		})
	}

	// MMR milestones and climbs are achievement material
	user.MMR = req.MMR
	report, err := h.achievementService.Evaluate(user)
	if err != nil {
		log.Printf("Achievement evaluation failed after MMR update: %v", err)
	}

	resp := gin.H{
		"mmr":    req.MMR,
		"change": change,
		"rank":   rank,
	}
	if report != nil && len(report.NewlyEarned) > 0 {
		resp["new_achievements"] = report.NewlyEarned
	}
	c.JSON(http.StatusOK, resp)
}

// History returns the user's MMR history, most recent first
// GET /api/v1/mmr
func (h *MMRHandler) History(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	limit := 90
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	history, err := h.mmrRepo.GetHistory(user.ID, limit)
	if err != nil {
		log.Printf("Failed to load MMR history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load MMR history",
		})
		return
	}
	if history == nil {
		history = []models.MMRHistoryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"mmr":     user.MMR,
		"rank":    models.GetRankInfo(user.MMR),
		"history": history,
	})
}

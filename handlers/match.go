package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/services"
	"github.com/dota-journal/match-journal/backend/websocket"
)

// MatchHandler handles match recording and history endpoints
type MatchHandler struct {
	matchRepo          *repository.MatchRepository
	userRepo           *repository.UserRepository
	achievementService *services.AchievementService
	wsHub              *websocket.Hub
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchRepo *repository.MatchRepository, userRepo *repository.UserRepository, achievementService *services.AchievementService, wsHub *websocket.Hub) *MatchHandler {
	return &MatchHandler{
		matchRepo:          matchRepo,
		userRepo:           userRepo,
		achievementService: achievementService,
		wsHub:              wsHub,
	}
}

// Record saves a played match for the current user
// POST /api/v1/matches
func (h *MatchHandler) Record(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	var req models.RecordMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if req.Outcome != models.OutcomeWin && req.Outcome != models.OutcomeLose {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Outcome must be 'win' or 'lose'",
		})
		return
	}

	match := &models.Match{
		UserID:   user.ID,
		MatchID:  req.MatchID,
		Hero:     req.Hero,
		Outcome:  req.Outcome,
		Party:    req.Party,
		PlayedAt: time.Now(),
	}

	if err := h.matchRepo.Save(match); err != nil {
		log.Printf("Failed to save match: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save match",
		})
		return
	}

	if h.wsHub != nil {
		h.wsHub.NotifyMatchRecorded(user.ID, &websocket.MatchPayload{
			MatchID:  match.MatchID,
			Hero:     match.Hero,
			Outcome:  match.Outcome,
			PlayedAt: match.PlayedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	// New matches can unlock achievements right away
	report, err := h.achievementService.Evaluate(user)
	if err != nil {
		log.Printf("Achievement evaluation failed after match: %v", err)
	}

	resp := gin.H{"match": match}
	if report != nil && len(report.NewlyEarned) > 0 {
		resp["new_achievements"] = report.NewlyEarned
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns the current user's match history, most recent first
// GET /api/v1/matches
func (h *MatchHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	matches, err := h.matchRepo.GetByUser(user.ID, limit)
	if err != nil {
		log.Printf("Failed to load matches: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load matches",
		})
		return
	}

	if matches == nil {
		matches = []models.Match{}
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
	})
}

package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/services"
)

// AchievementHandler handles achievement endpoints
type AchievementHandler struct {
	achievementService *services.AchievementService
	userRepo           *repository.UserRepository
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(achievementService *services.AchievementService, userRepo *repository.UserRepository) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		userRepo:           userRepo,
	}
}

// Evaluate runs a full evaluation and returns the earned report
// GET /api/v1/achievements
func (h *AchievementHandler) Evaluate(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	report, err := h.achievementService.Evaluate(user)
	if err != nil {
		log.Printf("Failed to evaluate achievements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load achievements",
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Page renders one formatted page of the achievement list
// GET /api/v1/achievements/page?page=1&show_locked=true&category=mmr
func (h *AchievementHandler) Page(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid page parameter",
			})
			return
		}
		page = parsed
	}

	showLocked := c.DefaultQuery("show_locked", "false") == "true"
	category := c.Query("category")

	text, totalPages, err := h.achievementService.Page(user, page, showLocked, category)
	if err != nil {
		log.Printf("Failed to render achievement page: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load achievements",
		})
		return
	}

	// Mirror the clamping the formatter applies
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	c.JSON(http.StatusOK, gin.H{
		"text":        text,
		"page":        page,
		"total_pages": totalPages,
	})
}

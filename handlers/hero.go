package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/services"
)

// HeroHandler handles hero catalog and prediction endpoints
type HeroHandler struct {
	heroRepo          *repository.HeroRepository
	userRepo          *repository.UserRepository
	predictionService *services.PredictionService
}

// NewHeroHandler creates a new hero handler
func NewHeroHandler(heroRepo *repository.HeroRepository, userRepo *repository.UserRepository, predictionService *services.PredictionService) *HeroHandler {
	return &HeroHandler{
		heroRepo:          heroRepo,
		userRepo:          userRepo,
		predictionService: predictionService,
	}
}

// List returns the hero catalog
// GET /api/v1/heroes
func (h *HeroHandler) List(c *gin.Context) {
	heroes, err := h.heroRepo.GetAll()
	if err != nil {
		log.Printf("Failed to load heroes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load heroes",
		})
		return
	}

	if heroes == nil {
		heroes = []models.Hero{}
	}

	c.JSON(http.StatusOK, gin.H{
		"heroes": heroes,
	})
}

// Prediction returns a performance prediction for one hero based on
// the current user's history with it
// GET /api/v1/heroes/:name/prediction
func (h *HeroHandler) Prediction(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	hero := c.Param("name")
	if hero == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Hero name is required",
		})
		return
	}

	prediction, err := h.predictionService.Predict(user, hero)
	if err != nil {
		log.Printf("Failed to build prediction for %s: %v", hero, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build prediction",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction": prediction,
	})
}

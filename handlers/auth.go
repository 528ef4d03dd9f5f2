package handlers

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/auth"
	"github.com/dota-journal/match-journal/backend/config"
	"github.com/dota-journal/match-journal/backend/middleware"
	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	cfg        *config.Config
	steamAuth  *auth.SteamAuth
	steamAPI   *auth.SteamAPIClient
	jwtService *auth.JWTService
	userRepo   *repository.UserRepository
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config, userRepo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		cfg:        cfg,
		steamAuth:  auth.NewSteamAuth(cfg.BackendURL),
		steamAPI:   auth.NewSteamAPIClient(cfg.SteamAPIKey),
		jwtService: auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTExpirationDays)*24*time.Hour),
		userRepo:   userRepo,
	}
}

// GetJWTService returns the JWT service for use in middleware
func (h *AuthHandler) GetJWTService() *auth.JWTService {
	return h.jwtService
}

// SteamLogin initiates the Steam OpenID login flow
// GET /api/v1/auth/steam
func (h *AuthHandler) SteamLogin(c *gin.Context) {
	authURL, err := h.steamAuth.GetAuthURL()
	if err != nil {
		log.Printf("Failed to get Steam auth URL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to initiate Steam login",
		})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// SteamCallback handles the Steam OpenID callback
// GET /api/v1/auth/steam/callback
func (h *AuthHandler) SteamCallback(c *gin.Context) {
	fullURL := h.steamAuth.BuildCallbackURL(c.Request)

	steamID, err := h.steamAuth.ValidateCallback(fullURL)
	if err != nil {
		log.Printf("Steam callback validation failed: %v", err)
		h.redirectWithError(c, "Steam authentication failed")
		return
	}

	log.Printf("Steam login successful for Steam ID: %s", steamID)

	// Fetch player profile from Steam API, falling back to a
	// placeholder name when the API is unavailable
	var username, avatarURL, avatarSmall, profileURL string
	if h.steamAPI.IsConfigured() {
		player, err := h.steamAPI.GetPlayerSummary(steamID)
		if err != nil {
			log.Printf("Failed to fetch Steam profile for %s: %v", steamID, err)
			username = "Player_" + steamID[len(steamID)-4:]
		} else {
			username = player.PersonaName
			avatarURL = player.AvatarFull
			avatarSmall = player.Avatar
			profileURL = player.ProfileURL
		}
	} else {
		username = "Player_" + steamID[len(steamID)-4:]
	}

	user, isNew, err := h.userRepo.FindOrCreate(steamID, username, avatarURL, avatarSmall, profileURL)
	if err != nil {
		log.Printf("Failed to create/update user: %v", err)
		h.redirectWithError(c, "Failed to create user account")
		return
	}
	if isNew {
		log.Printf("Created new user: %s (ID: %d)", username, user.ID)
	}

	token, err := h.jwtService.GenerateToken(user.ID, steamID, username)
	if err != nil {
		log.Printf("Failed to generate JWT token: %v", err)
		h.redirectWithError(c, "Failed to generate authentication token")
		return
	}

	redirectURL := h.cfg.FrontendURL + "/auth/callback?token=" + url.QueryEscape(token)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// Logout handles user logout
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// JWT is stateless, the client drops the token
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the current authenticated user's information
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) redirectWithError(c *gin.Context, message string) {
	c.Redirect(http.StatusTemporaryRedirect,
		h.cfg.FrontendURL+"/auth/error?message="+url.QueryEscape(message))
}

// currentUser loads the authenticated user, writing the error response
// itself when that fails
func currentUser(c *gin.Context, userRepo *repository.UserRepository) (*models.User, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	u, err := userRepo.GetByID(claims.UserID)
	if err != nil {
		log.Printf("Failed to load user %d: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user data"})
		return nil, false
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return u, true
}

package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/achievements"
	"github.com/dota-journal/match-journal/backend/config"
	"github.com/dota-journal/match-journal/backend/database"
	"github.com/dota-journal/match-journal/backend/handlers"
	"github.com/dota-journal/match-journal/backend/middleware"
	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/services"
	"github.com/dota-journal/match-journal/backend/websocket"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded - Frontend: %s, Backend: %s", cfg.FrontendURL, cfg.BackendURL)

	// A broken achievement catalog should stop the server, not
	// surface per-request
	if err := achievements.Load().Validate(); err != nil {
		log.Fatalf("Invalid achievement catalog: %v", err)
	}

	// Initialize database
	dbCfg := database.Config{
		Type:       cfg.DBType,
		SQLitePath: cfg.DBPath,
		MySQL: database.MySQLConfig{
			Host:            cfg.MySQLHost,
			Port:            cfg.MySQLPort,
			User:            cfg.MySQLUser,
			Password:        cfg.MySQLPassword,
			Database:        cfg.MySQLDatabase,
			TLSEnabled:      cfg.MySQLTLSEnabled,
			TLSSkipVerify:   cfg.MySQLTLSSkipVerify,
			TLSCACert:       cfg.MySQLTLSCACert,
			MaxOpenConns:    cfg.MySQLMaxOpenConns,
			MaxIdleConns:    cfg.MySQLMaxIdleConns,
			ConnMaxLifetime: cfg.MySQLConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQLConnMaxIdleTime,
		},
	}
	if err := database.Init(dbCfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("WebSocket hub started")

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	matchRepo := repository.NewMatchRepository()
	heroRepo := repository.NewHeroRepository()
	mmrRepo := repository.NewMMRRepository()
	achievementRepo := repository.NewAchievementRepository()

	// Initialize services
	statsService := services.NewStatsService(matchRepo, heroRepo, mmrRepo)
	achievementService := services.NewAchievementService(statsService, achievementRepo, wsHub)
	predictionService := services.NewPredictionService(matchRepo)
	exportService := services.NewExportService(matchRepo)
	heroImportService := services.NewHeroImportService(heroRepo, wsHub, cfg.OpenDotaBaseURL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, userRepo)
	matchHandler := handlers.NewMatchHandler(matchRepo, userRepo, achievementService, wsHub)
	statsHandler := handlers.NewStatsHandler(statsService, userRepo)
	mmrHandler := handlers.NewMMRHandler(userRepo, mmrRepo, achievementService, wsHub)
	achievementHandler := handlers.NewAchievementHandler(achievementService, userRepo)
	heroHandler := handlers.NewHeroHandler(heroRepo, userRepo, predictionService)
	exportHandler := handlers.NewExportHandler(exportService, userRepo)
	wsHandler := handlers.NewWebSocketHandler(wsHub)

	// Periodic hero catalog refresh from OpenDota
	if cfg.HeroImportEnabled {
		if err := heroImportService.StartSchedule(cfg.HeroImportInterval); err != nil {
			log.Fatalf("Failed to start hero import schedule: %v", err)
		}
		defer heroImportService.Stop()
	}

	r := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth endpoints (public)
		auth := api.Group("/auth")
		{
			auth.GET("/steam", authHandler.SteamLogin)
			auth.GET("/steam/callback", authHandler.SteamCallback)
			auth.POST("/logout", authHandler.Logout)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(authHandler.GetJWTService()))
		{
			// Auth
			protected.GET("/auth/me", authHandler.Me)

			// Matches
			protected.POST("/matches", matchHandler.Record)
			protected.GET("/matches", matchHandler.List)

			// Statistics
			protected.GET("/stats", statsHandler.Overview)
			protected.GET("/stats/period", statsHandler.PeriodOverview)

			// MMR
			protected.PUT("/mmr", mmrHandler.Set)
			protected.GET("/mmr", mmrHandler.History)

			// Achievements
			protected.GET("/achievements", achievementHandler.Evaluate)
			protected.GET("/achievements/page", achievementHandler.Page)

			// Heroes
			protected.GET("/heroes", heroHandler.List)
			protected.GET("/heroes/:name/prediction", heroHandler.Prediction)

			// Export
			protected.GET("/export", exportHandler.Download)

			// WebSocket endpoint (token passed as query param)
			protected.GET("/ws", wsHandler.Serve)
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

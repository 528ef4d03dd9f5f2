package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/services"
)

// ExportHandler handles data export endpoints
type ExportHandler struct {
	exportService *services.ExportService
	userRepo      *repository.UserRepository
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService, userRepo *repository.UserRepository) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		userRepo:      userRepo,
	}
}

// Download streams the user's match history as an Excel workbook
// GET /api/v1/export
func (h *ExportHandler) Download(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	f, err := h.exportService.Export(user)
	if err != nil {
		log.Printf("Failed to build export for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build export",
		})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("matches_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("Failed to stream export: %v", err)
	}
}

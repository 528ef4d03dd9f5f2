package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dota-journal/match-journal/backend/achievements"
	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
)

// Workbook colors
const (
	winColor       = "00FF00"
	loseColor      = "FF0000"
	headerBgColor  = "4F81BD"
	subHeaderColor = "E6F3FB"
)

// ExportService renders a user's match history as an Excel workbook
type ExportService struct {
	matchRepo *repository.MatchRepository
}

// NewExportService creates a new export service
func NewExportService(matchRepo *repository.MatchRepository) *ExportService {
	return &ExportService{matchRepo: matchRepo}
}

// Export builds the workbook: a "Match Data" sheet with every match
// and a "Statistics" sheet with overall and per-hero numbers
func (s *ExportService) Export(user *models.User) (*excelize.File, error) {
	matches, err := s.matchRepo.GetByUser(user.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to export matches: %w", err)
	}
	heroStats, err := s.matchRepo.GetHeroStats(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to export hero stats: %w", err)
	}

	f := excelize.NewFile()
	const matchSheet = "Match Data"
	f.SetSheetName("Sheet1", matchSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerBgColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	winStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{winColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create win style: %w", err)
	}
	loseStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{loseColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lose style: %w", err)
	}
	subHeaderStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{subHeaderColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subheader style: %w", err)
	}

	headers := []string{"Date", "Player", "Match ID", "Hero", "Outcome", "Hero Winrate"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(matchSheet, cell, h)
	}
	f.SetCellStyle(matchSheet, "A1", "F1", headerStyle)
	f.SetColWidth(matchSheet, "A", "F", 15)

	// Oldest first so the sheet reads chronologically
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		row := len(matches) - i + 1
		f.SetCellValue(matchSheet, fmt.Sprintf("A%d", row), m.PlayedAt.Format(achievements.TimeLayout))
		f.SetCellValue(matchSheet, fmt.Sprintf("B%d", row), user.Username)
		f.SetCellValue(matchSheet, fmt.Sprintf("C%d", row), m.MatchID)
		f.SetCellValue(matchSheet, fmt.Sprintf("D%d", row), m.Hero)
		f.SetCellValue(matchSheet, fmt.Sprintf("E%d", row), m.Outcome)
		f.SetCellValue(matchSheet, fmt.Sprintf("F%d", row), m.HeroWinrate)

		outcomeCell := fmt.Sprintf("E%d", row)
		if m.Outcome == models.OutcomeWin {
			f.SetCellStyle(matchSheet, outcomeCell, outcomeCell, winStyle)
		} else {
			f.SetCellStyle(matchSheet, outcomeCell, outcomeCell, loseStyle)
		}
	}

	const statsSheet = "Statistics"
	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, fmt.Errorf("failed to create statistics sheet: %w", err)
	}
	f.SetColWidth(statsSheet, "A", "C", 15)

	totalGames := len(matches)
	totalWins := 0
	for _, m := range matches {
		if m.Outcome == models.OutcomeWin {
			totalWins++
		}
	}
	winrate := 0.0
	if totalGames > 0 {
		winrate = float64(totalWins) / float64(totalGames) * 100
	}

	f.SetCellValue(statsSheet, "A1", "Overall statistics")
	f.SetCellStyle(statsSheet, "A1", "A1", headerStyle)
	f.SetCellValue(statsSheet, "A2", "Total games")
	f.SetCellValue(statsSheet, "B2", totalGames)
	f.SetCellValue(statsSheet, "A3", "Overall winrate")
	f.SetCellValue(statsSheet, "B3", fmt.Sprintf("%.1f%%", winrate))

	f.SetCellValue(statsSheet, "A6", "Hero statistics")
	f.SetCellStyle(statsSheet, "A6", "A6", headerStyle)
	f.SetCellValue(statsSheet, "A7", "Hero")
	f.SetCellValue(statsSheet, "B7", "Games")
	f.SetCellValue(statsSheet, "C7", "Winrate")
	f.SetCellStyle(statsSheet, "A7", "C7", subHeaderStyle)

	for i, hs := range heroStats {
		row := 8 + i
		f.SetCellValue(statsSheet, fmt.Sprintf("A%d", row), hs.Hero)
		f.SetCellValue(statsSheet, fmt.Sprintf("B%d", row), hs.Games)
		f.SetCellValue(statsSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%.1f%%", hs.Winrate()))
	}

	return f, nil
}

package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dota-journal/match-journal/backend/achievements"
	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/websocket"
)

// AchievementService runs the evaluation engine over a user's history
// and keeps the earned ledger in sync
type AchievementService struct {
	statsService    *StatsService
	achievementRepo *repository.AchievementRepository
	hub             *websocket.Hub
}

// NewAchievementService creates a new achievement service
func NewAchievementService(statsService *StatsService, achievementRepo *repository.AchievementRepository, hub *websocket.Hub) *AchievementService {
	return &AchievementService{
		statsService:    statsService,
		achievementRepo: achievementRepo,
		hub:             hub,
	}
}

// AchievementStatus is one achievement with its earned state for API
// responses
type AchievementStatus struct {
	achievements.Definition
	Earned     bool   `json:"earned"`
	UnlockedAt string `json:"unlocked_at,omitempty"`
	Progress   int    `json:"progress"`
}

// Report is the outcome of one evaluation run
type Report struct {
	Earned      []AchievementStatus                   `json:"earned"`
	NewlyEarned []AchievementStatus                   `json:"newly_earned"`
	Progress    map[string]int                        `json:"progress"`
	Skipped     map[string][]achievements.SkippedItem `json:"skipped,omitempty"`
	EarnedCount int                                   `json:"earned_count"`
	TotalCount  int                                   `json:"total_count"`
}

// Evaluate recomputes the user's achievements from scratch, persists
// anything newly earned and notifies the user about each unlock
func (s *AchievementService) Evaluate(user *models.User) (*Report, error) {
	stats, err := s.statsService.BuildStatsSnapshot(user)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate achievements: %w", err)
	}
	mmr, err := s.statsService.BuildMmrSnapshot(user)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate achievements: %w", err)
	}

	result := achievements.Evaluate(stats, mmr)

	ledger, err := s.achievementRepo.GetEarned(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate achievements: %w", err)
	}

	catalog := achievements.Load()
	report := &Report{TotalCount: catalog.Total(), Progress: make(map[string]int)}
	for _, cat := range achievements.Categories {
		for _, def := range catalog.ByCategory(cat) {
			if p, ok := result.ProgressFor(def.ID); ok {
				report.Progress[def.ID] = p
			}
		}
	}

	var newRows []repository.EarnedAchievement
	for _, id := range result.EarnedIDs() {
		def, ok := catalog.Get(id)
		if !ok {
			continue
		}
		status := AchievementStatus{Definition: def, Earned: true}
		if ts, found := ledger[id]; found {
			status.UnlockedAt = ts.Format(achievements.TimeLayout)
		} else {
			unlockedAt := time.Now().UTC()
			if ts, ok := result.UnlockedAt(id); ok {
				if parsed, err := time.Parse(achievements.TimeLayout, ts); err == nil {
					unlockedAt = parsed
				}
			}
			status.UnlockedAt = unlockedAt.Format(achievements.TimeLayout)
			newRows = append(newRows, repository.EarnedAchievement{AchievementID: id, UnlockedAt: unlockedAt})
			report.NewlyEarned = append(report.NewlyEarned, status)
		}
		status.Progress = report.Progress[id]
		report.Earned = append(report.Earned, status)
	}
	report.EarnedCount = len(report.Earned)

	for cat, items := range map[achievements.Category][]achievements.SkippedItem{
		achievements.CategoryMatches: result.Skipped(achievements.CategoryMatches),
		achievements.CategoryHeroes:  result.Skipped(achievements.CategoryHeroes),
		achievements.CategoryWinrate: result.Skipped(achievements.CategoryWinrate),
		achievements.CategorySpecial: result.Skipped(achievements.CategorySpecial),
	} {
		if len(items) > 0 {
			if report.Skipped == nil {
				report.Skipped = make(map[string][]achievements.SkippedItem)
			}
			report.Skipped[string(cat)] = items
		}
	}

	if err := s.achievementRepo.SaveNew(user.ID, newRows); err != nil {
		return nil, fmt.Errorf("failed to persist new achievements: %w", err)
	}

	for _, status := range report.NewlyEarned {
		log.Printf("Achievement unlocked: user %d earned %s", user.ID, status.ID)
		if s.hub != nil {
			s.hub.NotifyAchievementUnlocked(user.ID, &websocket.AchievementPayload{
				AchievementID: status.ID,
				Name:          status.Name,
				Description:   status.Description,
				Emoji:         status.Emoji,
				Category:      string(status.Category),
				UnlockedAt:    status.UnlockedAt,
			})
		}
	}

	return report, nil
}

// Page renders one page of the user's achievement list. Evaluation
// progress fills the locked rows; unlock timestamps come from the
// ledger so they never drift between runs.
func (s *AchievementService) Page(user *models.User, page int, showLocked bool, category string) (string, int, error) {
	report, err := s.Evaluate(user)
	if err != nil {
		return "", 0, err
	}

	ledger, err := s.achievementRepo.GetEarned(user.ID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to render achievements page: %w", err)
	}

	view := &achievements.ListView{
		UnlockedAt: make(map[string]string, len(ledger)),
		Progress:   make(map[string]int),
	}
	for id, ts := range ledger {
		view.UnlockedAt[id] = ts.Format(achievements.TimeLayout)
	}
	for _, status := range report.Earned {
		if _, ok := view.UnlockedAt[status.ID]; !ok {
			view.UnlockedAt[status.ID] = status.UnlockedAt
		}
	}
	for id, p := range report.Progress {
		view.Progress[id] = p
	}

	text, totalPages := achievements.FormatPage(view, page, showLocked, category)
	return text, totalPages, nil
}

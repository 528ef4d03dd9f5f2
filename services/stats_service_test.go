package services

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dota-journal/match-journal/backend/database"
	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "services-test-*")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}

	if err := database.Init(database.Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(dir, "test.db"),
	}); err != nil {
		log.Fatalf("failed to init test database: %v", err)
	}

	code := m.Run()

	database.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStatsService(t *testing.T) (*StatsService, *repository.MatchRepository, *repository.UserRepository) {
	t.Helper()
	matchRepo := repository.NewMatchRepository()
	heroRepo := repository.NewHeroRepository()
	mmrRepo := repository.NewMMRRepository()
	return NewStatsService(matchRepo, heroRepo, mmrRepo), matchRepo, repository.NewUserRepository()
}

func seedUser(t *testing.T, userRepo *repository.UserRepository, steamID string) *models.User {
	t.Helper()
	user, _, err := userRepo.FindOrCreate(steamID, "player-"+steamID, "", "", "")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedMatches(t *testing.T, matchRepo *repository.MatchRepository, userID uint64, hero string, games, wins int, start time.Time) {
	t.Helper()
	for i := 0; i < games; i++ {
		outcome := models.OutcomeLose
		if i < wins {
			outcome = models.OutcomeWin
		}
		m := &models.Match{
			UserID:   userID,
			Hero:     hero,
			Outcome:  outcome,
			PlayedAt: start.Add(time.Duration(i) * time.Hour),
		}
		if err := matchRepo.Save(m); err != nil {
			t.Fatalf("failed to seed match: %v", err)
		}
	}
}

func TestGetOverview(t *testing.T) {
	svc, matchRepo, userRepo := newTestStatsService(t)
	user := seedUser(t, userRepo, "76561198100000001")

	start := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	seedMatches(t, matchRepo, user.ID, "Lion", 10, 6, start)
	seedMatches(t, matchRepo, user.ID, "Pudge", 4, 1, start.Add(24*time.Hour))

	overview, err := svc.GetOverview(user)
	if err != nil {
		t.Fatalf("GetOverview failed: %v", err)
	}

	if overview.TotalGames != 14 {
		t.Errorf("expected 14 games, got %d", overview.TotalGames)
	}
	if overview.TotalWins != 7 {
		t.Errorf("expected 7 wins, got %d", overview.TotalWins)
	}
	if overview.Winrate != 50.0 {
		t.Errorf("expected winrate 50.0, got %.1f", overview.Winrate)
	}
	if len(overview.Heroes) != 2 {
		t.Fatalf("expected 2 hero lines, got %d", len(overview.Heroes))
	}
	// Ordered by games played
	if overview.Heroes[0].Hero != "Lion" {
		t.Errorf("expected Lion first, got %s", overview.Heroes[0].Hero)
	}
}

func TestGetPeriodOverviewRejectsUnknownPeriod(t *testing.T) {
	svc, _, userRepo := newTestStatsService(t)
	user := seedUser(t, userRepo, "76561198100000002")

	if _, err := svc.GetPeriodOverview(user, "year"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestBuildStatsSnapshot(t *testing.T) {
	svc, matchRepo, userRepo := newTestStatsService(t)
	user := seedUser(t, userRepo, "76561198100000003")

	start := time.Date(2026, 4, 3, 19, 0, 0, 0, time.UTC)
	seedMatches(t, matchRepo, user.ID, "Lion", 6, 4, start)

	snap, err := svc.BuildStatsSnapshot(user)
	if err != nil {
		t.Fatalf("BuildStatsSnapshot failed: %v", err)
	}

	if snap.TotalGames != 6 || snap.TotalWins != 4 {
		t.Errorf("expected 6 games / 4 wins, got %d / %d", snap.TotalGames, snap.TotalWins)
	}
	if len(snap.Heroes) != 1 || snap.Heroes[0].Hero != "Lion" {
		t.Fatalf("expected one Lion hero line, got %+v", snap.Heroes)
	}
	if len(snap.Matches) != 6 {
		t.Fatalf("expected 6 match details, got %d", len(snap.Matches))
	}
	// Most recent first, with formatted timestamps
	if snap.Matches[0].PlayedAt == "" {
		t.Error("expected formatted play time on match details")
	}
	first, err := time.Parse("2006-01-02 15:04:05", snap.Matches[0].PlayedAt)
	if err != nil {
		t.Fatalf("unparsable play time %q: %v", snap.Matches[0].PlayedAt, err)
	}
	last, _ := time.Parse("2006-01-02 15:04:05", snap.Matches[5].PlayedAt)
	if !first.After(last) {
		t.Error("expected matches ordered most recent first")
	}
}

func TestAchievementServiceEvaluatePersistsUnlocks(t *testing.T) {
	svc, matchRepo, userRepo := newTestStatsService(t)
	user := seedUser(t, userRepo, "76561198100000004")
	achievementRepo := repository.NewAchievementRepository()
	achievementService := NewAchievementService(svc, achievementRepo, nil)

	start := time.Date(2026, 4, 5, 15, 0, 0, 0, time.UTC)
	seedMatches(t, matchRepo, user.ID, "Lion", 12, 7, start)

	report, err := achievementService.Evaluate(user)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(report.NewlyEarned) == 0 {
		t.Fatal("expected newly earned achievements on first run")
	}

	hasNew := func(id string) bool {
		for _, s := range report.NewlyEarned {
			if s.ID == id {
				return true
			}
		}
		return false
	}
	if !hasNew("first_match") || !hasNew("ten_matches") || !hasNew("first_win") {
		t.Errorf("expected basic milestones in newly earned, got %+v", report.NewlyEarned)
	}

	// Second run finds everything already in the ledger
	again, err := achievementService.Evaluate(user)
	if err != nil {
		t.Fatalf("second Evaluate failed: %v", err)
	}
	if len(again.NewlyEarned) != 0 {
		t.Errorf("expected no new unlocks on repeat run, got %d", len(again.NewlyEarned))
	}
	if again.EarnedCount != report.EarnedCount {
		t.Errorf("earned count changed between runs: %d vs %d", report.EarnedCount, again.EarnedCount)
	}
}

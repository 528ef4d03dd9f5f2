package repository

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dota-journal/match-journal/backend/database"
	"github.com/dota-journal/match-journal/backend/models"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "repo-test-*")
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

func createTestUser(t *testing.T, steamID string) *models.User {
	t.Helper()
	repo := NewUserRepository()
	user, _, err := repo.FindOrCreate(steamID, "tester-"+steamID, "", "", "")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	return user
}

func TestUserFindOrCreate(t *testing.T) {
	repo := NewUserRepository()

	user, isNew, err := repo.FindOrCreate("76561198000000001", "Alice", "avatar.jpg", "small.jpg", "profile")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if !isNew {
		t.Error("expected first FindOrCreate to report a new user")
	}
	if user.ID == 0 {
		t.Error("expected a database-assigned ID")
	}

	again, isNew, err := repo.FindOrCreate("76561198000000001", "Alice Renamed", "avatar2.jpg", "small2.jpg", "profile")
	if err != nil {
		t.Fatalf("second FindOrCreate failed: %v", err)
	}
	if isNew {
		t.Error("expected second FindOrCreate to find the existing user")
	}
	if again.ID != user.ID {
		t.Errorf("expected same user ID, got %d and %d", user.ID, again.ID)
	}
	if again.Username != "Alice Renamed" {
		t.Errorf("expected refreshed username, got %q", again.Username)
	}
}

func TestUserGetBySteamIDMissing(t *testing.T) {
	repo := NewUserRepository()

	user, err := repo.GetBySteamID("76561198999999999")
	if err != nil {
		t.Fatalf("GetBySteamID failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for unknown steam ID, got %+v", user)
	}
}

func TestMatchSaveAndHistory(t *testing.T) {
	user := createTestUser(t, "76561198000000002")
	repo := NewMatchRepository()

	base := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	outcomes := []string{models.OutcomeWin, models.OutcomeLose, models.OutcomeWin}
	for i, outcome := range outcomes {
		m := &models.Match{
			UserID:   user.ID,
			Hero:     "Lion",
			Outcome:  outcome,
			Party:    []string{"friend1", "friend2"},
			PlayedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Save(m); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	matches, err := repo.GetByUser(user.ID, 0)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	// Most recent first
	if !matches[0].PlayedAt.After(matches[2].PlayedAt) {
		t.Error("expected matches ordered most recent first")
	}
	if len(matches[0].Party) != 2 || matches[0].Party[0] != "friend1" {
		t.Errorf("party round-trip failed: %v", matches[0].Party)
	}

	games, wins, err := repo.CountByUser(user.ID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if games != 3 || wins != 2 {
		t.Errorf("expected 3 games / 2 wins, got %d / %d", games, wins)
	}

	limited, err := repo.GetByUser(user.ID, 2)
	if err != nil {
		t.Fatalf("GetByUser with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 matches with limit, got %d", len(limited))
	}
}

func TestMatchSaveAccumulatesHeroStats(t *testing.T) {
	user := createTestUser(t, "76561198000000003")
	repo := NewMatchRepository()

	for i := 0; i < 5; i++ {
		outcome := models.OutcomeWin
		if i >= 3 {
			outcome = models.OutcomeLose
		}
		m := &models.Match{
			UserID:   user.ID,
			Hero:     "Invoker",
			Outcome:  outcome,
			PlayedAt: time.Date(2026, 5, 11, 10+i, 0, 0, 0, time.UTC),
		}
		if err := repo.Save(m); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	stat, err := repo.GetHeroStat(user.ID, "Invoker")
	if err != nil {
		t.Fatalf("GetHeroStat failed: %v", err)
	}
	if stat == nil {
		t.Fatal("expected hero stat row after saves")
	}
	if stat.Games != 5 || stat.Wins != 3 {
		t.Errorf("expected 5 games / 3 wins, got %d / %d", stat.Games, stat.Wins)
	}
}

func TestMMRHistoryOrder(t *testing.T) {
	user := createTestUser(t, "76561198000000004")
	repo := NewMMRRepository()

	for _, mmr := range []int{2000, 2030, 2055} {
		if err := repo.Append(user.ID, mmr); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	history, err := repo.GetHistory(user.ID, 10)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	if history[0].MMR != 2055 {
		t.Errorf("expected most recent MMR first, got %d", history[0].MMR)
	}
}

func TestAchievementLedgerIdempotent(t *testing.T) {
	user := createTestUser(t, "76561198000000005")
	repo := NewAchievementRepository()

	unlockedAt := time.Date(2026, 5, 12, 20, 0, 0, 0, time.UTC)
	rows := []EarnedAchievement{
		{AchievementID: "first_match", UnlockedAt: unlockedAt},
		{AchievementID: "first_win", UnlockedAt: unlockedAt},
	}
	if err := repo.SaveNew(user.ID, rows); err != nil {
		t.Fatalf("SaveNew failed: %v", err)
	}

	// Saving the same rows again must not fail or duplicate
	if err := repo.SaveNew(user.ID, rows); err != nil {
		t.Fatalf("second SaveNew failed: %v", err)
	}

	earned, err := repo.GetEarned(user.ID)
	if err != nil {
		t.Fatalf("GetEarned failed: %v", err)
	}
	if len(earned) != 2 {
		t.Errorf("expected 2 earned achievements, got %d", len(earned))
	}
	if _, ok := earned["first_match"]; !ok {
		t.Error("expected first_match in ledger")
	}
}

func TestHeroReplaceAll(t *testing.T) {
	repo := NewHeroRepository()

	heroes := []models.Hero{
		{Name: "lion", LocalizedName: "Lion", PrimaryAttr: "int", AttackType: "Ranged", Roles: "Support,Disabler", Complexity: 1},
		{Name: "invoker", LocalizedName: "Invoker", PrimaryAttr: "universal", AttackType: "Ranged", Roles: "Carry,Nuker", Complexity: 3},
	}
	if err := repo.ReplaceAll(heroes); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 heroes, got %d", count)
	}

	hero, err := repo.GetByName("Invoker")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if hero == nil || hero.Complexity != 3 {
		t.Errorf("expected Invoker with complexity 3, got %+v", hero)
	}
	// Rows without an ID get one assigned by the database
	if hero != nil && hero.ID == 0 {
		t.Error("expected an assigned hero ID")
	}

	// An empty catalog must never wipe the existing one
	if err := repo.ReplaceAll(nil); err == nil {
		t.Error("expected ReplaceAll to refuse an empty hero set")
	}
}

func TestHeroReplaceAllMixedIDs(t *testing.T) {
	repo := NewHeroRepository()

	heroes := []models.Hero{
		{ID: 14, Name: "pudge", LocalizedName: "Pudge", Roles: "Disabler", Complexity: 2},
		{Name: "sniper", LocalizedName: "Sniper", Roles: "Carry", Complexity: 1},
		{Name: "rubick", LocalizedName: "Rubick", Roles: "Support", Complexity: 3},
	}
	if err := repo.ReplaceAll(heroes); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	pudge, err := repo.GetByName("Pudge")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if pudge == nil || pudge.ID != 14 {
		t.Errorf("expected Pudge to keep its catalog ID 14, got %+v", pudge)
	}

	sniper, _ := repo.GetByName("Sniper")
	rubick, _ := repo.GetByName("Rubick")
	if sniper == nil || rubick == nil {
		t.Fatal("expected all heroes inserted")
	}
	if sniper.ID == 0 || rubick.ID == 0 || sniper.ID == rubick.ID {
		t.Errorf("expected distinct assigned IDs, got %d and %d", sniper.ID, rubick.ID)
	}
}

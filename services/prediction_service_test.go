package services

import (
	"testing"
	"time"
)

func TestPredictInsufficientData(t *testing.T) {
	_, matchRepo, userRepo := newTestStatsService(t)
	user := seedUser(t, userRepo, "76561198200000001")
	svc := NewPredictionService(matchRepo)

	seedMatches(t, matchRepo, user.ID, "Sniper", 2, 1, time.Now().UTC().Add(-48*time.Hour))

	p, err := svc.Predict(user, "Sniper")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if p.Status != "insufficient_data" {
		t.Errorf("expected insufficient_data, got %q", p.Status)
	}
	if p.Games != 2 {
		t.Errorf("expected 2 games reported, got %d", p.Games)
	}
}

func TestPredictStreaksAndComfort(t *testing.T) {
	_, matchRepo, userRepo := newTestStatsService(t)
	user := seedUser(t, userRepo, "76561198200000002")
	svc := NewPredictionService(matchRepo)

	// 8 losses then 4 wins, most recent matches are the wins
	start := time.Now().UTC().Add(-20 * 24 * time.Hour)
	seedMatches(t, matchRepo, user.ID, "Juggernaut", 8, 0, start)
	seedMatches(t, matchRepo, user.ID, "Juggernaut", 4, 4, start.Add(10*24*time.Hour))

	p, err := svc.Predict(user, "Juggernaut")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if p.Status != "ok" {
		t.Fatalf("expected ok status, got %q (%s)", p.Status, p.Message)
	}
	if p.Games != 12 {
		t.Errorf("expected 12 games, got %d", p.Games)
	}
	if p.StreakType != "win" || p.CurrentStreak != 4 {
		t.Errorf("expected a 4-win current streak, got %d %s", p.CurrentStreak, p.StreakType)
	}
	if p.BestStreak != 4 {
		t.Errorf("expected best streak 4, got %d", p.BestStreak)
	}
	if p.ComfortLevel == "" {
		t.Error("expected a comfort level")
	}
	if _, ok := p.Periods["month"]; !ok {
		t.Error("expected month period stats for recent matches")
	}
}

func TestPredictUnknownHero(t *testing.T) {
	_, matchRepo, userRepo := newTestStatsService(t)
	user := seedUser(t, userRepo, "76561198200000003")
	svc := NewPredictionService(matchRepo)

	p, err := svc.Predict(user, "Nonexistent Hero")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if p.Status != "insufficient_data" || p.Games != 0 {
		t.Errorf("expected empty insufficient_data prediction, got %+v", p)
	}
}

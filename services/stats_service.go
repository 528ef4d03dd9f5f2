package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dota-journal/match-journal/backend/achievements"
	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
)

// StatsService assembles player statistics from recorded matches
type StatsService struct {
	matchRepo *repository.MatchRepository
	heroRepo  *repository.HeroRepository
	mmrRepo   *repository.MMRRepository
}

// NewStatsService creates a new stats service
func NewStatsService(matchRepo *repository.MatchRepository, heroRepo *repository.HeroRepository, mmrRepo *repository.MMRRepository) *StatsService {
	return &StatsService{matchRepo: matchRepo, heroRepo: heroRepo, mmrRepo: mmrRepo}
}

// HeroLine is one row of the per-hero statistics table
type HeroLine struct {
	Hero    string  `json:"hero"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Winrate float64 `json:"winrate"`
}

// Overview is the player's top-level statistics summary
type Overview struct {
	TotalGames int              `json:"total_games"`
	TotalWins  int              `json:"total_wins"`
	Winrate    float64          `json:"winrate"`
	Rank       *models.RankInfo `json:"rank,omitempty"`
	Heroes     []HeroLine       `json:"heroes"`
}

// GetOverview builds the player's statistics summary
func (s *StatsService) GetOverview(user *models.User) (*Overview, error) {
	games, wins, err := s.matchRepo.CountByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build overview: %w", err)
	}

	heroStats, err := s.matchRepo.GetHeroStats(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build overview: %w", err)
	}

	ov := &Overview{TotalGames: games, TotalWins: wins}
	if games > 0 {
		ov.Winrate = float64(wins) / float64(games) * 100
	}
	if user.MMR > 0 {
		ov.Rank = models.GetRankInfo(user.MMR)
	}
	for _, hs := range heroStats {
		ov.Heroes = append(ov.Heroes, HeroLine{
			Hero:    hs.Hero,
			Games:   hs.Games,
			Wins:    hs.Wins,
			Winrate: hs.Winrate(),
		})
	}
	return ov, nil
}

// PeriodOverview is the statistics summary for a bounded period
type PeriodOverview struct {
	Period     string     `json:"period"`
	Since      time.Time  `json:"since"`
	TotalGames int        `json:"total_games"`
	TotalWins  int        `json:"total_wins"`
	Winrate    float64    `json:"winrate"`
	Heroes     []HeroLine `json:"heroes"`
}

// GetPeriodOverview aggregates a user's matches for "day", "week" or
// "month" back from now
func (s *StatsService) GetPeriodOverview(user *models.User, period string) (*PeriodOverview, error) {
	var since time.Time
	now := time.Now().UTC()
	switch strings.ToLower(period) {
	case "day":
		since = now.AddDate(0, 0, -1)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	default:
		return nil, fmt.Errorf("unknown period: %q", period)
	}

	matches, err := s.matchRepo.GetByUserSince(user.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to build period overview: %w", err)
	}

	ov := &PeriodOverview{Period: strings.ToLower(period), Since: since}
	type agg struct{ games, wins int }
	perHero := make(map[string]*agg)
	var order []string
	for _, m := range matches {
		ov.TotalGames++
		a := perHero[m.Hero]
		if a == nil {
			a = &agg{}
			perHero[m.Hero] = a
			order = append(order, m.Hero)
		}
		a.games++
		if m.Outcome == models.OutcomeWin {
			ov.TotalWins++
			a.wins++
		}
	}
	if ov.TotalGames > 0 {
		ov.Winrate = float64(ov.TotalWins) / float64(ov.TotalGames) * 100
	}
	for _, hero := range order {
		a := perHero[hero]
		line := HeroLine{Hero: hero, Games: a.games, Wins: a.wins}
		if a.games > 0 {
			line.Winrate = float64(a.wins) / float64(a.games) * 100
		}
		ov.Heroes = append(ov.Heroes, line)
	}
	return ov, nil
}

// BuildStatsSnapshot assembles the read-only stats view the
// achievement engine evaluates. Hero aggregates come back sorted by
// games descending and matches most recent first, which is the order
// the engine expects.
func (s *StatsService) BuildStatsSnapshot(user *models.User) (*achievements.StatsSnapshot, error) {
	games, wins, err := s.matchRepo.CountByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats snapshot: %w", err)
	}

	heroStats, err := s.matchRepo.GetHeroStats(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats snapshot: %w", err)
	}

	catalog, err := s.heroRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats snapshot: %w", err)
	}
	meta := make(map[string]models.Hero, len(catalog))
	for _, h := range catalog {
		meta[h.LocalizedName] = h
		meta[h.Name] = h
	}

	matches, err := s.matchRepo.GetByUser(user.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats snapshot: %w", err)
	}

	snap := &achievements.StatsSnapshot{
		PlayerID:   user.Username,
		TotalGames: games,
		TotalWins:  wins,
	}
	for _, hs := range heroStats {
		hero := achievements.HeroSnapshot{
			Hero:  hs.Hero,
			Games: hs.Games,
			Wins:  hs.Wins,
		}
		if m, ok := meta[hs.Hero]; ok {
			hero.Role = m.PrimaryRole()
			hero.Attribute = m.PrimaryAttr
			hero.Complexity = m.Complexity
		}
		snap.Heroes = append(snap.Heroes, hero)
	}
	for _, m := range matches {
		detail := achievements.MatchDetail{
			Hero:    m.Hero,
			Outcome: m.Outcome,
			Party:   m.Party,
		}
		if !m.PlayedAt.IsZero() {
			detail.PlayedAt = m.PlayedAt.Format(achievements.TimeLayout)
		}
		snap.Matches = append(snap.Matches, detail)
	}
	return snap, nil
}

// BuildMmrSnapshot assembles the read-only MMR view for the
// achievement engine, capped at the engine's 90-entry look-back
func (s *StatsService) BuildMmrSnapshot(user *models.User) (*achievements.MmrSnapshot, error) {
	history, err := s.mmrRepo.GetHistory(user.ID, 90)
	if err != nil {
		return nil, fmt.Errorf("failed to build mmr snapshot: %w", err)
	}
	snap := &achievements.MmrSnapshot{CurrentMMR: user.MMR}
	for _, e := range history {
		snap.History = append(snap.History, e.MMR)
	}
	return snap, nil
}

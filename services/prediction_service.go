package services

import (
	"fmt"
	"time"

	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
)

// PredictionService scores how comfortable a player is on a hero from
// their recorded history
type PredictionService struct {
	matchRepo *repository.MatchRepository
}

// NewPredictionService creates a new prediction service
func NewPredictionService(matchRepo *repository.MatchRepository) *PredictionService {
	return &PredictionService{matchRepo: matchRepo}
}

// PerformanceMetrics are the four 1-5 component scores behind a
// comfort level
type PerformanceMetrics struct {
	Consistency       int `json:"consistency"`
	TrendScore        int `json:"trend_score"`
	Experience        int `json:"experience"`
	RecentPerformance int `json:"recent_performance"`
}

// PeriodLine summarizes one look-back window
type PeriodLine struct {
	Games   int     `json:"games"`
	Winrate float64 `json:"winrate"`
}

// Prediction is the full hero comfort analysis
type Prediction struct {
	Status          string                `json:"status"`
	Message         string                `json:"message,omitempty"`
	Hero            string                `json:"hero"`
	Games           int                   `json:"games"`
	Winrate         float64               `json:"winrate"`
	RecentWinrate   float64               `json:"recent_winrate"`
	MonthGames      int                   `json:"month_games"`
	MonthWinrate    float64               `json:"month_winrate"`
	CurrentStreak   int                   `json:"current_streak"`
	StreakType      string                `json:"streak_type,omitempty"`
	BestStreak      int                   `json:"best_streak"`
	Trend           string                `json:"trend"`
	ComfortLevel    string                `json:"comfort_level"`
	Metrics         PerformanceMetrics    `json:"performance_metrics"`
	TotalScore      int                   `json:"total_score"`
	Strengths       []string              `json:"strengths"`
	Weaknesses      []string              `json:"weaknesses"`
	Periods         map[string]PeriodLine `json:"period_stats"`
	BestTime        string                `json:"best_time,omitempty"`
	BestTimeWinrate float64               `json:"best_time_winrate"`
}

const minPredictionGames = 3

// Predict analyzes a user's history on one hero
func (s *PredictionService) Predict(user *models.User, hero string) (*Prediction, error) {
	stat, err := s.matchRepo.GetHeroStat(user.ID, hero)
	if err != nil {
		return nil, fmt.Errorf("failed to predict hero: %w", err)
	}
	if stat == nil || stat.Games < minPredictionGames {
		games := 0
		if stat != nil {
			games = stat.Games
		}
		return &Prediction{
			Status:  "insufficient_data",
			Hero:    hero,
			Games:   games,
			Message: fmt.Sprintf("Need at least %d games on a hero for analysis", minPredictionGames),
		}, nil
	}

	matches, err := s.matchRepo.GetByUserAndHero(user.ID, hero, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to predict hero: %w", err)
	}

	p := &Prediction{
		Status:  "ok",
		Hero:    hero,
		Games:   stat.Games,
		Winrate: stat.Winrate(),
		Periods: make(map[string]PeriodLine),
	}

	// Last 10 matches drive the recent form and streak analysis
	recent := matches
	if len(recent) > 10 {
		recent = recent[:10]
	}
	recentWins := 0
	for _, m := range recent {
		if m.Outcome == models.OutcomeWin {
			recentWins++
		}
	}
	if len(recent) > 0 {
		p.RecentWinrate = float64(recentWins) / float64(len(recent)) * 100
	}

	if len(recent) > 0 {
		p.StreakType = recent[0].Outcome
		for _, m := range recent {
			if m.Outcome != p.StreakType {
				break
			}
			p.CurrentStreak++
		}
	}
	run := 0
	for _, m := range recent {
		if m.Outcome == models.OutcomeWin {
			run++
			if run > p.BestStreak {
				p.BestStreak = run
			}
		} else {
			run = 0
		}
	}

	now := time.Now().UTC()
	monthAgo := now.AddDate(0, 0, -30)
	monthWins := 0
	for _, m := range matches {
		if m.PlayedAt.Before(monthAgo) {
			continue
		}
		p.MonthGames++
		if m.Outcome == models.OutcomeWin {
			monthWins++
		}
	}
	if p.MonthGames > 0 {
		p.MonthWinrate = float64(monthWins) / float64(p.MonthGames) * 100
	}

	s.scoreMetrics(p, len(recent))
	s.analyzeStrengths(p, len(recent))

	for name, days := range map[string]int{"week": 7, "month": 30, "quarter": 90} {
		since := now.AddDate(0, 0, -days)
		games, wins := 0, 0
		for _, m := range matches {
			if m.PlayedAt.Before(since) {
				continue
			}
			games++
			if m.Outcome == models.OutcomeWin {
				wins++
			}
		}
		if games > 0 {
			p.Periods[name] = PeriodLine{Games: games, Winrate: float64(wins) / float64(games) * 100}
		}
	}

	p.BestTime, p.BestTimeWinrate = bestTimeOfDay(matches)
	return p, nil
}

// scoreMetrics fills the four component scores and the trend label
func (s *PredictionService) scoreMetrics(p *Prediction, recentGames int) {
	variance := p.RecentWinrate - p.Winrate
	if variance < 0 {
		variance = -variance
	}

	if recentGames >= 5 {
		switch {
		case variance <= 5:
			switch {
			case p.Winrate >= 55:
				p.Metrics.Consistency = 5
			case p.Winrate >= 50:
				p.Metrics.Consistency = 4
			case p.Winrate >= 45:
				p.Metrics.Consistency = 3
			default:
				p.Metrics.Consistency = 2
			}
		case variance <= 10:
			p.Metrics.Consistency = 3
		case variance <= 15:
			p.Metrics.Consistency = 2
		default:
			p.Metrics.Consistency = 1
		}
		// An active losing run undercuts whatever the numbers say
		if p.CurrentStreak >= 3 && p.StreakType == models.OutcomeLose {
			p.Metrics.Consistency -= 2
			if p.Metrics.Consistency < 1 {
				p.Metrics.Consistency = 1
			}
		}
	} else {
		p.Metrics.Consistency = 1
	}

	if p.Games >= 5 {
		switch {
		case p.RecentWinrate > p.Winrate+20:
			p.Metrics.TrendScore = 5
			p.Trend = "rising"
		case p.RecentWinrate > p.Winrate+10:
			p.Metrics.TrendScore = 4
			p.Trend = "rising"
		case p.RecentWinrate > p.Winrate+5:
			p.Metrics.TrendScore = 3
			p.Trend = "rising"
		case p.RecentWinrate < p.Winrate-15:
			p.Metrics.TrendScore = 1
			p.Trend = "falling"
		case p.RecentWinrate < p.Winrate-5:
			p.Metrics.TrendScore = 2
			p.Trend = "falling"
		default:
			p.Metrics.TrendScore = 3
			p.Trend = "steady"
		}
	} else {
		p.Metrics.TrendScore = 3
		p.Trend = "insufficient data"
	}

	switch {
	case p.Games >= 50:
		p.Metrics.Experience = 5
	case p.Games >= 30:
		p.Metrics.Experience = 4
	case p.Games >= 20:
		p.Metrics.Experience = 3
	case p.Games >= 10:
		p.Metrics.Experience = 2
	default:
		p.Metrics.Experience = 1
	}

	if p.MonthGames >= 5 {
		switch {
		case p.MonthWinrate >= 70:
			p.Metrics.RecentPerformance = 5
		case p.MonthWinrate >= 60:
			p.Metrics.RecentPerformance = 4
		case p.MonthWinrate >= 50:
			p.Metrics.RecentPerformance = 3
		case p.MonthWinrate >= 40:
			p.Metrics.RecentPerformance = 2
		default:
			p.Metrics.RecentPerformance = 1
		}
	} else {
		p.Metrics.RecentPerformance = 1
	}

	p.TotalScore = p.Metrics.Consistency + p.Metrics.TrendScore +
		p.Metrics.Experience + p.Metrics.RecentPerformance

	const maxScore = 20
	switch {
	case p.Games < 5:
		p.ComfortLevel = "not enough games"
	case p.TotalScore >= maxScore*8/10:
		p.ComfortLevel = "high"
	case p.TotalScore >= maxScore*6/10:
		p.ComfortLevel = "good"
	case p.TotalScore >= maxScore*4/10:
		p.ComfortLevel = "medium"
	default:
		p.ComfortLevel = "low"
	}
}

// analyzeStrengths fills the strength/weakness bullet lists
func (s *PredictionService) analyzeStrengths(p *Prediction, recentGames int) {
	if recentGames >= 5 {
		switch p.Metrics.Consistency {
		case 5:
			p.Strengths = append(p.Strengths, "Excellent consistency")
		case 4:
			p.Strengths = append(p.Strengths, "Good consistency")
		case 3:
			p.Strengths = append(p.Strengths, "Average consistency")
		case 2:
			p.Weaknesses = append(p.Weaknesses, "Consistently low results")
		}
	}

	if p.Games >= 10 {
		switch {
		case p.Winrate >= 65:
			p.Strengths = append(p.Strengths, "Exceptional winrate")
		case p.Winrate >= 55:
			p.Strengths = append(p.Strengths, "Good winrate")
		case p.Winrate < 45:
			p.Weaknesses = append(p.Weaknesses, "Low winrate")
		}
	}

	if p.BestStreak >= 5 {
		p.Strengths = append(p.Strengths, fmt.Sprintf("Impressive win streak: %d", p.BestStreak))
	} else if p.BestStreak >= 3 {
		p.Strengths = append(p.Strengths, fmt.Sprintf("Good win streak: %d", p.BestStreak))
	}

	if p.CurrentStreak >= 3 {
		if p.StreakType == models.OutcomeWin {
			p.Strengths = append(p.Strengths, fmt.Sprintf("Current win streak: %d", p.CurrentStreak))
		} else {
			p.Weaknesses = append(p.Weaknesses, fmt.Sprintf("Current losing streak: %d", p.CurrentStreak))
		}
	}

	if p.MonthGames >= 5 {
		switch {
		case p.MonthWinrate >= 65:
			p.Strengths = append(p.Strengths, "Excellent recent results")
		case p.MonthWinrate >= 55:
			p.Strengths = append(p.Strengths, "Steady recent results")
		case p.MonthWinrate < 45:
			p.Weaknesses = append(p.Weaknesses, "Weak recent results")
		}
	}

	if p.Games >= 30 {
		if p.Winrate >= 55 {
			p.Strengths = append(p.Strengths, "Extensive successful experience on this hero")
		} else {
			p.Strengths = append(p.Strengths, "Extensive experience on this hero")
		}
	} else if p.Games <= 5 {
		if p.Winrate >= 60 {
			p.Strengths = append(p.Strengths, "Promising first results")
		} else if p.Winrate < 50 {
			p.Weaknesses = append(p.Weaknesses, "Not enough experience")
		}
	}

	if p.Games >= 10 {
		if p.Trend == "rising" {
			p.Strengths = append(p.Strengths, "Steady improvement")
		} else if p.Trend == "falling" {
			p.Weaknesses = append(p.Weaknesses, "Declining results")
		}
	}
}

// bestTimeOfDay buckets matches into four day parts and returns the
// one with the best winrate over at least 3 games
func bestTimeOfDay(matches []models.Match) (string, float64) {
	type bucket struct{ games, wins int }
	buckets := make(map[string]*bucket)
	for _, m := range matches {
		var part string
		switch h := m.PlayedAt.Hour(); {
		case h >= 6 && h < 12:
			part = "morning"
		case h >= 12 && h < 18:
			part = "afternoon"
		case h >= 18:
			part = "evening"
		default:
			part = "night"
		}
		b := buckets[part]
		if b == nil {
			b = &bucket{}
			buckets[part] = b
		}
		b.games++
		if m.Outcome == models.OutcomeWin {
			b.wins++
		}
	}

	best, bestRate := "", 0.0
	for part, b := range buckets {
		if b.games < 3 {
			continue
		}
		rate := float64(b.wins) / float64(b.games) * 100
		if rate > bestRate {
			bestRate = rate
			best = part
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestRate
}

package models

import "time"

// Match outcomes as stored in the matches table
const (
	OutcomeWin  = "win"
	OutcomeLose = "lose"
)

// Match represents one recorded match
type Match struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	MatchID     string    `json:"match_id"`
	Hero        string    `json:"hero"`
	Outcome     string    `json:"outcome"`
	HeroWinrate float64   `json:"hero_winrate"`
	Party       []string  `json:"party,omitempty"`
	PlayedAt    time.Time `json:"played_at"`
}

// HeroStat is the cumulative per-hero aggregate maintained alongside matches
type HeroStat struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	Hero       string    `json:"hero"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	LastPlayed time.Time `json:"last_played"`
}

// Winrate returns the hero's win percentage, 0 for an empty record
func (h *HeroStat) Winrate() float64 {
	if h.Games == 0 {
		return 0
	}
	return float64(h.Wins) / float64(h.Games) * 100
}

// RecordMatchRequest is the body of POST /api/v1/matches
type RecordMatchRequest struct {
	MatchID string   `json:"match_id" binding:"required"`
	Hero    string   `json:"hero" binding:"required"`
	Outcome string   `json:"outcome" binding:"required"`
	Party   []string `json:"party"`
}

// SetMMRRequest is the body of PUT /api/v1/mmr
type SetMMRRequest struct {
	MMR int `json:"mmr" binding:"min=0"`
}

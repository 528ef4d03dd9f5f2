package models

import "time"

// MMRHistoryEntry is one recorded MMR sample
type MMRHistoryEntry struct {
	MMR        int       `json:"mmr"`
	RecordedAt time.Time `json:"recorded_at"`
}

// rankBand is one named MMR bracket
type rankBand struct {
	name  string
	emoji string
	min   int
	max   int
}

// Rank brackets are externally specified game constants, five medals per bracket.
var rankBands = []rankBand{
	{"Herald", "🔰", 0, 720},
	{"Guardian", "🛡️", 720, 1460},
	{"Crusader", "⚔️", 1460, 2200},
	{"Archon", "🏹", 2200, 3000},
	{"Legend", "👑", 3000, 3800},
	{"Ancient", "🏺", 3800, 4620},
	{"Divine", "✨", 4620, 5420},
	{"Immortal", "⚡", 5420, 100000},
}

// RankInfo describes the rank bracket and medal for an MMR value
type RankInfo struct {
	Rank             string `json:"rank"`
	Emoji            string `json:"emoji"`
	Medal            int    `json:"medal"`
	NextRank         string `json:"next_rank,omitempty"`
	MMRToNextMedal   int    `json:"mmr_to_next_medal"`
	MMRToNextRank    int    `json:"mmr_to_next_rank"`
	NextRankProgress int    `json:"next_rank_progress"` // percent into the current bracket
}

// GetRankInfo maps an MMR value to its rank bracket and medal.
// Returns nil for negative values.
func GetRankInfo(mmr int) *RankInfo {
	if mmr < 0 {
		return nil
	}
	for i, band := range rankBands {
		if mmr < band.min || mmr >= band.max {
			continue
		}
		bandRange := band.max - band.min
		progress := mmr - band.min

		medal := progress*5/bandRange + 1
		if medal > 5 {
			medal = 5
		}
		medalSize := bandRange / 5

		info := &RankInfo{
			Rank:             band.name,
			Emoji:            band.emoji,
			Medal:            medal,
			NextRankProgress: progress * 100 / bandRange,
			MMRToNextMedal:   medalSize - progress%medalSize,
		}
		if i < len(rankBands)-1 {
			info.NextRank = rankBands[i+1].name
			info.MMRToNextRank = band.max - mmr
		}
		return info
	}
	return nil
}

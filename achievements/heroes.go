package achievements

import "time"

var heroesDefinitions = []Definition{
	{ID: "hero_first", Name: "Acquaintance", Description: "Play your first hero", Emoji: "⚔️", Category: CategoryHeroes, ProgressMax: 1},
	{ID: "hero_ten", Name: "Explorer", Description: "Play 10 different heroes", Emoji: "🧭", Category: CategoryHeroes, ProgressMax: 10, Requires: "hero_first"},
	{ID: "hero_twenty", Name: "Connoisseur", Description: "Play 20 different heroes", Emoji: "🗺️", Category: CategoryHeroes, ProgressMax: 20, Requires: "hero_ten"},
	{ID: "hero_mastery_10", Name: "Apprentice", Description: "Play 10 matches on one hero", Emoji: "📖", Category: CategoryHeroes, ProgressMax: 10, Requires: "hero_first"},
	{ID: "hero_mastery_50", Name: "Specialist", Description: "Play 50 matches on one hero", Emoji: "📚", Category: CategoryHeroes, ProgressMax: 50, Requires: "hero_mastery_10"},
	{ID: "hero_mastery_100", Name: "One-Trick", Description: "Play 100 matches on one hero", Emoji: "🎓", Category: CategoryHeroes, ProgressMax: 100, Requires: "hero_mastery_50"},
	{ID: "hero_winrate_60", Name: "Comfort Pick", Description: "Win 60% of at least 20 matches on one hero", Emoji: "🎯", Category: CategoryHeroes, ProgressMax: 60, Requires: "hero_mastery_10"},
	{ID: "hero_winrate_70", Name: "Pocket Pick", Description: "Win 70% of at least 30 matches on one hero", Emoji: "🎯", Category: CategoryHeroes, ProgressMax: 70, Requires: "hero_winrate_60"},
	{ID: "hero_winrate_80", Name: "Signature Hero", Description: "Win 80% of at least 40 matches on one hero", Emoji: "💎", Category: CategoryHeroes, ProgressMax: 80, Hidden: true, Requires: "hero_winrate_70"},
	{ID: "hero_streak_5", Name: "On a Roll", Description: "Win 5 matches in a row on one hero", Emoji: "🔥", Category: CategoryHeroes, ProgressMax: 5},
	{ID: "hero_streak_10", Name: "Unstoppable Pick", Description: "Win 10 matches in a row on one hero", Emoji: "🔥", Category: CategoryHeroes, ProgressMax: 10, Requires: "hero_streak_5"},
	{ID: "hero_streak_15", Name: "They Never Learn", Description: "Win 15 matches in a row on one hero", Emoji: "🌋", Category: CategoryHeroes, ProgressMax: 15, Hidden: true, Requires: "hero_streak_10"},
	{ID: "hero_roles_all", Name: "Flexible", Description: "Play heroes of 5 different roles", Emoji: "🎭", Category: CategoryHeroes, ProgressMax: 5, Requires: "hero_ten"},
	{ID: "hero_attributes_all", Name: "Well Rounded", Description: "Play heroes of all 3 attributes", Emoji: "🧬", Category: CategoryHeroes, ProgressMax: 3, Requires: "hero_ten"},
	{ID: "hero_complexity_3", Name: "Galaxy Brain", Description: "Win 10 matches on the hardest heroes", Emoji: "🧠", Category: CategoryHeroes, ProgressMax: 10, Hidden: true, Requires: "hero_twenty"},
}

var heroMasteryLadder = []struct {
	id        string
	threshold int
}{
	{"hero_mastery_10", 10},
	{"hero_mastery_50", 50},
	{"hero_mastery_100", 100},
}

// Winrate tiers gate on a minimum sample so a 2-0 hero does not count
// as an 80% hero.
var heroWinrateTiers = []struct {
	id       string
	percent  float64
	minGames int
}{
	{"hero_winrate_60", 60, 20},
	{"hero_winrate_70", 70, 30},
	{"hero_winrate_80", 80, 40},
}

var heroStreakLadder = []struct {
	id        string
	threshold int
}{
	{"hero_streak_5", 5},
	{"hero_streak_10", 10},
	{"hero_streak_15", 15},
}

func evalHeroes(stats *StatsSnapshot, _ *MmrSnapshot, now time.Time) *categoryResult {
	res := newCategoryResult()
	if stats == nil || len(stats.Heroes) == 0 {
		return res
	}
	ts := now.Format(TimeLayout)

	unique := 0
	maxGames := 0
	complexityWins := 0
	roles := make(map[string]bool)
	attributes := make(map[string]bool)
	bestTierRate := make(map[string]float64)

	for i, h := range stats.Heroes {
		if h.Hero == "" {
			res.skip(i, "missing hero name")
			continue
		}
		if h.Games < 0 || h.Wins < 0 || h.Wins > h.Games {
			res.skip(i, "inconsistent hero record")
			continue
		}
		unique++
		if h.Games > maxGames {
			maxGames = h.Games
		}
		if h.Games > 0 {
			rate := float64(h.Wins) / float64(h.Games) * 100
			for _, tier := range heroWinrateTiers {
				if h.Games >= tier.minGames && rate > bestTierRate[tier.id] {
					bestTierRate[tier.id] = rate
				}
			}
		}
		if h.Role != "" && h.Role != "None" {
			roles[h.Role] = true
		}
		if h.Attribute != "" {
			attributes[h.Attribute] = true
		}
		if h.Complexity == 3 {
			complexityWins += h.Wins
		}
	}

	if unique >= 1 {
		res.earn("hero_first", ts)
	}
	if unique >= 10 {
		res.earn("hero_ten", ts)
	}
	if unique >= 20 {
		res.earn("hero_twenty", ts)
	}
	res.progress.setClamped("hero_first", unique, 1)
	res.progress.setClamped("hero_ten", unique, 10)
	res.progress.setClamped("hero_twenty", unique, 20)

	for _, step := range heroMasteryLadder {
		if maxGames >= step.threshold {
			res.earn(step.id, ts)
		}
		res.progress.setClamped(step.id, maxGames, step.threshold)
	}

	for _, tier := range heroWinrateTiers {
		rate := bestTierRate[tier.id]
		if rate >= tier.percent {
			res.earn(tier.id, ts)
		}
		res.progress.setClamped(tier.id, int(rate), int(tier.percent))
	}

	// Ongoing win streak per hero, folded oldest to newest.
	streaks := make(map[string]int)
	for i := len(stats.Matches) - 1; i >= 0; i-- {
		m := stats.Matches[i]
		if m.Hero == "" {
			continue
		}
		if m.Won() {
			streaks[m.Hero]++
		} else {
			streaks[m.Hero] = 0
		}
	}
	maxStreak := 0
	for _, s := range streaks {
		if s > maxStreak {
			maxStreak = s
		}
	}
	for _, step := range heroStreakLadder {
		if maxStreak >= step.threshold {
			res.earn(step.id, ts)
		}
		res.progress.setClamped(step.id, maxStreak, step.threshold)
	}

	if len(roles) >= 5 {
		res.earn("hero_roles_all", ts)
	}
	res.progress.setClamped("hero_roles_all", len(roles), 5)
	if len(attributes) >= 3 {
		res.earn("hero_attributes_all", ts)
	}
	res.progress.setClamped("hero_attributes_all", len(attributes), 3)
	if complexityWins >= 10 {
		res.earn("hero_complexity_3", ts)
	}
	res.progress.setClamped("hero_complexity_3", complexityWins, 10)

	return res
}

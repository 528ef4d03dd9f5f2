package achievements

import "time"

var winrateDefinitions = []Definition{
	{ID: "first_win", Name: "First Victory", Description: "Win your first match", Emoji: "🎯", Category: CategoryWinrate, ProgressMax: 1},
	{ID: "wins_50", Name: "Fifty Wins", Description: "Win 50 matches", Emoji: "🏹", Category: CategoryWinrate, ProgressMax: 50, Requires: "first_win"},
	{ID: "wins_100", Name: "Hundred Wins", Description: "Win 100 matches", Emoji: "💯", Category: CategoryWinrate, ProgressMax: 100, Requires: "wins_50"},
	{ID: "wins_500", Name: "Conqueror", Description: "Win 500 matches", Emoji: "👑", Category: CategoryWinrate, ProgressMax: 500, Requires: "wins_100"},
	{ID: "win_streak_3", Name: "Warming Up", Description: "Win 3 matches in a row", Emoji: "🔥", Category: CategoryWinrate, ProgressMax: 3, Requires: "first_win"},
	{ID: "win_streak_5", Name: "Hot Hand", Description: "Win 5 matches in a row", Emoji: "🔥", Category: CategoryWinrate, ProgressMax: 5, Requires: "win_streak_3"},
	{ID: "winrate_55", Name: "Above the Curve", Description: "Hold a 55% winrate over 100 matches", Emoji: "📊", Category: CategoryWinrate, ProgressMax: 55, Requires: "first_win"},
	{ID: "winrate_60", Name: "Smurf Check", Description: "Hold a 60% winrate over 200 matches", Emoji: "📊", Category: CategoryWinrate, ProgressMax: 60, Requires: "winrate_55"},
	{ID: "winrate_65", Name: "Statistical Anomaly", Description: "Hold a 65% winrate over 300 matches", Emoji: "🧮", Category: CategoryWinrate, ProgressMax: 65, Hidden: true, Requires: "winrate_60"},
	{ID: "perfect_day", Name: "Flawless Day", Description: "Win every match on a day with at least 5 games", Emoji: "☀️", Category: CategoryWinrate, ProgressMax: 5, Hidden: true},
	{ID: "comeback_king", Name: "Comeback King", Description: "Win after losing 5 matches in a row", Emoji: "🃏", Category: CategoryWinrate, ProgressMax: 5, Hidden: true},
	{ID: "weekend_winner", Name: "Weekend Winner", Description: "Win 10 matches on weekends", Emoji: "🎉", Category: CategoryWinrate, ProgressMax: 10, Requires: "wins_50"},
}

var winsLadder = []struct {
	id        string
	threshold int
}{
	{"wins_50", 50},
	{"wins_100", 100},
	{"wins_500", 500},
}

// Winrate tiers each require a minimum total so a lucky opening run
// does not qualify.
var winrateTiers = []struct {
	id       string
	percent  float64
	minGames int
}{
	{"winrate_55", 55, 100},
	{"winrate_60", 60, 200},
	{"winrate_65", 65, 300},
}

func evalWinrate(stats *StatsSnapshot, _ *MmrSnapshot, now time.Time) *categoryResult {
	res := newCategoryResult()
	if stats == nil || stats.TotalGames == 0 {
		return res
	}
	ts := now.Format(TimeLayout)

	wins := stats.TotalWins
	if wins >= 1 {
		res.earn("first_win", ts)
	}
	res.progress.setClamped("first_win", wins, 1)
	for _, step := range winsLadder {
		if wins >= step.threshold {
			res.earn(step.id, ts)
		}
		res.progress.setClamped(step.id, wins, step.threshold)
	}

	rate := float64(wins) / float64(stats.TotalGames) * 100
	for _, tier := range winrateTiers {
		if stats.TotalGames >= tier.minGames && rate >= tier.percent {
			res.earn(tier.id, ts)
		}
		res.progress.setClamped(tier.id, int(rate), int(tier.percent))
	}

	// Streaks and day buckets walk the matches oldest to newest so the
	// comeback detection sees losses before the win that ends them.
	var (
		winStreak, maxWinStreak   int
		loseStreak, maxLoseStreak int
		weekendWins               int
		comeback                  bool
	)
	type dayCount struct{ total, wins int }
	days := make(map[string]*dayCount)

	for i := len(stats.Matches) - 1; i >= 0; i-- {
		m := stats.Matches[i]
		if m.PlayedAt == "" {
			res.skip(i, "missing play time")
			continue
		}
		t, err := time.Parse(TimeLayout, m.PlayedAt)
		if err != nil {
			res.skip(i, "unparsable play time")
			continue
		}
		won := m.Won()
		if won {
			winStreak++
			if winStreak > maxWinStreak {
				maxWinStreak = winStreak
			}
			if loseStreak >= 5 && !comeback {
				comeback = true
				res.earn("comeback_king", t.Format(TimeLayout))
			}
			loseStreak = 0
		} else {
			winStreak = 0
			loseStreak++
			if loseStreak > maxLoseStreak {
				maxLoseStreak = loseStreak
			}
		}
		if wd := t.Weekday(); won && (wd == time.Saturday || wd == time.Sunday) {
			weekendWins++
		}
		day := t.Format("2006-01-02")
		dc := days[day]
		if dc == nil {
			dc = &dayCount{}
			days[day] = dc
		}
		dc.total++
		if won {
			dc.wins++
		}
	}

	if maxWinStreak >= 3 {
		res.earn("win_streak_3", ts)
	}
	res.progress.setClamped("win_streak_3", maxWinStreak, 3)
	if maxWinStreak >= 5 {
		res.earn("win_streak_5", ts)
	}
	res.progress.setClamped("win_streak_5", maxWinStreak, 5)

	res.progress.setClamped("comeback_king", maxLoseStreak, 5)

	bestDayWins := 0
	perfect := false
	for _, dc := range days {
		if dc.total < 5 {
			continue
		}
		if dc.wins > bestDayWins {
			bestDayWins = dc.wins
		}
		if dc.wins == dc.total {
			perfect = true
		}
	}
	if perfect {
		res.earn("perfect_day", ts)
	}
	res.progress.setClamped("perfect_day", bestDayWins, 5)

	if weekendWins >= 10 {
		res.earn("weekend_winner", ts)
	}
	res.progress.setClamped("weekend_winner", weekendWins, 10)

	return res
}

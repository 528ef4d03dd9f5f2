package achievements

import (
	"fmt"
	"time"
)

var matchesDefinitions = []Definition{
	{ID: "first_match", Name: "First Steps", Description: "Play your first match", Emoji: "🎮", Category: CategoryMatches, ProgressMax: 1},
	{ID: "ten_matches", Name: "Getting Warmed Up", Description: "Play 10 matches", Emoji: "🎮", Category: CategoryMatches, ProgressMax: 10, Requires: "first_match"},
	{ID: "fifty_matches", Name: "Regular", Description: "Play 50 matches", Emoji: "🎮", Category: CategoryMatches, ProgressMax: 50, Requires: "ten_matches"},
	{ID: "hundred_matches", Name: "Centurion", Description: "Play 100 matches", Emoji: "💯", Category: CategoryMatches},
	{ID: "five_hundred_matches", Name: "Seasoned", Description: "Play 500 matches", Emoji: "🏅", Category: CategoryMatches},
	{ID: "thousand_matches", Name: "Thousand Club", Description: "Play 1000 matches", Emoji: "🏆", Category: CategoryMatches},
	{ID: "two_thousand_matches", Name: "Devoted", Description: "Play 2000 matches", Emoji: "🏆", Category: CategoryMatches},
	{ID: "five_thousand_matches", Name: "Obsessed", Description: "Play 5000 matches", Emoji: "👑", Category: CategoryMatches},
	{ID: "ten_thousand_matches", Name: "Living Legend", Description: "Play 10000 matches", Emoji: "👑", Category: CategoryMatches},
	{ID: "fifteen_thousand_matches", Name: "Beyond Reason", Description: "Play 15000 matches", Emoji: "🌟", Category: CategoryMatches},
	{ID: "daily_player", Name: "Daily Player", Description: "Play 3 matches in one day", Emoji: "📅", Category: CategoryMatches, ProgressMax: 3},
	{ID: "weekend_warrior", Name: "Weekend Warrior", Description: "Play 10 matches on weekends", Emoji: "🛋️", Category: CategoryMatches, ProgressMax: 10, Requires: "daily_player"},
	{ID: "marathon_runner", Name: "Marathon Runner", Description: "Play 20 matches in one day", Emoji: "🏃", Category: CategoryMatches, ProgressMax: 20, Hidden: true, Requires: "weekend_warrior"},
	{ID: "weekly_dedication", Name: "Full Week", Description: "Play on every day of a week", Emoji: "🗓️", Category: CategoryMatches},
	{ID: "monthly_master", Name: "Monthly Master", Description: "Play 100 matches in one month", Emoji: "📆", Category: CategoryMatches},
	{ID: "seasonal_veteran", Name: "Seasonal Veteran", Description: "Play 300 matches in one season", Emoji: "🍂", Category: CategoryMatches},
	{ID: "morning_person", Name: "Morning Person", Description: "Play 10 matches between 5:00 and 9:00", Emoji: "🌅", Category: CategoryMatches},
	{ID: "night_owl", Name: "Night Owl", Description: "Play 10 matches at night", Emoji: "🦉", Category: CategoryMatches},
	{ID: "prime_time_player", Name: "Prime Time", Description: "Play 50 matches between 19:00 and 23:00", Emoji: "📺", Category: CategoryMatches},
}

var matchesLadder = []struct {
	id        string
	threshold int
}{
	{"first_match", 1},
	{"ten_matches", 10},
	{"fifty_matches", 50},
	{"hundred_matches", 100},
	{"five_hundred_matches", 500},
	{"thousand_matches", 1000},
	{"two_thousand_matches", 2000},
	{"five_thousand_matches", 5000},
	{"ten_thousand_matches", 10000},
	{"fifteen_thousand_matches", 15000},
}

func evalMatches(stats *StatsSnapshot, _ *MmrSnapshot, now time.Time) *categoryResult {
	res := newCategoryResult()
	if stats == nil || stats.TotalGames == 0 {
		return res
	}
	ts := now.Format(TimeLayout)

	total := stats.TotalGames
	for _, step := range matchesLadder {
		if total >= step.threshold {
			res.earn(step.id, ts)
		}
	}
	res.progress.setClamped("first_match", total, 1)
	res.progress.setClamped("ten_matches", total, 10)
	res.progress.setClamped("fifty_matches", total, 50)

	var morning, night, prime, weekend int
	daily := make(map[string]int)
	weekDays := make(map[string]map[time.Weekday]bool)
	monthly := make(map[string]int)
	seasonal := make(map[string]int)

	for i, m := range stats.Matches {
		if m.PlayedAt == "" {
			res.skip(i, "missing play time")
			continue
		}
		t, err := time.Parse(TimeLayout, m.PlayedAt)
		if err != nil {
			res.skip(i, "unparsable play time")
			continue
		}
		h := t.Hour()
		if h >= 5 && h < 9 {
			morning++
		}
		if h >= 23 || h < 5 {
			night++
		}
		if h >= 19 && h < 23 {
			prime++
		}
		wd := t.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
		daily[t.Format("2006-01-02")]++
		year, week := t.ISOWeek()
		wk := fmt.Sprintf("%d-%02d", year, week)
		if weekDays[wk] == nil {
			weekDays[wk] = make(map[time.Weekday]bool)
		}
		weekDays[wk][wd] = true
		monthly[t.Format("2006-01")]++
		seasonal[seasonKey(t)]++
	}

	maxDaily := 0
	for _, n := range daily {
		if n > maxDaily {
			maxDaily = n
		}
	}
	if maxDaily >= 3 {
		res.earn("daily_player", ts)
	}
	res.progress.setClamped("daily_player", maxDaily, 3)
	if maxDaily >= 20 {
		res.earn("marathon_runner", ts)
	}
	res.progress.setClamped("marathon_runner", maxDaily, 20)

	if weekend >= 10 {
		res.earn("weekend_warrior", ts)
	}
	res.progress.setClamped("weekend_warrior", weekend, 10)

	for _, days := range weekDays {
		if len(days) == 7 {
			res.earn("weekly_dedication", ts)
			break
		}
	}
	for _, n := range monthly {
		if n >= 100 {
			res.earn("monthly_master", ts)
			break
		}
	}
	for _, n := range seasonal {
		if n >= 300 {
			res.earn("seasonal_veteran", ts)
			break
		}
	}

	if morning >= 10 {
		res.earn("morning_person", ts)
	}
	if night >= 10 {
		res.earn("night_owl", ts)
	}
	if prime >= 50 {
		res.earn("prime_time_player", ts)
	}
	return res
}

// seasonKey buckets a timestamp into a meteorological season. December
// counts toward the following year's winter so Dec-Jan-Feb land in one
// bucket.
func seasonKey(t time.Time) string {
	y, m := t.Year(), int(t.Month())
	switch {
	case m == 12:
		return fmt.Sprintf("%d-winter", y+1)
	case m <= 2:
		return fmt.Sprintf("%d-winter", y)
	case m <= 5:
		return fmt.Sprintf("%d-spring", y)
	case m <= 8:
		return fmt.Sprintf("%d-summer", y)
	default:
		return fmt.Sprintf("%d-autumn", y)
	}
}

package achievements

import (
	"fmt"
	"time"
)

var specialDefinitions = []Definition{
	{ID: "early_bird", Name: "Early Bird", Description: "Win 5 matches between 5:00 and 9:00", Emoji: "🐦", Category: CategorySpecial},
	{ID: "night_hunter", Name: "Night Hunter", Description: "Win 5 matches at night", Emoji: "🌙", Category: CategorySpecial},
	{ID: "lunch_break", Name: "Lunch Break", Description: "Win 10 matches between 12:00 and 14:00", Emoji: "🥪", Category: CategorySpecial},
	{ID: "summer_grinder", Name: "Summer Grinder", Description: "Play 100 matches over a summer", Emoji: "🏖️", Category: CategorySpecial},
	{ID: "winter_warrior", Name: "Winter Warrior", Description: "Play 100 matches over a winter", Emoji: "☃️", Category: CategorySpecial},
	{ID: "new_year_spirit", Name: "New Year Spirit", Description: "Play a match on New Year's Eve night", Emoji: "🎆", Category: CategorySpecial},
	{ID: "comeback_master", Name: "Comeback Master", Description: "Win after losing 7 matches in a row", Emoji: "🎭", Category: CategorySpecial},
	{ID: "perfect_week", Name: "Perfect Week", Description: "Win every match in a week with at least 10 games", Emoji: "🌈", Category: CategorySpecial},
	{ID: "weekend_marathon", Name: "Weekend Marathon", Description: "Play 20 matches on weekends", Emoji: "🛌", Category: CategorySpecial},
	{ID: "party_player", Name: "Party Player", Description: "Play 50 matches in a party", Emoji: "🎊", Category: CategorySpecial},
	{ID: "duo_master", Name: "Dynamic Duo", Description: "Play 20 matches with the same teammate", Emoji: "👥", Category: CategorySpecial},
	{ID: "team_spirit", Name: "Team Spirit", Description: "Win 10 matches with a full party of five", Emoji: "🤝", Category: CategorySpecial},
	{ID: "holiday_warrior", Name: "Holiday Warrior", Description: "Play on every public holiday in a year", Emoji: "🎄", Category: CategorySpecial},
	{ID: "dedication", Name: "Dedication", Description: "Play on every day of a month", Emoji: "🗿", Category: CategorySpecial},
	{ID: "all_day_grinder", Name: "Around the Clock", Description: "Play matches in all 24 hours of the day", Emoji: "🕛", Category: CategorySpecial},
}

// holiday_warrior stays in the catalog without a rule: there is no
// holiday calendar in the snapshot to check against.

func evalSpecial(stats *StatsSnapshot, _ *MmrSnapshot, now time.Time) *categoryResult {
	res := newCategoryResult()
	if stats == nil || len(stats.Matches) == 0 {
		return res
	}
	ts := now.Format(TimeLayout)

	var (
		earlyWins, nightWins, lunchWins int
		summerGames, winterGames        int
		weekendGames                    int
		partyGames, fullPartyWins       int
		loseStreak                      int
		newYear, comeback               bool
	)
	hoursPlayed := make(map[int]bool)
	duoGames := make(map[string]int)
	type weekCount struct{ total, wins int }
	weeks := make(map[string]*weekCount)
	monthDays := make(map[string]map[int]bool)

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
		h := t.Hour()
		if won && h >= 5 && h < 9 {
			earlyWins++
		}
		if won && (h >= 23 || h < 5) {
			nightWins++
		}
		if won && h >= 12 && h < 14 {
			lunchWins++
		}
		switch t.Month() {
		case time.June, time.July, time.August:
			summerGames++
		case time.December, time.January, time.February:
			winterGames++
		}
		if (t.Month() == time.December && t.Day() == 31 && h >= 22) ||
			(t.Month() == time.January && t.Day() == 1 && h < 2) {
			newYear = true
		}
		if won {
			if loseStreak >= 7 {
				comeback = true
			}
			loseStreak = 0
		} else {
			loseStreak++
		}
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendGames++
		}
		if len(m.Party) > 1 {
			partyGames++
			if won && len(m.Party) == 5 {
				fullPartyWins++
			}
			for _, mate := range m.Party {
				if mate == "" || mate == stats.PlayerID {
					continue
				}
				duoGames[mate]++
			}
		}
		hoursPlayed[h] = true
		year, week := t.ISOWeek()
		wk := fmt.Sprintf("%d-%02d", year, week)
		wc := weeks[wk]
		if wc == nil {
			wc = &weekCount{}
			weeks[wk] = wc
		}
		wc.total++
		if won {
			wc.wins++
		}
		month := t.Format("2006-01")
		if monthDays[month] == nil {
			monthDays[month] = make(map[int]bool)
		}
		monthDays[month][t.Day()] = true
	}

	if earlyWins >= 5 {
		res.earn("early_bird", ts)
	}
	if nightWins >= 5 {
		res.earn("night_hunter", ts)
	}
	if lunchWins >= 10 {
		res.earn("lunch_break", ts)
	}
	if summerGames >= 100 {
		res.earn("summer_grinder", ts)
	}
	if winterGames >= 100 {
		res.earn("winter_warrior", ts)
	}
	if newYear {
		res.earn("new_year_spirit", ts)
	}
	if comeback {
		res.earn("comeback_master", ts)
	}
	for _, wc := range weeks {
		if wc.total >= 10 && wc.wins == wc.total {
			res.earn("perfect_week", ts)
			break
		}
	}
	if weekendGames >= 20 {
		res.earn("weekend_marathon", ts)
	}
	if partyGames >= 50 {
		res.earn("party_player", ts)
	}
	for _, n := range duoGames {
		if n >= 20 {
			res.earn("duo_master", ts)
			break
		}
	}
	if fullPartyWins >= 10 {
		res.earn("team_spirit", ts)
	}
	for month, days := range monthDays {
		if len(days) == daysInMonth(month) {
			res.earn("dedication", ts)
			break
		}
	}
	if len(hoursPlayed) == 24 {
		res.earn("all_day_grinder", ts)
	}
	return res
}

// daysInMonth returns the calendar length of a "2006-01" keyed month.
func daysInMonth(key string) int {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return 0
	}
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

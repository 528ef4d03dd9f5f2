package achievements

import "time"

var mmrDefinitions = []Definition{
	{ID: "mmr_0", Name: "Calibrated", Description: "Record your first MMR", Emoji: "🎖️", Category: CategoryMMR, ProgressMax: 1},
	{ID: "mmr_500", Name: "Climbing Out", Description: "Reach 500 MMR", Emoji: "📈", Category: CategoryMMR, ProgressMax: 500},
	{ID: "mmr_1000", Name: "Four Digits", Description: "Reach 1000 MMR", Emoji: "📈", Category: CategoryMMR, ProgressMax: 1000},
	{ID: "mmr_2000", Name: "Crusader Country", Description: "Reach 2000 MMR", Emoji: "🛡️", Category: CategoryMMR, ProgressMax: 2000, Requires: "mmr_0"},
	{ID: "mmr_3000", Name: "Legend in the Making", Description: "Reach 3000 MMR", Emoji: "⚜️", Category: CategoryMMR, ProgressMax: 3000},
	{ID: "mmr_4000", Name: "Ancient Blood", Description: "Reach 4000 MMR", Emoji: "🗿", Category: CategoryMMR, ProgressMax: 4000},
	{ID: "mmr_5000", Name: "Divine Ascent", Description: "Reach 5000 MMR", Emoji: "✴️", Category: CategoryMMR, ProgressMax: 5000},
	{ID: "mmr_6000", Name: "Immortal Gates", Description: "Reach 6000 MMR", Emoji: "🔱", Category: CategoryMMR, ProgressMax: 6000},
	{ID: "mmr_7000", Name: "Top of the Ladder", Description: "Reach 7000 MMR", Emoji: "🏔️", Category: CategoryMMR, ProgressMax: 7000},
	{ID: "mmr_8000", Name: "Rarefied Air", Description: "Reach 8000 MMR", Emoji: "🚀", Category: CategoryMMR, ProgressMax: 8000},
	{ID: "mmr_9000", Name: "Over Nine Thousand", Description: "Reach 9000 MMR", Emoji: "💥", Category: CategoryMMR, ProgressMax: 9000},
	{ID: "mmr_10000", Name: "Peak Human", Description: "Reach 10000 MMR", Emoji: "🌌", Category: CategoryMMR, ProgressMax: 10000},
	{ID: "mmr_climb_100", Name: "On the Rise", Description: "Gain 100 MMR over a week", Emoji: "⬆️", Category: CategoryMMR, ProgressMax: 100},
	{ID: "mmr_climb_500", Name: "Breakout", Description: "Gain 500 MMR over a month", Emoji: "⬆️", Category: CategoryMMR, ProgressMax: 500},
	{ID: "mmr_climb_1000", Name: "Meteoric", Description: "Gain 1000 MMR over a season", Emoji: "☄️", Category: CategoryMMR, ProgressMax: 1000, Hidden: true},
	{ID: "mmr_stable_month", Name: "Steady Hands", Description: "Hold your MMR for a month", Emoji: "⚖️", Category: CategoryMMR},
	{ID: "mmr_stable_season", Name: "Unshakeable", Description: "Hold your MMR for a season", Emoji: "⚖️", Category: CategoryMMR},
	{ID: "mmr_stable_year", Name: "Monument", Description: "Hold your MMR for a year", Emoji: "🗽", Category: CategoryMMR},
}

var mmrLadder = []struct {
	id        string
	threshold int
}{
	{"mmr_500", 500},
	{"mmr_1000", 1000},
	{"mmr_2000", 2000},
	{"mmr_3000", 3000},
	{"mmr_4000", 4000},
	{"mmr_5000", 5000},
	{"mmr_6000", 6000},
	{"mmr_7000", 7000},
	{"mmr_8000", 8000},
	{"mmr_9000", 9000},
	{"mmr_10000", 10000},
}

// mmrClimbWindows maps climb thresholds to how many history entries
// back the baseline sits (7, 30 and 90 recorded values).
var mmrClimbWindows = []struct {
	id        string
	threshold int
	back      int
}{
	{"mmr_climb_100", 100, 6},
	{"mmr_climb_500", 500, 29},
	{"mmr_climb_1000", 1000, 89},
}

// The stability achievements (mmr_stable_*) stay in the catalog but
// have no rule yet: the history snapshot carries no per-entry
// timestamps, so holding periods cannot be measured from it.

func evalMMR(_ *StatsSnapshot, mmr *MmrSnapshot, now time.Time) *categoryResult {
	res := newCategoryResult()
	if mmr == nil {
		return res
	}
	ts := now.Format(TimeLayout)

	cur := mmr.CurrentMMR
	if cur > 0 {
		res.earn("mmr_0", ts)
		res.progress.set("mmr_0", 1)
	} else {
		res.progress.set("mmr_0", 0)
	}

	for _, step := range mmrLadder {
		if cur >= step.threshold {
			res.earn(step.id, ts)
		}
		res.progress.setClamped(step.id, cur, step.threshold)
	}

	for _, w := range mmrClimbWindows {
		base, ok := mmr.Baseline(w.back)
		if !ok {
			continue
		}
		gain := cur - base
		if gain < 0 {
			gain = 0
		}
		if gain >= w.threshold {
			res.earn(w.id, ts)
		}
		res.progress.setClamped(w.id, gain, w.threshold)
	}
	return res
}

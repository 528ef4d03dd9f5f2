package achievements

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

// buildMatches returns count matches most recent first, the first
// `wins` of them (chronologically) won, spread three per day on
// weekday afternoons.
func buildMatches(hero string, count, wins int, start time.Time) []MatchDetail {
	asc := make([]MatchDetail, 0, count)
	for i := 0; i < count; i++ {
		day := start.AddDate(0, 0, i/3)
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		t := time.Date(day.Year(), day.Month(), day.Day(), 15+i%3, 12, 0, 0, time.UTC)
		outcome := "lose"
		if i < wins {
			outcome = "win"
		}
		asc = append(asc, MatchDetail{Hero: hero, Outcome: outcome, PlayedAt: t.Format(TimeLayout)})
	}
	desc := make([]MatchDetail, 0, count)
	for i := len(asc) - 1; i >= 0; i-- {
		desc = append(desc, asc[i])
	}
	return desc
}

func TestEvaluateModeratelyActivePlayer(t *testing.T) {
	stats := &StatsSnapshot{
		PlayerID:   "player1",
		TotalGames: 150,
		TotalWins:  90,
		Heroes: []HeroSnapshot{
			{Hero: "Lion", Games: 25, Wins: 16, Role: "Support", Attribute: "int", Complexity: 1},
			{Hero: "Axe", Games: 20, Wins: 11, Role: "Initiator", Attribute: "str", Complexity: 1},
		},
		Matches: buildMatches("Lion", 150, 90, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)),
	}
	mmr := &MmrSnapshot{CurrentMMR: 2100, History: []int{2100, 2080, 2050}}

	result := evaluateAt(stats, mmr, testNow)

	mustEarn := []string{
		"first_match", "ten_matches", "fifty_matches", "hundred_matches",
		"first_win", "wins_50",
		"mmr_0", "mmr_500", "mmr_1000", "mmr_2000",
		"hero_first", "hero_mastery_10", "hero_winrate_60",
		"winrate_55",
	}
	for _, id := range mustEarn {
		if !result.Earned(id) {
			t.Errorf("expected %s to be earned", id)
		}
	}
	mustNotEarn := []string{
		"five_hundred_matches", "wins_100", "winrate_60",
		"mmr_3000", "hero_winrate_70", "hero_mastery_50",
	}
	for _, id := range mustNotEarn {
		if result.Earned(id) {
			t.Errorf("expected %s to stay locked", id)
		}
	}
}

func TestEvaluateNilSnapshots(t *testing.T) {
	result := evaluateAt(nil, nil, testNow)
	if ids := result.EarnedIDs(); len(ids) != 0 {
		t.Errorf("expected nothing earned, got %v", ids)
	}
}

func TestEvaluateEmptySnapshots(t *testing.T) {
	result := evaluateAt(&StatsSnapshot{}, &MmrSnapshot{}, testNow)
	if ids := result.EarnedIDs(); len(ids) != 0 {
		t.Errorf("expected nothing earned, got %v", ids)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	stats := &StatsSnapshot{
		TotalGames: 120,
		TotalWins:  70,
		Heroes:     []HeroSnapshot{{Hero: "Pudge", Games: 60, Wins: 35}},
		Matches:    buildMatches("Pudge", 120, 70, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
	}
	mmr := &MmrSnapshot{CurrentMMR: 3200, History: []int{3200, 3100, 3000}}

	first := evaluateAt(stats, mmr, testNow).EarnedIDs()
	for i := 0; i < 5; i++ {
		again := evaluateAt(stats, mmr, testNow).EarnedIDs()
		if len(again) != len(first) {
			t.Fatalf("run %d earned %d ids, first run earned %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d differs at %d: %s vs %s", i, j, first[j], again[j])
			}
		}
	}
}

func TestPrerequisiteFiltering(t *testing.T) {
	// 21 games all on one Wednesday: the marathon condition holds but
	// weekend_warrior (its prerequisite) does not.
	day := time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)
	matches := make([]MatchDetail, 0, 21)
	for i := 0; i < 21; i++ {
		matches = append(matches, MatchDetail{
			Hero:     "Sniper",
			Outcome:  "lose",
			PlayedAt: day.Add(time.Duration(i) * 30 * time.Minute).Format(TimeLayout),
		})
	}
	stats := &StatsSnapshot{TotalGames: 21, TotalWins: 0, Matches: matches,
		Heroes: []HeroSnapshot{{Hero: "Sniper", Games: 21}}}

	result := evaluateAt(stats, nil, testNow)
	if !result.Earned("daily_player") {
		t.Error("expected daily_player to be earned")
	}
	if result.Earned("weekend_warrior") {
		t.Error("weekend_warrior should not be earned on a weekday grind")
	}
	if result.Earned("marathon_runner") {
		t.Error("marathon_runner must be filtered without weekend_warrior")
	}
}

func TestMalformedTimestampsSkipped(t *testing.T) {
	matches := buildMatches("Lina", 10, 5, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	matches[3].PlayedAt = "not a timestamp"
	matches[7].PlayedAt = ""
	stats := &StatsSnapshot{TotalGames: 10, TotalWins: 5, Matches: matches,
		Heroes: []HeroSnapshot{{Hero: "Lina", Games: 10, Wins: 5}}}

	result := evaluateAt(stats, nil, testNow)
	skipped := result.Skipped(CategoryMatches)
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped entries, got %d", len(skipped))
	}
	if skipped[0].Index != 3 || skipped[1].Index != 7 {
		t.Errorf("unexpected skipped indexes: %+v", skipped)
	}
	if !result.Earned("ten_matches") {
		t.Error("ladder achievements should still count skipped matches via totals")
	}
}

func TestWinrateFloorBoundary(t *testing.T) {
	at := func(games, wins int) *EvaluationResult {
		return evaluateAt(&StatsSnapshot{TotalGames: games, TotalWins: wins}, nil, testNow)
	}
	if !at(300, 195).Earned("winrate_65") {
		t.Error("65%% over exactly 300 games should earn winrate_65")
	}
	if at(299, 195).Earned("winrate_65") {
		t.Error("299 games is below the winrate_65 floor")
	}
	if !at(100, 55).Earned("winrate_55") {
		t.Error("55%% over exactly 100 games should earn winrate_55")
	}
	if at(99, 55).Earned("winrate_55") {
		t.Error("99 games is below the winrate_55 floor")
	}
}

func TestMmrClimbClampsShortHistory(t *testing.T) {
	result := evaluateAt(nil, &MmrSnapshot{CurrentMMR: 2100, History: []int{2100, 1900}}, testNow)
	if !result.Earned("mmr_climb_100") {
		t.Error("200 gain over a short history should earn mmr_climb_100")
	}
	if result.Earned("mmr_climb_500") {
		t.Error("200 gain should not earn mmr_climb_500")
	}
	if p, ok := result.ProgressFor("mmr_climb_500"); !ok || p != 200 {
		t.Errorf("expected climb progress 200, got %d (%v)", p, ok)
	}
}

func TestHeroWinrateTierGating(t *testing.T) {
	stats := &StatsSnapshot{
		TotalGames: 25, TotalWins: 16,
		Heroes: []HeroSnapshot{{Hero: "Invoker", Games: 25, Wins: 16}},
	}
	result := evaluateAt(stats, nil, testNow)
	if !result.Earned("hero_winrate_60") {
		t.Error("64%% over 25 games should earn hero_winrate_60")
	}
	if result.Earned("hero_winrate_70") {
		t.Error("25 games is below the hero_winrate_70 sample floor")
	}
}

func TestEarnedCarryUnlockTimestamps(t *testing.T) {
	stats := &StatsSnapshot{
		TotalGames: 60, TotalWins: 40,
		Heroes:  []HeroSnapshot{{Hero: "Tiny", Games: 60, Wins: 40}},
		Matches: buildMatches("Tiny", 60, 40, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
	}
	result := evaluateAt(stats, &MmrSnapshot{CurrentMMR: 1500, History: []int{1500}}, testNow)
	for _, id := range result.EarnedIDs() {
		ts, ok := result.UnlockedAt(id)
		if !ok || ts == "" {
			t.Errorf("earned %s has no unlock timestamp", id)
			continue
		}
		if _, err := time.Parse(TimeLayout, ts); err != nil {
			t.Errorf("unlock timestamp for %s is malformed: %q", id, ts)
		}
	}
}

func TestRulePanicIsIsolated(t *testing.T) {
	for i := range categoryRules {
		if categoryRules[i].category == CategorySpecial {
			orig := categoryRules[i].rule
			defer func() { categoryRules[i].rule = orig }()
			categoryRules[i].rule = func(*StatsSnapshot, *MmrSnapshot, time.Time) *categoryResult {
				panic("boom")
			}
		}
	}

	stats := &StatsSnapshot{TotalGames: 10, TotalWins: 6,
		Matches: buildMatches("Mars", 10, 6, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC))}
	result := evaluateAt(stats, nil, testNow)
	if !result.Earned("ten_matches") {
		t.Error("other categories must still evaluate when one rule panics")
	}
	for _, id := range result.EarnedIDs() {
		if strings.HasPrefix(id, "night_hunter") {
			t.Errorf("panicked category produced %s", id)
		}
	}
}

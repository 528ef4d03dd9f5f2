package achievements

import (
	"testing"
	"time"
)

func descending(asc []MatchDetail) []MatchDetail {
	out := make([]MatchDetail, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		out = append(out, asc[i])
	}
	return out
}

func TestComebackRules(t *testing.T) {
	// Seven losses then a win, chronologically.
	base := time.Date(2026, 2, 2, 12, 30, 0, 0, time.UTC)
	var asc []MatchDetail
	for i := 0; i < 7; i++ {
		asc = append(asc, MatchDetail{Hero: "Techies", Outcome: "lose",
			PlayedAt: base.Add(time.Duration(i) * time.Hour).Format(TimeLayout)})
	}
	asc = append(asc, MatchDetail{Hero: "Techies", Outcome: "win",
		PlayedAt: base.Add(8 * time.Hour).Format(TimeLayout)})

	stats := &StatsSnapshot{TotalGames: 8, TotalWins: 1, Matches: descending(asc)}
	result := evaluateAt(stats, nil, testNow)
	if !result.Earned("comeback_king") {
		t.Error("win after a 7-loss streak should earn comeback_king")
	}
	if !result.Earned("comeback_master") {
		t.Error("win after a 7-loss streak should earn comeback_master")
	}

	// Five losses then a win clears only the lower tier.
	stats = &StatsSnapshot{TotalGames: 6, TotalWins: 1, Matches: descending(append(asc[2:7:7], asc[7]))}
	result = evaluateAt(stats, nil, testNow)
	if !result.Earned("comeback_king") {
		t.Error("win after a 5-loss streak should earn comeback_king")
	}
	if result.Earned("comeback_master") {
		t.Error("5-loss streak is below the comeback_master threshold")
	}
}

func TestNewYearWindow(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"late new years eve", time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC), true},
		{"just after midnight", time.Date(2026, 1, 1, 1, 15, 0, 0, time.UTC), true},
		{"new years eve afternoon", time.Date(2025, 12, 31, 18, 0, 0, 0, time.UTC), false},
		{"later january first", time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		stats := &StatsSnapshot{TotalGames: 1, TotalWins: 0, Matches: []MatchDetail{
			{Hero: "Tusk", Outcome: "lose", PlayedAt: tc.at.Format(TimeLayout)},
		}}
		result := evaluateAt(stats, nil, testNow)
		if result.Earned("new_year_spirit") != tc.want {
			t.Errorf("%s: new_year_spirit earned=%v, want %v", tc.name, result.Earned("new_year_spirit"), tc.want)
		}
	}
}

func TestDedicationFullMonth(t *testing.T) {
	var asc []MatchDetail
	for day := 1; day <= 28; day++ {
		asc = append(asc, MatchDetail{Hero: "Io", Outcome: "win",
			PlayedAt: time.Date(2026, 2, day, 20, 0, 0, 0, time.UTC).Format(TimeLayout)})
	}
	stats := &StatsSnapshot{TotalGames: 28, TotalWins: 28, Matches: descending(asc)}
	if !evaluateAt(stats, nil, testNow).Earned("dedication") {
		t.Error("playing every day of February should earn dedication")
	}

	stats.Matches = stats.Matches[:27]
	stats.TotalGames, stats.TotalWins = 27, 27
	if evaluateAt(stats, nil, testNow).Earned("dedication") {
		t.Error("missing one day of the month should not earn dedication")
	}
}

func TestPartyRules(t *testing.T) {
	base := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)
	var asc []MatchDetail
	for i := 0; i < 20; i++ {
		party := []string{"player1", "buddy"}
		if i < 10 {
			party = []string{"player1", "buddy", "c", "d", "e"}
		}
		asc = append(asc, MatchDetail{Hero: "Chen", Outcome: "win", Party: party,
			PlayedAt: base.AddDate(0, 0, i).Format(TimeLayout)})
	}
	stats := &StatsSnapshot{PlayerID: "player1", TotalGames: 20, TotalWins: 20, Matches: descending(asc)}
	result := evaluateAt(stats, nil, testNow)
	if !result.Earned("duo_master") {
		t.Error("20 games with the same teammate should earn duo_master")
	}
	if !result.Earned("team_spirit") {
		t.Error("10 full-party wins should earn team_spirit")
	}
	if result.Earned("party_player") {
		t.Error("party_player needs 50 party games")
	}
}

func TestAllDayGrinder(t *testing.T) {
	var asc []MatchDetail
	for h := 0; h < 24; h++ {
		asc = append(asc, MatchDetail{Hero: "Zeus", Outcome: "lose",
			PlayedAt: time.Date(2026, 3, 1+h/8, h, 0, 0, 0, time.UTC).Format(TimeLayout)})
	}
	stats := &StatsSnapshot{TotalGames: 24, TotalWins: 0, Matches: descending(asc)}
	if !evaluateAt(stats, nil, testNow).Earned("all_day_grinder") {
		t.Error("playing in all 24 hours should earn all_day_grinder")
	}
}

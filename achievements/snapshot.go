package achievements

// TimeLayout is the timestamp format used throughout snapshots, both
// for match play times and for unlock timestamps in results.
const TimeLayout = "2006-01-02 15:04:05"

// StatsSnapshot is the read-only view of a player's recorded history
// that the evaluation engine consumes. Callers assemble it from
// storage; the engine never queries anything itself.
type StatsSnapshot struct {
	// PlayerID identifies the player whose history this is, so party
	// rules can tell teammates apart from the player themselves.
	PlayerID string

	TotalGames int
	TotalWins  int

	// Heroes is the per-hero aggregate, sorted by games played
	// descending.
	Heroes []HeroSnapshot

	// Matches is the full match list, most recent first. Individual
	// entries may carry missing or malformed timestamps; rules skip
	// those entries and report them rather than failing.
	Matches []MatchDetail
}

// HeroSnapshot aggregates one hero's record together with the hero's
// catalog metadata used by diversity rules.
type HeroSnapshot struct {
	Hero  string
	Games int
	Wins  int

	Role       string
	Attribute  string
	Complexity int
}

// MatchDetail is a single recorded match.
type MatchDetail struct {
	Hero    string
	Outcome string // "win" or "lose"

	// PlayedAt is the play timestamp in TimeLayout, or empty when the
	// record predates timestamp capture.
	PlayedAt string

	// Party lists the teammate names recorded with the match, possibly
	// including the player themselves.
	Party []string
}

// Won reports whether the match was a win.
func (m MatchDetail) Won() bool { return m.Outcome == "win" }

// MmrSnapshot is the read-only MMR view consumed by the MMR rules.
type MmrSnapshot struct {
	CurrentMMR int

	// History holds recorded MMR values, most recent first, capped at
	// 90 entries by the caller.
	History []int
}

// Baseline returns the recorded MMR from `back` entries ago, clamping
// to the oldest sample when the history is shorter than that.
func (m MmrSnapshot) Baseline(back int) (int, bool) {
	if len(m.History) == 0 {
		return 0, false
	}
	if back >= len(m.History) {
		back = len(m.History) - 1
	}
	return m.History[back], true
}

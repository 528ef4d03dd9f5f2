package achievements

import (
	"log"
	"sort"
	"time"
)

type ruleFunc func(stats *StatsSnapshot, mmr *MmrSnapshot, now time.Time) *categoryResult

// categoryRules is the closed dispatch table: one rule per category.
// Adding an achievement means extending a category's definitions and
// its rule, never registering new evaluators at runtime.
var categoryRules = []struct {
	category Category
	rule     ruleFunc
}{
	{CategoryMatches, evalMatches},
	{CategoryMMR, evalMMR},
	{CategoryHeroes, evalHeroes},
	{CategoryWinrate, evalWinrate},
	{CategorySpecial, evalSpecial},
}

// EvaluationResult is the outcome of one full evaluation pass.
type EvaluationResult struct {
	earned   map[string]bool
	progress map[Category]*Progress
	skipped  map[Category][]SkippedItem
}

// Earned reports whether the achievement was earned in this pass.
func (r *EvaluationResult) Earned(id string) bool {
	return r.earned[id]
}

// EarnedIDs returns all earned achievement ids, sorted.
func (r *EvaluationResult) EarnedIDs() []string {
	ids := make([]string, 0, len(r.earned))
	for id := range r.earned {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ProgressFor returns the recorded progress counter for an
// achievement, or false when its rule recorded none.
func (r *EvaluationResult) ProgressFor(id string) (int, bool) {
	def, ok := Load().Get(id)
	if !ok {
		return 0, false
	}
	p := r.progress[def.Category]
	if p == nil {
		return 0, false
	}
	v, ok := p.Values[id]
	return v, ok
}

// UnlockedAt returns the unlock timestamp recorded for an earned
// achievement.
func (r *EvaluationResult) UnlockedAt(id string) (string, bool) {
	def, ok := Load().Get(id)
	if !ok {
		return "", false
	}
	p := r.progress[def.Category]
	if p == nil {
		return "", false
	}
	ts, ok := p.UnlockedAt[id]
	return ts, ok
}

// Skipped returns the snapshot entries a category's rule could not
// use, with the index into the snapshot slice and a reason.
func (r *EvaluationResult) Skipped(cat Category) []SkippedItem {
	return r.skipped[cat]
}

// Evaluate runs every category rule over the snapshots and returns the
// combined result. Evaluation is deterministic for a given pair of
// snapshots apart from unlock timestamps, which are stamped with the
// current time.
func Evaluate(stats *StatsSnapshot, mmr *MmrSnapshot) *EvaluationResult {
	return evaluateAt(stats, mmr, time.Now())
}

func evaluateAt(stats *StatsSnapshot, mmr *MmrSnapshot, now time.Time) *EvaluationResult {
	result := &EvaluationResult{
		earned:   make(map[string]bool),
		progress: make(map[Category]*Progress),
		skipped:  make(map[Category][]SkippedItem),
	}
	for _, entry := range categoryRules {
		res := runRule(entry.category, entry.rule, stats, mmr, now)
		for _, id := range res.earned {
			result.earned[id] = true
		}
		result.progress[entry.category] = res.progress
		if len(res.skipped) > 0 {
			result.skipped[entry.category] = res.skipped
		}
	}

	// An achievement with a prerequisite only counts when the
	// prerequisite was earned in the same pass. The check runs against
	// the unfiltered union so the outcome does not depend on map order.
	catalog := Load()
	union := make(map[string]bool, len(result.earned))
	for id := range result.earned {
		union[id] = true
	}
	for id := range union {
		def, ok := catalog.Get(id)
		if !ok || def.Requires == "" {
			continue
		}
		if !union[def.Requires] {
			delete(result.earned, id)
		}
	}
	return result
}

// runRule executes one category rule, converting a panic into an empty
// result so a single broken rule cannot take down the whole pass.
func runRule(cat Category, rule ruleFunc, stats *StatsSnapshot, mmr *MmrSnapshot, now time.Time) (res *categoryResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("achievements: %s rule panicked: %v", cat, r)
			res = newCategoryResult()
		}
	}()
	return rule(stats, mmr, now)
}

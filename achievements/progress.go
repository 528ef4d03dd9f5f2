package achievements

// Progress accumulates per-achievement progress counters and unlock
// timestamps produced by one category rule.
type Progress struct {
	Values     map[string]int
	UnlockedAt map[string]string
}

func newProgress() *Progress {
	return &Progress{
		Values:     make(map[string]int),
		UnlockedAt: make(map[string]string),
	}
}

func (p *Progress) set(id string, value int) {
	p.Values[id] = value
}

// setClamped records progress capped at max.
func (p *Progress) setClamped(id string, value, max int) {
	if value > max {
		value = max
	}
	p.Values[id] = value
}

// SkippedItem reports one snapshot entry a rule could not use.
type SkippedItem struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// categoryResult is what a single category rule returns.
type categoryResult struct {
	earned   []string
	progress *Progress
	skipped  []SkippedItem
}

func newCategoryResult() *categoryResult {
	return &categoryResult{progress: newProgress()}
}

func (r *categoryResult) earn(id, unlockedAt string) {
	r.earned = append(r.earned, id)
	if unlockedAt != "" {
		r.progress.UnlockedAt[id] = unlockedAt
	}
}

func (r *categoryResult) skip(index int, reason string) {
	r.skipped = append(r.skipped, SkippedItem{Index: index, Reason: reason})
}

package achievements

import (
	"fmt"
	"strings"
)

// PageSize is how many rows (category headers included) one formatted
// page holds.
const PageSize = 8

// ListView is the formatter's input: which achievements are earned
// (with their unlock timestamps) and the current progress counters for
// the rest. Callers typically build it from an EvaluationResult and
// overlay persisted unlock timestamps from storage.
type ListView struct {
	UnlockedAt map[string]string
	Progress   map[string]int
}

// ViewFrom builds a ListView straight from an evaluation pass.
func ViewFrom(result *EvaluationResult) *ListView {
	v := &ListView{
		UnlockedAt: make(map[string]string),
		Progress:   make(map[string]int),
	}
	for _, id := range result.EarnedIDs() {
		ts, _ := result.UnlockedAt(id)
		v.UnlockedAt[id] = ts
	}
	for _, cat := range Categories {
		for _, d := range Load().ByCategory(cat) {
			if p, ok := result.ProgressFor(d.ID); ok {
				v.Progress[d.ID] = p
			}
		}
	}
	return v
}

func (v *ListView) earned(id string) bool {
	_, ok := v.UnlockedAt[id]
	return ok
}

type pageRow struct {
	header   bool
	category Category
	def      Definition
}

// FormatPage renders one page of the achievement list and returns the
// page text together with the total page count. Pages are 1-based and
// clamped into range. showLocked includes unearned achievements
// (hidden ones too) with their progress; category filters to a single
// category, "" or "all" shows everything.
func FormatPage(view *ListView, page int, showLocked bool, category string) (string, int) {
	catalog := Load()

	var cats []Category
	title := "🏆 Achievements"
	filter := strings.ToLower(strings.TrimSpace(category))
	if filter == "" || filter == "all" {
		cats = Categories
	} else {
		for _, c := range Categories {
			if strings.ToLower(string(c)) == filter {
				cats = []Category{c}
				title = fmt.Sprintf("🏆 Achievements - %s %s", c.Emoji(), c)
				break
			}
		}
	}

	var rows []pageRow
	earnedCount, totalCount := 0, 0
	for _, cat := range cats {
		var catRows []pageRow
		for _, d := range catalog.ByCategory(cat) {
			totalCount++
			if view.earned(d.ID) {
				earnedCount++
			} else if !showLocked {
				continue
			}
			catRows = append(catRows, pageRow{category: cat, def: d})
		}
		if len(catRows) > 0 {
			rows = append(rows, pageRow{header: true, category: cat})
			rows = append(rows, catRows...)
		}
	}

	totalPages := (len(rows) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":\n")
	for _, row := range rows[start:end] {
		if row.header {
			fmt.Fprintf(&b, "\n%s %s:\n", row.category.Emoji(), row.category)
			continue
		}
		d := row.def
		if view.earned(d.ID) {
			fmt.Fprintf(&b, "%s %s", d.Emoji, d.Name)
			if ts := view.UnlockedAt[d.ID]; ts != "" {
				fmt.Fprintf(&b, " (unlocked %s)", ts)
			}
			b.WriteString("\n")
		} else {
			fmt.Fprintf(&b, "🔒 %s%s\n", d.Name, d.FormatProgress(view.Progress[d.ID]))
		}
		fmt.Fprintf(&b, "└ %s\n", d.Description)
	}
	fmt.Fprintf(&b, "\n✨ Earned %d of %d achievements", earnedCount, totalCount)
	if totalPages > 1 {
		fmt.Fprintf(&b, " · page %d/%d", page, totalPages)
	}
	return b.String(), totalPages
}

// Package achievements recomputes a player's earned achievements from
// immutable stats/MMR snapshots. The catalog is static, evaluation is a
// pure function of its inputs, and nothing in this package touches
// storage or renders user-facing pages beyond the listing formatter.
package achievements

import "fmt"

// Category is one of the five fixed achievement groupings.
type Category string

const (
	CategoryMatches Category = "Matches"
	CategoryMMR     Category = "MMR"
	CategoryHeroes  Category = "Heroes"
	CategoryWinrate Category = "Winrate"
	CategorySpecial Category = "Special"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryMatches,
	CategoryMMR,
	CategoryHeroes,
	CategoryWinrate,
	CategorySpecial,
}

var categoryEmojis = map[Category]string{
	CategoryMatches: "🎮",
	CategoryMMR:     "📈",
	CategoryHeroes:  "⚔️",
	CategoryWinrate: "🎯",
	CategorySpecial: "✨",
}

// Emoji returns the category's display emoji.
func (c Category) Emoji() string {
	if e, ok := categoryEmojis[c]; ok {
		return e
	}
	return "📋"
}

// Definition is one immutable catalog entry.
//
// ProgressMax of 0 means the achievement is binary (earned or not, no
// progress display). Requires, when set, names another achievement that
// must be earned in the same evaluation pass for this one to count.
type Definition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Emoji       string   `json:"emoji"`
	Category    Category `json:"category"`
	ProgressMax int      `json:"progress_max,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
	Requires    string   `json:"requires,omitempty"`
}

// FormatProgress renders " (current/max)" for progress-bearing
// achievements, or "" for binary ones.
func (d Definition) FormatProgress(current int) string {
	if d.ProgressMax == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d/%d)", current, d.ProgressMax)
}

package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dota-journal/match-journal/backend/database"
	"github.com/dota-journal/match-journal/backend/models"
)

// MatchRepository handles match and per-hero aggregate database operations
type MatchRepository struct{}

// NewMatchRepository creates a new match repository
func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

// Save inserts a match and updates the per-hero aggregate in a single
// transaction, so a failed write never leaves the aggregate out of
// sync with the match list
func (r *MatchRepository) Save(match *models.Match) error {
	return database.WithTransaction(func(tx *sql.Tx) error {
		if match.PlayedAt.IsZero() {
			match.PlayedAt = time.Now().UTC()
		}

		var games, wins int
		err := tx.QueryRow(`
			SELECT games, wins FROM hero_stats WHERE user_id = ? AND hero = ?`,
			match.UserID, match.Hero,
		).Scan(&games, &wins)
		switch {
		case err == sql.ErrNoRows:
			games, wins = 0, 0
		case err != nil:
			return fmt.Errorf("failed to read hero stats: %w", err)
		}

		games++
		if match.Outcome == models.OutcomeWin {
			wins++
		}
		// Winrate on this hero including the match being recorded
		match.HeroWinrate = float64(wins) / float64(games) * 100

		result, err := tx.Exec(`
			INSERT INTO matches (user_id, match_id, hero, outcome, hero_winrate, party, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			match.UserID, match.MatchID, match.Hero, match.Outcome, match.HeroWinrate,
			strings.Join(match.Party, ","), match.PlayedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		match.ID = uint64(id)
		upsert := `
			INSERT INTO hero_stats (user_id, hero, games, wins, last_played)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id, hero) DO UPDATE SET games = ?, wins = ?, last_played = ?`
		if database.Type() == database.DBTypeMySQL {
			upsert = `
				INSERT INTO hero_stats (user_id, hero, games, wins, last_played)
				VALUES (?, ?, ?, ?, ?)
				ON DUPLICATE KEY UPDATE games = ?, wins = ?, last_played = ?`
		}
		_, err = tx.Exec(upsert,
			match.UserID, match.Hero, games, wins, match.PlayedAt,
			games, wins, match.PlayedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update hero stats: %w", err)
		}
		return nil
	})
}

// GetByUser returns a user's matches, most recent first. A limit of 0
// returns all of them.
func (r *MatchRepository) GetByUser(userID uint64, limit int) ([]models.Match, error) {
	query := `
		SELECT id, user_id, match_id, hero, outcome, hero_winrate, party, played_at
		FROM matches WHERE user_id = ? ORDER BY played_at DESC, id DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetByUserAndHero returns a user's matches on one hero, most recent
// first. A limit of 0 returns all of them.
func (r *MatchRepository) GetByUserAndHero(userID uint64, hero string, limit int) ([]models.Match, error) {
	query := `
		SELECT id, user_id, match_id, hero, outcome, hero_winrate, party, played_at
		FROM matches WHERE user_id = ? AND hero = ? ORDER BY played_at DESC, id DESC`
	args := []interface{}{userID, hero}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get hero matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetByUserSince returns a user's matches played at or after the given
// time, most recent first
func (r *MatchRepository) GetByUserSince(userID uint64, since time.Time) ([]models.Match, error) {
	rows, err := database.DB.Query(`
		SELECT id, user_id, match_id, hero, outcome, hero_winrate, party, played_at
		FROM matches WHERE user_id = ? AND played_at >= ? ORDER BY played_at DESC, id DESC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]models.Match, error) {
	var matches []models.Match
	for rows.Next() {
		var m models.Match
		var party string
		if err := rows.Scan(&m.ID, &m.UserID, &m.MatchID, &m.Hero, &m.Outcome,
			&m.HeroWinrate, &party, &m.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if party != "" {
			m.Party = strings.Split(party, ",")
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}

// CountByUser returns total games and wins for a user
func (r *MatchRepository) CountByUser(userID uint64) (games, wins int, err error) {
	err = database.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0)
		FROM matches WHERE user_id = ?`, userID,
	).Scan(&games, &wins)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return games, wins, nil
}

// GetHeroStats returns a user's per-hero aggregates sorted by games
// played descending
func (r *MatchRepository) GetHeroStats(userID uint64) ([]models.HeroStat, error) {
	rows, err := database.DB.Query(`
		SELECT id, user_id, hero, games, wins, last_played
		FROM hero_stats WHERE user_id = ? ORDER BY games DESC, hero ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hero stats: %w", err)
	}
	defer rows.Close()

	var stats []models.HeroStat
	for rows.Next() {
		var s models.HeroStat
		if err := rows.Scan(&s.ID, &s.UserID, &s.Hero, &s.Games, &s.Wins, &s.LastPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan hero stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hero stats: %w", err)
	}
	return stats, nil
}

// GetHeroStat returns a single hero aggregate for a user, or nil when
// the hero was never played
func (r *MatchRepository) GetHeroStat(userID uint64, hero string) (*models.HeroStat, error) {
	s := &models.HeroStat{}
	err := database.DB.QueryRow(`
		SELECT id, user_id, hero, games, wins, last_played
		FROM hero_stats WHERE user_id = ? AND hero = ?`, userID, hero,
	).Scan(&s.ID, &s.UserID, &s.Hero, &s.Games, &s.Wins, &s.LastPlayed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hero stat: %w", err)
	}
	return s, nil
}

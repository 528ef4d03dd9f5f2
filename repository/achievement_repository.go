package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dota-journal/match-journal/backend/database"
)

// EarnedAchievement is one row of a user's achievement ledger
type EarnedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// AchievementRepository handles the earned-achievement ledger
type AchievementRepository struct{}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository() *AchievementRepository {
	return &AchievementRepository{}
}

// GetEarned returns all achievements the user has unlocked, keyed by
// achievement id
func (r *AchievementRepository) GetEarned(userID uint64) (map[string]time.Time, error) {
	rows, err := database.DB.Query(`
		SELECT achievement_id, unlocked_at FROM achievements WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get earned achievements: %w", err)
	}
	defer rows.Close()

	earned := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var unlockedAt time.Time
		if err := rows.Scan(&id, &unlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		earned[id] = unlockedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate achievements: %w", err)
	}
	return earned, nil
}

// SaveNew records newly earned achievements in one transaction. The
// unique (user_id, achievement_id) constraint makes re-recording an
// already earned achievement a no-op, so the ledger never loses the
// original unlock time.
func (r *AchievementRepository) SaveNew(userID uint64, earned []EarnedAchievement) error {
	if len(earned) == 0 {
		return nil
	}
	query := `
		INSERT INTO achievements (user_id, achievement_id, unlocked_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`
	if database.Type() == database.DBTypeMySQL {
		query = `
			INSERT IGNORE INTO achievements (user_id, achievement_id, unlocked_at)
			VALUES (?, ?, ?)`
	}
	return database.WithTransaction(func(tx *sql.Tx) error {
		for _, e := range earned {
			unlockedAt := e.UnlockedAt
			if unlockedAt.IsZero() {
				unlockedAt = time.Now().UTC()
			}
			if _, err := tx.Exec(query, userID, e.AchievementID, unlockedAt); err != nil {
				return fmt.Errorf("failed to save achievement %s: %w", e.AchievementID, err)
			}
		}
		return nil
	})
}

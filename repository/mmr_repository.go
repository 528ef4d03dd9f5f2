package repository

import (
	"fmt"
	"time"

	"github.com/dota-journal/match-journal/backend/database"
	"github.com/dota-journal/match-journal/backend/models"
)

// MMRRepository handles MMR history database operations
type MMRRepository struct{}

// NewMMRRepository creates a new MMR repository
func NewMMRRepository() *MMRRepository {
	return &MMRRepository{}
}

// Append records a new MMR value for the user
func (r *MMRRepository) Append(userID uint64, mmr int) error {
	return database.WithRetry(func() error {
		_, err := database.DB.Exec(`
			INSERT INTO mmr_history (user_id, mmr, recorded_at) VALUES (?, ?, ?)`,
			userID, mmr, time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to append mmr history: %w", err)
		}
		return nil
	})
}

// GetHistory returns the user's recorded MMR values, most recent
// first, capped at limit entries
func (r *MMRRepository) GetHistory(userID uint64, limit int) ([]models.MMRHistoryEntry, error) {
	rows, err := database.DB.Query(`
		SELECT mmr, recorded_at FROM mmr_history
		WHERE user_id = ? ORDER BY recorded_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get mmr history: %w", err)
	}
	defer rows.Close()

	var history []models.MMRHistoryEntry
	for rows.Next() {
		var e models.MMRHistoryEntry
		if err := rows.Scan(&e.MMR, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mmr history: %w", err)
		}
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mmr history: %w", err)
	}
	return history, nil
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/dota-journal/match-journal/backend/database"
	"github.com/dota-journal/match-journal/backend/models"
)

// HeroRepository handles the hero catalog database operations
type HeroRepository struct{}

// NewHeroRepository creates a new hero repository
func NewHeroRepository() *HeroRepository {
	return &HeroRepository{}
}

// GetAll returns the hero catalog sorted by localized name
func (r *HeroRepository) GetAll() ([]models.Hero, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, localized_name, primary_attr, attack_type, roles, complexity
		FROM heroes ORDER BY localized_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get heroes: %w", err)
	}
	defer rows.Close()

	var heroes []models.Hero
	for rows.Next() {
		var h models.Hero
		if err := rows.Scan(&h.ID, &h.Name, &h.LocalizedName, &h.PrimaryAttr,
			&h.AttackType, &h.Roles, &h.Complexity); err != nil {
			return nil, fmt.Errorf("failed to scan hero: %w", err)
		}
		heroes = append(heroes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate heroes: %w", err)
	}
	return heroes, nil
}

// GetByName finds a hero by localized name, or nil when unknown
func (r *HeroRepository) GetByName(name string) (*models.Hero, error) {
	h := &models.Hero{}
	err := database.DB.QueryRow(`
		SELECT id, name, localized_name, primary_attr, attack_type, roles, complexity
		FROM heroes WHERE localized_name = ? OR name = ?`, name, name,
	).Scan(&h.ID, &h.Name, &h.LocalizedName, &h.PrimaryAttr, &h.AttackType, &h.Roles, &h.Complexity)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hero by name: %w", err)
	}
	return h, nil
}

// ReplaceAll swaps the whole hero catalog in one transaction, so
// readers never observe a half-imported catalog
func (r *HeroRepository) ReplaceAll(heroes []models.Hero) error {
	if len(heroes) == 0 {
		return fmt.Errorf("refusing to replace hero catalog with an empty set")
	}
	return database.WithTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM heroes`); err != nil {
			return fmt.Errorf("failed to clear heroes: %w", err)
		}
		for _, h := range heroes {
			// A zero ID means "not assigned"; binding it literally
			// would collide on the primary key, so let the database
			// pick one
			id := sql.NullInt64{Int64: int64(h.ID), Valid: h.ID != 0}
			_, err := tx.Exec(`
				INSERT INTO heroes (id, name, localized_name, primary_attr, attack_type, roles, complexity)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, h.Name, h.LocalizedName, h.PrimaryAttr, h.AttackType, h.Roles, h.Complexity,
			)
			if err != nil {
				return fmt.Errorf("failed to insert hero %s: %w", h.Name, err)
			}
		}
		return nil
	})
}

// Count returns the number of heroes in the catalog
func (r *HeroRepository) Count() (int, error) {
	var n int
	if err := database.DB.QueryRow(`SELECT COUNT(*) FROM heroes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count heroes: %w", err)
	}
	return n, nil
}

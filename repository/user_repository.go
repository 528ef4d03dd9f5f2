package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dota-journal/match-journal/backend/database"
	"github.com/dota-journal/match-journal/backend/models"
)

// UserRepository handles user database operations
type UserRepository struct{}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create creates a new user in the database (with retry for SQLITE_BUSY)
func (r *UserRepository) Create(user *models.User) error {
	return database.WithRetry(func() error {
		result, err := database.DB.Exec(`
			INSERT INTO users (steam_id, username, avatar_url, avatar_small, profile_url, mmr, last_mmr_update)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			user.SteamID, user.Username, user.AvatarURL, user.AvatarSmall, user.ProfileURL, user.MMR, user.LastMMRUpdate,
		)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}

		user.ID = uint64(id)
		return nil
	})
}

// GetByID finds a user by ID
func (r *UserRepository) GetByID(id uint64) (*models.User, error) {
	user := &models.User{}
	err := database.DB.QueryRow(`
		SELECT id, steam_id, username, avatar_url, avatar_small, profile_url, mmr, last_mmr_update, created_at, updated_at
		FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.SteamID, &user.Username, &user.AvatarURL, &user.AvatarSmall, &user.ProfileURL,
		&user.MMR, &user.LastMMRUpdate, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetBySteamID finds a user by Steam ID
func (r *UserRepository) GetBySteamID(steamID string) (*models.User, error) {
	user := &models.User{}
	err := database.DB.QueryRow(`
		SELECT id, steam_id, username, avatar_url, avatar_small, profile_url, mmr, last_mmr_update, created_at, updated_at
		FROM users WHERE steam_id = ?`, steamID,
	).Scan(&user.ID, &user.SteamID, &user.Username, &user.AvatarURL, &user.AvatarSmall, &user.ProfileURL,
		&user.MMR, &user.LastMMRUpdate, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by steam id: %w", err)
	}

	return user, nil
}

// FindOrCreate looks up a user by Steam ID, creating them on first
// login and refreshing the profile fields otherwise. Returns whether
// the user was newly created.
func (r *UserRepository) FindOrCreate(steamID, username, avatarURL, avatarSmall, profileURL string) (*models.User, bool, error) {
	user, err := r.GetBySteamID(steamID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		user = &models.User{
			SteamID:       steamID,
			Username:      username,
			AvatarURL:     avatarURL,
			AvatarSmall:   avatarSmall,
			ProfileURL:    profileURL,
			LastMMRUpdate: time.Now().UTC(),
		}
		if err := r.Create(user); err != nil {
			return nil, false, err
		}
		return user, true, nil
	}

	user.Username = username
	user.AvatarURL = avatarURL
	user.AvatarSmall = avatarSmall
	user.ProfileURL = profileURL
	if err := r.Update(user); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

// Update updates the profile fields of an existing user
func (r *UserRepository) Update(user *models.User) error {
	return database.WithRetry(func() error {
		_, err := database.DB.Exec(`
			UPDATE users SET username = ?, avatar_url = ?, avatar_small = ?, profile_url = ?, updated_at = ?
			WHERE id = ?`,
			user.Username, user.AvatarURL, user.AvatarSmall, user.ProfileURL, time.Now().UTC(), user.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
}

// UpdateMMR sets the user's current MMR and stamps the update time
func (r *UserRepository) UpdateMMR(userID uint64, mmr int) error {
	return database.WithRetry(func() error {
		now := time.Now().UTC()
		_, err := database.DB.Exec(`
			UPDATE users SET mmr = ?, last_mmr_update = ?, updated_at = ? WHERE id = ?`,
			mmr, now, now, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update mmr: %w", err)
		}
		return nil
	})
}

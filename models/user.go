package models

import "time"

// User represents a registered player account
type User struct {
	ID            uint64    `json:"id"`
	SteamID       string    `json:"steam_id"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar_url"`
	AvatarSmall   string    `json:"avatar_small"`
	ProfileURL    string    `json:"profile_url"`
	MMR           int       `json:"mmr"`
	LastMMRUpdate time.Time `json:"last_mmr_update"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

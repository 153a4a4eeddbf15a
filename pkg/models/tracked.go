package models

import "time"

type TrackedGame struct {
	UserID    string    `json:"user_id"`
	GameID    string    `json:"game_id"`
	Version   string    `json:"version,omitempty"`
	Build     string    `json:"build,omitempty"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

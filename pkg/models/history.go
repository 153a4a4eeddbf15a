package models

import "time"

type ReleaseHistory struct {
	ID      int64     `json:"id"`
	GameID  string    `json:"game_id"`
	Version string    `json:"version,omitempty"`
	Build   string    `json:"build,omitempty"`
	Source  string    `json:"source,omitempty"`
	NotedAt time.Time `json:"noted_at"`
}

package sync

import "time"

// TrackEvent is broadcast when a user changes their tracked games.
type TrackEvent struct {
	Type    string    `json:"type"` // "track.update" or "track.delete"
	UserID  string    `json:"user_id"`
	GameID  string    `json:"game_id"`
	Version string    `json:"version,omitempty"`
	Build   string    `json:"build,omitempty"`
	Status  string    `json:"status,omitempty"`
	At      time.Time `json:"at"`
}

// ReleaseEvent is broadcast when the checker accepts a newer release
// for a tracked game.
type ReleaseEvent struct {
	Type    string    `json:"type"` // "release.new"
	GameID  string    `json:"game_id"`
	Title   string    `json:"title,omitempty"`
	Version string    `json:"version,omitempty"`
	Build   string    `json:"build,omitempty"`
	Source  string    `json:"source,omitempty"`
	At      time.Time `json:"at"`
}

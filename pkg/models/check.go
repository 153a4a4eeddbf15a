package models

import "time"

// CheckResult is one row of the per-user update-check log: what the checker
// decided for a tracked game on a given run.
type CheckResult struct {
	UserID   string    `json:"user_id"`
	GameID   string    `json:"game_id"`
	Decision string    `json:"decision"` // "accept", "reject" or "duplicate"
	Reason   string    `json:"reason,omitempty"`
	Version  string    `json:"version,omitempty"` // candidate version that was judged
	Build    string    `json:"build,omitempty"`
	At       time.Time `json:"at"`
}

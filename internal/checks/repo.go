package checks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gamehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Add(ctx context.Context, entry models.CheckResult) error {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO check_log (user_id, game_id, decision, reason, version, build, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.UserID, entry.GameID, entry.Decision, entry.Reason, entry.Version, entry.Build, entry.At)
	if err != nil {
		return fmt.Errorf("insert check log: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID, gameID string, limit, offset int) ([]models.CheckResult, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	var countErr error
	if gameID == "" {
		countErr = r.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM check_log WHERE user_id = ?
		`, userID).Scan(&total)
	} else {
		countErr = r.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM check_log WHERE user_id = ? AND game_id = ?
		`, userID, gameID).Scan(&total)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("count check log: %w", countErr)
	}

	var rows *sql.Rows
	var err error
	if gameID == "" {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT user_id, game_id, decision, reason, version, build, at
			FROM check_log
			WHERE user_id = ?
			ORDER BY at DESC
			LIMIT ? OFFSET ?
		`, userID, limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT user_id, game_id, decision, reason, version, build, at
			FROM check_log
			WHERE user_id = ? AND game_id = ?
			ORDER BY at DESC
			LIMIT ? OFFSET ?
		`, userID, gameID, limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list check log: %w", err)
	}
	defer rows.Close()

	out := make([]models.CheckResult, 0, limit)
	for rows.Next() {
		var entry models.CheckResult
		var reason, version, build sql.NullString
		var at time.Time

		if err := rows.Scan(&entry.UserID, &entry.GameID, &entry.Decision, &reason, &version, &build, &at); err != nil {
			return nil, 0, fmt.Errorf("scan check log: %w", err)
		}
		entry.Reason = reason.String
		entry.Version = version.String
		entry.Build = build.String
		entry.At = at
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows check log: %w", err)
	}

	return out, total, nil
}

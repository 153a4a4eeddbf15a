package tracker

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

// Upsert inserts or updates a user's tracked game
func (r *Repo) Upsert(ctx context.Context, item models.TrackedGame) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO tracked_games (user_id, game_id, version, build, status, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, game_id) DO UPDATE SET
			version = excluded.version,
			build = excluded.build,
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, item.UserID, item.GameID, item.Version, item.Build, item.Status)
	if err != nil {
		return fmt.Errorf("upsert tracked game: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, gameID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM tracked_games
		WHERE user_id = ? AND game_id = ?
	`, userID, gameID)
	if err != nil {
		return false, fmt.Errorf("delete tracked game: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) List(ctx context.Context, userID string, status string, limit, offset int) ([]models.TrackedGame, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	// count
	var total int
	var countErr error
	if status == "" {
		countErr = r.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM tracked_games WHERE user_id = ?
		`, userID).Scan(&total)
	} else {
		countErr = r.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM tracked_games WHERE user_id = ? AND status = ?
		`, userID, status).Scan(&total)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("count tracked: %w", countErr)
	}

	// list
	var rows *sql.Rows
	var err error

	if status == "" {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT user_id, game_id, version, build, status, updated_at
			FROM tracked_games
			WHERE user_id = ?
			ORDER BY updated_at DESC
			LIMIT ? OFFSET ?
		`, userID, limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT user_id, game_id, version, build, status, updated_at
			FROM tracked_games
			WHERE user_id = ? AND status = ?
			ORDER BY updated_at DESC
			LIMIT ? OFFSET ?
		`, userID, status, limit, offset)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("list tracked: %w", err)
	}
	defer rows.Close()

	out := make([]models.TrackedGame, 0, limit)
	for rows.Next() {
		var it models.TrackedGame
		var updated time.Time

		if err := rows.Scan(&it.UserID, &it.GameID, &it.Version, &it.Build, &it.Status, &updated); err != nil {
			return nil, 0, fmt.Errorf("scan tracked row: %w", err)
		}
		it.UpdatedAt = updated
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, userID, gameID string) (*models.TrackedGame, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT user_id, game_id, version, build, status, updated_at
		FROM tracked_games
		WHERE user_id = ? AND game_id = ?
	`, userID, gameID)

	var it models.TrackedGame
	var updated time.Time
	if err := row.Scan(&it.UserID, &it.GameID, &it.Version, &it.Build, &it.Status, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get tracked game: %w", err)
	}
	it.UpdatedAt = updated
	return &it, nil
}

// DistinctGameIDs returns every game id tracked by at least one user.
// The checker walks this set once per cycle.
func (r *Repo) DistinctGameIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT game_id FROM tracked_games
		WHERE status != 'ignored'
	`)
	if err != nil {
		return nil, fmt.Errorf("distinct tracked games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return ids, nil
}

// Trackers returns the user ids tracking a given game.
func (r *Repo) Trackers(ctx context.Context, gameID string) ([]models.TrackedGame, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, game_id, version, build, status, updated_at
		FROM tracked_games
		WHERE game_id = ? AND status != 'ignored'
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("trackers of game: %w", err)
	}
	defer rows.Close()

	var out []models.TrackedGame
	for rows.Next() {
		var it models.TrackedGame
		var updated time.Time
		if err := rows.Scan(&it.UserID, &it.GameID, &it.Version, &it.Build, &it.Status, &updated); err != nil {
			return nil, fmt.Errorf("scan tracked row: %w", err)
		}
		it.UpdatedAt = updated
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// SetRelease updates the stored version/build for every tracker of a game.
// Used by the checker after it accepts a newer release.
func (r *Repo) SetRelease(ctx context.Context, gameID, version, build string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE tracked_games
		SET version = ?, build = ?, updated_at = CURRENT_TIMESTAMP
		WHERE game_id = ? AND status != 'ignored'
	`, version, build, gameID)
	if err != nil {
		return 0, fmt.Errorf("set release: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

package history

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

// Append records an accepted release for a game. Rows are append-only,
// the history is the audit trail of what the checker decided.
func (r *Repo) Append(ctx context.Context, gameID, version, build, source string) (*models.ReleaseHistory, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO release_history (game_id, version, build, source)
		VALUES (?, ?, ?, ?)
	`, gameID, version, build, source)
	if err != nil {
		return nil, fmt.Errorf("insert release history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.ReleaseHistory, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, game_id, version, build, source, noted_at
		FROM release_history
		WHERE id = ?
	`, id)

	var entry models.ReleaseHistory
	var build, source sql.NullString
	var notedAt time.Time
	if err := row.Scan(&entry.ID, &entry.GameID, &entry.Version, &build, &source, &notedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan release history: %w", err)
	}

	entry.Build = build.String
	entry.Source = source.String
	entry.NotedAt = notedAt
	return &entry, nil
}

func (r *Repo) ListByGame(ctx context.Context, gameID string, limit, offset int) ([]models.ReleaseHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, game_id, version, build, source, noted_at
		FROM release_history
		WHERE game_id = ?
		ORDER BY noted_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, gameID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list release history: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReleaseHistory, 0, limit)
	for rows.Next() {
		var entry models.ReleaseHistory
		var build, source sql.NullString
		var notedAt time.Time

		if err := rows.Scan(&entry.ID, &entry.GameID, &entry.Version, &build, &source, &notedAt); err != nil {
			return nil, fmt.Errorf("scan release history row: %w", err)
		}

		entry.Build = build.String
		entry.Source = source.String
		entry.NotedAt = notedAt
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Latest returns the most recently noted release for a game, nil if none.
func (r *Repo) Latest(ctx context.Context, gameID string) (*models.ReleaseHistory, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, game_id, version, build, source, noted_at
		FROM release_history
		WHERE game_id = ?
		ORDER BY noted_at DESC, id DESC
		LIMIT 1
	`, gameID)

	var entry models.ReleaseHistory
	var build, source sql.NullString
	var notedAt time.Time
	if err := row.Scan(&entry.ID, &entry.GameID, &entry.Version, &build, &source, &notedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest release: %w", err)
	}

	entry.Build = build.String
	entry.Source = source.String
	entry.NotedAt = notedAt
	return &entry, nil
}

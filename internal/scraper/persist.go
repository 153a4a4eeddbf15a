package scraper

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gamehub/pkg/models"
)

// SaveToDatabase upserts the given slice of GameCanonical into the `games`
// table (see docs/schema.sql). Genres are stored as a JSON array in a text
// column, matching the catalog repo's read side.
func SaveToDatabase(ctx context.Context, db *sql.DB, games []models.GameCanonical) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games (id, title, clean_title, version, build, genres, year, description, cover_url, page_url, source_ids)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  clean_title = excluded.clean_title,
		  version = excluded.version,
		  build = excluded.build,
		  genres = excluded.genres,
		  year = excluded.year,
		  description = excluded.description,
		  cover_url = excluded.cover_url,
		  page_url = excluded.page_url,
		  source_ids = excluded.source_ids
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for _, g := range games {
		genresJSON, err := json.Marshal(g.Genres)
		if err != nil {
			return fmt.Errorf("marshal genres for %s: %w", g.ID, err)
		}
		sourceIDsJSON, err := json.Marshal(g.SourceIDs)
		if err != nil {
			return fmt.Errorf("marshal source ids for %s: %w", g.ID, err)
		}

		if _, err := stmt.ExecContext(
			ctx,
			g.ID,
			g.Title,
			g.CleanTitle,
			g.Version,
			g.Build,
			string(genresJSON),
			g.Year,
			g.Description,
			g.CoverURL,
			g.PageURL,
			string(sourceIDsJSON),
		); err != nil {
			return fmt.Errorf("exec upsert for %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

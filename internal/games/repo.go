package games

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"gamehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q      string   // keyword search in raw/clean title
	Genres []string // any-match
	Year   int
	Limit  int
	Offset int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.GameDB, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, clean_title, version, build, genres, year, description, cover_url, page_url, source_ids
		FROM games
		WHERE id = ?
	`, id)

	g, err := scanGame(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	return g, nil
}

// GetByCleanTitle returns the catalog entry whose cleaned title matches
// exactly. Used by the checker to find the latest listing for a tracked game.
func (r *Repo) GetByCleanTitle(ctx context.Context, cleanTitle string) (*models.GameDB, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, clean_title, version, build, genres, year, description, cover_url, page_url, source_ids
		FROM games
		WHERE clean_title = ?
	`, cleanTitle)

	g, err := scanGame(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByCleanTitle: %w", err)
	}
	return g, nil
}

// CleanTitles returns every distinct cleaned title in the catalog, for the
// fuzzy-match fallback in search.
func (r *Repo) CleanTitles(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT clean_title FROM games`)
	if err != nil {
		return nil, fmt.Errorf("clean titles query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("clean titles scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// SetSourceID records an external store id on a catalog row.
func (r *Repo) SetSourceID(ctx context.Context, gameID, store, storeID string) error {
	g, err := r.GetByID(ctx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	if g.SourceIDs == nil {
		g.SourceIDs = make(map[string]string)
	}
	g.SourceIDs[store] = storeID

	b, err := json.Marshal(g.SourceIDs)
	if err != nil {
		return fmt.Errorf("marshal source ids: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, `
		UPDATE games SET source_ids = ? WHERE id = ?
	`, string(b), gameID); err != nil {
		return fmt.Errorf("set source id: %w", err)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.GameDB, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.GameDB, 0, q.Limit)
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func scanGame(scan func(dest ...any) error) (*models.GameDB, error) {
	var (
		g           models.GameDB
		version     sql.NullString
		build       sql.NullString
		genresJSON  string
		year        sql.NullInt64
		description sql.NullString
		coverURL    sql.NullString
		pageURL     sql.NullString
		sourceIDs   sql.NullString
	)

	if err := scan(
		&g.ID, &g.Title, &g.CleanTitle, &version, &build, &genresJSON, &year, &description, &coverURL, &pageURL, &sourceIDs,
	); err != nil {
		return nil, err
	}

	g.Version = version.String
	g.Build = build.String
	if year.Valid {
		g.Year = int(year.Int64)
	}
	g.Description = description.String
	g.CoverURL = coverURL.String
	g.PageURL = pageURL.String

	_ = json.Unmarshal([]byte(genresJSON), &g.Genres)
	if sourceIDs.Valid && sourceIDs.String != "" {
		_ = json.Unmarshal([]byte(sourceIDs.String), &g.SourceIDs)
	}
	return &g, nil
}

// buildListSQL builds either COUNT(*) or SELECT list.
// genres filter is "any-match" by doing LIKE searches inside stored JSON text.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `
		SELECT id, title, clean_title, version, build, genres, year, description, cover_url, page_url, source_ids
		FROM games
	`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM games`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "(LOWER(title) LIKE ? OR clean_title LIKE ?)")
		kw := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		args = append(args, kw, kw)
	}

	if q.Year > 0 {
		where = append(where, "year = ?")
		args = append(args, q.Year)
	}

	// any-match genre filter against JSON string
	if len(q.Genres) > 0 {
		var genreOr []string
		for _, g := range q.Genres {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			genreOr = append(genreOr, "LOWER(genres) LIKE ?")
			args = append(args, `%`+strings.ToLower(g)+`%`)
		}
		if len(genreOr) > 0 {
			where = append(where, "("+strings.Join(genreOr, " OR ")+")")
		}
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY clean_title ASC"
		sqlStr += " LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}

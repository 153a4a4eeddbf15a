package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gamehub/pkg/database"
)

type MirrorGame struct {
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Build    string   `json:"build"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
	ImageURL string   `json:"image_url"`
	PageURL  string   `json:"page_url"`
	Year     string   `json:"year"`
}

func main() {
	var (
		outPath = flag.String("out", "data/mirror.json", "output JSON path")
		limit   = flag.Int("limit", 200, "how many games to export")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, version, build, genres, year, description, cover_url, page_url
		FROM games
		ORDER BY clean_title
		LIMIT ?
	`, *limit)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	defer rows.Close()

	var out []MirrorGame
	for rows.Next() {
		var (
			id         string
			title      string
			version    sql.NullString
			build      sql.NullString
			genresJSON string
			year       sql.NullInt64
			desc       sql.NullString
			coverURL   sql.NullString
			pageURL    sql.NullString
		)

		if err := rows.Scan(&id, &title, &version, &build, &genresJSON, &year, &desc, &coverURL, &pageURL); err != nil {
			log.Fatalf("scan failed: %v", err)
		}

		var genres []string
		_ = json.Unmarshal([]byte(genresJSON), &genres)

		out = append(out, MirrorGame{
			Slug:     id,
			Name:     title,
			Version:  version.String,
			Build:    build.String,
			Tags:     genres,
			Summary:  desc.String,
			ImageURL: coverURL.String,
			PageURL:  pageURL.String,
			Year:     itoaOrEmpty(year),
		})
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("rows error: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("mkdir failed: %v", err)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal failed: %v", err)
	}

	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}

	log.Printf("exported %d games to %s", len(out), *outPath)
}

func itoaOrEmpty(n sql.NullInt64) string {
	if !n.Valid || n.Int64 <= 0 {
		return ""
	}
	return strconv.FormatInt(n.Int64, 10)
}

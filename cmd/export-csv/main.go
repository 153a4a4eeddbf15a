package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gamehub/pkg/database"
)

func main() {
	var (
		gamesOut   = flag.String("games", "data/games.csv", "output CSV path for games")
		trackedOut = flag.String("tracked", "data/tracked_games.csv", "output CSV path for tracked games")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportGames(ctx, db, *gamesOut); err != nil {
		log.Fatalf("export games failed: %v", err)
	}
	if err := exportTracked(ctx, db, *trackedOut); err != nil {
		log.Fatalf("export tracked games failed: %v", err)
	}

	log.Printf("exported games to %s and tracked games to %s", *gamesOut, *trackedOut)
}

func exportGames(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "clean_title", "version", "build", "genres", "year", "description", "cover_url", "page_url"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, title, clean_title, version, build, genres, year, description, cover_url, page_url
        FROM games
        ORDER BY clean_title
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          string
			title       string
			cleanTitle  string
			version     sql.NullString
			build       sql.NullString
			genres      sql.NullString
			year        sql.NullInt64
			description sql.NullString
			coverURL    sql.NullString
			pageURL     sql.NullString
		)

		if err := rows.Scan(&id, &title, &cleanTitle, &version, &build, &genres, &year, &description, &coverURL, &pageURL); err != nil {
			return err
		}

		yearStr := ""
		if year.Valid && year.Int64 > 0 {
			yearStr = strconv.FormatInt(year.Int64, 10)
		}

		if err := w.Write([]string{
			id,
			title,
			cleanTitle,
			version.String,
			build.String,
			genres.String,
			yearStr,
			description.String,
			coverURL.String,
			pageURL.String,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportTracked(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"user_id", "game_id", "version", "build", "status", "updated_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT user_id, game_id, version, build, status, updated_at
        FROM tracked_games
        ORDER BY updated_at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID    string
			gameID    string
			version   sql.NullString
			build     sql.NullString
			status    sql.NullString
			updatedAt sql.NullTime
		)

		if err := rows.Scan(&userID, &gameID, &version, &build, &status, &updatedAt); err != nil {
			return err
		}

		updated := ""
		if updatedAt.Valid {
			updated = updatedAt.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			userID,
			gameID,
			version.String,
			build.String,
			status.String,
			updated,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

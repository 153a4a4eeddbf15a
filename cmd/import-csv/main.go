package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gamehub/pkg/database"
)

func main() {
	var (
		gamesIn   = flag.String("games", "data/games.csv", "input CSV path for games")
		trackedIn = flag.String("tracked", "data/tracked_games.csv", "input CSV path for tracked games")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := importGames(ctx, db, *gamesIn); err != nil {
		log.Fatalf("import games failed: %v", err)
	}
	if err := importTracked(ctx, db, *trackedIn); err != nil {
		log.Fatalf("import tracked games failed: %v", err)
	}

	log.Printf("imported games from %s and tracked games from %s", *gamesIn, *trackedIn)
}

func importGames(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO games (id, title, clean_title, version, build, genres, year, description, cover_url, page_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  clean_title = excluded.clean_title,
		  version = excluded.version,
		  build = excluded.build,
		  genres = excluded.genres,
		  year = excluded.year,
		  description = excluded.description,
		  cover_url = excluded.cover_url,
		  page_url = excluded.page_url
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		id := valueAt(header, row, "id")
		title := valueAt(header, row, "title")
		if id == "" || title == "" {
			continue
		}

		year, err := parseNullInt(valueAt(header, row, "year"))
		if err != nil {
			return fmt.Errorf("parse year for %s: %w", id, err)
		}

		genres := valueAt(header, row, "genres")
		if genres == "" {
			genres = "[]"
		}

		if _, err := stmt.ExecContext(
			ctx,
			id,
			title,
			valueAt(header, row, "clean_title"),
			nullString(valueAt(header, row, "version")),
			nullString(valueAt(header, row, "build")),
			genres,
			year,
			nullString(valueAt(header, row, "description")),
			nullString(valueAt(header, row, "cover_url")),
			nullString(valueAt(header, row, "page_url")),
		); err != nil {
			return err
		}
	}

	return nil
}

func importTracked(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO tracked_games (user_id, game_id, version, build, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, game_id) DO UPDATE SET
			version = excluded.version,
			build = excluded.build,
			status = excluded.status,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		userID := valueAt(header, row, "user_id")
		gameID := valueAt(header, row, "game_id")
		if userID == "" || gameID == "" {
			continue
		}

		updatedAt, err := parseTime(valueAt(header, row, "updated_at"))
		if err != nil {
			return fmt.Errorf("parse updated_at for %s/%s: %w", userID, gameID, err)
		}
		if !updatedAt.Valid {
			updatedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		}

		status := valueAt(header, row, "status")
		if status == "" {
			status = "playing"
		}

		// empty strings, not NULLs: the tracker repo scans these directly
		if _, err := stmt.ExecContext(
			ctx,
			userID,
			gameID,
			valueAt(header, row, "version"),
			valueAt(header, row, "build"),
			status,
			updatedAt,
		); err != nil {
			return err
		}
	}

	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNullInt(raw string) (sql.NullInt64, error) {
	if raw == "" {
		return sql.NullInt64{}, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: n, Valid: true}, nil
}

func parseTime(raw string) (sql.NullTime, error) {
	if raw == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

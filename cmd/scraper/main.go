package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"gamehub/internal/scraper"
	"gamehub/pkg/database"
)

func main() {
	var (
		wpURL     = flag.String("wordpress", "", "base URL of a WordPress release site (empty to skip)")
		wpName    = flag.String("wordpress-name", "wordpress", "source name for the WordPress site")
		mirrorURL = flag.String("mirror", "http://localhost:8090", "base URL of the local mirror (empty to skip)")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap init failed: %v", err)
	}
	defer logger.Sync()

	var sources []scraper.Source
	if *wpURL != "" {
		sources = append(sources, scraper.NewWordPressSource(*wpName, *wpURL))
	}
	if *mirrorURL != "" {
		sources = append(sources, scraper.NewMirrorSource(*mirrorURL))
	}
	if len(sources) == 0 {
		log.Fatal("no sources configured")
	}

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	agg := scraper.NewAggregator(logger, sources...)
	games, err := agg.FetchAndMerge(ctx)
	if err != nil {
		log.Fatalf("fetch and merge failed: %v", err)
	}

	logger.Info("merged games", zap.Int("count", len(games)))

	if err := scraper.SaveToDatabase(ctx, db, games); err != nil {
		log.Fatalf("save to database failed: %v", err)
	}

	logger.Info("database populated", zap.String("path", cfg.Path))
}

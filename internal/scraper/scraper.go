package scraper

import (
	"context"

	"go.uber.org/zap"

	"gamehub/internal/title"
	"gamehub/internal/version"
	"gamehub/pkg/models"
)

// Source is implemented by each external listing site (WordPress REST API,
// local mirror, ...). Each source fetches its own data format and maps it
// into GameCanonical.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.GameCanonical, error)
}

// Aggregator coordinates calls to multiple sources and merges their listings
// into a single canonical set of games.
type Aggregator struct {
	Sources []Source
	Logger  *zap.Logger
}

// NewAggregator creates a new Aggregator with the given sources.
func NewAggregator(logger *zap.Logger, sources ...Source) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{Sources: sources, Logger: logger}
}

// FetchAndMerge fetches all listings from all sources and merges entries
// that describe the same game, using deterministic conflict resolution.
// The cleaned title is the grouping key, so "Palworld v0.6.5-CODEX" and
// "Palworld (v0.6.6) Free Download" land on the same canonical entry.
func (a *Aggregator) FetchAndMerge(ctx context.Context) ([]models.GameCanonical, error) {
	byKey := make(map[string]models.GameCanonical)

	for _, src := range a.Sources {
		a.Logger.Info("fetching source", zap.String("source", src.Name()))
		games, err := src.FetchAll(ctx)
		if err != nil {
			a.Logger.Warn("source failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			// keep going: one broken source should not kill all scraping
			continue
		}

		for _, g := range games {
			g = canonicalize(g)
			if g.ID == "" {
				continue
			}

			if existing, ok := byKey[g.ID]; ok {
				byKey[g.ID] = mergeGame(existing, g)
			} else {
				byKey[g.ID] = g
			}
		}
		a.Logger.Info("source merged",
			zap.String("source", src.Name()),
			zap.Int("listings", len(games)),
		)
	}

	result := make([]models.GameCanonical, 0, len(byKey))
	for _, g := range byKey {
		result = append(result, g)
	}
	return result, nil
}

// canonicalize fills the derived fields a source is not responsible for:
// the cleaned title, the slug ID, and the detected version/build when the
// source did not extract them itself. The ID is always derived from the
// title so the same game from two sources merges onto one key, whatever
// slug each site uses.
func canonicalize(g models.GameCanonical) models.GameCanonical {
	g.CleanTitle = title.Clean(g.Title, false)
	g.ID = title.Slug(g.Title)
	if g.Version == "" {
		if det := version.DetectVersion(g.Title); det.Found {
			g.Version = det.Version
		}
	}
	if g.Build == "" {
		if det := version.DetectBuild(g.Title); det.Found {
			g.Build = det.Build
		}
	}
	return g
}

// mergeGame resolves two listings of the same game. The newer release wins
// the version/build and page fields; everything else fills gaps, unions
// genres and keeps the longer description.
func mergeGame(base, incoming models.GameCanonical) models.GameCanonical {
	if incoming.Title != "" && incoming.Title != base.Title {
		base.AltTitles = appendIfMissing(base.AltTitles, incoming.Title)
	}

	decision := version.Reconcile(
		version.Release{Version: base.Version, Build: base.Build},
		version.Release{Version: incoming.Version, Build: incoming.Build},
	)
	if decision.Outcome == version.OutcomeAccept {
		base.Version = incoming.Version
		base.Build = incoming.Build
		if incoming.PageURL != "" {
			base.PageURL = incoming.PageURL
		}
	}
	if base.Version == "" {
		base.Version = incoming.Version
	}
	if base.Build == "" {
		base.Build = incoming.Build
	}

	base.Genres = mergeStringSlices(base.Genres, incoming.Genres)

	if len(incoming.Description) > len(base.Description) {
		base.Description = incoming.Description
	}
	if base.CoverURL == "" && incoming.CoverURL != "" {
		base.CoverURL = incoming.CoverURL
	}
	if base.PageURL == "" && incoming.PageURL != "" {
		base.PageURL = incoming.PageURL
	}
	if base.Year == 0 && incoming.Year > 0 {
		base.Year = incoming.Year
	}

	if base.SourceIDs == nil {
		base.SourceIDs = make(map[string]string)
	}
	for k, v := range incoming.SourceIDs {
		base.SourceIDs[k] = v
	}

	return base
}

func appendIfMissing(slice []string, v string) []string {
	for _, x := range slice {
		if x == v {
			return slice
		}
	}
	return append(slice, v)
}

func mergeStringSlices(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	for _, v := range b {
		out = appendIfMissing(out, v)
	}
	return out
}

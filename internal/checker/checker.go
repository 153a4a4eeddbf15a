package checker

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"gamehub/internal/checks"
	"gamehub/internal/external"
	"gamehub/internal/games"
	"gamehub/internal/history"
	"gamehub/internal/sync"
	"gamehub/internal/tracker"
	"gamehub/internal/version"
	"gamehub/pkg/models"
)

// Broadcaster pushes an event to every connected sync client.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Notifier pushes a UDP notification to registered clients.
type Notifier interface {
	BroadcastNewRelease(gameID, title, version, build string)
}

// Checker periodically walks all tracked games, compares each against the
// newest catalog listing, and applies the updates the reconciler accepts.
type Checker struct {
	Games    *games.Repo
	Tracker  *tracker.Repo
	History  *history.Repo
	Checks   *checks.Repo
	Hub      Broadcaster
	Notify   Notifier
	GOG      *external.GOGClient
	Steam    *external.SteamClient
	Cache    *Cache
	Interval time.Duration
	Logger   *zap.Logger
}

func New(g *games.Repo, t *tracker.Repo, h *history.Repo, c *checks.Repo, interval, cacheTTL time.Duration, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		Games:    g,
		Tracker:  t,
		History:  h,
		Checks:   c,
		GOG:      external.NewGOGClient(),
		Steam:    external.NewSteamClient(),
		Cache:    NewCache(cacheTTL),
		Interval: interval,
		Logger:   logger,
	}
}

// Run blocks, checking on every tick until the context is cancelled.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	c.Logger.Info("checker started", zap.Duration("interval", c.Interval))

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("checker stopped")
			return
		case <-ticker.C:
			if err := c.RunOnce(ctx); err != nil {
				c.Logger.Error("check cycle failed", zap.Error(err))
			}
		}
	}
}

// RunOnce performs a single check cycle over every tracked game.
func (c *Checker) RunOnce(ctx context.Context) error {
	ids, err := c.Tracker.DistinctGameIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.checkGame(ctx, id); err != nil {
			c.Logger.Warn("game check failed", zap.String("game_id", id), zap.Error(err))
		}
	}
	return nil
}

func (c *Checker) checkGame(ctx context.Context, gameID string) error {
	game, err := c.Games.GetByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		// id may come from an older import; fall back to title lookup
		game, err = c.Games.GetByCleanTitle(ctx, strings.ReplaceAll(gameID, "-", " "))
		if err != nil || game == nil {
			return err
		}
	}

	candidate := version.Release{Version: game.Version, Build: game.Build}
	if candidate.Build == "" {
		candidate.Build = c.lookupBuild(ctx, game)
	}

	// Backfill the steam app id while we are here so later cycles (and the
	// API) can link to the store page.
	if game.SourceIDs["steam"] == "" {
		if id := c.resolveSteamID(ctx, game.Title); id != "" {
			if err := c.Games.SetSourceID(ctx, game.ID, "steam", id); err != nil {
				c.Logger.Warn("steam id save failed", zap.String("game_id", game.ID), zap.Error(err))
			}
		}
	}

	trackers, err := c.Tracker.Trackers(ctx, gameID)
	if err != nil {
		return err
	}

	accepted := 0
	for _, tr := range trackers {
		dec := version.Reconcile(version.Release{Version: tr.Version, Build: tr.Build}, candidate)

		entry := models.CheckResult{
			UserID:   tr.UserID,
			GameID:   gameID,
			Decision: string(dec.Outcome),
			Reason:   dec.Reason,
			Version:  candidate.Version,
			Build:    candidate.Build,
			At:       time.Now().UTC(),
		}
		if err := c.Checks.Add(ctx, entry); err != nil {
			c.Logger.Warn("check log write failed", zap.String("user_id", tr.UserID), zap.Error(err))
		}

		if dec.Outcome != version.OutcomeAccept {
			continue
		}

		tr.Version = candidate.Version
		tr.Build = candidate.Build
		if err := c.Tracker.Upsert(ctx, tr); err != nil {
			c.Logger.Warn("tracked update failed", zap.String("user_id", tr.UserID), zap.Error(err))
			continue
		}
		accepted++
	}

	if accepted == 0 {
		return nil
	}

	c.Logger.Info("release accepted",
		zap.String("game_id", gameID),
		zap.String("version", candidate.Version),
		zap.String("build", candidate.Build),
		zap.Int("trackers", accepted))

	if _, err := c.History.Append(ctx, gameID, candidate.Version, candidate.Build, "checker"); err != nil {
		c.Logger.Warn("history append failed", zap.String("game_id", gameID), zap.Error(err))
	}

	if c.Hub != nil {
		c.Hub.BroadcastJSON(sync.ReleaseEvent{
			Type:    "release.new",
			GameID:  gameID,
			Title:   game.Title,
			Version: candidate.Version,
			Build:   candidate.Build,
			Source:  "checker",
			At:      time.Now().UTC(),
		})
	}
	if c.Notify != nil {
		c.Notify.BroadcastNewRelease(gameID, game.Title, candidate.Version, candidate.Build)
	}
	return nil
}

// lookupBuild asks the external stores for a build id when the listing
// itself carried none. Results are cached per product for the cache TTL.
func (c *Checker) lookupBuild(ctx context.Context, game *models.GameDB) string {
	productID := game.SourceIDs["gog"]
	if productID == "" || c.GOG == nil {
		return ""
	}

	key := "gog:" + productID
	if v, ok := c.Cache.Get(key); ok {
		return v
	}

	builds, err := c.GOG.Builds(ctx, productID)
	if err != nil {
		c.Logger.Warn("gog lookup failed", zap.String("product_id", productID), zap.Error(err))
		return ""
	}
	if len(builds) == 0 {
		return ""
	}

	build := builds[0].BuildID
	if _, err := strconv.ParseUint(build, 10, 64); err != nil {
		return ""
	}
	c.Cache.Set(key, build)
	return build
}

// resolveSteamID finds the store app id for a title, cached.
func (c *Checker) resolveSteamID(ctx context.Context, title string) string {
	if c.Steam == nil {
		return ""
	}
	key := "steam:" + strings.ToLower(title)
	if v, ok := c.Cache.Get(key); ok {
		return v
	}

	apps, err := c.Steam.Search(ctx, title)
	if err != nil {
		c.Logger.Warn("steam lookup failed", zap.String("title", title), zap.Error(err))
		return ""
	}
	if len(apps) == 0 {
		return ""
	}

	id := strconv.Itoa(apps[0].ID)
	c.Cache.Set(key, id)
	return id
}

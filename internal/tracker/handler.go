package tracker

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gamehub/internal/auth"
	"gamehub/internal/sync"
	"gamehub/internal/version"
	"gamehub/pkg/models"
)

type Handler struct {
	Repo *Repo
	Hub  *sync.Hub
}

func NewHandler(repo *Repo, hub *sync.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tracker", h.list)
	rg.POST("/tracker", h.addOrUpdate)
	rg.PUT("/tracker/:game_id", h.addOrUpdate)
	rg.DELETE("/tracker/:game_id", h.remove)
	rg.GET("/tracker/:game_id", h.getOne)
}

type upsertReq struct {
	GameID  string `json:"game_id"` // required for POST
	Version string `json:"version"`
	Build   string `json:"build"`
	Status  string `json:"status"`
	Force   bool   `json:"force"` // skip the downgrade check
}

func (h *Handler) addOrUpdate(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	gameID := strings.TrimSpace(req.GameID)
	if gameID == "" {
		gameID = strings.TrimSpace(c.Param("game_id"))
	}
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	status := normalizeStatus(req.Status)
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "status must be one of: playing, completed, wishlist, ignored",
		})
		return
	}

	req.Version = strings.TrimSpace(req.Version)
	req.Build = strings.TrimSpace(req.Build)

	// Advisory shape checks on user-typed values. Empty is fine, a
	// wishlist entry has no installed version yet.
	if req.Version != "" {
		if v := version.ValidateVersionInput(req.Version); !v.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": v.Error})
			return
		}
	}
	if req.Build != "" {
		if v := version.ValidateBuildInput(req.Build); !v.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": v.Error})
			return
		}
	}

	// On update, refuse silently downgrading the stored release unless
	// the client forces it (manual rollback).
	existing, err := h.Repo.Get(c.Request.Context(), claims.UserID, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if existing != nil && !req.Force && (req.Version != "" || req.Build != "") {
		dec := version.Reconcile(
			version.Release{Version: existing.Version, Build: existing.Build},
			version.Release{Version: req.Version, Build: req.Build},
		)
		if dec.Outcome == version.OutcomeReject {
			c.JSON(http.StatusConflict, gin.H{
				"error":  "candidate release is not newer than the tracked one",
				"reason": dec.Reason,
			})
			return
		}
	}

	item := models.TrackedGame{
		UserID:  claims.UserID,
		GameID:  gameID,
		Version: req.Version,
		Build:   req.Build,
		Status:  status,
	}
	if err := h.Repo.Upsert(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	// Return canonical stored row including updated_at
	saved, err := h.Repo.Get(c.Request.Context(), claims.UserID, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch saved failed"})
		return
	}
	if saved == nil {
		// should not happen, but safe
		saved = &item
		saved.UpdatedAt = time.Now().UTC()
	}

	if h.Hub != nil {
		ev := sync.TrackEvent{
			Type:    "track.update",
			UserID:  claims.UserID,
			GameID:  gameID,
			Version: saved.Version,
			Build:   saved.Build,
			Status:  saved.Status,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, saved)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		status = normalizeStatus(status)
		if status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gameID := strings.TrimSpace(c.Param("game_id"))
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), claims.UserID, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		ev := sync.TrackEvent{
			Type:   "track.delete",
			UserID: claims.UserID,
			GameID: gameID,
			At:     time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gameID := strings.TrimSpace(c.Param("game_id"))
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	it, err := h.Repo.Get(c.Request.Context(), claims.UserID, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if it == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, it)
}

func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "playing":
		return "playing"
	case "completed":
		return "completed"
	case "wishlist", "wish_list", "wish list":
		return "wishlist"
	case "ignored", "ignore":
		return "ignored"
	default:
		return ""
	}
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

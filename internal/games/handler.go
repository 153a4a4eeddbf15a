package games

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gamehub/internal/title"
	"gamehub/internal/version"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)            // GET /games
	rg.GET("/:id", h.getByID)     // GET /games/:id
	rg.POST("/analyze", h.analyze) // POST /games/analyze
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Q:      c.Query("q"),
		Year:   parseInt(c.Query("year"), 0),
		Limit:  parseInt(c.Query("limit"), 20),
		Offset: parseInt(c.Query("offset"), 0),
	}

	// genres=Survival,Horror OR genres=Survival&genres=Horror
	genres := c.QueryArray("genres")
	if len(genres) == 0 {
		if s := c.Query("genres"); s != "" {
			genres = strings.Split(s, ",")
		}
	}
	q.Genres = genres

	total, err := h.Repo.Count(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}

	items, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	// Fuzzy fallback: no exact hits but a keyword was given. Suggest close
	// catalog titles so a typo still finds the game.
	var suggestions []string
	if total == 0 && strings.TrimSpace(q.Q) != "" {
		if titles, err := h.Repo.CleanTitles(c.Request.Context()); err == nil {
			for _, m := range title.Match(q.Q, titles, 0.85) {
				suggestions = append(suggestions, m.Title)
				if len(suggestions) == 5 {
					break
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"limit":       q.Limit,
		"offset":      q.Offset,
		"items":       items,
		"suggestions": suggestions,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")
	g, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if g == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, g)
}

type analyzeReq struct {
	Title string `json:"title"`
}

// analyze runs the title/version engine over one raw listing title so the
// client can pre-fill a tracking form.
func (h *Handler) analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	raw := strings.TrimSpace(req.Title)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	analysis := version.Analyze(raw)

	c.JSON(http.StatusOK, gin.H{
		"title":          raw,
		"clean_title":    title.Clean(raw, false),
		"edition_title":  title.Clean(raw, true),
		"slug":           title.Slug(raw),
		"version":        analysis.Version,
		"build":          analysis.Build,
		"suggestion":     analysis.Suggestion,
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

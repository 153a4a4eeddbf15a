package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gamehub/pkg/models"
)

// MirrorSource reads a locally hosted JSON mirror of previously scraped
// listings. Demo-safe: no third-party site involved.
type MirrorSource struct {
	BaseURL string
	Client  *http.Client
}

// NewMirrorSource creates a new MirrorSource.
func NewMirrorSource(baseURL string) *MirrorSource {
	return &MirrorSource{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *MirrorSource) Name() string {
	return "mirror"
}

// FetchAll fetches and maps the mirror's data into GameCanonical.
//
// Expected response format:
//
//	GET {BaseURL}/games
//	[
//	  {
//	    "slug": "palworld",
//	    "name": "Palworld v0.6.6 Build 12345-CODEX",
//	    "version": "0.6.6",
//	    "build": "12345",
//	    "tags": ["Survival", "Open World"],
//	    "summary": "...",
//	    "image_url": "...",
//	    "page_url": "...",
//	    "year": "2024"
//	  },
//	  ...
//	]
func (s *MirrorSource) FetchAll(ctx context.Context) ([]models.GameCanonical, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/games", nil)
	if err != nil {
		return nil, fmt.Errorf("mirror: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mirror: status %d: %s", resp.StatusCode, string(body))
	}

	var raw []struct {
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
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("mirror: decode json: %w", err)
	}

	result := make([]models.GameCanonical, 0, len(raw))
	for _, r := range raw {
		if r.Name == "" {
			continue
		}

		g := models.GameCanonical{
			ID:          strings.TrimSpace(r.Slug),
			Title:       r.Name,
			Version:     r.Version,
			Build:       r.Build,
			Genres:      r.Tags,
			Description: r.Summary,
			CoverURL:    r.ImageURL,
			PageURL:     r.PageURL,
			Year:        parseIntOrZero(r.Year),
			SourceIDs:   map[string]string{"mirror": r.Slug},
		}
		result = append(result, g)
	}
	return result, nil
}

func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SteamClient talks to the public Steam store search endpoint. Used to
// resolve a catalog title to a store app id when a listing carries none.
type SteamClient struct {
	BaseURL string
	Client  *http.Client
}

func NewSteamClient() *SteamClient {
	return &SteamClient{
		BaseURL: "https://store.steampowered.com",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type SteamApp struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type steamSearchResp struct {
	Total int `json:"total"`
	Items []struct {
		ID   json.Number `json:"id"`
		Name string      `json:"name"`
	} `json:"items"`
}

// Search queries the storefront search and returns the candidate apps.
func (s *SteamClient) Search(ctx context.Context, term string) ([]SteamApp, error) {
	u := fmt.Sprintf("%s/api/storesearch/?term=%s&l=english&cc=US",
		s.BaseURL, url.QueryEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("steam search request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("steam search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam search: status %d", resp.StatusCode)
	}

	var parsed steamSearchResp
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("steam search decode: %w", err)
	}

	out := make([]SteamApp, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		id, err := strconv.Atoi(it.ID.String())
		if err != nil {
			continue
		}
		out = append(out, SteamApp{ID: id, Name: it.Name})
	}
	return out, nil
}

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GOGClient fetches build listings from the GOG content system. The newest
// build id stands in for a missing build number on drm-free releases.
type GOGClient struct {
	BaseURL string
	Client  *http.Client
}

func NewGOGClient() *GOGClient {
	return &GOGClient{
		BaseURL: "https://content-system.gog.com",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type GOGBuild struct {
	BuildID       string    `json:"build_id"`
	VersionName   string    `json:"version_name"`
	DatePublished time.Time `json:"date_published"`
}

type gogBuildsResp struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		BuildID       string    `json:"build_id"`
		VersionName   string    `json:"version_name"`
		DatePublished time.Time `json:"date_published"`
	} `json:"items"`
}

// Builds lists the published builds for a GOG product id, newest first.
func (g *GOGClient) Builds(ctx context.Context, productID string) ([]GOGBuild, error) {
	u := fmt.Sprintf("%s/products/%s/os/windows/builds?generation=2", g.BaseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("gog builds request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gog builds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gog builds: status %d", resp.StatusCode)
	}

	var parsed gogBuildsResp
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("gog builds decode: %w", err)
	}

	out := make([]GOGBuild, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		out = append(out, GOGBuild{
			BuildID:       it.BuildID,
			VersionName:   it.VersionName,
			DatePublished: it.DatePublished,
		})
	}
	return out, nil
}
